package main

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"leafloop/pkg"
)

type seedUser struct {
	username string
	email    string
	password string
}

type seedBook struct {
	owner     string
	title     string
	author    string
	genre     string
	condition string
	listed    bool
}

var seedUsers = []seedUser{
	{"alice", "alice@example.com", "password123"},
	{"bob", "bob@example.com", "password123"},
	{"carol", "carol@example.com", "password123"},
}

var seedBooks = []seedBook{
	{"alice", "The Left Hand of Darkness", "Ursula K. Le Guin", "Science Fiction", "good", true},
	{"alice", "Kafka on the Shore", "Haruki Murakami", "Fiction", "excellent", true},
	{"alice", "Dune", "Frank Herbert", "Science Fiction", "fair", false},
	{"bob", "The Pragmatic Programmer", "Andrew Hunt", "Technology", "good", true},
	{"bob", "A Wizard of Earthsea", "Ursula K. Le Guin", "Fantasy", "excellent", true},
	{"carol", "Beloved", "Toni Morrison", "Fiction", "good", true},
	{"carol", "The Name of the Wind", "Patrick Rothfuss", "Fantasy", "poor", true},
}

func main() {
	_ = godotenv.Load()

	dbURL := os.Getenv("DB_SOURCE")
	if dbURL == "" {
		log.Fatal("DB_SOURCE environment variable is required")
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	log.Println("--- Seeding Users ---")
	userIDs := map[string]uuid.UUID{}
	for _, u := range seedUsers {
		hash, err := utils.HashPassword(u.password)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", u.username, err)
		}
		id := uuid.New()
		_, err = conn.Exec(ctx,
			`INSERT INTO users (id, username, email, password_hash)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (username) DO NOTHING`,
			id, u.username, u.email, hash)
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", u.username, err)
		}
		var existing uuid.UUID
		if err := conn.QueryRow(ctx, `SELECT id FROM users WHERE username = $1`, u.username).Scan(&existing); err != nil {
			log.Fatalf("Failed to read back user %s: %v", u.username, err)
		}
		userIDs[u.username] = existing
		log.Printf("user %s ready (%s)", u.username, existing)
	}

	log.Println("--- Seeding Books ---")
	for _, b := range seedBooks {
		ownerID, ok := userIDs[b.owner]
		if !ok {
			log.Fatalf("Unknown owner %s for book %q", b.owner, b.title)
		}
		var exists bool
		err := conn.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM books WHERE owner_id = $1 AND title = $2)`,
			ownerID, b.title).Scan(&exists)
		if err != nil {
			log.Fatalf("Failed to check book %q: %v", b.title, err)
		}
		if exists {
			continue
		}
		_, err = conn.Exec(ctx,
			`INSERT INTO books (id, owner_id, title, author, genre, condition, is_listed)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New(), ownerID, b.title, b.author, b.genre, b.condition, b.listed)
		if err != nil {
			log.Fatalf("Failed to seed book %q: %v", b.title, err)
		}
		log.Printf("book %q seeded for %s", b.title, b.owner)
	}

	log.Println("Seeding done.")
}
