package main

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		username TEXT NOT NULL,
		full_name TEXT,
		bio TEXT,
		location TEXT,
		avatar_url TEXT,
		contact_email TEXT,
		contact_phone TEXT,
		contact_social TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id UUID PRIMARY KEY,
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		isbn TEXT,
		genre TEXT,
		description TEXT,
		condition TEXT NOT NULL CHECK (condition IN ('excellent', 'good', 'fair', 'poor')),
		photo_urls TEXT[] NOT NULL DEFAULT '{}',
		is_listed BOOLEAN NOT NULL DEFAULT false,
		contact_email TEXT,
		contact_phone TEXT,
		contact_social TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_books_owner ON books (owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_books_listed ON books (is_listed) WHERE is_listed`,
	`CREATE TABLE IF NOT EXISTS offers (
		id UUID PRIMARY KEY,
		requester_id UUID NOT NULL REFERENCES users(id),
		book_id UUID NOT NULL REFERENCES books(id),
		message TEXT NOT NULL,
		selected_candidates UUID[] NOT NULL DEFAULT '{}',
		status TEXT NOT NULL CHECK (status IN ('pending', 'candidates_selected', 'contact_revealed', 'completed', 'rejected', 'cancelled')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_offers_requester ON offers (requester_id)`,
	`CREATE INDEX IF NOT EXISTS idx_offers_book ON offers (book_id)`,
	`CREATE TABLE IF NOT EXISTS exchanges (
		id CHAR(26) PRIMARY KEY,
		offer_id UUID NOT NULL UNIQUE REFERENCES offers(id),
		requester_id UUID NOT NULL REFERENCES users(id),
		owner_id UUID NOT NULL REFERENCES users(id),
		requested_book_id UUID NOT NULL REFERENCES books(id),
		offered_book_id UUID NOT NULL REFERENCES books(id),
		requester_confirmed BOOLEAN NOT NULL DEFAULT false,
		owner_confirmed BOOLEAN NOT NULL DEFAULT false,
		completed_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_exchanges_requester ON exchanges (requester_id)`,
	`CREATE INDEX IF NOT EXISTS idx_exchanges_owner ON exchanges (owner_id)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id UUID PRIMARY KEY,
		offer_id UUID NOT NULL REFERENCES offers(id) ON DELETE CASCADE,
		sender_id UUID NOT NULL REFERENCES users(id),
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_offer ON messages (offer_id)`,
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

	log.Println("--- Applying Schema ---")
	for _, stmt := range statements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			log.Fatalf("Migration failed: %v\nstatement: %s", err, stmt)
		}
	}
	log.Println("Migration done.")
}
