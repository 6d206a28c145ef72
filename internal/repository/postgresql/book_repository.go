package repository

import (
	"context"
	"errors"
	"fmt"

	entity "leafloop/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `id, owner_id, title, author, isbn, genre, description, condition,
               photo_urls, is_listed, contact_email, contact_phone, contact_social,
               created_at, updated_at`

type bookRepository struct {
	db *pgxpool.Pool
}

type BookRepository interface {
	Create(ctx context.Context, book *entity.Book) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Book, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Book, error)
	ListListedByOwner(ctx context.Context, ownerID uuid.UUID, exclude uuid.UUID) ([]entity.Book, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Book, error)
	Update(ctx context.Context, book *entity.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetListed(ctx context.Context, id uuid.UUID, listed bool) error
	Browse(ctx context.Context, viewerID uuid.UUID, filter entity.BrowseFilter) ([]entity.BookWithOwner, error)
}

func NewBookRepository(db *pgxpool.Pool) BookRepository {
	return &bookRepository{db: db}
}

func scanBook(row pgx.Row, b *entity.Book) error {
	return row.Scan(
		&b.ID, &b.OwnerID, &b.Title, &b.Author, &b.ISBN, &b.Genre, &b.Description,
		&b.Condition, &b.PhotoURLs, &b.IsListed, &b.ContactEmail, &b.ContactPhone,
		&b.ContactSocial, &b.CreatedAt, &b.UpdatedAt,
	)
}

func (r *bookRepository) Create(ctx context.Context, book *entity.Book) error {
	query := `
        INSERT INTO books (id, owner_id, title, author, isbn, genre, description, condition,
                           photo_urls, is_listed, contact_email, contact_phone, contact_social,
                           created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
    `
	_, err := r.db.Exec(ctx, query,
		book.ID, book.OwnerID, book.Title, book.Author, book.ISBN, book.Genre,
		book.Description, book.Condition, book.PhotoURLs, book.IsListed,
		book.ContactEmail, book.ContactPhone, book.ContactSocial,
	)
	return err
}

func (r *bookRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	var b entity.Book
	err := scanBook(r.db.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id), &b)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &b, err
}

func (r *bookRepository) queryBooks(ctx context.Context, query string, args ...any) ([]entity.Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []entity.Book
	for rows.Next() {
		var b entity.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *bookRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Book, error) {
	return r.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
}

// ListListedByOwner returns the owner's public books, optionally excluding
// one id (used for "more from this owner" on the book page).
func (r *bookRepository) ListListedByOwner(ctx context.Context, ownerID uuid.UUID, exclude uuid.UUID) ([]entity.Book, error) {
	return r.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books
         WHERE owner_id = $1 AND is_listed = true AND id <> $2
         ORDER BY created_at DESC`, ownerID, exclude)
}

func (r *bookRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ANY($1)`, ids)
}

func (r *bookRepository) Update(ctx context.Context, book *entity.Book) error {
	query := `
        UPDATE books
        SET title=$2, author=$3, isbn=$4, genre=$5, description=$6, condition=$7,
            photo_urls=$8, is_listed=$9, contact_email=$10, contact_phone=$11,
            contact_social=$12, updated_at=NOW()
        WHERE id=$1
    `
	_, err := r.db.Exec(ctx, query,
		book.ID, book.Title, book.Author, book.ISBN, book.Genre, book.Description,
		book.Condition, book.PhotoURLs, book.IsListed, book.ContactEmail,
		book.ContactPhone, book.ContactSocial,
	)
	return err
}

func (r *bookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	return err
}

func (r *bookRepository) SetListed(ctx context.Context, id uuid.UUID, listed bool) error {
	_, err := r.db.Exec(ctx,
		`UPDATE books SET is_listed = $2, updated_at = NOW() WHERE id = $1`, id, listed)
	return err
}

// Browse returns publicly listed books excluding the viewer's own, with
// the filter applied in SQL rather than on the client.
func (r *bookRepository) Browse(ctx context.Context, viewerID uuid.UUID, filter entity.BrowseFilter) ([]entity.BookWithOwner, error) {
	query := `
        SELECT b.id, b.owner_id, b.title, b.author, b.isbn, b.genre, b.description,
               b.condition, b.photo_urls, b.is_listed, b.contact_email, b.contact_phone,
               b.contact_social, b.created_at, b.updated_at,
               COALESCE(p.username, u.username), p.full_name, p.location, p.avatar_url
        FROM books b
        JOIN users u ON u.id = b.owner_id
        LEFT JOIN profiles p ON p.id = b.owner_id
        WHERE b.is_listed = true AND b.owner_id <> $1
    `
	args := []any{viewerID}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (b.title ILIKE $%d OR b.author ILIKE $%d OR COALESCE(p.username, u.username) ILIKE $%d)", n, n, n)
	}
	if filter.Genre != "" {
		args = append(args, filter.Genre)
		query += fmt.Sprintf(" AND b.genre = $%d", len(args))
	}
	if filter.Condition != "" {
		args = append(args, filter.Condition)
		query += fmt.Sprintf(" AND b.condition = $%d", len(args))
	}

	switch filter.SortBy {
	case "oldest":
		query += " ORDER BY b.created_at ASC"
	case "title":
		query += " ORDER BY b.title ASC"
	case "author":
		query += " ORDER BY b.author ASC"
	default:
		query += " ORDER BY b.created_at DESC"
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []entity.BookWithOwner
	for rows.Next() {
		var b entity.BookWithOwner
		err := rows.Scan(
			&b.ID, &b.OwnerID, &b.Title, &b.Author, &b.ISBN, &b.Genre, &b.Description,
			&b.Condition, &b.PhotoURLs, &b.IsListed, &b.ContactEmail, &b.ContactPhone,
			&b.ContactSocial, &b.CreatedAt, &b.UpdatedAt,
			&b.Owner.Username, &b.Owner.FullName, &b.Owner.Location, &b.Owner.AvatarURL,
		)
		if err != nil {
			return nil, err
		}
		b.Owner.ID = b.OwnerID
		books = append(books, b)
	}
	return books, rows.Err()
}
