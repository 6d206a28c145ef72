package repository

import (
	"context"
	"errors"

	entity "leafloop/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type exchangeRepository struct {
	db *pgxpool.Pool
}

type ExchangeRepository interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.ExchangeView, error)
	GetByOfferID(ctx context.Context, offerID uuid.UUID) (*entity.Exchange, error)
}

func NewExchangeRepository(db *pgxpool.Pool) ExchangeRepository {
	return &exchangeRepository{db: db}
}

// ListForUser returns the ledger rows where the caller was either side of
// the trade, newest first, with display data for both books and parties.
func (r *exchangeRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.ExchangeView, error) {
	query := `
        SELECT e.id, e.offer_id, e.requester_id, e.owner_id, e.requested_book_id,
               e.offered_book_id, e.requester_confirmed, e.owner_confirmed, e.completed_at,
               o.message,
               rb.id, rb.title, rb.author, rb.photo_urls,
               ob.id, ob.title, ob.author, ob.photo_urls,
               COALESCE(rp.username, ru.username), rp.full_name, rp.avatar_url,
               COALESCE(op.username, ou.username), op.full_name, op.avatar_url
        FROM exchanges e
        JOIN offers o ON o.id = e.offer_id
        JOIN books rb ON rb.id = e.requested_book_id
        JOIN books ob ON ob.id = e.offered_book_id
        JOIN users ru ON ru.id = e.requester_id
        JOIN users ou ON ou.id = e.owner_id
        LEFT JOIN profiles rp ON rp.id = e.requester_id
        LEFT JOIN profiles op ON op.id = e.owner_id
        WHERE e.requester_id = $1 OR e.owner_id = $1
        ORDER BY e.completed_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []entity.ExchangeView
	for rows.Next() {
		var v entity.ExchangeView
		err := rows.Scan(
			&v.ID, &v.OfferID, &v.RequesterID, &v.OwnerID, &v.RequestedBookID,
			&v.OfferedBookID, &v.RequesterConfirmed, &v.OwnerConfirmed, &v.CompletedAt,
			&v.Message,
			&v.RequestedBook.ID, &v.RequestedBook.Title, &v.RequestedBook.Author, &v.RequestedBook.PhotoURLs,
			&v.OfferedBook.ID, &v.OfferedBook.Title, &v.OfferedBook.Author, &v.OfferedBook.PhotoURLs,
			&v.RequesterProfile.Username, &v.RequesterProfile.FullName, &v.RequesterProfile.AvatarURL,
			&v.OwnerProfile.Username, &v.OwnerProfile.FullName, &v.OwnerProfile.AvatarURL,
		)
		if err != nil {
			return nil, err
		}
		v.RequesterProfile.ID = v.RequesterID
		v.OwnerProfile.ID = v.OwnerID
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *exchangeRepository) GetByOfferID(ctx context.Context, offerID uuid.UUID) (*entity.Exchange, error) {
	var e entity.Exchange
	query := `
        SELECT id, offer_id, requester_id, owner_id, requested_book_id, offered_book_id,
               requester_confirmed, owner_confirmed, completed_at
        FROM exchanges WHERE offer_id = $1
    `
	err := r.db.QueryRow(ctx, query, offerID).Scan(
		&e.ID, &e.OfferID, &e.RequesterID, &e.OwnerID, &e.RequestedBookID,
		&e.OfferedBookID, &e.RequesterConfirmed, &e.OwnerConfirmed, &e.CompletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &e, err
}
