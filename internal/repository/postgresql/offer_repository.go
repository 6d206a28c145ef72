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

// ErrStaleState is returned when a guarded update finds the offer in a
// different status than the caller observed. Two parties racing on the
// same offer lose cleanly instead of last-write-wins.
var ErrStaleState = errors.New("offer state changed")

const offerColumns = `id, requester_id, book_id, message, selected_candidates, status, created_at, updated_at`

type offerRepository struct {
	db *pgxpool.Pool
}

type OfferRepository interface {
	Create(ctx context.Context, offer *entity.Offer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error)
	ListIncoming(ctx context.Context, ownerID uuid.UUID) ([]entity.OfferSummary, error)
	ListOutgoing(ctx context.Context, requesterID uuid.UUID) ([]entity.OfferSummary, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OfferStatus) error
	SelectCandidate(ctx context.Context, id uuid.UUID, candidate uuid.UUID) error
	Complete(ctx context.Context, offer *entity.Offer, exchange *entity.Exchange) error
}

func NewOfferRepository(db *pgxpool.Pool) OfferRepository {
	return &offerRepository{db: db}
}

func scanOffer(row pgx.Row, o *entity.Offer) error {
	return row.Scan(
		&o.ID, &o.RequesterID, &o.BookID, &o.Message, &o.SelectedCandidates,
		&o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
}

func (r *offerRepository) Create(ctx context.Context, offer *entity.Offer) error {
	query := `
        INSERT INTO offers (id, requester_id, book_id, message, selected_candidates, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
    `
	_, err := r.db.Exec(ctx, query,
		offer.ID, offer.RequesterID, offer.BookID, offer.Message,
		offer.SelectedCandidates, offer.Status,
	)
	return err
}

func (r *offerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	var o entity.Offer
	err := scanOffer(r.db.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id), &o)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &o, err
}

const offerSummaryQuery = `
        SELECT o.id, o.requester_id, o.book_id, o.message, o.selected_candidates,
               o.status, o.created_at, o.updated_at,
               b.id, b.title, b.author, b.photo_urls,
               ou.id, COALESCE(op.username, ou.username), op.full_name, op.avatar_url
        FROM offers o
        JOIN books b ON b.id = o.book_id
`

func (r *offerRepository) querySummaries(ctx context.Context, query string, arg any) ([]entity.OfferSummary, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []entity.OfferSummary
	for rows.Next() {
		var s entity.OfferSummary
		err := rows.Scan(
			&s.ID, &s.RequesterID, &s.BookID, &s.Message, &s.SelectedCandidates,
			&s.Status, &s.CreatedAt, &s.UpdatedAt,
			&s.Book.ID, &s.Book.Title, &s.Book.Author, &s.Book.PhotoURLs,
			&s.OtherUser.ID, &s.OtherUser.Username, &s.OtherUser.FullName, &s.OtherUser.AvatarURL,
		)
		if err != nil {
			return nil, err
		}
		offers = append(offers, s)
	}
	return offers, rows.Err()
}

// ListIncoming returns offers made on the owner's books; the counterparty
// shown is the requester.
func (r *offerRepository) ListIncoming(ctx context.Context, ownerID uuid.UUID) ([]entity.OfferSummary, error) {
	query := offerSummaryQuery + `
        JOIN users ou ON ou.id = o.requester_id
        LEFT JOIN profiles op ON op.id = o.requester_id
        WHERE b.owner_id = $1
        ORDER BY o.created_at DESC
    `
	return r.querySummaries(ctx, query, ownerID)
}

// ListOutgoing returns offers the requester created; the counterparty
// shown is the book owner.
func (r *offerRepository) ListOutgoing(ctx context.Context, requesterID uuid.UUID) ([]entity.OfferSummary, error) {
	query := offerSummaryQuery + `
        JOIN users ou ON ou.id = b.owner_id
        LEFT JOIN profiles op ON op.id = b.owner_id
        WHERE o.requester_id = $1
        ORDER BY o.created_at DESC
    `
	return r.querySummaries(ctx, query, requesterID)
}

// UpdateStatus performs a compare-and-set: the row moves from -> to, or
// the call fails with ErrStaleState.
func (r *offerRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OfferStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE offers SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`,
		id, from, to)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStaleState
	}
	return nil
}

// SelectCandidate narrows the candidate set to the single chosen book and
// advances pending -> candidates_selected in one guarded write.
func (r *offerRepository) SelectCandidate(ctx context.Context, id uuid.UUID, candidate uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE offers
        SET status = $2, selected_candidates = $3, updated_at = NOW()
        WHERE id = $1 AND status = $4
    `, id, entity.OfferCandidatesSelected, []uuid.UUID{candidate}, entity.OfferPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStaleState
	}
	return nil
}

// Complete finalizes a trade in a single transaction: the offer row is
// locked and re-checked, the status moves to completed, the exchange row
// is inserted, and both books are delisted. Either everything lands or
// nothing does.
func (r *offerRepository) Complete(ctx context.Context, offer *entity.Offer, exchange *entity.Exchange) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return fmt.Errorf("tx begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	var status entity.OfferStatus
	err = tx.QueryRow(ctx, `SELECT status FROM offers WHERE id = $1 FOR UPDATE`, offer.ID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrStaleState
		}
		return fmt.Errorf("lock acquisition failed: %w", err)
	}
	if status != entity.OfferContactRevealed {
		return ErrStaleState
	}

	_, err = tx.Exec(ctx,
		`UPDATE offers SET status = $2, updated_at = NOW() WHERE id = $1`,
		offer.ID, entity.OfferCompleted)
	if err != nil {
		return fmt.Errorf("offer update failed: %w", err)
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO exchanges (id, offer_id, requester_id, owner_id, requested_book_id,
                               offered_book_id, requester_confirmed, owner_confirmed, completed_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, exchange.ID, exchange.OfferID, exchange.RequesterID, exchange.OwnerID,
		exchange.RequestedBookID, exchange.OfferedBookID,
		exchange.RequesterConfirmed, exchange.OwnerConfirmed, exchange.CompletedAt)
	if err != nil {
		return fmt.Errorf("exchange insert failed: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE books SET is_listed = false, updated_at = NOW() WHERE id = ANY($1)`,
		[]uuid.UUID{exchange.RequestedBookID, exchange.OfferedBookID})
	if err != nil {
		return fmt.Errorf("book delisting failed: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx commit failed: %w", err)
	}
	return nil
}
