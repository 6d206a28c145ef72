package entity

import (
	"time"

	"github.com/google/uuid"
)

// Exchange is the append-only record created when an offer completes.
// IDs are ULIDs so ledger rows sort by creation time.
type Exchange struct {
	ID                 string    `db:"id" json:"id"`
	OfferID            uuid.UUID `db:"offer_id" json:"offer_id"`
	RequesterID        uuid.UUID `db:"requester_id" json:"requester_id"`
	OwnerID            uuid.UUID `db:"owner_id" json:"owner_id"`
	RequestedBookID    uuid.UUID `db:"requested_book_id" json:"requested_book_id"`
	OfferedBookID      uuid.UUID `db:"offered_book_id" json:"offered_book_id"`
	RequesterConfirmed bool      `db:"requester_confirmed" json:"requester_confirmed"`
	OwnerConfirmed     bool      `db:"owner_confirmed" json:"owner_confirmed"`
	CompletedAt        time.Time `db:"completed_at" json:"completed_at"`
}

// ExchangeView is a history row with display data for both books and the
// counterparty, from the caller's perspective.
type ExchangeView struct {
	Exchange
	Message          string        `json:"message"`
	RequestedBook    BookSummary   `json:"requested_book"`
	OfferedBook      BookSummary   `json:"offered_book"`
	RequesterProfile PublicProfile `json:"requester_profile"`
	OwnerProfile     PublicProfile `json:"owner_profile"`
}
