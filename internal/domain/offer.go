package entity

import (
	"time"

	"github.com/google/uuid"
)

type OfferStatus string

const (
	OfferPending            OfferStatus = "pending"
	OfferCandidatesSelected OfferStatus = "candidates_selected"
	OfferContactRevealed    OfferStatus = "contact_revealed"
	OfferCompleted          OfferStatus = "completed"
	OfferRejected           OfferStatus = "rejected"
	OfferCancelled          OfferStatus = "cancelled"
)

// offerTransitions holds the directed edges of the trade workflow.
// Terminal statuses have no outgoing edges.
var offerTransitions = map[OfferStatus][]OfferStatus{
	OfferPending:            {OfferCandidatesSelected, OfferRejected, OfferCancelled},
	OfferCandidatesSelected: {OfferContactRevealed, OfferRejected, OfferCancelled},
	OfferContactRevealed:    {OfferCompleted},
	OfferCompleted:          {},
	OfferRejected:           {},
	OfferCancelled:          {},
}

func (s OfferStatus) Valid() bool {
	_, ok := offerTransitions[s]
	return ok
}

func (s OfferStatus) Terminal() bool {
	next, ok := offerTransitions[s]
	return ok && len(next) == 0
}

func (s OfferStatus) CanTransitionTo(next OfferStatus) bool {
	for _, n := range offerTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// ContactVisible reports whether contact information may be shown to
// either party at this status.
func (s OfferStatus) ContactVisible() bool {
	return s == OfferContactRevealed || s == OfferCompleted
}

type Offer struct {
	ID                 uuid.UUID   `db:"id" json:"id"`
	RequesterID        uuid.UUID   `db:"requester_id" json:"requester_id"`
	BookID             uuid.UUID   `db:"book_id" json:"book_id"`
	Message            string      `db:"message" json:"message"`
	SelectedCandidates []uuid.UUID `db:"selected_candidates" json:"selected_candidates"`
	Status             OfferStatus `db:"status" json:"status"`
	CreatedAt          time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time   `db:"updated_at" json:"updated_at"`
}

// SelectedBookID returns the single candidate chosen by the owner, once
// the set has been narrowed.
func (o *Offer) SelectedBookID() (uuid.UUID, bool) {
	if o.Status == OfferPending || len(o.SelectedCandidates) != 1 {
		return uuid.Nil, false
	}
	return o.SelectedCandidates[0], true
}

// OfferRole identifies which side of a trade the viewer is on. The owner
// is the target book's owner; the requester created the offer.
type OfferRole string

const (
	RoleOwner     OfferRole = "owner"
	RoleRequester OfferRole = "requester"
)

type CreateOfferInput struct {
	BookID       uuid.UUID   `json:"book_id" binding:"required"`
	Message      string      `json:"message" binding:"required"`
	CandidateIDs []uuid.UUID `json:"candidate_ids"`
}

type SelectCandidateInput struct {
	BookID uuid.UUID `json:"book_id"`
}

// ContactInfo is the per-book contact channel disclosed after reveal.
type ContactInfo struct {
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Social *string `json:"social,omitempty"`
}

// ContactCard pairs the other party's display profile with the contact
// channel for the specific book in play.
type ContactCard struct {
	Person  PublicProfile `json:"person"`
	Contact ContactInfo   `json:"contact"`
}

// OfferSummary is a list row: the offer plus display data for the target
// book and the counterparty.
type OfferSummary struct {
	Offer
	Book      BookSummary   `json:"book"`
	OtherUser PublicProfile `json:"other_user"`
}

// OfferView is the full aggregate served for a single offer page.
// Contact is nil until the workflow reaches a revealed status.
type OfferView struct {
	Offer
	Role           OfferRole     `json:"role"`
	Book           Book          `json:"book"`
	Owner          PublicProfile `json:"owner"`
	Requester      PublicProfile `json:"requester"`
	CandidateBooks []Book        `json:"candidate_books"`
	SelectedBook   *Book         `json:"selected_book,omitempty"`
	Contact        *ContactCard  `json:"contact,omitempty"`
}
