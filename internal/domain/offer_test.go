package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOfferStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OfferStatus
		to      OfferStatus
		allowed bool
	}{
		{OfferPending, OfferCandidatesSelected, true},
		{OfferPending, OfferRejected, true},
		{OfferPending, OfferCancelled, true},
		{OfferPending, OfferContactRevealed, false},
		{OfferPending, OfferCompleted, false},
		{OfferCandidatesSelected, OfferContactRevealed, true},
		{OfferCandidatesSelected, OfferRejected, true},
		{OfferCandidatesSelected, OfferCancelled, true},
		{OfferCandidatesSelected, OfferCompleted, false},
		{OfferCandidatesSelected, OfferPending, false},
		{OfferContactRevealed, OfferCompleted, true},
		{OfferContactRevealed, OfferRejected, false},
		{OfferContactRevealed, OfferCancelled, false},
		{OfferCompleted, OfferRejected, false},
		{OfferRejected, OfferPending, false},
		{OfferCancelled, OfferCandidatesSelected, false},
	}

	for _, c := range cases {
		got := c.from.CanTransitionTo(c.to)
		assert.Equal(t, c.allowed, got, "%s -> %s", c.from, c.to)
	}
}

func TestOfferStatusTerminal(t *testing.T) {
	assert.False(t, OfferPending.Terminal())
	assert.False(t, OfferCandidatesSelected.Terminal())
	assert.False(t, OfferContactRevealed.Terminal())
	assert.True(t, OfferCompleted.Terminal())
	assert.True(t, OfferRejected.Terminal())
	assert.True(t, OfferCancelled.Terminal())
}

func TestOfferStatusValid(t *testing.T) {
	assert.True(t, OfferPending.Valid())
	assert.True(t, OfferCancelled.Valid())
	assert.False(t, OfferStatus("accepted").Valid())
	assert.False(t, OfferStatus("").Valid())
}

func TestContactVisible(t *testing.T) {
	assert.False(t, OfferPending.ContactVisible())
	assert.False(t, OfferCandidatesSelected.ContactVisible())
	assert.True(t, OfferContactRevealed.ContactVisible())
	assert.True(t, OfferCompleted.ContactVisible())
	assert.False(t, OfferRejected.ContactVisible())
	assert.False(t, OfferCancelled.ContactVisible())
}

func TestSelectedBookID(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	pending := &Offer{Status: OfferPending, SelectedCandidates: []uuid.UUID{a}}
	_, ok := pending.SelectedBookID()
	assert.False(t, ok, "pending offers have no chosen book even with one candidate")

	wide := &Offer{Status: OfferCandidatesSelected, SelectedCandidates: []uuid.UUID{a, b}}
	_, ok = wide.SelectedBookID()
	assert.False(t, ok)

	narrowed := &Offer{Status: OfferCandidatesSelected, SelectedCandidates: []uuid.UUID{b}}
	id, ok := narrowed.SelectedBookID()
	assert.True(t, ok)
	assert.Equal(t, b, id)
}
