package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is a note between the two parties of an offer. Plain rows, no
// delivery transport; clients poll the list endpoint.
type Message struct {
	ID        uuid.UUID `db:"id" json:"id"`
	OfferID   uuid.UUID `db:"offer_id" json:"offer_id"`
	SenderID  uuid.UUID `db:"sender_id" json:"sender_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type MessageView struct {
	Message
	Sender PublicProfile `json:"sender"`
}

type PostMessageInput struct {
	Content string `json:"content" binding:"required"`
}
