package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ConditionExcellent = "excellent"
	ConditionGood      = "good"
	ConditionFair      = "fair"
	ConditionPoor      = "poor"
)

func ValidCondition(c string) bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

type Book struct {
	ID            uuid.UUID `db:"id" json:"id"`
	OwnerID       uuid.UUID `db:"owner_id" json:"owner_id"`
	Title         string    `db:"title" json:"title"`
	Author        string    `db:"author" json:"author"`
	ISBN          *string   `db:"isbn" json:"isbn,omitempty"`
	Genre         *string   `db:"genre" json:"genre,omitempty"`
	Description   *string   `db:"description" json:"description,omitempty"`
	Condition     string    `db:"condition" json:"condition"`
	PhotoURLs     []string  `db:"photo_urls" json:"photo_urls"`
	IsListed      bool      `db:"is_listed" json:"is_listed"`
	ContactEmail  *string   `db:"contact_email" json:"contact_email,omitempty"`
	ContactPhone  *string   `db:"contact_phone" json:"contact_phone,omitempty"`
	ContactSocial *string   `db:"contact_social" json:"contact_social,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Contact returns the book-level contact channel.
func (b *Book) Contact() ContactInfo {
	return ContactInfo{Email: b.ContactEmail, Phone: b.ContactPhone, Social: b.ContactSocial}
}

// BookSummary is the slim shape embedded in offer and exchange rows.
type BookSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Condition string    `json:"condition,omitempty"`
	PhotoURLs []string  `json:"photo_urls"`
}

func (b *Book) Summary() BookSummary {
	return BookSummary{ID: b.ID, Title: b.Title, Author: b.Author, Condition: b.Condition, PhotoURLs: b.PhotoURLs}
}

// BookWithOwner is a marketplace row: the book plus its owner's display profile.
type BookWithOwner struct {
	Book
	Owner PublicProfile `json:"owner"`
}

type CreateBookInput struct {
	Title         string `form:"title" binding:"required"`
	Author        string `form:"author" binding:"required"`
	ISBN          string `form:"isbn"`
	Genre         string `form:"genre"`
	Description   string `form:"description"`
	Condition     string `form:"condition" binding:"required"`
	IsListed      bool   `form:"is_listed"`
	ContactEmail  string `form:"contact_email"`
	ContactPhone  string `form:"contact_phone"`
	ContactSocial string `form:"contact_social"`
}

type UpdateBookInput struct {
	Title         string `json:"title" binding:"required"`
	Author        string `json:"author" binding:"required"`
	ISBN          string `json:"isbn"`
	Genre         string `json:"genre"`
	Description   string `json:"description"`
	Condition     string `json:"condition" binding:"required"`
	IsListed      bool   `json:"is_listed"`
	ContactEmail  string `json:"contact_email"`
	ContactPhone  string `json:"contact_phone"`
	ContactSocial string `json:"contact_social"`
}

type SetListingInput struct {
	IsListed bool `json:"is_listed"`
}

// BrowseFilter narrows the public marketplace listing. Zero values mean
// no filtering on that axis.
type BrowseFilter struct {
	Query     string `form:"q"`
	Genre     string `form:"genre"`
	Condition string `form:"condition"`
	SortBy    string `form:"sort"` // newest, oldest, title, author
}
