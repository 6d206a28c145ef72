package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile shares its id with the auth identity. Rows are created lazily
// on first save; updates are last-writer-wins.
type Profile struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Username      string    `db:"username" json:"username"`
	FullName      *string   `db:"full_name" json:"full_name,omitempty"`
	Bio           *string   `db:"bio" json:"bio,omitempty"`
	Location      *string   `db:"location" json:"location,omitempty"`
	AvatarURL     *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	ContactEmail  *string   `db:"contact_email" json:"contact_email,omitempty"`
	ContactPhone  *string   `db:"contact_phone" json:"contact_phone,omitempty"`
	ContactSocial *string   `db:"contact_social" json:"contact_social,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

func (p *Profile) Contact() ContactInfo {
	return ContactInfo{Email: p.ContactEmail, Phone: p.ContactPhone, Social: p.ContactSocial}
}

// PublicProfile is the subset safe to show to any viewer. Contact fields
// are deliberately absent; those travel through ContactCard after reveal.
type PublicProfile struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  *string   `json:"full_name,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	Location  *string   `json:"location,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}

func (p *Profile) Public() PublicProfile {
	return PublicProfile{
		ID:        p.ID,
		Username:  p.Username,
		FullName:  p.FullName,
		Bio:       p.Bio,
		Location:  p.Location,
		AvatarURL: p.AvatarURL,
	}
}

type UpsertProfileInput struct {
	Username      string `json:"username" binding:"required"`
	FullName      string `json:"full_name"`
	Bio           string `json:"bio"`
	Location      string `json:"location"`
	AvatarURL     string `json:"avatar_url"`
	ContactEmail  string `json:"contact_email"`
	ContactPhone  string `json:"contact_phone"`
	ContactSocial string `json:"contact_social"`
}
