package repository

import (
	"context"
	"errors"

	entity "leafloop/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepository struct {
	db *pgxpool.Pool
}

type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	Upsert(ctx context.Context, profile *entity.Profile) error
}

func NewProfileRepository(db *pgxpool.Pool) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var p entity.Profile
	query := `
        SELECT id, username, full_name, bio, location, avatar_url,
               contact_email, contact_phone, contact_social, created_at, updated_at
        FROM profiles WHERE id = $1
    `
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Username, &p.FullName, &p.Bio, &p.Location, &p.AvatarURL,
		&p.ContactEmail, &p.ContactPhone, &p.ContactSocial, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &p, err
}

// Upsert inserts the row on first save and overwrites it afterwards.
// Last writer wins; there is no version column.
func (r *profileRepository) Upsert(ctx context.Context, profile *entity.Profile) error {
	query := `
        INSERT INTO profiles (id, username, full_name, bio, location, avatar_url,
                              contact_email, contact_phone, contact_social, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
        ON CONFLICT (id) DO UPDATE SET
            username = EXCLUDED.username,
            full_name = EXCLUDED.full_name,
            bio = EXCLUDED.bio,
            location = EXCLUDED.location,
            avatar_url = EXCLUDED.avatar_url,
            contact_email = EXCLUDED.contact_email,
            contact_phone = EXCLUDED.contact_phone,
            contact_social = EXCLUDED.contact_social,
            updated_at = NOW()
    `
	_, err := r.db.Exec(ctx, query,
		profile.ID, profile.Username, profile.FullName, profile.Bio, profile.Location,
		profile.AvatarURL, profile.ContactEmail, profile.ContactPhone, profile.ContactSocial,
	)
	return err
}
