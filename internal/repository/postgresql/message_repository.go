package repository

import (
	"context"

	entity "leafloop/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type messageRepository struct {
	db *pgxpool.Pool
}

type MessageRepository interface {
	Create(ctx context.Context, msg *entity.Message) error
	ListByOffer(ctx context.Context, offerID uuid.UUID) ([]entity.MessageView, error)
}

func NewMessageRepository(db *pgxpool.Pool) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *entity.Message) error {
	query := `
        INSERT INTO messages (id, offer_id, sender_id, content, created_at)
        VALUES ($1, $2, $3, $4, NOW())
    `
	_, err := r.db.Exec(ctx, query, msg.ID, msg.OfferID, msg.SenderID, msg.Content)
	return err
}

func (r *messageRepository) ListByOffer(ctx context.Context, offerID uuid.UUID) ([]entity.MessageView, error) {
	query := `
        SELECT m.id, m.offer_id, m.sender_id, m.content, m.created_at,
               COALESCE(p.username, u.username), p.full_name, p.avatar_url
        FROM messages m
        JOIN users u ON u.id = m.sender_id
        LEFT JOIN profiles p ON p.id = m.sender_id
        WHERE m.offer_id = $1
        ORDER BY m.created_at ASC
    `
	rows, err := r.db.Query(ctx, query, offerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []entity.MessageView
	for rows.Next() {
		var m entity.MessageView
		err := rows.Scan(
			&m.ID, &m.OfferID, &m.SenderID, &m.Content, &m.CreatedAt,
			&m.Sender.Username, &m.Sender.FullName, &m.Sender.AvatarURL,
		)
		if err != nil {
			return nil, err
		}
		m.Sender.ID = m.SenderID
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
