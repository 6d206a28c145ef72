package mongodb

import (
	"context"
	"fmt"
	"time"

	entity "leafloop/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionStatus        = "status_history"
	CollectionNotifications = "notifications"
)

// LogRepository stores the offer transition audit trail and user
// notifications. Writes are best-effort; callers log and continue when
// they fail.
type LogRepository interface {
	SaveHistoryStatus(doc *entity.StatusHistory) error
	SaveNotification(doc *entity.Notification) error
	ListNotifications(userID string, limit int64) ([]entity.Notification, error)
}

type logRepository struct {
	status        *mongo.Collection
	notifications *mongo.Collection
}

func NewLogRepository(client *mongo.Client, dbName string) LogRepository {
	db := client.Database(dbName)
	return &logRepository{
		status:        db.Collection(CollectionStatus),
		notifications: db.Collection(CollectionNotifications),
	}
}

func (r *logRepository) SaveHistoryStatus(doc *entity.StatusHistory) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := r.status.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert status history: %w", err)
	}
	return nil
}

func (r *logRepository) SaveNotification(doc *entity.Notification) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := r.notifications.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (r *logRepository) ListNotifications(userID string, limit int64) ([]entity.Notification, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.notifications.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []entity.Notification
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return docs, nil
}
