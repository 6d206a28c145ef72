package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusHistory is an audit document written for every offer transition.
type StatusHistory struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OfferID   string             `bson:"offer_id" json:"offer_id"`
	OldStatus string             `bson:"old_status" json:"old_status"`
	NewStatus string             `bson:"new_status" json:"new_status"`
	ChangedBy string             `bson:"changed_by" json:"changed_by"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
