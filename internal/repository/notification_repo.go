package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"alzmate/internal/model"
)

// NotificationRepo persists caregiver notifications
type NotificationRepo interface {
	Create(ctx context.Context, notification *model.Notification) (string, error)
}

type notificationRepo struct {
	collection *mongo.Collection
}

// NewNotificationRepo creates a new notification repository
func NewNotificationRepo(db *mongo.Database) NotificationRepo {
	return &notificationRepo{
		collection: db.Collection("notifications"),
	}
}

func (r *notificationRepo) Create(ctx context.Context, notification *model.Notification) (string, error) {
	notification.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, notification)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	notification.ID = oid.Hex()
	return notification.ID, nil
}
