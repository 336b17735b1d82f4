package repositories

import (
	"context"
	"errors"

	"github.com/unlinked/server/src/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository persists in-app notifications. MarkRead and Delete
// are scoped to the recipient so users cannot touch each other's records.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) (*models.Notification, error)
	FindByRecipient(ctx context.Context, recipient primitive.ObjectID) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, recipient primitive.ObjectID) (*models.Notification, error)
	Delete(ctx context.Context, id, recipient primitive.ObjectID) error
}

type mongoNotificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) NotificationRepository {
	return &mongoNotificationRepository{coll: db.Collection(notificationsCollection)}
}

func (r *mongoNotificationRepository) Create(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	notification.Id = primitive.NewObjectID()
	notification.Read = false
	notification.CreatedAt = now()
	notification.UpdatedAt = notification.CreatedAt

	if _, err := r.coll.InsertOne(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (r *mongoNotificationRepository) FindByRecipient(ctx context.Context, recipient primitive.ObjectID) ([]models.Notification, error) {
	cursor, err := r.coll.Find(ctx,
		bson.M{"recipient": recipient},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *mongoNotificationRepository) MarkRead(ctx context.Context, id, recipient primitive.ObjectID) (*models.Notification, error) {
	var notification models.Notification
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "recipient": recipient},
		bson.M{"$set": bson.M{"read": true, "updatedAt": now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&notification)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *mongoNotificationRepository) Delete(ctx context.Context, id, recipient primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "recipient": recipient})
	return err
}
