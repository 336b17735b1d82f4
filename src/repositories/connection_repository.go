package repositories

import (
	"context"
	"errors"

	"github.com/unlinked/server/src/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ConnectionRequestRepository persists the request lifecycle records.
type ConnectionRequestRepository interface {
	Create(ctx context.Context, sender, recipient primitive.ObjectID) (*models.ConnectionRequest, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ConnectionRequest, error)
	// FindPendingDirected matches the exact sender -> recipient direction.
	FindPendingDirected(ctx context.Context, sender, recipient primitive.ObjectID) (*models.ConnectionRequest, error)
	// FindPendingBetween matches either direction of the pair.
	FindPendingBetween(ctx context.Context, a, b primitive.ObjectID) (*models.ConnectionRequest, error)
	FindPendingByRecipient(ctx context.Context, recipient primitive.ObjectID) ([]models.ConnectionRequest, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ConnectionStatus) error
}

type mongoConnectionRequestRepository struct {
	coll *mongo.Collection
}

func NewConnectionRequestRepository(db *mongo.Database) ConnectionRequestRepository {
	return &mongoConnectionRequestRepository{coll: db.Collection(requestsCollection)}
}

func (r *mongoConnectionRequestRepository) Create(ctx context.Context, sender, recipient primitive.ObjectID) (*models.ConnectionRequest, error) {
	request := &models.ConnectionRequest{
		Id:        primitive.NewObjectID(),
		Sender:    sender,
		Recipient: recipient,
		Status:    models.ConnectionStatusPending,
		CreatedAt: now(),
	}
	request.UpdatedAt = request.CreatedAt

	if _, err := r.coll.InsertOne(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (r *mongoConnectionRequestRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ConnectionRequest, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoConnectionRequestRepository) FindPendingDirected(ctx context.Context, sender, recipient primitive.ObjectID) (*models.ConnectionRequest, error) {
	return r.findOne(ctx, bson.M{
		"sender":    sender,
		"recipient": recipient,
		"status":    models.ConnectionStatusPending,
	})
}

func (r *mongoConnectionRequestRepository) FindPendingBetween(ctx context.Context, a, b primitive.ObjectID) (*models.ConnectionRequest, error) {
	return r.findOne(ctx, bson.M{
		"$or": bson.A{
			bson.M{"sender": a, "recipient": b},
			bson.M{"sender": b, "recipient": a},
		},
		"status": models.ConnectionStatusPending,
	})
}

func (r *mongoConnectionRequestRepository) findOne(ctx context.Context, filter bson.M) (*models.ConnectionRequest, error) {
	var request models.ConnectionRequest
	err := r.coll.FindOne(ctx, filter).Decode(&request)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *mongoConnectionRequestRepository) FindPendingByRecipient(ctx context.Context, recipient primitive.ObjectID) ([]models.ConnectionRequest, error) {
	cursor, err := r.coll.Find(ctx, bson.M{
		"recipient": recipient,
		"status":    models.ConnectionStatusPending,
	})
	if err != nil {
		return nil, err
	}

	requests := []models.ConnectionRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *mongoConnectionRequestRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ConnectionStatus) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": now()}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
