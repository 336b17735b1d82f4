package services

import (
	"context"
	"errors"

	"github.com/unlinked/server/src/models"
	"github.com/unlinked/server/src/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationService serves a user's own notifications.
type NotificationService struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	posts         repositories.PostRepository
}

func NewNotificationService(
	notifications repositories.NotificationRepository,
	users repositories.UserRepository,
	posts repositories.PostRepository,
) *NotificationService {
	return &NotificationService{notifications: notifications, users: users, posts: posts}
}

// List returns the user's notifications newest first, with the related user
// and post resolved. Related records that no longer exist are left nil.
func (s *NotificationService) List(ctx context.Context, userID primitive.ObjectID) ([]models.NotificationDto, error) {
	notifications, err := s.notifications.FindByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]primitive.ObjectID, 0, len(notifications))
	for _, n := range notifications {
		if !n.RelatedUser.IsZero() {
			userIDs = append(userIDs, n.RelatedUser)
		}
	}

	users, err := s.users.FindManyByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	usersByID := make(map[primitive.ObjectID]models.UserDto, len(users))
	for i := range users {
		usersByID[users[i].Id] = users[i].ToDto()
	}

	result := make([]models.NotificationDto, 0, len(notifications))
	for _, n := range notifications {
		dto := models.NotificationDto{
			ID:        n.Id,
			Type:      n.Type,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}

		if user, ok := usersByID[n.RelatedUser]; ok {
			dto.RelatedUser = &user
		}

		if !n.RelatedPost.IsZero() {
			if post, err := s.posts.FindByID(ctx, n.RelatedPost); err == nil {
				dto.RelatedPost = &models.NotificationPostRef{
					ID:      post.Id,
					Content: post.Content,
					Image:   post.Image,
				}
			}
		}

		result = append(result, dto)
	}

	return result, nil
}

// MarkRead flags one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID primitive.ObjectID) (*models.Notification, error) {
	notification, err := s.notifications.MarkRead(ctx, id, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotificationNotFound
	}
	return notification, err
}

// Delete removes one of the user's notifications. Deleting an unknown or
// foreign notification is a no-op.
func (s *NotificationService) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	return s.notifications.Delete(ctx, id, userID)
}
