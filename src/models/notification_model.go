package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notification struct {
	Id          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Recipient   primitive.ObjectID `json:"recipient" bson:"recipient"`
	Type        NotificationType   `json:"type" bson:"type"`
	RelatedUser primitive.ObjectID `json:"relatedUser,omitempty" bson:"relatedUser,omitempty"`
	RelatedPost primitive.ObjectID `json:"relatedPost,omitempty" bson:"relatedPost,omitempty"`
	Read        bool               `json:"read" bson:"read"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type NotificationType string

const (
	NotificationTypeLike               NotificationType = "like"
	NotificationTypeComment            NotificationType = "comment"
	NotificationTypeConnectionAccepted NotificationType = "connectionAccepted"
)

// NotificationDto carries a notification with its related records resolved.
type NotificationDto struct {
	ID          primitive.ObjectID   `json:"_id"`
	Type        NotificationType     `json:"type"`
	RelatedUser *UserDto             `json:"relatedUser,omitempty"`
	RelatedPost *NotificationPostRef `json:"relatedPost,omitempty"`
	Read        bool                 `json:"read"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// NotificationPostRef is the post snippet shown inside a notification.
type NotificationPostRef struct {
	ID      primitive.ObjectID `json:"_id"`
	Content string             `json:"content,omitempty"`
	Image   string             `json:"image,omitempty"`
}
