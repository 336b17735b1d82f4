package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/unlinked/server/src/models"
	"github.com/unlinked/server/src/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notifier records in-app notifications for state transitions. Email
// fan-out goes through the Mailer separately; a notification record never
// depends on email delivery.
type Notifier struct {
	notifications repositories.NotificationRepository
	log           *logrus.Entry
}

func NewNotifier(notifications repositories.NotificationRepository, log *logrus.Entry) *Notifier {
	return &Notifier{notifications: notifications, log: log}
}

// Record stores a notification for the recipient. relatedUser and
// relatedPost are optional and may be the zero ObjectID.
func (n *Notifier) Record(ctx context.Context, recipient primitive.ObjectID, kind models.NotificationType, relatedUser, relatedPost primitive.ObjectID) (*models.Notification, error) {
	notification := &models.Notification{
		Recipient:   recipient,
		Type:        kind,
		RelatedUser: relatedUser,
		RelatedPost: relatedPost,
	}
	return n.notifications.Create(ctx, notification)
}

// RecordBestEffort is Record for call sites where the notification is a
// side effect that must not fail the main operation.
func (n *Notifier) RecordBestEffort(ctx context.Context, recipient primitive.ObjectID, kind models.NotificationType, relatedUser, relatedPost primitive.ObjectID) {
	if _, err := n.Record(ctx, recipient, kind, relatedUser, relatedPost); err != nil {
		n.log.WithFields(logrus.Fields{
			"type":      kind,
			"recipient": recipient.Hex(),
		}).WithError(err).Error("failed to create notification")
	}
}
