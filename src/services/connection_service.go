package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/unlinked/server/src/models"
	"github.com/unlinked/server/src/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConnectionService orchestrates the connection-request lifecycle across the
// request store and the user directory, and fans out notifications and email
// on acceptance.
//
// The accept flow is an ordered sequence of independent writes, not a
// transaction: status first, then both connection sets, then the
// notification. A crash mid-flow can leave status=accepted with the
// directory not yet updated, never the other way around.
type ConnectionService struct {
	requests  repositories.ConnectionRequestRepository
	users     repositories.UserRepository
	notifier  *Notifier
	mailer    Mailer
	clientURL string
	log       *logrus.Entry
}

func NewConnectionService(
	requests repositories.ConnectionRequestRepository,
	users repositories.UserRepository,
	notifier *Notifier,
	mailer Mailer,
	clientURL string,
	log *logrus.Entry,
) *ConnectionService {
	return &ConnectionService{
		requests:  requests,
		users:     users,
		notifier:  notifier,
		mailer:    mailer,
		clientURL: clientURL,
		log:       log,
	}
}

// SendRequest creates a pending request from sender to recipientID. No
// notification is produced at creation; fan-out happens on acceptance only.
func (s *ConnectionService) SendRequest(ctx context.Context, sender *models.User, recipientID primitive.ObjectID) (*models.ConnectionRequest, error) {
	if sender.Id == recipientID {
		return nil, ErrSelfRequest
	}

	if sender.IsConnectedTo(recipientID) {
		return nil, ErrAlreadyConnected
	}

	_, err := s.requests.FindPendingDirected(ctx, sender.Id, recipientID)
	if err == nil {
		return nil, ErrDuplicateRequest
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	return s.requests.Create(ctx, sender.Id, recipientID)
}

// AcceptRequest moves a pending request to accepted, makes the connection
// mutual in both users' directories, records a connectionAccepted
// notification for the sender and queues the acceptance email. Only the
// request's recipient may accept.
func (s *ConnectionService) AcceptRequest(ctx context.Context, requestID primitive.ObjectID, actor *models.User) error {
	request, err := s.loadPendingFor(ctx, requestID, actor)
	if err != nil {
		return err
	}

	if err := s.requests.UpdateStatus(ctx, request.Id, models.ConnectionStatusAccepted); err != nil {
		return err
	}

	// Both directories get the other party's user id, so the relation is
	// symmetric in user ids.
	if err := s.users.AddConnection(ctx, request.Sender, request.Recipient); err != nil {
		return err
	}
	if err := s.users.AddConnection(ctx, request.Recipient, request.Sender); err != nil {
		return err
	}

	s.notifier.RecordBestEffort(ctx, request.Sender, models.NotificationTypeConnectionAccepted, actor.Id, primitive.NilObjectID)

	sender, err := s.users.FindByID(ctx, request.Sender)
	if err != nil {
		s.log.WithField("sender", request.Sender.Hex()).WithError(err).Error("failed to resolve sender for acceptance email")
		return nil
	}

	profileURL := fmt.Sprintf("%s/profile/%s", s.clientURL, actor.Username)
	s.mailer.QueueConnectionAcceptedEmail(sender.Email, sender.Name, actor.Name, profileURL)

	return nil
}

// RejectRequest moves a pending request to rejected. No notification, no
// directory mutation.
func (s *ConnectionService) RejectRequest(ctx context.Context, requestID primitive.ObjectID, actor *models.User) error {
	request, err := s.loadPendingFor(ctx, requestID, actor)
	if err != nil {
		return err
	}

	return s.requests.UpdateStatus(ctx, request.Id, models.ConnectionStatusRejected)
}

func (s *ConnectionService) loadPendingFor(ctx context.Context, requestID primitive.ObjectID, actor *models.User) (*models.ConnectionRequest, error) {
	request, err := s.requests.FindByID(ctx, requestID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}

	// Authorization is checked before state so a wrong actor always gets
	// 403, whatever the request's status.
	if request.Recipient != actor.Id {
		return nil, ErrNotRecipient
	}

	if request.Status != models.ConnectionStatusPending {
		return nil, ErrRequestProcessed
	}

	return request, nil
}

// ListIncomingRequests returns the user's pending requests with each
// sender's minimal profile attached.
func (s *ConnectionService) ListIncomingRequests(ctx context.Context, userID primitive.ObjectID) ([]models.ConnectionRequestDto, error) {
	requests, err := s.requests.FindPendingByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}

	senderIDs := make([]primitive.ObjectID, 0, len(requests))
	for _, request := range requests {
		senderIDs = append(senderIDs, request.Sender)
	}

	senders, err := s.users.FindManyByIDs(ctx, senderIDs)
	if err != nil {
		return nil, err
	}

	sendersByID := make(map[primitive.ObjectID]models.UserDto, len(senders))
	for i := range senders {
		sendersByID[senders[i].Id] = senders[i].ToDto()
	}

	result := make([]models.ConnectionRequestDto, 0, len(requests))
	for _, request := range requests {
		sender, ok := sendersByID[request.Sender]
		if !ok {
			continue
		}
		result = append(result, models.ConnectionRequestDto{
			ID:        request.Id,
			Sender:    sender,
			Recipient: request.Recipient,
			Status:    request.Status,
			CreatedAt: request.CreatedAt,
			UpdatedAt: request.UpdatedAt,
		})
	}

	return result, nil
}

// ListConnections resolves the user's connection set to profiles.
func (s *ConnectionService) ListConnections(ctx context.Context, user *models.User) ([]models.UserDto, error) {
	connections, err := s.users.FindManyByIDs(ctx, user.Connections)
	if err != nil {
		return nil, err
	}

	result := make([]models.UserDto, 0, len(connections))
	for i := range connections {
		result = append(result, connections[i].ToDto())
	}
	return result, nil
}

// RemoveConnection removes each user from the other's connection set.
// Removing a non-existent connection is a no-op, never an error.
func (s *ConnectionService) RemoveConnection(ctx context.Context, selfID, otherID primitive.ObjectID) error {
	if err := s.users.RemoveConnection(ctx, selfID, otherID); err != nil {
		return err
	}
	return s.users.RemoveConnection(ctx, otherID, selfID)
}

// ConnectionStatusResult is one user's view of the pair-wise relation.
// RequestID is set only for status "received".
type ConnectionStatusResult struct {
	Status    string              `json:"status"`
	RequestID *primitive.ObjectID `json:"requestId,omitempty"`
}

// GetStatus resolves, in order: connected, then a pending request in either
// direction (pending when self sent it, received with the request id when
// self is the recipient), then "not connected". Pure read.
func (s *ConnectionService) GetStatus(ctx context.Context, self *models.User, targetID primitive.ObjectID) (*ConnectionStatusResult, error) {
	if self.IsConnectedTo(targetID) {
		return &ConnectionStatusResult{Status: models.StatusConnected}, nil
	}

	pending, err := s.requests.FindPendingBetween(ctx, self.Id, targetID)
	if errors.Is(err, repositories.ErrNotFound) {
		return &ConnectionStatusResult{Status: models.StatusNotConnected}, nil
	}
	if err != nil {
		return nil, err
	}

	if pending.Sender == self.Id {
		return &ConnectionStatusResult{Status: models.StatusPending}, nil
	}
	return &ConnectionStatusResult{Status: models.StatusReceived, RequestID: &pending.Id}, nil
}
