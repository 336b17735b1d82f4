package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unlinked/server/src/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type connectionFixture struct {
	service       *ConnectionService
	users         *fakeUserRepo
	requests      *fakeRequestRepo
	notifications *fakeNotificationRepo
	mailer        *fakeMailer
}

func newConnectionFixture() *connectionFixture {
	users := newFakeUserRepo()
	requests := newFakeRequestRepo()
	notifications := newFakeNotificationRepo()
	mailer := &fakeMailer{}

	service := NewConnectionService(
		requests, users,
		NewNotifier(notifications, testLogger()),
		mailer,
		"http://localhost:5173",
		testLogger(),
	)

	return &connectionFixture{
		service:       service,
		users:         users,
		requests:      requests,
		notifications: notifications,
		mailer:        mailer,
	}
}

func TestSendRequestCreatesPending(t *testing.T) {
	f := newConnectionFixture()
	alice := f.users.add("Alice", "alice")
	bob := f.users.add("Bob", "bob")

	request, err := f.service.SendRequest(context.Background(), alice, bob.Id)
	require.NoError(t, err)

	assert.Equal(t, alice.Id, request.Sender)
	assert.Equal(t, bob.Id, request.Recipient)
	assert.Equal(t, models.ConnectionStatusPending, request.Status)

	// Sending never touches connection sets or notifications.
	assert.Empty(t, f.notifications.notifications)
	stored, err := f.users.FindByID(context.Background(), bob.Id)
	require.NoError(t, err)
	assert.Empty(t, stored.Connections)
}

func TestSendRequestToSelf(t *testing.T) {
	f := newConnectionFixture()
	alice := f.users.add("Alice", "alice")

	_, err := f.service.SendRequest(context.Background(), alice, alice.Id)
	assert.ErrorIs(t, err, ErrSelfRequest)
}

func TestSendRequestAlreadyConnected(t *testing.T) {
	f := newConnectionFixture()
	alice := f.users.add("Alice", "alice")
	bob := f.users.add("Bob", "bob")
	alice.Connections = append(alice.Connections, bob.Id)

	_, err := f.service.SendRequest(context.Background(), alice, bob.Id)
	assert.ErrorIs(t, err, ErrAlreadyConnected)
}

func TestSendRequestDuplicatePending(t *testing.T) {
	f := newConnectionFixture()
	alice := f.users.add("Alice", "alice")
	bob := f.users.add("Bob", "bob")

	_, err := f.service.SendRequest(context.Background(), alice, bob.Id)
	require.NoError(t, err)

	_, err = f.service.SendRequest(context.Background(), alice, bob.Id)
	assert.ErrorIs(t, err, ErrDuplicateRequest)
}

func TestSendRequestAgainAfterRejection(t *testing.T) {
	f := newConnectionFixture()
	alice := f.users.add("Alice", "alice")
	bob := f.users.add("Bob", "bob")

	request, err := f.service.SendRequest(context.Background(), alice, bob.Id)
	require.NoError(t, err)
	require.NoError(t, f.service.RejectRequest(context.Background(), request.Id, bob))

	// Only pending requests block re-sending.
	_, err = f.service.SendRequest(context.Background(), alice, bob.Id)
	assert.NoError(t, err)
}

func TestAcceptRequestFullFlow(t *testing.T) {
	f := newConnectionFixture()
	alice := f.users.add("Alice", "alice")
	bob := f.users.add("Bob", "bob")

	request, err := f.service.SendRequest(context.Background(), alice, bob.Id)
	require.NoError(t, err)

	require.NoError(t, f.service.AcceptRequest(context.Background(), request.Id, bob))

	stored, err := f.requests.FindByID(context.Background(), request.Id)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusAccepted, stored.Status)

	// Each directory holds the other party's user id.
	storedAlice, err := f.users.FindByID(context.Background(), alice.Id)
	require.NoError(t, err)
	storedBob, err := f.users.FindByID(context.Background(), bob.Id)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{bob.Id}, storedAlice.Connections)
	assert.Equal(t, []primitive.ObjectID{alice.Id}, storedBob.Connections)

	// The sender gets exactly one acceptance notification, pointing at the
	// accepting user.
	aliceNotifications := f.notifications.byRecipient(alice.Id)
	require.Len(t, aliceNotifications, 1)
	assert.Equal(t, models.NotificationTypeConnectionAccepted, aliceNotifications[0].Type)
	assert.Equal(t, bob.Id, aliceNotifications[0].RelatedUser)
	assert.Empty(t, f.notifications.byRecipient(bob.Id))

	require.Len(t, f.mailer.jobs, 1)
	assert.Equal(t, "connection_accepted", f.mailer.jobs[0].kind)
	assert.Equal(t, alice.Email, f.mailer.jobs[0].to)
}

func TestAcceptRequestNotFound(t *testing.T) {
	f := newConnectionFixture()
	bob := f.users.add("Bob", "bob")

	err := f.service.AcceptRequest(context.Background(), primitive.NewObjectID(), bob)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestAcceptRequestWrongActor(t *testing.T) {
	f := newConnectionFixture()
	alice := f.users.add("Alice", "alice")
	bob := f.users.add("Bob", "bob")
	carol := f.users.add("Carol", "carol")

	request, err := f.service.SendRequest(context.Background(), alice, bob.Id)
	require.NoError(t, err)

	// Neither the sender nor a third party may act on the request.
	assert.ErrorIs(t, f.service.AcceptRequest(context.Background(), request.Id, alice), ErrNotRecipient)
	assert.ErrorIs(t, f.service.AcceptRequest(context.Background(), request.Id, carol), ErrNotRecipient)
}

func TestAcceptRequestWrongActorAfterProcessing(t *testing.T) {
	f := newConnectionFixture()
	alice := f.users.add("Alice", "alice")
	bob := f.users.add("Bob", "bob")
	carol := f.users.add("Carol", "carol")

	request, err := f.service.SendRequest(context.Background(), alice, bob.Id)
	require.NoError(t, err)
	require.NoError(t, f.service.AcceptRequest(context.Background(), request.Id, bob))

	// A foreign actor is rejected for authorization, not state.
	assert.ErrorIs(t, f.service.AcceptRequest(context.Background(), request.Id, carol), ErrNotRecipient)
}

func TestAcceptRequestAlreadyProcessed(t *testing.T) {
	f := newConnectionFixture()
	alice := f.users.add("Alice", "alice")
	bob := f.users.add("Bob", "bob")

	request, err := f.service.SendRequest(context.Background(), alice, bob.Id)
	require.NoError(t, err)
	require.NoError(t, f.service.AcceptRequest(context.Background(), request.Id, bob))

	assert.ErrorIs(t, f.service.AcceptRequest(context.Background(), request.Id, bob), ErrRequestProcessed)
	assert.ErrorIs(t, f.service.RejectRequest(context.Background(), request.Id, bob), ErrRequestProcessed)

	// The second attempt changed nothing: still one notification, one email,
	// one entry per connection set.
	assert.Len(t, f.notifications.byRecipient(alice.Id), 1)
	assert.Len(t, f.mailer.jobs, 1)
	storedBob, err := f.users.FindByID(context.Background(), bob.Id)
	require.NoError(t, err)
	assert.Len(t, storedBob.Connections, 1)
}

func TestRejectRequest(t *testing.T) {
	f := newConnectionFixture()
	alice := f.users.add("Alice", "alice")
	bob := f.users.add("Bob", "bob")

	request, err := f.service.SendRequest(context.Background(), alice, bob.Id)
	require.NoError(t, err)

	require.NoError(t, f.service.RejectRequest(context.Background(), request.Id, bob))

	stored, err := f.requests.FindByID(context.Background(), request.Id)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusRejected, stored.Status)

	// Rejection is silent: no connections, no notifications, no email.
	storedAlice, err := f.users.FindByID(context.Background(), alice.Id)
	require.NoError(t, err)
	assert.Empty(t, storedAlice.Connections)
	assert.Empty(t, f.notifications.notifications)
	assert.Empty(t, f.mailer.jobs)
}

func TestListIncomingRequests(t *testing.T) {
	f := newConnectionFixture()
	alice := f.users.add("Alice", "alice")
	bob := f.users.add("Bob", "bob")
	carol := f.users.add("Carol", "carol")

	_, err := f.service.SendRequest(context.Background(), alice, carol.Id)
	require.NoError(t, err)
	accepted, err := f.service.SendRequest(context.Background(), bob, carol.Id)
	require.NoError(t, err)
	require.NoError(t, f.service.AcceptRequest(context.Background(), accepted.Id, carol))

	incoming, err := f.service.ListIncomingRequests(context.Background(), carol.Id)
	require.NoError(t, err)

	// Only the still-pending request shows up, with the sender's profile.
	require.Len(t, incoming, 1)
	assert.Equal(t, alice.Id, incoming[0].Sender.ID)
	assert.Equal(t, "alice", incoming[0].Sender.Username)
	assert.Equal(t, models.ConnectionStatusPending, incoming[0].Status)
}

func TestListIncomingRequestsSkipsVanishedSender(t *testing.T) {
	f := newConnectionFixture()
	alice := f.users.add("Alice", "alice")
	bob := f.users.add("Bob", "bob")

	_, err := f.service.SendRequest(context.Background(), alice, bob.Id)
	require.NoError(t, err)
	delete(f.users.users, alice.Id)

	incoming, err := f.service.ListIncomingRequests(context.Background(), bob.Id)
	require.NoError(t, err)
	assert.Empty(t, incoming)
}

func TestListConnections(t *testing.T) {
	f := newConnectionFixture()
	alice := f.users.add("Alice", "alice")
	bob := f.users.add("Bob", "bob")

	request, err := f.service.SendRequest(context.Background(), alice, bob.Id)
	require.NoError(t, err)
	require.NoError(t, f.service.AcceptRequest(context.Background(), request.Id, bob))

	storedAlice, err := f.users.FindByID(context.Background(), alice.Id)
	require.NoError(t, err)

	connections, err := f.service.ListConnections(context.Background(), storedAlice)
	require.NoError(t, err)
	require.Len(t, connections, 1)
	assert.Equal(t, bob.Id, connections[0].ID)
	assert.Equal(t, "bob", connections[0].Username)
}

func TestRemoveConnection(t *testing.T) {
	f := newConnectionFixture()
	alice := f.users.add("Alice", "alice")
	bob := f.users.add("Bob", "bob")

	request, err := f.service.SendRequest(context.Background(), alice, bob.Id)
	require.NoError(t, err)
	require.NoError(t, f.service.AcceptRequest(context.Background(), request.Id, bob))

	require.NoError(t, f.service.RemoveConnection(context.Background(), alice.Id, bob.Id))

	storedAlice, err := f.users.FindByID(context.Background(), alice.Id)
	require.NoError(t, err)
	storedBob, err := f.users.FindByID(context.Background(), bob.Id)
	require.NoError(t, err)
	assert.Empty(t, storedAlice.Connections)
	assert.Empty(t, storedBob.Connections)

	// Removing again, or removing a connection that never existed, is a no-op.
	assert.NoError(t, f.service.RemoveConnection(context.Background(), alice.Id, bob.Id))
	assert.NoError(t, f.service.RemoveConnection(context.Background(), alice.Id, primitive.NewObjectID()))
}

func TestGetStatus(t *testing.T) {
	f := newConnectionFixture()
	alice := f.users.add("Alice", "alice")
	bob := f.users.add("Bob", "bob")
	carol := f.users.add("Carol", "carol")

	status, err := f.service.GetStatus(context.Background(), alice, carol.Id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNotConnected, status.Status)
	assert.Nil(t, status.RequestID)

	request, err := f.service.SendRequest(context.Background(), alice, bob.Id)
	require.NoError(t, err)

	// The sender sees pending, the recipient sees received with the id it
	// needs to accept or reject.
	status, err = f.service.GetStatus(context.Background(), alice, bob.Id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, status.Status)
	assert.Nil(t, status.RequestID)

	status, err = f.service.GetStatus(context.Background(), bob, alice.Id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReceived, status.Status)
	require.NotNil(t, status.RequestID)
	assert.Equal(t, request.Id, *status.RequestID)
}

func TestGetStatusConnected(t *testing.T) {
	f := newConnectionFixture()
	alice := f.users.add("Alice", "alice")
	bob := f.users.add("Bob", "bob")

	request, err := f.service.SendRequest(context.Background(), alice, bob.Id)
	require.NoError(t, err)
	require.NoError(t, f.service.AcceptRequest(context.Background(), request.Id, bob))

	storedAlice, err := f.users.FindByID(context.Background(), alice.Id)
	require.NoError(t, err)
	storedBob, err := f.users.FindByID(context.Background(), bob.Id)
	require.NoError(t, err)

	status, err := f.service.GetStatus(context.Background(), storedAlice, bob.Id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConnected, status.Status)

	status, err = f.service.GetStatus(context.Background(), storedBob, alice.Id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConnected, status.Status)
}
