package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/unlinked/server/src/models"
	"github.com/unlinked/server/src/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// In-memory repository fakes so services can be exercised without a store.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (r *fakeUserRepo) add(name, username string) *models.User {
	user := &models.User{
		Id:          primitive.NewObjectID(),
		Name:        name,
		Username:    username,
		Email:       username + "@example.com",
		Connections: []primitive.ObjectID{},
	}
	r.users[user.Id] = user
	return user
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.Id = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	if user.Connections == nil {
		user.Connections = []primitive.ObjectID{}
	}
	r.users[user.Id] = user
	return user, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	result := []models.User{}
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			result = append(result, *user)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) FindSuggestions(ctx context.Context, exclude []primitive.ObjectID, limit int64) ([]models.User, error) {
	excluded := map[primitive.ObjectID]bool{}
	for _, id := range exclude {
		excluded[id] = true
	}

	candidates := []models.User{}
	for _, user := range r.users {
		if !excluded[user.Id] {
			candidates = append(candidates, *user)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Username < candidates[j].Username
	})

	if int64(len(candidates)) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func (r *fakeUserRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	for key, value := range fields {
		switch key {
		case "name":
			user.Name = value.(string)
		case "username":
			user.Username = value.(string)
		case "headline":
			user.Headline = value.(string)
		case "about":
			user.About = value.(string)
		case "location":
			user.Location = value.(string)
		case "profilePicture":
			user.ProfilePicture = value.(string)
		case "bannerImg":
			user.BannerImg = value.(string)
		case "skills":
			user.Skills = value.([]string)
		}
	}

	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) AddConnection(ctx context.Context, userID, otherID primitive.ObjectID) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	if !user.IsConnectedTo(otherID) {
		user.Connections = append(user.Connections, otherID)
	}
	return nil
}

func (r *fakeUserRepo) RemoveConnection(ctx context.Context, userID, otherID primitive.ObjectID) error {
	user, ok := r.users[userID]
	if !ok {
		return nil
	}
	filtered := user.Connections[:0]
	for _, id := range user.Connections {
		if id != otherID {
			filtered = append(filtered, id)
		}
	}
	user.Connections = filtered
	return nil
}

type fakeRequestRepo struct {
	requests map[primitive.ObjectID]*models.ConnectionRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[primitive.ObjectID]*models.ConnectionRequest{}}
}

func (r *fakeRequestRepo) Create(ctx context.Context, sender, recipient primitive.ObjectID) (*models.ConnectionRequest, error) {
	request := &models.ConnectionRequest{
		Id:        primitive.NewObjectID(),
		Sender:    sender,
		Recipient: recipient,
		Status:    models.ConnectionStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	request.UpdatedAt = request.CreatedAt
	r.requests[request.Id] = request
	return request, nil
}

func (r *fakeRequestRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ConnectionRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *request
	return &copied, nil
}

func (r *fakeRequestRepo) FindPendingDirected(ctx context.Context, sender, recipient primitive.ObjectID) (*models.ConnectionRequest, error) {
	for _, request := range r.requests {
		if request.Sender == sender && request.Recipient == recipient && request.Status == models.ConnectionStatusPending {
			copied := *request
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeRequestRepo) FindPendingBetween(ctx context.Context, a, b primitive.ObjectID) (*models.ConnectionRequest, error) {
	for _, request := range r.requests {
		samePair := (request.Sender == a && request.Recipient == b) || (request.Sender == b && request.Recipient == a)
		if samePair && request.Status == models.ConnectionStatusPending {
			copied := *request
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeRequestRepo) FindPendingByRecipient(ctx context.Context, recipient primitive.ObjectID) ([]models.ConnectionRequest, error) {
	result := []models.ConnectionRequest{}
	for _, request := range r.requests {
		if request.Recipient == recipient && request.Status == models.ConnectionStatusPending {
			result = append(result, *request)
		}
	}
	return result, nil
}

func (r *fakeRequestRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ConnectionStatus) error {
	request, ok := r.requests[id]
	if !ok {
		return repositories.ErrNotFound
	}
	request.Status = status
	request.UpdatedAt = time.Now().UTC()
	return nil
}

type fakeNotificationRepo struct {
	notifications []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	notification.Id = primitive.NewObjectID()
	notification.Read = false
	notification.CreatedAt = time.Now().UTC()
	notification.UpdatedAt = notification.CreatedAt
	r.notifications = append(r.notifications, notification)
	return notification, nil
}

func (r *fakeNotificationRepo) FindByRecipient(ctx context.Context, recipient primitive.ObjectID) ([]models.Notification, error) {
	result := []models.Notification{}
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].Recipient == recipient {
			result = append(result, *r.notifications[i])
		}
	}
	return result, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id, recipient primitive.ObjectID) (*models.Notification, error) {
	for _, notification := range r.notifications {
		if notification.Id == id && notification.Recipient == recipient {
			notification.Read = true
			copied := *notification
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeNotificationRepo) Delete(ctx context.Context, id, recipient primitive.ObjectID) error {
	filtered := r.notifications[:0]
	for _, notification := range r.notifications {
		if !(notification.Id == id && notification.Recipient == recipient) {
			filtered = append(filtered, notification)
		}
	}
	r.notifications = filtered
	return nil
}

func (r *fakeNotificationRepo) byRecipient(recipient primitive.ObjectID) []*models.Notification {
	result := []*models.Notification{}
	for _, notification := range r.notifications {
		if notification.Recipient == recipient {
			result = append(result, notification)
		}
	}
	return result
}

type fakePostRepo struct {
	posts map[primitive.ObjectID]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[primitive.ObjectID]*models.Post{}}
}

func (r *fakePostRepo) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	post.Id = primitive.NewObjectID()
	post.CreatedAt = time.Now().UTC()
	post.UpdatedAt = post.CreatedAt
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	r.posts[post.Id] = post
	return post, nil
}

func (r *fakePostRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (r *fakePostRepo) FindByAuthors(ctx context.Context, authors []primitive.ObjectID) ([]models.Post, error) {
	allowed := map[primitive.ObjectID]bool{}
	for _, id := range authors {
		allowed[id] = true
	}

	result := []models.Post{}
	for _, post := range r.posts {
		if allowed[post.Author] {
			result = append(result, *post)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakePostRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) (*models.Post, error) {
	post, ok := r.posts[postID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	post.Comments = append(post.Comments, comment)
	copied := *post
	return &copied, nil
}

func (r *fakePostRepo) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	post, ok := r.posts[postID]
	if !ok {
		return repositories.ErrNotFound
	}
	if !post.HasLike(userID) {
		post.Likes = append(post.Likes, userID)
	}
	return nil
}

func (r *fakePostRepo) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	post, ok := r.posts[postID]
	if !ok {
		return repositories.ErrNotFound
	}
	filtered := post.Likes[:0]
	for _, id := range post.Likes {
		if id != userID {
			filtered = append(filtered, id)
		}
	}
	post.Likes = filtered
	return nil
}

// fakeMailer records queued email jobs instead of sending them.
type fakeMailer struct {
	jobs []fakeMailJob
}

type fakeMailJob struct {
	kind string
	to   string
}

func (m *fakeMailer) QueueWelcomeEmail(email, name, profileURL string) {
	m.jobs = append(m.jobs, fakeMailJob{kind: "welcome", to: email})
}

func (m *fakeMailer) QueueConnectionAcceptedEmail(email, senderName, recipientName, profileURL string) {
	m.jobs = append(m.jobs, fakeMailJob{kind: "connection_accepted", to: email})
}

func (m *fakeMailer) QueueCommentEmail(email, recipientName, commenterName, postURL, comment string) {
	m.jobs = append(m.jobs, fakeMailJob{kind: "comment_notification", to: email})
}

// fakeUploader hands out deterministic URLs and records removals.
type fakeUploader struct {
	uploads int
	removed []string
}

func (u *fakeUploader) Upload(ctx context.Context, dataURI string) (string, error) {
	u.uploads++
	return fmt.Sprintf("https://cdn.test/media/%d.png", u.uploads), nil
}

func (u *fakeUploader) Remove(ctx context.Context, fileURL string) error {
	u.removed = append(u.removed, fileURL)
	return nil
}
