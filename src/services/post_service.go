package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/unlinked/server/src/models"
	"github.com/unlinked/server/src/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostService covers the feed, post CRUD and the like/comment interactions
// with their notification fan-out.
type PostService struct {
	posts     repositories.PostRepository
	users     repositories.UserRepository
	notifier  *Notifier
	mailer    Mailer
	uploader  Uploader
	clientURL string
	log       *logrus.Entry
}

func NewPostService(
	posts repositories.PostRepository,
	users repositories.UserRepository,
	notifier *Notifier,
	mailer Mailer,
	uploader Uploader,
	clientURL string,
	log *logrus.Entry,
) *PostService {
	return &PostService{
		posts:     posts,
		users:     users,
		notifier:  notifier,
		mailer:    mailer,
		uploader:  uploader,
		clientURL: clientURL,
		log:       log,
	}
}

// GetFeed returns posts by the user and their connections, newest first.
func (s *PostService) GetFeed(ctx context.Context, user *models.User) ([]models.PostDto, error) {
	authors := append([]primitive.ObjectID{user.Id}, user.Connections...)

	posts, err := s.posts.FindByAuthors(ctx, authors)
	if err != nil {
		return nil, err
	}

	return s.resolvePosts(ctx, posts)
}

// CreatePost stores a new post; an attached image data URI goes to the blob
// store first and only its URL is persisted.
func (s *PostService) CreatePost(ctx context.Context, author *models.User, content, image string) (*models.PostDto, error) {
	post := &models.Post{
		Author:  author.Id,
		Content: content,
	}

	if image != "" {
		url, err := s.uploader.Upload(ctx, image)
		if err != nil {
			return nil, err
		}
		post.Image = url
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	dto := s.toDto(*created, map[primitive.ObjectID]models.UserDto{author.Id: author.ToDto()})
	return &dto, nil
}

// DeletePost removes a post and its stored image. Author-only.
func (s *PostService) DeletePost(ctx context.Context, postID primitive.ObjectID, actor *models.User) error {
	post, err := s.posts.FindByID(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		return err
	}

	if post.Author != actor.Id {
		return ErrNotAuthor
	}

	if post.Image != "" {
		if err := s.uploader.Remove(ctx, post.Image); err != nil {
			s.log.WithField("post", postID.Hex()).WithError(err).Error("failed to remove post image")
		}
	}

	return s.posts.Delete(ctx, postID)
}

// GetPost returns a single post with author and comment users resolved.
func (s *PostService) GetPost(ctx context.Context, postID primitive.ObjectID) (*models.PostDto, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolvePosts(ctx, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &resolved[0], nil
}

// CreateComment appends a comment. Commenting on someone else's post records
// a notification for the author and queues the comment email; commenting on
// your own post does neither.
func (s *PostService) CreateComment(ctx context.Context, postID primitive.ObjectID, actor *models.User, content string) (*models.PostDto, error) {
	if content == "" {
		return nil, ErrMissingFields
	}

	comment := models.Comment{
		Id:        primitive.NewObjectID(),
		Content:   content,
		User:      actor.Id,
		CreatedAt: time.Now().UTC(),
	}

	post, err := s.posts.AddComment(ctx, postID, comment)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	if post.Author != actor.Id {
		s.notifier.RecordBestEffort(ctx, post.Author, models.NotificationTypeComment, actor.Id, post.Id)

		author, err := s.users.FindByID(ctx, post.Author)
		if err != nil {
			s.log.WithField("author", post.Author.Hex()).WithError(err).Error("failed to resolve author for comment email")
		} else {
			postURL := fmt.Sprintf("%s/post/%s", s.clientURL, post.Id.Hex())
			s.mailer.QueueCommentEmail(author.Email, author.Name, actor.Name, postURL, content)
		}
	}

	resolved, err := s.resolvePosts(ctx, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &resolved[0], nil
}

// LikePost toggles the actor's like. A fresh like on someone else's post
// records a like notification; unliking records nothing.
func (s *PostService) LikePost(ctx context.Context, postID primitive.ObjectID, actor *models.User) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	if post.HasLike(actor.Id) {
		if err := s.posts.RemoveLike(ctx, postID, actor.Id); err != nil {
			return nil, err
		}
	} else {
		if err := s.posts.AddLike(ctx, postID, actor.Id); err != nil {
			return nil, err
		}
		if post.Author != actor.Id {
			s.notifier.RecordBestEffort(ctx, post.Author, models.NotificationTypeLike, actor.Id, post.Id)
		}
	}

	updated, err := s.posts.FindByID(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	return updated, err
}

// resolvePosts attaches minimal profiles for authors and comment users.
func (s *PostService) resolvePosts(ctx context.Context, posts []models.Post) ([]models.PostDto, error) {
	idSet := map[primitive.ObjectID]struct{}{}
	for _, post := range posts {
		idSet[post.Author] = struct{}{}
		for _, comment := range post.Comments {
			idSet[comment.User] = struct{}{}
		}
	}

	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := s.users.FindManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	usersByID := make(map[primitive.ObjectID]models.UserDto, len(users))
	for i := range users {
		usersByID[users[i].Id] = users[i].ToDto()
	}

	result := make([]models.PostDto, 0, len(posts))
	for _, post := range posts {
		result = append(result, s.toDto(post, usersByID))
	}
	return result, nil
}

func (s *PostService) toDto(post models.Post, usersByID map[primitive.ObjectID]models.UserDto) models.PostDto {
	comments := make([]models.CommentDto, 0, len(post.Comments))
	for _, comment := range post.Comments {
		comments = append(comments, models.CommentDto{
			ID:        comment.Id,
			Content:   comment.Content,
			User:      usersByID[comment.User],
			CreatedAt: comment.CreatedAt,
		})
	}

	return models.PostDto{
		ID:        post.Id,
		Author:    usersByID[post.Author],
		Content:   post.Content,
		Image:     post.Image,
		Likes:     post.Likes,
		Comments:  comments,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}
