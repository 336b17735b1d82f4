package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/unlinked/server/src/models"
	"github.com/unlinked/server/src/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	suggestionsLimit    = 3
	suggestionsCacheTTL = 5 * time.Minute
)

// UserService covers profile reads and updates plus connection suggestions.
type UserService struct {
	users    repositories.UserRepository
	uploader Uploader
	cache    *redis.Client // nil disables caching
	log      *logrus.Entry
}

func NewUserService(users repositories.UserRepository, uploader Uploader, cache *redis.Client, log *logrus.Entry) *UserService {
	return &UserService{users: users, uploader: uploader, cache: cache, log: log}
}

// GetSuggestions returns up to three users the caller is not yet connected
// to. Results are cached per user; cache failures degrade to a store read.
func (s *UserService) GetSuggestions(ctx context.Context, user *models.User) ([]models.UserDto, error) {
	cacheKey := fmt.Sprintf("suggestions:%s", user.Id.Hex())

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var suggestions []models.UserDto
			if err := json.Unmarshal([]byte(cached), &suggestions); err == nil {
				return suggestions, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.WithError(err).Warn("suggestions cache read failed")
		}
	}

	exclude := append([]primitive.ObjectID{user.Id}, user.Connections...)
	candidates, err := s.users.FindSuggestions(ctx, exclude, suggestionsLimit)
	if err != nil {
		return nil, err
	}

	suggestions := make([]models.UserDto, 0, len(candidates))
	for i := range candidates {
		suggestions = append(suggestions, candidates[i].ToDto())
	}

	if s.cache != nil {
		if payload, err := json.Marshal(suggestions); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, suggestionsCacheTTL).Err(); err != nil {
				s.log.WithError(err).Warn("suggestions cache write failed")
			}
		}
	}

	return suggestions, nil
}

// GetPublicProfile looks a user up by username.
func (s *UserService) GetPublicProfile(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// UpdateProfileInput carries the whitelisted profile fields. Nil means the
// field was absent from the request and stays untouched.
type UpdateProfileInput struct {
	Name           *string              `json:"name"`
	Username       *string              `json:"username"`
	Headline       *string              `json:"headline"`
	About          *string              `json:"about"`
	Location       *string              `json:"location"`
	Skills         *[]string            `json:"skills"`
	Experience     *[]models.Experience `json:"experience"`
	Education      *[]models.Education  `json:"education"`
	ProfilePicture *string              `json:"profilePicture"`
	BannerImg      *string              `json:"bannerImg"`
}

// UpdateProfile applies the given fields. Picture fields arriving as data
// URIs are pushed to the blob store and persisted as URLs.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, input UpdateProfileInput) (*models.User, error) {
	fields := map[string]interface{}{}

	setString := func(key string, value *string) {
		if value != nil {
			fields[key] = *value
		}
	}
	setString("name", input.Name)
	setString("username", input.Username)
	setString("headline", input.Headline)
	setString("about", input.About)
	setString("location", input.Location)

	if input.Skills != nil {
		fields["skills"] = *input.Skills
	}
	if input.Experience != nil {
		fields["experience"] = *input.Experience
	}
	if input.Education != nil {
		fields["education"] = *input.Education
	}

	if input.ProfilePicture != nil {
		url, err := s.storeImage(ctx, *input.ProfilePicture)
		if err != nil {
			return nil, err
		}
		fields["profilePicture"] = url
	}
	if input.BannerImg != nil {
		url, err := s.storeImage(ctx, *input.BannerImg)
		if err != nil {
			return nil, err
		}
		fields["bannerImg"] = url
	}

	if len(fields) == 0 {
		return user, nil
	}

	updated, err := s.users.UpdateFields(ctx, user.Id, fields)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return updated, err
}

func (s *UserService) storeImage(ctx context.Context, value string) (string, error) {
	// Already a URL (e.g. unchanged on resubmit): keep as is.
	if !strings.HasPrefix(value, "data:") {
		return value, nil
	}
	return s.uploader.Upload(ctx, value)
}
