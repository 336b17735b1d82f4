package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/unlinked/server/src/models"
	"github.com/unlinked/server/src/repositories"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 11

// AuthService handles registration and credential checks. Token issuing and
// cookies stay in the controller; this layer only owns users and passwords.
type AuthService struct {
	users     repositories.UserRepository
	mailer    Mailer
	clientURL string
	log       *logrus.Entry
}

func NewAuthService(users repositories.UserRepository, mailer Mailer, clientURL string, log *logrus.Entry) *AuthService {
	return &AuthService{users: users, mailer: mailer, clientURL: clientURL, log: log}
}

type SignupInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup validates the input, creates the user and queues the welcome email.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	if input.Name == "" || input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}
	if len(input.Password) < 6 {
		return nil, ErrPasswordTooShort
	}

	if err := s.checkAvailable(ctx, input); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &models.User{
		Name:     input.Name,
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashed),
		Headline: "Linkedin User",
	})
	if err != nil {
		return nil, err
	}

	profileURL := fmt.Sprintf("%s/profile/%s", s.clientURL, user.Username)
	s.mailer.QueueWelcomeEmail(user.Email, user.Name, profileURL)

	return user, nil
}

func (s *AuthService) checkAvailable(ctx context.Context, input SignupInput) error {
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	return nil
}

// Login checks the credentials and returns the user. Unknown username and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
