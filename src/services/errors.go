package services

import "errors"

// Domain errors. Controllers translate these 1:1 to HTTP statuses; anything
// else coming out of a service is a store failure and becomes a 500.
var (
	// Validation -> 400
	ErrSelfRequest        = errors.New("you cannot send a connection request to yourself")
	ErrAlreadyConnected   = errors.New("you are already connected to this user")
	ErrDuplicateRequest   = errors.New("connection request already exists")
	ErrRequestProcessed   = errors.New("connection request already accepted or rejected")
	ErrMissingFields      = errors.New("all fields are required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Forbidden -> 403
	ErrNotRecipient = errors.New("not authorized to process this request")
	ErrNotAuthor    = errors.New("you are not authorized to delete this post")

	// NotFound -> 404
	ErrRequestNotFound      = errors.New("connection request not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrNotificationNotFound = errors.New("notification not found")
)
