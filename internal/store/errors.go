package store

import "errors"

// Command errors. Handlers map these onto HTTP statuses.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrWeakPassword       = errors.New("password must be at least 4 characters")
	ErrPasswordAlreadySet = errors.New("account already has a password")
	ErrUnknownUser        = errors.New("no such user")
	ErrUnknownRecipe      = errors.New("no such recipe")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrEmptyField         = errors.New("required field is empty")
)
