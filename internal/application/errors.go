package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrArticleNotFound    = errors.New("article not found")
	ErrForbidden          = errors.New("forbidden")
)

// ValidationError reports input that breaks a rule after normalization.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }
