package repository

import "errors"

var (
	// ErrNotFound indicates the requested row or session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUsernameTaken indicates a unique violation on users.username.
	ErrUsernameTaken = errors.New("username already exists")
)
