package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

type User struct {
	ID          string
	Username    string
	DisplayName string
	IsAdmin     bool
	CreatedAt   time.Time

	// PasswordHash is the bcrypt hash of the user's password. It never
	// leaves the server.
	PasswordHash string
}
