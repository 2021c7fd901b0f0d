package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

var (
	ErrDuplicateUser = errors.New("username or email already registered")
	ErrInvalidEmail  = errors.New("invalid email")
)

// User is a registered manager. Credentials are stored as a bcrypt hash.
type User struct {
	ID             string
	Username       string
	Email          string
	PasswordHash   string
	FavoriteTeamID string
	CreatedAt      time.Time
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidEmail, u.Email)
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	return nil
}

// NormalizeEmail lowercases and trims an address for uniqueness checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
