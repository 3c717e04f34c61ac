package core

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is a directory entry backed by the users table.
type User struct {
	ID           int
	Email        string
	DisplayName  string
	PasswordHash string
	Role         Role
	Department   string
	IsActive     bool
	CreatedAt    time.Time
}

// CheckPassword verifies a plaintext password against the stored bcrypt
// hash. Used for both primary login and sensitive-area reauthentication.
func (u *User) CheckPassword(password string) bool {
	if password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UserService provides user lookup operations.
type UserService interface {
	// GetByEmail finds an active user by email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID returns a user by primary key.
	GetByID(ctx context.Context, userID int) (*User, error)

	// List returns the company directory ordered by display name.
	List(ctx context.Context) ([]User, error)
}
