package domain

import "time"

// User represents an authenticated account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasEmail reports whether the account can receive mail.
func (u *User) HasEmail() bool {
	return u != nil && u.Email != ""
}
