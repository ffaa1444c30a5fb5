// Package models defines the domain types shared by repositories,
// services and the HTTP layer.
package models

import "time"

// User is the stored account. Password holds the bcrypt hash, never the
// plaintext.
type User struct {
	ID        int64
	Email     string
	Password  string
	Name      string
	CreatedAt time.Time
}

// AuthUser is the authenticated identity carried forward after a
// successful credential or token validation. It never includes the
// password hash.
type AuthUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// AuthUserFromUser strips a stored account down to its identity.
func AuthUserFromUser(u *User) *AuthUser {
	return &AuthUser{ID: u.ID, Email: u.Email, Name: u.Name}
}
