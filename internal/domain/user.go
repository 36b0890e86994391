// Package domain holds the core entities of the Re:view application.
package domain

import "time"

// Role defines a user's permission level.
type Role string

// User roles.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an account created through social login. There are no passwords;
// identity is anchored on (Provider, ProviderUserID).
type User struct {
	ID             string     `json:"id"` // 8-char public ID
	Provider       string     `json:"provider"`
	ProviderUserID string     `json:"-"`
	Nickname       string     `json:"nickname"`
	ProfileImage   string     `json:"profile_image,omitempty"`
	Role           Role       `json:"role"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
}

// NewUser creates a user from a social login profile.
func NewUser(id, provider, providerUserID, nickname, profileImage string) *User {
	now := time.Now()
	return &User{
		ID:             id,
		Provider:       provider,
		ProviderUserID: providerUserID,
		Nickname:       nickname,
		ProfileImage:   profileImage,
		Role:           RoleUser,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Touch updates the UpdatedAt timestamp.
func (u *User) Touch() {
	u.UpdatedAt = time.Now()
}

// MarkLogin records a successful login.
func (u *User) MarkLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
