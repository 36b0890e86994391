package domain

import "time"

// Session is a refresh-token login session. The refresh token itself is
// opaque and stored only as a SHA-256 hash; rotation replaces the hash on
// every refresh.
type Session struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	RefreshTokenHash string    `json:"-"`
	DeviceName       string    `json:"device_name,omitempty"`
	IPAddress        string    `json:"ip_address,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	LastSeenAt       time.Time `json:"last_seen_at"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// NewSession creates a session for a user.
func NewSession(id, userID, refreshTokenHash, deviceName, ipAddress string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:               id,
		UserID:           userID,
		RefreshTokenHash: refreshTokenHash,
		DeviceName:       deviceName,
		IPAddress:        ipAddress,
		CreatedAt:        now,
		LastSeenAt:       now,
		ExpiresAt:        now.Add(ttl),
	}
}

// IsExpired returns true if the session is past its expiry.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Rotate replaces the refresh token hash and extends the session.
func (s *Session) Rotate(newHash string, ttl time.Duration) {
	now := time.Now()
	s.RefreshTokenHash = newHash
	s.LastSeenAt = now
	s.ExpiresAt = now.Add(ttl)
}
