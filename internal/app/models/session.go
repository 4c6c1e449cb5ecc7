package models

import "time"

// Session is the verified identity of the caller. It is passed explicitly to
// every service call that needs the current user.
type Session struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Role      string    `json:"role,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IdentityEvent is published when a user's identity changes.
type IdentityEvent struct {
	Type      IdentityEventType `json:"type"`
	UserID    string            `json:"userId"`
	Timestamp time.Time         `json:"timestamp"`
}

// IdentityEventType names an identity change.
type IdentityEventType string

const (
	IdentitySignedIn  IdentityEventType = "SIGNED_IN"
	IdentitySignedOut IdentityEventType = "SIGNED_OUT"
)
