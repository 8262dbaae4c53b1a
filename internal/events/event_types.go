package events

import (
	"time"

	"github.com/spec-kit/eats-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountCreated EventType = "account_created"
	EventProfileUpdated EventType = "profile_updated"
	EventEmailVerified  EventType = "email_verified"
)

// Event represents an account lifecycle event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccountCreatedPayload payload.
type AccountCreatedPayload struct {
	Email string          `json:"email"`
	Role  domain.UserRole `json:"role"`
}

// ProfileUpdatedPayload payload.
type ProfileUpdatedPayload struct {
	EmailChanged    bool `json:"email_changed"`
	PasswordChanged bool `json:"password_changed"`
}

// EmailVerifiedPayload payload.
type EmailVerifiedPayload struct {
	Code string `json:"code"`
}
