package events

import (
	"time"

	"github.com/spec-kit/onboarding-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventApplicationSubmitted     EventType = "application_submitted"
	EventApplicationStatusChanged EventType = "application_status_changed"
	EventUserRegistered           EventType = "user_registered"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID *int64      `json:"user_id,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  int64       `json:"entity_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	Email       string `json:"email"`
	ProductType string `json:"product_type"`
}

// ApplicationStatusChangedPayload payload. The previous status is not
// carried; the update is a single statement that does not read it.
type ApplicationStatusChangedPayload struct {
	Status domain.ApplicationStatus `json:"status"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}
