// Package events defines roster event payloads published to Kafka.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Action names the roster mutation carried by an event.
type Action string

const (
	ActionSignedUp     Action = "signed_up"
	ActionUnregistered Action = "unregistered"
)

// EventType is the header value attached to roster messages.
const EventType = "roster.changed"

// RosterChanged is emitted after a student joins or leaves an activity.
type RosterChanged struct {
	EventID          string    `json:"event_id"`
	Activity         string    `json:"activity"`
	Email            string    `json:"email"`
	Action           Action    `json:"action"`
	ParticipantCount int       `json:"participant_count"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// NewRosterChanged stamps a RosterChanged with a fresh event ID.
func NewRosterChanged(activity, email string, action Action, participantCount int, at time.Time) RosterChanged {
	return RosterChanged{
		EventID:          uuid.NewString(),
		Activity:         activity,
		Email:            email,
		Action:           action,
		ParticipantCount: participantCount,
		OccurredAt:       at.UTC(),
	}
}
