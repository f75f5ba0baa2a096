// Package events publishes backend domain events. Delivery is best effort:
// callers log publish failures and carry on.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	ProfileDeleted = "profile.deleted"
	WatchStarted   = "watch.started"
	AccountDeleted = "account.deleted"
)

type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	ProfileID int64     `json:"profile_id,omitempty"`
	TitleID   int64     `json:"title_id,omitempty"`
	At        time.Time `json:"at"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType, userID string) Event {
	return Event{
		ID:     uuid.NewString(),
		Type:   eventType,
		UserID: userID,
		At:     time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
