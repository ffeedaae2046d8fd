// Package events provides a small in-process event bus. Producers publish
// domain events from inside a database transaction; subscribers get two
// phases: an in-transaction phase whose writes commit or roll back with the
// producer's work, and a post-commit phase for best-effort side effects.
package events

import (
	"context"
	"log/slog"

	"gorm.io/gorm"
)

// Kind identifies a domain event type.
type Kind string

const (
	// KindFriendRequestCreated fires when a pending friend request is stored.
	KindFriendRequestCreated Kind = "friend_request.created"
	// KindFriendRequestAccepted fires when a request transitions to accepted.
	KindFriendRequestAccepted Kind = "friend_request.accepted"
	// KindMessageSent fires when a direct message is stored.
	KindMessageSent Kind = "message.sent"
)

// Event carries the facts subscribers need. ActorID is the user who caused
// the event; TargetID is the user it is addressed to.
type Event struct {
	Kind     Kind
	ActorID  uint
	TargetID uint
	Payload  map[string]any
}

// Subscriber reacts to published events.
//
// HandleInTx runs inside the producer's transaction; returning an error
// rolls the whole unit back. HandleCommitted runs after a successful commit
// and must not fail the operation, so it returns nothing.
type Subscriber interface {
	HandleInTx(ctx context.Context, tx *gorm.DB, ev Event) error
	HandleCommitted(ctx context.Context, ev Event)
}

// Bus dispatches events synchronously to registered subscribers in
// registration order.
type Bus struct {
	logger      *slog.Logger
	subscribers []Subscriber
}

// NewBus returns an empty bus.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{logger: logger}
}

// Subscribe registers a subscriber. Not safe for concurrent use with
// Publish; wire all subscribers during startup.
func (b *Bus) Subscribe(s Subscriber) {
	b.subscribers = append(b.subscribers, s)
}

// PublishInTx delivers the event to every subscriber's transactional phase.
// The first error aborts dispatch so the caller can roll back.
func (b *Bus) PublishInTx(ctx context.Context, tx *gorm.DB, ev Event) error {
	for _, s := range b.subscribers {
		if err := s.HandleInTx(ctx, tx, ev); err != nil {
			return err
		}
	}
	return nil
}

// PublishCommitted delivers the post-commit phase. Panics in a subscriber
// are contained so one misbehaving handler cannot take down the request.
func (b *Bus) PublishCommitted(ctx context.Context, ev Event) {
	for _, s := range b.subscribers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("event subscriber panicked",
						slog.String("kind", string(ev.Kind)),
						slog.Any("panic", r),
					)
				}
			}()
			s.HandleCommitted(ctx, ev)
		}()
	}
}
