package service

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"gatherly/internal/events"
	"gatherly/internal/identity"
	"gatherly/internal/models"
	"gatherly/internal/notifications"
	"gatherly/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.Message{},
		&models.Notification{},
		&models.Event{},
		&models.WishlistEvent{},
		&models.AttendedEvent{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Username: name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hashed",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", name, err)
	}
	return user
}

// testStack wires real repositories, the event bus, and the notification
// subscriber against an in-memory database, the same shape main() builds.
type testStack struct {
	db            *gorm.DB
	bus           *events.Bus
	friends       *FriendService
	messages      *MessageService
	notifications *NotificationService
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	db := setupTestDB(t)

	bus := events.NewBus(slog.Default())
	notificationSvc := NewNotificationService(
		repository.NewNotificationRepository(db),
		notifications.NewNotifier(nil),
		slog.Default(),
	)
	bus.Subscribe(notificationSvc)

	return &testStack{
		db:  db,
		bus: bus,
		friends: NewFriendService(
			db,
			repository.NewFriendRequestRepository(db),
			repository.NewFriendshipRepository(db),
			repository.NewUserRepository(db),
			bus,
		),
		messages: NewMessageService(
			db,
			repository.NewMessageRepository(db),
			repository.NewUserRepository(db),
			bus,
		),
		notifications: notificationSvc,
	}
}

// failingSubscriber forces the transactional phase to fail.
type failingSubscriber struct{ err error }

func (f failingSubscriber) HandleInTx(context.Context, *gorm.DB, events.Event) error { return f.err }
func (f failingSubscriber) HandleCommitted(context.Context, events.Event)            {}

// stubVerifier satisfies identity.Verifier for Google login tests.
type stubVerifier struct {
	ident *identity.Identity
	err   error
}

func (s stubVerifier) Verify(context.Context, string) (*identity.Identity, error) {
	return s.ident, s.err
}
