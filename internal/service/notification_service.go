package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"gatherly/internal/events"
	"gatherly/internal/models"
	"gatherly/internal/notifications"
	"gatherly/internal/observability"
	"gatherly/internal/repository"

	"gorm.io/gorm"
)

// NotificationService owns the notification lifecycle. It subscribes to the
// event bus: the persistent notification row is written in the emitting
// operation's transaction, and the Redis publish happens after commit as a
// best-effort delivery hint.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	notifier         *notifications.Notifier
	logger           *slog.Logger
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	notifier *notifications.Notifier,
	logger *slog.Logger,
) *NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationService{
		notificationRepo: notificationRepo,
		notifier:         notifier,
		logger:           logger,
	}
}

// Notify appends an unread notification for the owner using the given
// transaction handle.
func (s *NotificationService) Notify(ctx context.Context, tx *gorm.DB, ownerID uint, kind, payload string) (*models.Notification, error) {
	n := &models.Notification{
		UserID:  ownerID,
		Kind:    kind,
		Payload: payload,
	}
	if err := s.notificationRepo.WithTx(tx).Create(ctx, n); err != nil {
		return nil, err
	}
	observability.NotificationsTotal.WithLabelValues(kind).Inc()
	return n, nil
}

// ListFor returns the user's notifications, newest first, read or not.
func (s *NotificationService) ListFor(ctx context.Context, userID uint) ([]models.Notification, error) {
	return s.notificationRepo.ListFor(ctx, userID)
}

// MarkRead marks a notification as read. Only the owner can touch it; a
// notification owned by someone else looks exactly like a missing one.
// Marking an already-read notification succeeds.
func (s *NotificationService) MarkRead(ctx context.Context, actingUserID, notificationID uint) error {
	ok, err := s.notificationRepo.MarkRead(ctx, notificationID, actingUserID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Notification")
	}
	return nil
}

// translate maps a domain event onto the owner and content of the
// notification it produces. Events with no notification return ok=false.
func translate(ev events.Event) (ownerID uint, kind, payload string, ok bool) {
	switch ev.Kind {
	case events.KindFriendRequestCreated:
		return ev.TargetID, models.NotificationKindFriendRequest, "You received a new friend request", true
	case events.KindFriendRequestAccepted:
		return ev.TargetID, models.NotificationKindFriendAccepted, "Your friend request was accepted", true
	case events.KindMessageSent:
		return ev.TargetID, models.NotificationKindMessage, "You received a new message", true
	default:
		return 0, "", "", false
	}
}

// HandleInTx writes the notification row inside the emitting transaction,
// so a failed write rolls the whole operation back.
func (s *NotificationService) HandleInTx(ctx context.Context, tx *gorm.DB, ev events.Event) error {
	ownerID, kind, payload, ok := translate(ev)
	if !ok {
		return nil
	}
	_, err := s.Notify(ctx, tx, ownerID, kind, payload)
	return err
}

// HandleCommitted publishes a delivery hint to the owner's Redis channel.
// Failures are logged and counted, never surfaced: the row is durable.
func (s *NotificationService) HandleCommitted(ctx context.Context, ev events.Event) {
	ownerID, kind, payload, ok := translate(ev)
	if !ok {
		return
	}

	body, err := json.Marshal(map[string]any{
		"kind":     kind,
		"actor_id": ev.ActorID,
		"payload":  payload,
	})
	if err != nil {
		s.logger.Error("failed to encode notification hint", slog.String("error", err.Error()))
		return
	}

	if err := s.notifier.PublishUser(ctx, ownerID, string(body)); err != nil {
		observability.NotificationPublishDrops.Inc()
		s.logger.Warn("notification publish dropped",
			slog.Uint64("user_id", uint64(ownerID)),
			slog.String("kind", kind),
			slog.String("error", err.Error()),
		)
	}
}
