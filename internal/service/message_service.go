package service

import (
	"context"
	"strings"

	"gatherly/internal/events"
	"gatherly/internal/models"
	"gatherly/internal/observability"
	"gatherly/internal/repository"

	"gorm.io/gorm"
)

// MessageService provides direct-message business logic.
type MessageService struct {
	db          *gorm.DB
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	bus         *events.Bus
}

// NewMessageService returns a new MessageService.
func NewMessageService(
	db *gorm.DB,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	bus *events.Bus,
) *MessageService {
	return &MessageService{
		db:          db,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		bus:         bus,
	}
}

// Send stores a direct message and notifies the receiver in the same
// transaction. Messaging does not require an existing friendship.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID uint, body string) (*models.Message, error) {
	ctx, span := observability.TraceServiceMethod(ctx, "MessageService", "Send")
	defer span.End()

	if senderID == receiverID {
		return nil, models.NewValidationError("Cannot send a message to yourself")
	}
	if strings.TrimSpace(body) == "" {
		return nil, models.NewValidationError("Message body cannot be empty")
	}
	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
	}
	ev := events.Event{
		Kind:     events.KindMessageSent,
		ActorID:  senderID,
		TargetID: receiverID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.messageRepo.WithTx(tx).Create(ctx, msg); err != nil {
			return err
		}
		return s.bus.PublishInTx(ctx, tx, ev)
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return nil, err
	}

	observability.MessagesSentTotal.Inc()
	s.bus.PublishCommitted(ctx, ev)
	return msg, nil
}

// Thread returns the full conversation between the user and the counterpart,
// oldest first. An unknown counterpart yields an empty thread, not an error.
func (s *MessageService) Thread(ctx context.Context, userID, counterpartID uint) ([]models.Message, error) {
	return s.messageRepo.Thread(ctx, userID, counterpartID)
}
