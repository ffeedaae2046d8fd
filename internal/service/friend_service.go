// Package service implements the business logic on top of the repositories.
package service

import (
	"context"

	"gatherly/internal/events"
	"gatherly/internal/models"
	"gatherly/internal/observability"
	"gatherly/internal/repository"

	"gorm.io/gorm"
)

// FriendService provides friend-request and friendship business logic.
type FriendService struct {
	db             *gorm.DB
	requestRepo    repository.FriendRequestRepository
	friendshipRepo repository.FriendshipRepository
	userRepo       repository.UserRepository
	bus            *events.Bus
}

// NewFriendService returns a new FriendService.
func NewFriendService(
	db *gorm.DB,
	requestRepo repository.FriendRequestRepository,
	friendshipRepo repository.FriendshipRepository,
	userRepo repository.UserRepository,
	bus *events.Bus,
) *FriendService {
	return &FriendService{
		db:             db,
		requestRepo:    requestRepo,
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
		bus:            bus,
	}
}

// CreateRequest stores a pending friend request and notifies the receiver.
// Re-sending while an identical request is still pending is rejected with a
// conflict. The check is best effort (no unique index on requests); a racing
// duplicate that slips through still cannot produce more than one friendship.
func (s *FriendService) CreateRequest(ctx context.Context, senderID, receiverID uint) (*models.FriendRequest, error) {
	ctx, span := observability.TraceServiceMethod(ctx, "FriendService", "CreateRequest")
	defer span.End()

	if senderID == receiverID {
		return nil, models.NewValidationError("Cannot send friend request to yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}
	pending, err := s.requestRepo.GetPendingBetween(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, models.NewConflictError("Friend request already pending")
	}

	req := &models.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.FriendRequestStatusPending,
	}
	ev := events.Event{
		Kind:     events.KindFriendRequestCreated,
		ActorID:  senderID,
		TargetID: receiverID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.requestRepo.WithTx(tx).Create(ctx, req); err != nil {
			return err
		}
		return s.bus.PublishInTx(ctx, tx, ev)
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return nil, err
	}

	observability.FriendRequestsTotal.WithLabelValues("created").Inc()
	s.bus.PublishCommitted(ctx, ev)
	return req, nil
}

// Accept transitions a pending request to accepted and materializes the
// friendship as one row per direction, all in a single transaction. When
// two accepts race, the conditional status update lets exactly one through;
// the loser observes zero affected rows and reports already-processed.
func (s *FriendService) Accept(ctx context.Context, actingUserID, requestID uint) (*models.FriendRequest, error) {
	ctx, span := observability.TraceServiceMethod(ctx, "FriendService", "Accept")
	defer span.End()

	var accepted *models.FriendRequest
	var ev events.Event

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		requestRepo := s.requestRepo.WithTx(tx)
		friendshipRepo := s.friendshipRepo.WithTx(tx)

		req, err := requestRepo.GetForReceiver(ctx, requestID, actingUserID)
		if err != nil {
			return err
		}
		if req.Status != models.FriendRequestStatusPending {
			return models.NewAlreadyProcessedError("Friend request already processed")
		}

		exists, err := friendshipRepo.Exists(ctx, req.SenderID, req.ReceiverID)
		if err != nil {
			return err
		}
		if exists {
			return models.NewConflictError("Users are already friends")
		}

		ok, err := requestRepo.MarkStatus(ctx, req.ID,
			models.FriendRequestStatusPending, models.FriendRequestStatusAccepted)
		if err != nil {
			return err
		}
		if !ok {
			return models.NewAlreadyProcessedError("Friend request already processed")
		}

		if err := friendshipRepo.CreatePair(ctx, req.SenderID, req.ReceiverID); err != nil {
			return err
		}

		req.Status = models.FriendRequestStatusAccepted
		accepted = req
		ev = events.Event{
			Kind:     events.KindFriendRequestAccepted,
			ActorID:  actingUserID,
			TargetID: req.SenderID,
		}
		return s.bus.PublishInTx(ctx, tx, ev)
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return nil, err
	}

	observability.FriendRequestsTotal.WithLabelValues("accepted").Inc()
	s.bus.PublishCommitted(ctx, ev)
	return accepted, nil
}

// Decline transitions a pending request to declined. No friendship rows and
// no notification are produced.
func (s *FriendService) Decline(ctx context.Context, actingUserID, requestID uint) (*models.FriendRequest, error) {
	ctx, span := observability.TraceServiceMethod(ctx, "FriendService", "Decline")
	defer span.End()

	var declined *models.FriendRequest

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		requestRepo := s.requestRepo.WithTx(tx)

		req, err := requestRepo.GetForReceiver(ctx, requestID, actingUserID)
		if err != nil {
			return err
		}
		if req.Status != models.FriendRequestStatusPending {
			return models.NewAlreadyProcessedError("Friend request already processed")
		}

		ok, err := requestRepo.MarkStatus(ctx, req.ID,
			models.FriendRequestStatusPending, models.FriendRequestStatusDeclined)
		if err != nil {
			return err
		}
		if !ok {
			return models.NewAlreadyProcessedError("Friend request already processed")
		}

		req.Status = models.FriendRequestStatusDeclined
		declined = req
		return nil
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return nil, err
	}

	observability.FriendRequestsTotal.WithLabelValues("declined").Inc()
	return declined, nil
}

// ListIncoming returns pending requests addressed to the user, newest first.
func (s *FriendService) ListIncoming(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.requestRepo.ListIncoming(ctx, userID)
}

// ListFriends returns the user's friends in the order the friendships were
// formed.
func (s *FriendService) ListFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.friendshipRepo.ListFriendsOf(ctx, userID)
}
