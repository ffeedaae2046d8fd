package service

import (
	"context"
	"testing"
	"time"

	"gatherly/internal/models"
	"gatherly/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventServiceWishlist(t *testing.T) {
	stack := newTestStack(t)
	svc := NewEventService(repository.NewEventRepository(stack.db))
	ctx := context.Background()
	user := createTestUser(t, stack.db, "alice")

	ev := &models.Event{Title: "GopherCon", IsPublic: true, StartsAt: time.Now().Add(48 * time.Hour)}
	require.NoError(t, stack.db.Create(ev).Error)

	t.Run("unknown event", func(t *testing.T) {
		err := svc.AddToWishlist(ctx, user.ID, 9999)
		require.Error(t, err)
		assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
	})

	require.NoError(t, svc.AddToWishlist(ctx, user.ID, ev.ID))
	require.NoError(t, svc.AddToWishlist(ctx, user.ID, ev.ID), "re-adding is a no-op")

	list, err := svc.Wishlist(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "GopherCon", list[0].Event.Title)
}

func TestEventServiceAttendedAndDiscover(t *testing.T) {
	stack := newTestStack(t)
	svc := NewEventService(repository.NewEventRepository(stack.db))
	ctx := context.Background()
	user := createTestUser(t, stack.db, "alice")

	attended := &models.Event{Title: "Seen it", IsPublic: true}
	upcoming := &models.Event{Title: "Fresh", IsPublic: true}
	hidden := &models.Event{Title: "Private", IsPublic: false}
	require.NoError(t, stack.db.Create(attended).Error)
	require.NoError(t, stack.db.Create(upcoming).Error)
	require.NoError(t, stack.db.Create(hidden).Error)

	require.NoError(t, svc.MarkAttended(ctx, user.ID, attended.ID))

	got, err := svc.Attended(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Seen it", got[0].Event.Title)

	suggestions, err := svc.Discover(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, suggestions, 1, "attended and private events are filtered out")
	assert.Equal(t, "Fresh", suggestions[0].Title)
}
