package server

import (
	"net/http"
	"testing"
	"time"

	"gatherly/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistEndpoints(t *testing.T) {
	srv, app := setupTestServer(t)
	_, token := createAccount(t, srv, "alice")

	ev := &models.Event{Title: "GopherCon", IsPublic: true, StartsAt: time.Now().Add(72 * time.Hour)}
	require.NoError(t, srv.db.Create(ev).Error)

	resp := doJSON(t, app, fiber.MethodPost, "/api/events/wishlist", token,
		fiber.Map{"event_id": ev.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/events/wishlist", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []models.WishlistEvent
	decodeJSON(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "GopherCon", list[0].Event.Title)

	t.Run("unknown event", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/events/wishlist", token,
			fiber.Map{"event_id": 9999})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("missing event id", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/events/wishlist", token,
			fiber.Map{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDiscoverEvents(t *testing.T) {
	srv, app := setupTestServer(t)
	_, token := createAccount(t, srv, "alice")

	public := &models.Event{Title: "Open Meetup", IsPublic: true}
	hidden := &models.Event{Title: "Invite Only", IsPublic: false}
	require.NoError(t, srv.db.Create(public).Error)
	require.NoError(t, srv.db.Create(hidden).Error)

	t.Run("anonymous", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/events/discover", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var list []models.Event
		decodeJSON(t, resp, &list)
		require.Len(t, list, 1)
		assert.Equal(t, "Open Meetup", list[0].Title)
	})

	t.Run("attended events drop out", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/events/attended", token,
			fiber.Map{"event_id": public.ID})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = doJSON(t, app, fiber.MethodGet, "/api/events/discover", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var list []models.Event
		decodeJSON(t, resp, &list)
		assert.Empty(t, list)
	})
}

func TestHealthEndpoints(t *testing.T) {
	_, app := setupTestServer(t)

	resp := doJSON(t, app, fiber.MethodGet, "/health/live", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/health/ready", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status string `json:"status"`
		Checks struct {
			Database string `json:"database"`
			Redis    string `json:"redis"`
		} `json:"checks"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.Checks.Database)
	assert.Equal(t, "unavailable", body.Checks.Redis)
}
