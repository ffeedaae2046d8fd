package server

import (
	"fmt"
	"net/http"
	"testing"

	"gatherly/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessageAndThread(t *testing.T) {
	srv, app := setupTestServer(t)
	alice, aliceToken := createAccount(t, srv, "alice")
	bob, bobToken := createAccount(t, srv, "bob")

	resp := doJSON(t, app, fiber.MethodPost,
		fmt.Sprintf("/api/messages/%d", bob.ID), aliceToken,
		fiber.Map{"body": "hey bob"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sent models.Message
	decodeJSON(t, resp, &sent)
	assert.Equal(t, alice.ID, sent.SenderID)
	assert.Equal(t, bob.ID, sent.ReceiverID)
	assert.Equal(t, "hey bob", sent.Body)

	resp = doJSON(t, app, fiber.MethodPost,
		fmt.Sprintf("/api/messages/%d", alice.ID), bobToken,
		fiber.Map{"body": "hey alice"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Both participants see the same thread, oldest first.
	views := []struct {
		token       string
		counterpart uint
	}{
		{aliceToken, bob.ID},
		{bobToken, alice.ID},
	}
	for _, view := range views {
		resp = doJSON(t, app, fiber.MethodGet,
			fmt.Sprintf("/api/messages/%d", view.counterpart), view.token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var thread []models.Message
		decodeJSON(t, resp, &thread)
		require.Len(t, thread, 2)
		assert.Equal(t, "hey bob", thread[0].Body)
		assert.Equal(t, "hey alice", thread[1].Body)
	}
}

func TestSendMessageValidation(t *testing.T) {
	srv, app := setupTestServer(t)
	alice, aliceToken := createAccount(t, srv, "alice")
	bob, _ := createAccount(t, srv, "bob")

	t.Run("empty body", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost,
			fmt.Sprintf("/api/messages/%d", bob.ID), aliceToken,
			fiber.Map{"body": ""})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("to self", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost,
			fmt.Sprintf("/api/messages/%d", alice.ID), aliceToken,
			fiber.Map{"body": "note to self"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown receiver", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost,
			"/api/messages/9999", aliceToken, fiber.Map{"body": "hello?"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestThreadWithStrangerIsEmpty(t *testing.T) {
	srv, app := setupTestServer(t)
	_, aliceToken := createAccount(t, srv, "alice")
	bob, _ := createAccount(t, srv, "bob")

	resp := doJSON(t, app, fiber.MethodGet,
		fmt.Sprintf("/api/messages/%d", bob.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var thread []models.Message
	decodeJSON(t, resp, &thread)
	assert.Empty(t, thread)
}
