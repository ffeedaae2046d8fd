// Seeds the database with fake users, friendships, messages, and events
// for local development.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"gatherly/internal/config"
	"gatherly/internal/database"
	"gatherly/internal/events"
	"gatherly/internal/identity"
	"gatherly/internal/middleware"
	"gatherly/internal/models"
	"gatherly/internal/notifications"
	"gatherly/internal/repository"
	"gatherly/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

const (
	userCount    = 20
	eventCount   = 15
	seedPassword = "Seed-Passw0rd!123"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())
	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	requestRepo := repository.NewFriendRequestRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	eventRepo := repository.NewEventRepository(db)

	bus := events.NewBus(middleware.Logger)
	notificationService := service.NewNotificationService(
		notificationRepo, notifications.NewNotifier(nil), middleware.Logger)
	bus.Subscribe(notificationService)

	userService := service.NewUserService(userRepo, identity.NewGoogleVerifier(""))
	friendService := service.NewFriendService(db, requestRepo, friendshipRepo, userRepo, bus)
	messageService := service.NewMessageService(db, messageRepo, userRepo, bus)

	// Users
	users := make([]*models.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		username := seedUsername(i)
		user, err := userService.Signup(ctx, username, gofakeit.Email(), seedPassword)
		if err != nil {
			log.Fatalf("Failed to create user %q: %v", username, err)
		}
		users = append(users, user)
		fmt.Printf("Created user %s (password %s)\n", user.Username, seedPassword)
	}

	// Friend requests: some accepted, some declined, some left pending.
	for i, sender := range users {
		for j := 0; j < 3; j++ {
			receiver := users[rand.Intn(len(users))]
			if receiver.ID == sender.ID {
				continue
			}
			req, err := friendService.CreateRequest(ctx, sender.ID, receiver.ID)
			if err != nil {
				continue // duplicate or already friends, move on
			}
			switch (i + j) % 3 {
			case 0:
				_, _ = friendService.Accept(ctx, receiver.ID, req.ID)
			case 1:
				_, _ = friendService.Decline(ctx, receiver.ID, req.ID)
			}
		}
	}

	// Messages between friends.
	for _, user := range users {
		friends, err := friendService.ListFriends(ctx, user.ID)
		if err != nil {
			continue
		}
		for _, friend := range friends {
			for k := 0; k < rand.Intn(4)+1; k++ {
				_, _ = messageService.Send(ctx, user.ID, friend.ID, gofakeit.Sentence(8))
			}
		}
	}

	// Event catalog with wishlists and attendance.
	catalog := make([]*models.Event, 0, eventCount)
	for i := 0; i < eventCount; i++ {
		ev := &models.Event{
			Title:       gofakeit.HipsterSentence(3),
			Description: gofakeit.Paragraph(1, 3, 10, " "),
			Location:    gofakeit.City(),
			StartsAt:    gofakeit.DateRange(time.Now(), time.Now().AddDate(0, 3, 0)),
			IsPublic:    i%4 != 0,
			CreatedBy:   users[rand.Intn(len(users))].ID,
		}
		if err := eventRepo.CreateEvent(ctx, ev); err != nil {
			log.Fatalf("Failed to create event: %v", err)
		}
		catalog = append(catalog, ev)
	}

	for _, user := range users {
		for j := 0; j < rand.Intn(5); j++ {
			_ = eventRepo.AddToWishlist(ctx, user.ID, catalog[rand.Intn(len(catalog))].ID)
		}
		for j := 0; j < rand.Intn(3); j++ {
			_ = eventRepo.MarkAttended(ctx, user.ID, catalog[rand.Intn(len(catalog))].ID)
		}
	}

	log.Printf("Seeded %d users and %d events", len(users), len(catalog))
}

func seedUsername(i int) string {
	base := strings.ToLower(gofakeit.Username())
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return -1
	}, base)
	cleaned = strings.Trim(cleaned, "_-")
	if len(cleaned) > 20 {
		cleaned = cleaned[:20]
	}
	if len(cleaned) < 3 {
		cleaned = "user"
	}
	return fmt.Sprintf("%s%d", cleaned, i)
}
