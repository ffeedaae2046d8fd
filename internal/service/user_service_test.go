package service

import (
	"context"
	"strings"
	"testing"

	"gatherly/internal/identity"
	"gatherly/internal/models"
	"gatherly/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T, verifier identity.Verifier) (*UserService, *testStack) {
	t.Helper()
	stack := newTestStack(t)
	return NewUserService(repository.NewUserRepository(stack.db), verifier), stack
}

func TestUserServiceSignup(t *testing.T) {
	svc, stack := newUserService(t, nil)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "gopher", "gopher@example.com", "Str0ng!Passw0rd")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "Str0ng!Passw0rd", user.Password, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Str0ng!Passw0rd")))

	t.Run("weak password rejected", func(t *testing.T) {
		_, err := svc.Signup(ctx, "other", "other@example.com", "weak")
		require.Error(t, err)
		assert.Equal(t, models.CodeValidation, models.CodeOf(err))
	})

	t.Run("bad email rejected", func(t *testing.T) {
		_, err := svc.Signup(ctx, "other", "not-an-email", "Str0ng!Passw0rd")
		require.Error(t, err)
		assert.Equal(t, models.CodeValidation, models.CodeOf(err))
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		_, err := svc.Signup(ctx, "gopher", "second@example.com", "Str0ng!Passw0rd")
		require.Error(t, err)
		assert.Equal(t, models.CodeConflict, models.CodeOf(err))
	})

	var count int64
	stack.db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUserServiceLogin(t *testing.T) {
	svc, _ := newUserService(t, nil)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "gopher", "gopher@example.com", "Str0ng!Passw0rd")
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		user, err := svc.Login(ctx, "gopher@example.com", "Str0ng!Passw0rd")
		require.NoError(t, err)
		assert.Equal(t, "gopher", user.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "gopher@example.com", "wrong")
		require.Error(t, err)
		assert.Equal(t, models.CodeUnauthorized, models.CodeOf(err))
	})

	t.Run("unknown email looks identical", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@example.com", "Str0ng!Passw0rd")
		require.Error(t, err)
		assert.Equal(t, models.CodeUnauthorized, models.CodeOf(err))
	})
}

func TestUserServiceGoogleLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid token creates nothing", func(t *testing.T) {
		svc, stack := newUserService(t, stubVerifier{err: models.NewUnauthorizedError("Invalid identity token")})

		_, err := svc.GoogleLogin(ctx, "garbage")
		require.Error(t, err)
		assert.Equal(t, models.CodeUnauthorized, models.CodeOf(err))

		var count int64
		stack.db.Model(&models.User{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("provisions a new account from the email local part", func(t *testing.T) {
		svc, _ := newUserService(t, stubVerifier{ident: &identity.Identity{Email: "newcomer@example.com", Name: "New Comer"}})

		user, err := svc.GoogleLogin(ctx, "valid-token")
		require.NoError(t, err)
		assert.Equal(t, "newcomer", user.Username)
		assert.Equal(t, "newcomer@example.com", user.Email)
	})

	t.Run("returns the existing account on repeat login", func(t *testing.T) {
		svc, stack := newUserService(t, stubVerifier{ident: &identity.Identity{Email: "repeat@example.com"}})

		first, err := svc.GoogleLogin(ctx, "valid-token")
		require.NoError(t, err)
		second, err := svc.GoogleLogin(ctx, "valid-token")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		var count int64
		stack.db.Model(&models.User{}).Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("suffixes a taken username", func(t *testing.T) {
		svc, stack := newUserService(t, stubVerifier{ident: &identity.Identity{Email: "gopher@elsewhere.com"}})
		createTestUser(t, stack.db, "gopher")

		user, err := svc.GoogleLogin(ctx, "valid-token")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(user.Username, "gopher_"))
		assert.NotEqual(t, "gopher", user.Username)
	})
}

func TestUserServiceUpdateProfile(t *testing.T) {
	svc, stack := newUserService(t, nil)
	ctx := context.Background()
	user := createTestUser(t, stack.db, "gopher")

	updated, err := svc.UpdateProfile(ctx, UpdateProfileInput{
		UserID: user.ID,
		Bio:    "likes long walks through dependency graphs",
	})
	require.NoError(t, err)
	assert.Equal(t, "gopher", updated.Username, "unset fields are left alone")
	assert.Equal(t, "likes long walks through dependency graphs", updated.Bio)

	_, err = svc.UpdateProfile(ctx, UpdateProfileInput{UserID: user.ID, Bio: strings.Repeat("x", 501)})
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))

	_, err = svc.UpdateProfile(ctx, UpdateProfileInput{UserID: 9999, Bio: "ghost"})
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
}
