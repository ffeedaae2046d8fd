package service

import (
	"context"
	"strings"

	"gatherly/internal/identity"
	"gatherly/internal/models"
	"gatherly/internal/repository"
	"gatherly/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService provides account and profile business logic.
type UserService struct {
	userRepo repository.UserRepository
	verifier identity.Verifier
}

// UpdateProfileInput carries the optional fields of a profile update.
type UpdateProfileInput struct {
	UserID   uint
	Username string
	Bio      string
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, verifier identity.Verifier) *UserService {
	return &UserService{userRepo: userRepo, verifier: verifier}
}

// Signup registers a new local account.
func (s *UserService) Signup(ctx context.Context, username, email, password string) (*models.User, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a local account by email and password. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

// GoogleLogin verifies a Google ID token and fetches or provisions the
// matching account. A failed verification creates no local state.
func (s *UserService) GoogleLogin(ctx context.Context, token string) (*models.User, error) {
	ident, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, ident.Email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	username, err := s.availableUsername(ctx, ident.Email)
	if err != nil {
		return nil, err
	}

	// Federated accounts get an unguessable placeholder password; local
	// login for them always fails the bcrypt comparison.
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user = &models.User{
		Username: username,
		Email:    ident.Email,
		Password: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// availableUsername derives a username from the email local part, suffixing
// it when already taken.
func (s *UserService) availableUsername(ctx context.Context, email string) (string, error) {
	base := strings.SplitN(email, "@", 2)[0]
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return -1
		}
	}, base)
	if len(base) < 3 {
		base = "user" + base
	}

	existing, err := s.userRepo.GetByUsername(ctx, base)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return base, nil
	}
	return base + "_" + uuid.NewString()[:8], nil
}

// GetUserByID returns the user's record.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile applies the non-empty fields of the input to the user.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500

	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = in.Username
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
