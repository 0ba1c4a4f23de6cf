package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/task-manager/internal/auth"
	"github.com/task-manager/internal/model"
)

const minPasswordLength = 6

// AuthService orchestrates registration and login: uniqueness checks,
// password hashing and token issuance.
type AuthService struct {
	users  UserStore
	tokens *auth.TokenService
	logger zerolog.Logger
}

func NewAuthService(users UserStore, tokens *auth.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Register creates an account and mints a token for immediate login. The
// role is always User; there is no way to request a different one. Email
// comparison is case-sensitive, matching the stored unique index.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, *model.User, error) {
	if err := validateCredentials(email, password); err != nil {
		return "", nil, err
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, model.ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, hash, model.RoleUser)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("registered user")
	return token, user, nil
}

// Login verifies credentials and mints a token. An unknown email and a wrong
// password both come back as ErrInvalidCredentials so the response cannot be
// used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !auth.CheckPassword(password, user.PasswordHash) {
		return "", nil, model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("user logged in")
	return token, user, nil
}

// Profile resolves the caller's own record from the token subject.
func (s *AuthService) Profile(ctx context.Context, caller *auth.Identity) (*model.User, error) {
	user, err := s.users.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrNotFound
	}
	return user, nil
}

// ListUsers returns every account. Admin-only; the role gate sits in the
// middleware, before this is reached.
func (s *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.FindAll(ctx)
}

func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", model.ErrValidation)
	}
	if !isValidEmail(email) {
		return fmt.Errorf("%w: invalid email format", model.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", model.ErrValidation, minPasswordLength)
	}
	return nil
}

// isValidEmail performs a basic shape check: one @ with text on both sides
// and a dot in the domain.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	if len(parts[0]) == 0 || len(parts[1]) == 0 {
		return false
	}
	return strings.Contains(parts[1], ".")
}
