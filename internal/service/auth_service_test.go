package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/task-manager/internal/auth"
	"github.com/task-manager/internal/config"
	"github.com/task-manager/internal/model"
)

func newAuthFixture() (*AuthService, *memUserStore, *auth.TokenService) {
	users := newMemUserStore()
	tokens := auth.NewTokenService(config.JWTConfig{
		Secret:        "test-secret",
		Issuer:        "taskmanager",
		Audience:      "taskmanager-clients",
		ExpiryMinutes: 60,
	})
	return NewAuthService(users, tokens, zerolog.Nop()), users, tokens
}

func TestRegister(t *testing.T) {
	svc, users, tokens := newAuthFixture()
	ctx := context.Background()

	token, user, err := svc.Register(ctx, "alice@example.com", "Secret@123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user.Role != model.RoleUser {
		t.Errorf("role = %q, want User", user.Role)
	}
	if user.PasswordHash == "Secret@123" {
		t.Error("password stored in plaintext")
	}

	stored, err := users.FindByEmail(ctx, "alice@example.com")
	if err != nil || stored == nil {
		t.Fatalf("registered user not persisted: %v", err)
	}
	if !auth.CheckPassword("Secret@123", stored.PasswordHash) {
		t.Error("stored hash does not verify against the original password")
	}

	// Registration logs the user straight in.
	identity, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if identity.UserID != user.ID || identity.Role != model.RoleUser {
		t.Errorf("token identity = %+v, want user %d with role User", identity, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "alice@example.com", "Secret@123"); err != nil {
		t.Fatalf("first registration: %v", err)
	}

	_, _, err := svc.Register(ctx, "alice@example.com", "another-password")
	if !errors.Is(err, model.ErrEmailTaken) {
		t.Errorf("want ErrEmailTaken, got %v", err)
	}

	// Login with the original password still succeeds.
	if _, _, err := svc.Login(ctx, "alice@example.com", "Secret@123"); err != nil {
		t.Errorf("login after duplicate registration attempt: %v", err)
	}
}

func TestRegisterEmailCaseSensitive(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Alice@example.com", "Secret@123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Email comparison is exact; a different casing is a different account.
	if _, _, err := svc.Register(ctx, "alice@example.com", "Secret@123"); err != nil {
		t.Errorf("differently-cased email rejected: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "Secret@123"},
		{"empty password", "alice@example.com", ""},
		{"no at sign", "alice.example.com", "Secret@123"},
		{"no domain dot", "alice@localhost", "Secret@123"},
		{"short password", "alice@example.com", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tt.email, tt.password)
			if !errors.Is(err, model.ErrValidation) {
				t.Errorf("want ErrValidation, got %v", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _, tokens := newAuthFixture()
	ctx := context.Background()

	_, registered, err := svc.Register(ctx, "alice@example.com", "Secret@123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, user, err := svc.Login(ctx, "alice@example.com", "Secret@123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("logged in as user %d, want %d", user.ID, registered.ID)
	}
	if _, err := tokens.Verify(token); err != nil {
		t.Errorf("login token does not verify: %v", err)
	}
}

func TestLoginFailureIsUniform(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "alice@example.com", "Secret@123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, wrongPassword := svc.Login(ctx, "alice@example.com", "not-the-password")
	_, _, unknownEmail := svc.Login(ctx, "nobody@example.com", "Secret@123")

	if !errors.Is(wrongPassword, model.ErrInvalidCredentials) {
		t.Errorf("wrong password: want ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, model.ErrInvalidCredentials) {
		t.Errorf("unknown email: want ErrInvalidCredentials, got %v", unknownEmail)
	}
	// No email-enumeration oracle: both failures look identical.
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Errorf("failure messages differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestProfile(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, user, err := svc.Register(ctx, "alice@example.com", "Secret@123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := svc.Profile(ctx, &auth.Identity{UserID: user.ID, Role: model.RoleUser})
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("email = %q", got.Email)
	}

	_, err = svc.Profile(ctx, &auth.Identity{UserID: 9999, Role: model.RoleUser})
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("missing subject: want ErrNotFound, got %v", err)
	}
}
