package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/task-manager/internal/config"
	"github.com/task-manager/internal/model"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:        "test-secret",
		Issuer:        "taskmanager",
		Audience:      "taskmanager-clients",
		ExpiryMinutes: 60,
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService(testJWTConfig())
	user := &model.User{ID: 42, Email: "alice@example.com", Role: model.RoleUser}

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	identity, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if identity.UserID != 42 {
		t.Errorf("UserID = %d, want 42", identity.UserID)
	}
	if identity.Email != "alice@example.com" {
		t.Errorf("Email = %q, want alice@example.com", identity.Email)
	}
	if identity.Role != model.RoleUser {
		t.Errorf("Role = %q, want %q", identity.Role, model.RoleUser)
	}
}

func TestIssueUniqueTokenIDs(t *testing.T) {
	svc := NewTokenService(testJWTConfig())
	user := &model.User{ID: 1, Email: "a@b.com", Role: model.RoleUser}

	first, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	second, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if first == second {
		t.Error("two tokens for the same user are identical; jti is not unique")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	cfg.ExpiryMinutes = -1
	expired := NewTokenService(cfg)

	token, err := expired.Issue(&model.User{ID: 1, Email: "a@b.com", Role: model.RoleUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	svc := NewTokenService(testJWTConfig())
	if _, err := svc.Verify(token); err == nil {
		t.Error("expired token verified")
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	svc := NewTokenService(testJWTConfig())

	other := testJWTConfig()
	other.Secret = "a-different-secret"
	forged := NewTokenService(other)

	token, err := forged.Issue(&model.User{ID: 1, Email: "a@b.com", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := svc.Verify(token); err == nil {
		t.Error("token signed with a different secret verified")
	}
}

func TestVerifyWrongIssuerOrAudience(t *testing.T) {
	svc := NewTokenService(testJWTConfig())
	user := &model.User{ID: 1, Email: "a@b.com", Role: model.RoleUser}

	wrongIssuer := testJWTConfig()
	wrongIssuer.Issuer = "someone-else"
	token, err := NewTokenService(wrongIssuer).Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Verify(token); err == nil {
		t.Error("token with wrong issuer verified")
	}

	wrongAudience := testJWTConfig()
	wrongAudience.Audience = "another-app"
	token, err = NewTokenService(wrongAudience).Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Verify(token); err == nil {
		t.Error("token with wrong audience verified")
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	svc := NewTokenService(testJWTConfig())

	token, err := svc.Issue(&model.User{ID: 1, Email: "a@b.com", Role: model.RoleUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	last := token[len(token)-1]
	flip := byte('A')
	if last == 'A' {
		flip = 'B'
	}
	tampered := token[:len(token)-1] + string(flip)

	if _, err := svc.Verify(tampered); err == nil {
		t.Error("tampered token verified")
	}
}

func TestVerifyGarbage(t *testing.T) {
	svc := NewTokenService(testJWTConfig())

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Verify(raw); err == nil {
			t.Errorf("garbage token %q verified", raw)
		}
	}
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	cfg := testJWTConfig()
	claims := Claims{
		Role: model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	svc := NewTokenService(cfg)
	if _, err := svc.Verify(raw); err == nil {
		t.Error("token with none algorithm verified")
	}
}

func TestVerifyMissingClaims(t *testing.T) {
	cfg := testJWTConfig()
	svc := NewTokenService(cfg)

	// Valid signature and registered claims, but no subject and no role.
	claims := jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Audience:  jwt.ClaimStrings{cfg.Audience},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	if _, err := svc.Verify(raw); err == nil {
		t.Error("token without subject and role claims verified")
	}
}

func TestVerifyRequiresExpiry(t *testing.T) {
	cfg := testJWTConfig()
	svc := NewTokenService(cfg)

	claims := Claims{
		Role: model.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "1",
			Issuer:   cfg.Issuer,
			Audience: jwt.ClaimStrings{cfg.Audience},
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	if _, err := svc.Verify(raw); err == nil {
		t.Error("token without expiry verified")
	}
}
