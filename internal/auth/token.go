package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/task-manager/internal/config"
	"github.com/task-manager/internal/model"
)

// Identity is the verified caller extracted from a bearer token. It is
// passed explicitly into services and the access policy; nothing below the
// HTTP layer reads it from ambient state.
type Identity struct {
	UserID int64
	Email  string
	Role   model.Role
}

// Claims is the token payload: the registered claim set plus the role the
// subject held at issuance. The role is not re-checked against storage on
// later requests; a role change takes effect when the token expires.
type Claims struct {
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed tokens. Verification is a
// pure function of the signature, issuer, audience and expiry; no storage
// lookup is involved.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      time.Duration(cfg.ExpiryMinutes) * time.Minute,
	}
}

// Issue signs a token for the user. The jti claim is a fresh UUID, reserved
// for a future revocation list.
func (s *TokenService) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a raw token and returns the caller identity.
// It fails on a bad signature, a non-HMAC signing method, a wrong issuer or
// audience, a passed expiry, or missing subject/role claims.
func (s *TokenService) Verify(raw string) (*Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	if claims.Subject == "" || claims.Role == "" {
		return nil, jwt.ErrTokenRequiredClaimMissing
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim: %w", err)
	}

	return &Identity{UserID: userID, Email: claims.Email, Role: claims.Role}, nil
}
