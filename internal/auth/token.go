package auth

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"portfolio/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is how long an issued token stays valid. There is no
// revocation - logout is a client-side credential discard.
const TokenValidity = 7 * 24 * time.Hour

// Claims is the signed token payload: the admin identity plus issued-at and
// expiry.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the single admin credential. It is
// stateless: no session store, no revocation list.
type TokenService struct {
	secret   []byte
	username string
	password string
	logger   *slog.Logger

	// now is swappable for expiry tests
	now func() time.Time
}

// NewTokenService creates a token service signing with the given secret.
// The caller supplies the one valid credential pair; there is no user
// directory behind this.
func NewTokenService(secret, username, password string, logger *slog.Logger) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		username: username,
		password: password,
		logger:   logger,
		now:      time.Now,
	}
}

// Issue produces a signed HS256 token for the given identity, valid for
// TokenValidity from now.
func (s *TokenService) Issue(identity string) (string, error) {
	now := s.now()
	claims := Claims{
		Username: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenValidity)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify validates a token string and returns the identity it carries.
// Signature mismatch, malformed payload, and expiry all surface as the same
// ErrUnauthorized so callers cannot leak which check failed.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Prevent algorithm confusion attacks - only HMAC is ever issued
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Username == "" {
		return "", domain.ErrUnauthorized
	}

	return claims.Username, nil
}

// Login checks the credential pair against the configured admin account and
// issues a token on success. This is a single-admin gate, not a user lookup.
func (s *TokenService) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		s.logger.Warn("login rejected", "username", username)
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.Issue(username)
	if err != nil {
		return "", err
	}

	s.logger.Info("admin logged in", "username", username)
	return token, nil
}
