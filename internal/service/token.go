package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/itemvault/backend/internal/config"
)

const tokenTypeAccess = "access"

// TokenCodec signs and verifies access tokens. It is immutable after
// construction and safe for concurrent use.
type TokenCodec struct {
	secret     []byte
	method     *jwt.SigningMethodHMAC
	defaultTTL time.Duration
}

func NewTokenCodec(cfg config.AuthConfig) (*TokenCodec, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("%w: SECRET_KEY is required", ErrMisconfigured)
	}

	var method *jwt.SigningMethodHMAC
	switch cfg.Algorithm {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("%w: unsupported ALGORITHM %q", ErrMisconfigured, cfg.Algorithm)
	}

	minutes, err := strconv.Atoi(cfg.AccessTokenExpireMin)
	if err != nil || minutes <= 0 {
		return nil, fmt.Errorf("%w: invalid ACCESS_TOKEN_EXPIRE_MINUTES", ErrMisconfigured)
	}

	return &TokenCodec{
		secret:     []byte(cfg.SecretKey),
		method:     method,
		defaultTTL: time.Duration(minutes) * time.Minute,
	}, nil
}

// DefaultTTL returns the configured access token lifetime.
func (tc *TokenCodec) DefaultTTL() time.Duration {
	return tc.defaultTTL
}

// Issue signs an access token for subject. A ttl of zero means the
// configured default; negative values produce already-expired tokens. The jti claim identifies the token should a
// revocation denylist ever be added; nothing consumes it today.
func (tc *TokenCodec) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = tc.defaultTTL
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"type": tokenTypeAccess,
		"iat":  jwt.NewNumericDate(now),
		"exp":  jwt.NewNumericDate(now.Add(ttl)),
		"jti":  uuid.NewString(),
	}

	return jwt.NewWithClaims(tc.method, claims).SignedString(tc.secret)
}

// Verify decodes a token and returns its claims. The second result is
// false for any invalid token: bad signature, wrong signing method,
// malformed input, expiry, or a type tag other than "access". Callers
// treat all of these identically as unauthenticated.
func (tc *TokenCodec) Verify(tokenStr string) (jwt.MapClaims, bool) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != tc.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return tc.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	if typ, _ := claims["type"].(string); typ != tokenTypeAccess {
		return nil, false
	}

	return claims, true
}
