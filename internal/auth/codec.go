package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// bearerScheme is the only accepted Authorization scheme.
const bearerScheme = "Bearer"

// tokenType is the fixed type tag carried in every issued token.
const tokenType = "access"

// Claims is the JWT payload used for both incoming bearer tokens and minted
// service tokens. The subject carries the user identifier as a decimal string.
type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// Codec issues and verifies HS256 bearer tokens with a single shared secret.
// There is no key rotation and no revocation list: a verified, unexpired
// signature is always accepted.
type Codec struct {
	secret   []byte
	audience string
	parser   *jwt.Parser
	now      func() time.Time
}

// NewCodec creates a Codec for the given shared secret and audience.
func NewCodec(secret, audience string) *Codec {
	return &Codec{
		secret:   []byte(secret),
		audience: audience,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"HS256"}),
			jwt.WithExpirationRequired(),
			jwt.WithAudience(audience),
		),
		now: time.Now,
	}
}

// Issue produces a signed token whose subject is the given user identifier,
// expiring after ttl. A non-positive ttl yields an already-expired token;
// callers that want a guaranteed rejection in tests rely on this.
func (c *Codec) Issue(subject int, ttl time.Duration) (string, error) {
	now := c.now()
	claims := Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(subject),
			Audience:  jwt.ClaimStrings{c.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyHeader validates an Authorization header value of the form
// "Bearer <token>" and returns the subject as an integer user identifier.
// Every failure mode (missing header, wrong scheme, bad signature, expired
// token, non-integer subject) is reported as an *AuthError.
func (c *Codec) VerifyHeader(header string) (int, error) {
	if header == "" {
		return 0, &AuthError{Reason: "missing authorization header"}
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) {
		return 0, &AuthError{Reason: "authorization header must use the Bearer scheme"}
	}

	return c.VerifyToken(parts[1])
}

// VerifyToken validates a raw token string and returns the subject user
// identifier.
func (c *Codec) VerifyToken(tokenStr string) (int, error) {
	claims := &Claims{}
	_, err := c.parser.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, &AuthError{Reason: "token expired", Err: err}
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, &AuthError{Reason: "invalid token signature", Err: err}
		default:
			return 0, &AuthError{Reason: "invalid token", Err: err}
		}
	}

	subject, convErr := strconv.Atoi(claims.Subject)
	if convErr != nil || claims.Subject == "" {
		return 0, &AuthError{Reason: "token subject is not a user identifier"}
	}
	return subject, nil
}
