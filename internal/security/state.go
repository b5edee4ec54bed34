package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"socialdash/internal/apperrors"
)

// StateAudience separates OAuth state tokens from session bearer tokens signed with the same key.
const StateAudience = "oauth-state"

// StateCodec issues and checks the signed value carried in the OAuth state parameter.
// The token is the only link between a login redirect and its callback.
type StateCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewStateCodec(secret string, ttl time.Duration) *StateCodec {
	return &StateCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (c *StateCodec) WithClock(now func() time.Time) *StateCodec {
	c.now = now
	return c
}

// Encode returns a signed state binding userID to this round trip.
func (c *StateCodec) Encode(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("пустой идентификатор пользователя")
	}

	issuedAt := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Audience:  jwt.ClaimStrings{StateAudience},
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies state and returns the user id it was issued for.
// Every failure, whatever its cause, is reported as ErrInvalidState.
func (c *StateCodec) Decode(state string) (string, error) {
	if state == "" {
		return "", apperrors.ErrInvalidState
	}

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(state, &claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(StateAudience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", apperrors.ErrInvalidState
	}

	return claims.Subject, nil
}

// Verifier derives the PKCE code verifier for a state value.
// Both legs of the flow compute it, so nothing has to be stored in between.
func (c *StateCodec) Verifier(state string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte("pkce:"))
	mac.Write([]byte(state))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
