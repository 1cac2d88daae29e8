package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/aawaaz/waterlogging-server/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for tokens that fail to parse or verify.
var ErrInvalidToken = errors.New("invalid or expired token")

// SessionClaims are the JWT claims of a session bearer token.
type SessionClaims struct {
	Role      models.Role `json:"role"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Username  string      `json:"username,omitempty"`
	LoginTime time.Time   `json:"login_time"`
	jwt.RegisteredClaims
}

// Matches reports whether the claims were issued for sess.
func (c *SessionClaims) Matches(sess *models.Session) bool {
	return sess != nil &&
		c.Role == sess.Role &&
		c.Phone == sess.Phone &&
		c.Username == sess.Username &&
		c.LoginTime.Equal(sess.LoginTime)
}

// TokenService signs and parses session bearer tokens (HS256).
type TokenService struct {
	secret  []byte
	timeout time.Duration
	now     func() time.Time
}

// NewTokenService creates a token service. Tokens expire timeout after the
// session's login time.
func NewTokenService(secret string, timeout time.Duration, now func() time.Time) *TokenService {
	if now == nil {
		now = time.Now
	}
	return &TokenService{secret: []byte(secret), timeout: timeout, now: now}
}

// Issue returns a signed token bound to sess and its expiry.
func (s *TokenService) Issue(sess *models.Session) (string, time.Time, error) {
	exp := sess.LoginTime.Add(s.timeout)
	subject := sess.Phone
	if sess.Username != "" {
		subject = sess.Username
	}
	claims := SessionClaims{
		Role:      sess.Role,
		Name:      sess.Name,
		Phone:     sess.Phone,
		Username:  sess.Username,
		LoginTime: sess.LoginTime,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(sess.LoginTime),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Parse verifies a token and returns its claims.
func (s *TokenService) Parse(tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
