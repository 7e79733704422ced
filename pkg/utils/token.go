package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 7 * 24 * time.Hour

var (
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenInvalid        = errors.New("invalid token")
	ErrTokenInvalidPayload = errors.New("invalid token payload")
)

// TokenManager signs and verifies the bearer tokens. The subject is always
// the user_id, carried as a string under the "userId" claim.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateToken builds a signed JWT for the given user id
func (m *TokenManager) GenerateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"iat":    m.now().Unix(),
		"exp":    m.now().Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken verifies the signature and expiry and returns the userId claim.
func (m *TokenManager) ValidateToken(encodedToken string) (string, error) {
	token, err := jwt.Parse(encodedToken, func(token *jwt.Token) (interface{}, error) {
		// HMAC only
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !token.Valid {
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrTokenInvalidPayload
	}
	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return "", ErrTokenInvalidPayload
	}
	return userID, nil
}
