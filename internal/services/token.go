package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService signs and validates the bearer credential the client holds
// for a session: an opaque (sessionID, participantID) pair. Tokens expire
// with the session TTL.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) Generate(sessionID, participantID string) (string, error) {
	claims := jwt.MapClaims{
		"session_id":     sessionID,
		"participant_id": participantID,
		"exp":            time.Now().Add(s.ttl).Unix(),
		"iat":            time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) Validate(tokenString string) (sessionID, participantID string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid claims")
	}
	sessionID, ok = claims["session_id"].(string)
	if !ok {
		return "", "", errors.New("invalid session_id in token")
	}
	participantID, ok = claims["participant_id"].(string)
	if !ok {
		return "", "", errors.New("invalid participant_id in token")
	}
	return sessionID, participantID, nil
}
