package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager выпускает и проверяет токены сессий консоли.
type TokenManager struct {
	secret []byte
}

// NewTokenManager создаёт менеджер токенов.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// SessionClaims: содержимое токена: sub хранит ID сессии.
type SessionClaims struct {
	Username string `json:"name"`
	jwt.RegisteredClaims
}

// Issue подписывает токен для сессии.
func (m *TokenManager) Issue(sess *ConsoleSession) (string, error) {
	claims := SessionClaims{
		Username: sess.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.ID,
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse проверяет подпись и срок и возвращает ID сессии.
func (m *TokenManager) Parse(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithLeeway(5*time.Second))
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.Subject, nil
}
