package service

import (
	"context"
	"crypto/subtle"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/agency-site/internal/logger"
	"github.com/ignatzorin/agency-site/internal/models"
	"github.com/ignatzorin/agency-site/internal/notify"
	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
)

// Credentials: учётная запись администратора из конфигурации.
type Credentials struct {
	Username     string
	PasswordHash string
}

// AuthService проверяет вход администратора и выдаёт токен сессии консоли.
// Учётные данные никогда не уходят во внешний API.
type AuthService struct {
	creds    Credentials
	sessions *SessionStore
	tokens   *TokenManager
	audit    *AuditService
}

// LoginResult: итог успешного входа.
type LoginResult struct {
	Token     string    `json:"token"`
	SessionID string    `json:"sessionId"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(creds Credentials, sessions *SessionStore, tokens *TokenManager, audit *AuditService) *AuthService {
	return &AuthService{
		creds:    creds,
		sessions: sessions,
		tokens:   tokens,
		audit:    audit,
	}
}

// Login сверяет логин и пароль и открывает сессию.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.creds.Username)) == 1
	// bcrypt сравниваем всегда, чтобы время ответа не выдавало логин
	passErr := bcrypt.CompareHashAndPassword([]byte(s.creds.PasswordHash), []byte(password))
	if !userOK || passErr != nil {
		logger.WithComponent("auth").WithField("username", username).Warn("admin login failed")
		return nil, apperror.ErrInvalidCredentials
	}

	sess := s.sessions.Create(username)
	token, err := s.tokens.Issue(sess)
	if err != nil {
		s.sessions.Delete(sess.ID)
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to issue session token")
	}

	sess.Toasts.Add("Welcome back!", "Successfully logged in to admin dashboard.", notify.VariantSuccess)
	s.audit.Record(ctx, sess, models.AuditLogin, "", "", "", true)

	return &LoginResult{
		Token:     token,
		SessionID: sess.ID,
		Username:  username,
		ExpiresAt: sess.ExpiresAt,
	}, nil
}

// Authenticate находит сессию по токену.
func (s *AuthService) Authenticate(token string) (*ConsoleSession, error) {
	sessionID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "invalid or expired token")
	}
	return s.sessions.Get(sessionID)
}

// Logout закрывает сессию.
func (s *AuthService) Logout(ctx context.Context, sess *ConsoleSession) {
	s.audit.Record(ctx, sess, models.AuditLogout, "", "", "", true)
	s.sessions.Delete(sess.ID)
}
