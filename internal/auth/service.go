// Package auth verifies credentials and issues the identity tokens the HTTP
// layer decodes into the acting user.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
	"github.com/mamadbah2/fleetstock/internal/repository"
)

// ErrInvalidCredentials is returned for an unknown username or a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Service authenticates users against the user repository.
type Service struct {
	users  repository.UserRepository
	tokens *TokenIssuer
	logger *zap.Logger
}

// NewService constructs an auth service.
func NewService(users repository.UserRepository, tokens *TokenIssuer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, tokens: tokens, logger: logger}
}

// Login checks the credentials and returns a signed token with the user.
func (s *Service) Login(ctx context.Context, username, password string) (string, models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", models.User{}, ErrInvalidCredentials
	}

	user, err := s.users.FindUserByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Info("login rejected", zap.String("username", username), zap.String("reason", "unknown user"))
		return "", models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", models.User{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := ComparePassword(user.PasswordHash, password); err != nil {
		s.logger.Info("login rejected", zap.String("username", username), zap.String("reason", "wrong password"))
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", models.User{}, err
	}

	s.logger.Info("user logged in", zap.String("username", username), zap.String("role", string(user.Role)))
	return token, user, nil
}

// Authenticate resolves a bearer token into the acting user. The account must
// still exist with the same id, so deleted users lose access immediately and
// role changes apply to existing tokens.
func (s *Service) Authenticate(ctx context.Context, token string) (models.User, error) {
	claimed, err := s.tokens.Parse(token)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.users.FindUserByUsername(ctx, claimed.Username)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && user.ID != claimed.ID) {
		s.logger.Info("token rejected", zap.String("username", claimed.Username), zap.String("reason", "account no longer exists"))
		return models.User{}, fmt.Errorf("user %s: %w", claimed.Username, ErrInvalidToken)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to look up user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}
