// Package users manages application accounts.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/fleetstock/internal/auth"
	"github.com/mamadbah2/fleetstock/internal/domain/models"
	"github.com/mamadbah2/fleetstock/internal/repository"
)

var (
	// ErrUsernameTaken indicates another account already uses the username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrLastAdmin prevents removing the only remaining administrator.
	ErrLastAdmin = errors.New("cannot delete the last admin")
	// ErrNotFound indicates the user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidUser indicates a malformed account request.
	ErrInvalidUser = errors.New("invalid user")
)

// DefaultAdminUsername is the account created on an empty user collection.
const DefaultAdminUsername = "admin"

// NewUser is an account creation request.
type NewUser struct {
	Name     string      `json:"name" binding:"required"`
	Username string      `json:"username" binding:"required"`
	Password string      `json:"password" binding:"required,min=4"`
	Role     models.Role `json:"role" binding:"required,oneof=ADMIN STAFF"`
}

// Service manages user accounts.
type Service struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

// NewService constructs a users service.
func NewService(repo repository.UserRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// EnsureDefaultAdmin creates the admin account when no user exists yet.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, password string) error {
	existing, err := s.repo.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	_, err = s.Add(ctx, NewUser{
		Name:     "Administrator",
		Username: DefaultAdminUsername,
		Password: password,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	s.logger.Warn("default admin account created; change its password", zap.String("username", DefaultAdminUsername))
	return nil
}

// List returns every account.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	out, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return out, nil
}

// Add creates an account with a hashed password.
func (s *Service) Add(ctx context.Context, req NewUser) (models.User, error) {
	user := models.User{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(req.Name),
		Username: strings.TrimSpace(req.Username),
		Role:     req.Role,
	}
	if err := user.Validate(); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrInvalidUser, err)
	}
	if req.Password == "" {
		return models.User{}, fmt.Errorf("%w: password is required", ErrInvalidUser)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.repo.InsertUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.User{}, fmt.Errorf("%s: %w", user.Username, ErrUsernameTaken)
		}
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	s.logger.Info("user added", zap.String("username", user.Username), zap.String("role", string(user.Role)))
	return user, nil
}

// Delete removes an account, refusing to remove the last admin.
func (s *Service) Delete(ctx context.Context, id string) error {
	all, err := s.repo.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	var target *models.User
	admins := 0
	for i := range all {
		if all[i].IsAdmin() {
			admins++
		}
		if all[i].ID == id {
			target = &all[i]
		}
	}
	if target == nil {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if target.IsAdmin() && admins <= 1 {
		return ErrLastAdmin
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted", zap.String("username", target.Username))
	return nil
}
