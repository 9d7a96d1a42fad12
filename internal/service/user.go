package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/logging"
	"github.com/sursrinu/artandcraft-platform/internal/models"
	"github.com/sursrinu/artandcraft-platform/internal/repo"
)

// UserService backs the admin user directory.
type UserService struct {
	Repo *repo.GormRepo
}

func (s *UserService) List(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	return s.Repo.Users(ctx, offset, limit)
}

func (s *UserService) Get(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.Repo.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

// UpdateStatus enables or disables an account. Disabled accounts keep their
// data but can no longer log in.
func (s *UserService) UpdateStatus(ctx context.Context, userID uint, isActive bool) (*models.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsActive = isActive
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("update_user_status", "user_id", userID, "is_active", isActive)
	return user, nil
}
