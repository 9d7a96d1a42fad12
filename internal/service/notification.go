package service

import (
	"context"

	"github.com/sursrinu/artandcraft-platform/internal/models"
	"github.com/sursrinu/artandcraft-platform/internal/repo"
)

type NotificationService struct {
	Repo *repo.GormRepo
}

func (s *NotificationService) List(ctx context.Context, userID uint, offset, limit int) ([]models.Notification, int64, error) {
	return s.Repo.NotificationsByUser(ctx, userID, offset, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	return s.Repo.MarkNotificationRead(ctx, id, userID)
}
