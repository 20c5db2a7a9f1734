package service

import (
	"context"

	"github.com/google/uuid"

	"carwash-service/internal/model"
)

type NotificationService struct {
	store NotificationStore
}

func NewNotificationService(store NotificationStore) *NotificationService {
	return &NotificationService{store: store}
}

func (s *NotificationService) List(ctx context.Context, principal model.Principal, unreadOnly bool, limit, offset int) ([]model.Notification, error) {
	return s.store.ListByUser(ctx, principal.UserID, unreadOnly, limit, offset)
}

func (s *NotificationService) MarkRead(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	affected, err := s.store.MarkRead(ctx, id, principal.UserID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, principal model.Principal) error {
	return s.store.MarkAllRead(ctx, principal.UserID)
}
