package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carwash-service/internal/model"
	"carwash-service/internal/repository"
)

// UserService covers admin user management.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context, principal model.Principal, role *model.UserRole, limit, offset int) ([]model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.users.List(ctx, repository.UserFilter{
		Role:   role,
		Limit:  limit,
		Offset: offset,
	})
}

func (s *UserService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.User, error) {
	if !principal.IsAdmin() && principal.UserID != id {
		return nil, ErrPermissionDenied
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetActive(ctx context.Context, principal model.Principal, id uuid.UUID, active bool) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if principal.UserID == id {
		return ErrInvalidInput
	}
	if _, err := s.Get(ctx, principal, id); err != nil {
		return err
	}
	return s.users.SetActive(ctx, id, active)
}
