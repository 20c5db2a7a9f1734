package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carwash-service/internal/model"
)

func TestUserService(t *testing.T) {
	ctx := context.Background()

	t.Run("ListIsAdminOnly", func(t *testing.T) {
		users := newFakeUserStore()
		svc := NewUserService(users)
		users.put(&model.User{Role: model.UserRoleClient, IsActive: true})

		_, err := svc.List(ctx, model.Principal{UserID: uuid.New(), Role: model.UserRoleClient}, nil, 0, 0)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		got, err := svc.List(ctx, model.Principal{UserID: uuid.New(), Role: model.UserRoleAdmin}, nil, 0, 0)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("ListFiltersByRole", func(t *testing.T) {
		users := newFakeUserStore()
		svc := NewUserService(users)
		users.put(&model.User{Role: model.UserRoleClient, IsActive: true})
		users.put(&model.User{Role: model.UserRoleWasher, IsActive: true})

		washerRole := model.UserRoleWasher
		got, err := svc.List(ctx, model.Principal{UserID: uuid.New(), Role: model.UserRoleAdmin}, &washerRole, 0, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, model.UserRoleWasher, got[0].Role)
	})

	t.Run("SelfGetAllowed", func(t *testing.T) {
		users := newFakeUserStore()
		svc := NewUserService(users)
		u := users.put(&model.User{Role: model.UserRoleClient, IsActive: true})

		got, err := svc.Get(ctx, model.Principal{UserID: u.ID, Role: model.UserRoleClient}, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)

		_, err = svc.Get(ctx, model.Principal{UserID: uuid.New(), Role: model.UserRoleClient}, u.ID)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("AdminCannotDeactivateSelf", func(t *testing.T) {
		users := newFakeUserStore()
		svc := NewUserService(users)
		admin := users.put(&model.User{Role: model.UserRoleAdmin, IsActive: true})

		err := svc.SetActive(ctx, model.Principal{UserID: admin.ID, Role: model.UserRoleAdmin}, admin.ID, false)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("AdminDeactivatesUser", func(t *testing.T) {
		users := newFakeUserStore()
		svc := NewUserService(users)
		target := users.put(&model.User{Role: model.UserRoleWasher, IsActive: true})

		require.NoError(t, svc.SetActive(ctx, model.Principal{UserID: uuid.New(), Role: model.UserRoleAdmin}, target.ID, false))
		got, err := users.GetByID(ctx, target.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})
}
