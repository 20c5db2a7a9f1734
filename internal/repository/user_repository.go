package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carwash-service/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type UserFilter struct {
	Role   *model.UserRole
	Limit  int
	Offset int
}

func (r *UserRepository) List(ctx context.Context, filter UserFilter) ([]model.User, error) {
	query := r.db.WithContext(ctx).Model(&model.User{})

	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	} else {
		query = query.Limit(200)
	}

	var users []model.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListAvailableWashers returns washers flagged available with a known
// location; distance filtering happens in the service layer.
func (r *UserRepository) ListAvailableWashers(ctx context.Context) ([]model.User, error) {
	var washers []model.User
	if err := r.db.WithContext(ctx).
		Where("role = ? AND is_available = ? AND is_active = ?", model.UserRoleWasher, true, true).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Find(&washers).Error; err != nil {
		return nil, err
	}
	return washers, nil
}

func (r *UserRepository) UpdateAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND role = ?", id, model.UserRoleWasher).
		Update("is_available", available).Error
}

func (r *UserRepository) UpdateLocation(ctx context.Context, id uuid.UUID, lat, lng float64) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND role = ?", id, model.UserRoleWasher).
		Updates(map[string]interface{}{
			"latitude":  lat,
			"longitude": lng,
		}).Error
}

func (r *UserRepository) UpdateRating(ctx context.Context, washerID uuid.UUID, rating float64) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", washerID).
		Update("rating", rating).Error
}

func (r *UserRepository) IncrementCompletedServices(ctx context.Context, washerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", washerID).
		Update("completed_services", gorm.Expr("completed_services + 1")).Error
}

func (r *UserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}
