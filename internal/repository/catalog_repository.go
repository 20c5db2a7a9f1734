package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carwash-service/internal/model"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) Create(ctx context.Context, svc *model.WashService) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *CatalogRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.WashService, error) {
	var svc model.WashService
	if err := r.db.WithContext(ctx).First(&svc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *CatalogRepository) List(ctx context.Context, activeOnly bool, vehicleType *model.VehicleType) ([]model.WashService, error) {
	query := r.db.WithContext(ctx).Model(&model.WashService{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if vehicleType != nil {
		query = query.Where("vehicle_type = ?", *vehicleType)
	}
	var services []model.WashService
	if err := query.Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *CatalogRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.WashService{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *CatalogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.WashService{}, "id = ?", id).Error
}
