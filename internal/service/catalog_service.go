package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carwash-service/internal/model"
)

type CatalogService struct {
	catalog      CatalogStore
	reservations ReservationStore
}

func NewCatalogService(catalog CatalogStore, reservations ReservationStore) *CatalogService {
	return &CatalogService{catalog: catalog, reservations: reservations}
}

type CreateServiceInput struct {
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
	VehicleType     model.VehicleType
}

func (s *CatalogService) Create(ctx context.Context, principal model.Principal, input CreateServiceInput) (*model.WashService, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" || input.Price <= 0 || input.DurationMinutes <= 0 || !input.VehicleType.Valid() {
		return nil, ErrInvalidInput
	}

	svc := &model.WashService{
		Name:            input.Name,
		Description:     strings.TrimSpace(input.Description),
		Price:           input.Price,
		DurationMinutes: input.DurationMinutes,
		VehicleType:     input.VehicleType,
		IsActive:        true,
	}
	if err := s.catalog.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *CatalogService) List(ctx context.Context, principal model.Principal, vehicleType *model.VehicleType) ([]model.WashService, error) {
	// Admins see inactive entries too.
	return s.catalog.List(ctx, !principal.IsAdmin(), vehicleType)
}

func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*model.WashService, error) {
	svc, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return svc, nil
}

type UpdateServiceInput struct {
	Name            *string
	Description     *string
	Price           *float64
	DurationMinutes *int
	IsActive        *bool
}

// Update edits the catalog entry. Price edits never touch existing
// reservations: their totals were snapshotted at creation.
func (s *CatalogService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input UpdateServiceInput) (*model.WashService, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	svc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, ErrInvalidInput
		}
		updates["price"] = *input.Price
	}
	if input.DurationMinutes != nil {
		if *input.DurationMinutes <= 0 {
			return nil, ErrInvalidInput
		}
		updates["duration_minutes"] = *input.DurationMinutes
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if len(updates) == 0 {
		return svc, nil
	}
	if err := s.catalog.Update(ctx, svc.ID, updates); err != nil {
		return nil, err
	}
	return s.catalog.GetByID(ctx, svc.ID)
}

// Delete removes a catalog entry; rejected while any reservation, past or
// present, references it (referential integrity by application check).
func (s *CatalogService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	svc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	referenced, err := s.reservations.CountByService(ctx, svc.ID)
	if err != nil {
		return err
	}
	if referenced > 0 {
		return ErrConflict
	}

	return s.catalog.Delete(ctx, svc.ID)
}
