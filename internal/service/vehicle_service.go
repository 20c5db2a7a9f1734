package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carwash-service/internal/model"
)

type VehicleService struct {
	vehicles     VehicleStore
	reservations ReservationStore
}

func NewVehicleService(vehicles VehicleStore, reservations ReservationStore) *VehicleService {
	return &VehicleService{vehicles: vehicles, reservations: reservations}
}

type CreateVehicleInput struct {
	Brand       string
	Model       string
	Plate       string
	VehicleType model.VehicleType
}

func (s *VehicleService) Create(ctx context.Context, principal model.Principal, input CreateVehicleInput) (*model.Vehicle, error) {
	if !principal.IsClient() {
		return nil, ErrPermissionDenied
	}

	input.Plate = strings.ToUpper(strings.TrimSpace(input.Plate))
	if input.Brand == "" || input.Model == "" || input.Plate == "" || !input.VehicleType.Valid() {
		return nil, ErrInvalidInput
	}

	taken, err := s.vehicles.ExistsByPlate(ctx, input.Plate, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	vehicle := &model.Vehicle{
		OwnerID:     principal.UserID,
		Brand:       strings.TrimSpace(input.Brand),
		Model:       strings.TrimSpace(input.Model),
		Plate:       input.Plate,
		VehicleType: input.VehicleType,
		IsActive:    true,
	}
	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) ListMine(ctx context.Context, principal model.Principal) ([]model.Vehicle, error) {
	return s.vehicles.ListByOwner(ctx, principal.UserID, true)
}

func (s *VehicleService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if vehicle.OwnerID != principal.UserID && !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return vehicle, nil
}

type UpdateVehicleInput struct {
	Brand       *string
	Model       *string
	Plate       *string
	VehicleType *model.VehicleType
}

func (s *VehicleService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input UpdateVehicleInput) (*model.Vehicle, error) {
	vehicle, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Brand != nil && strings.TrimSpace(*input.Brand) != "" {
		updates["brand"] = strings.TrimSpace(*input.Brand)
	}
	if input.Model != nil && strings.TrimSpace(*input.Model) != "" {
		updates["model"] = strings.TrimSpace(*input.Model)
	}
	if input.VehicleType != nil {
		if !input.VehicleType.Valid() {
			return nil, ErrInvalidInput
		}
		updates["vehicle_type"] = *input.VehicleType
	}
	if input.Plate != nil {
		plate := strings.ToUpper(strings.TrimSpace(*input.Plate))
		if plate == "" {
			return nil, ErrInvalidInput
		}
		if plate != vehicle.Plate {
			taken, err := s.vehicles.ExistsByPlate(ctx, plate, &vehicle.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrConflict
			}
			updates["plate"] = plate
		}
	}

	if len(updates) == 0 {
		return vehicle, nil
	}
	if err := s.vehicles.Update(ctx, vehicle.ID, updates); err != nil {
		return nil, err
	}
	return s.vehicles.GetByID(ctx, vehicle.ID)
}

// Delete soft-deletes a vehicle; it is rejected while any non-terminal
// reservation still references it.
func (s *VehicleService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	vehicle, err := s.Get(ctx, principal, id)
	if err != nil {
		return err
	}

	active, err := s.reservations.CountActiveByVehicle(ctx, vehicle.ID)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrConflict
	}

	return s.vehicles.Deactivate(ctx, vehicle.ID)
}
