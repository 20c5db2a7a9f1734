package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carwash-service/internal/model"
)

type reservationFixture struct {
	svc           *ReservationService
	reservations  *fakeReservationStore
	vehicles      *fakeVehicleStore
	catalog       *fakeCatalogStore
	payments      *fakePaymentStore
	notifications *fakeNotificationStore
}

func newReservationFixture() reservationFixture {
	f := reservationFixture{
		reservations:  newFakeReservationStore(),
		vehicles:      newFakeVehicleStore(),
		catalog:       newFakeCatalogStore(),
		payments:      newFakePaymentStore(),
		notifications: newFakeNotificationStore(),
	}
	f.svc = NewReservationService(f.reservations, f.vehicles, f.catalog, f.payments, testNotifier(f.notifications))
	return f
}

func (f reservationFixture) seedClient() (model.Principal, *model.Vehicle, *model.WashService) {
	clientID := uuid.New()
	vehicle := f.vehicles.put(&model.Vehicle{
		OwnerID:     clientID,
		Brand:       "Toyota",
		Model:       "Corolla",
		Plate:       "ABC123",
		VehicleType: model.VehicleTypeSedan,
		IsActive:    true,
	})
	svc := f.catalog.put(&model.WashService{
		Name:            "Full wash",
		Price:           350,
		DurationMinutes: 60,
		VehicleType:     model.VehicleTypeSedan,
		IsActive:        true,
	})
	return model.Principal{UserID: clientID, Role: model.UserRoleClient}, vehicle, svc
}

func validInput(vehicle *model.Vehicle, svc *model.WashService) CreateReservationInput {
	return CreateReservationInput{
		VehicleID:     vehicle.ID,
		ServiceID:     svc.ID,
		ScheduledDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		ScheduledTime: "10:30",
		Address:       "Calle Reforma 222",
	}
}

func TestReservationServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("SnapshotsCatalogPrice", func(t *testing.T) {
		f := newReservationFixture()
		client, vehicle, svc := f.seedClient()

		res, err := f.svc.Create(ctx, client, validInput(vehicle, svc))
		require.NoError(t, err)
		assert.Equal(t, model.ReservationStatusPending, res.Status)
		assert.Nil(t, res.WasherID)
		assert.Equal(t, 350.0, res.TotalAmount)

		// A later price change never touches the booked total.
		require.NoError(t, f.catalog.Update(ctx, svc.ID, map[string]interface{}{"price": 500.0}))
		got, err := f.reservations.GetByID(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, 350.0, got.TotalAmount)
	})

	t.Run("RejectsForeignVehicle", func(t *testing.T) {
		f := newReservationFixture()
		_, vehicle, svc := f.seedClient()
		other := model.Principal{UserID: uuid.New(), Role: model.UserRoleClient}

		_, err := f.svc.Create(ctx, other, validInput(vehicle, svc))
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("RejectsInactiveService", func(t *testing.T) {
		f := newReservationFixture()
		client, vehicle, svc := f.seedClient()
		require.NoError(t, f.catalog.Update(ctx, svc.ID, map[string]interface{}{"is_active": false}))

		_, err := f.svc.Create(ctx, client, validInput(vehicle, svc))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("RejectsInactiveVehicle", func(t *testing.T) {
		f := newReservationFixture()
		client, vehicle, svc := f.seedClient()
		require.NoError(t, f.vehicles.Deactivate(ctx, vehicle.ID))

		_, err := f.svc.Create(ctx, client, validInput(vehicle, svc))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("WashersCannotBook", func(t *testing.T) {
		f := newReservationFixture()
		_, vehicle, svc := f.seedClient()
		washer := model.Principal{UserID: uuid.New(), Role: model.UserRoleWasher}

		_, err := f.svc.Create(ctx, washer, validInput(vehicle, svc))
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("RequiresAddressAndSchedule", func(t *testing.T) {
		f := newReservationFixture()
		client, vehicle, svc := f.seedClient()

		input := validInput(vehicle, svc)
		input.Address = "   "
		_, err := f.svc.Create(ctx, client, input)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestReservationServiceVisibility(t *testing.T) {
	ctx := context.Background()

	t.Run("ClientSeesOnlyOwnBookings", func(t *testing.T) {
		f := newReservationFixture()
		clientID := uuid.New()
		f.reservations.put(&model.Reservation{UserID: clientID, Status: model.ReservationStatusPending})
		f.reservations.put(&model.Reservation{UserID: uuid.New(), Status: model.ReservationStatusPending})

		got, err := f.svc.List(ctx, model.Principal{UserID: clientID, Role: model.UserRoleClient}, ListReservationsOptions{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, clientID, got[0].UserID)
	})

	t.Run("WasherSeesOnlyAssignedJobs", func(t *testing.T) {
		f := newReservationFixture()
		washerID := uuid.New()
		w := washerID
		f.reservations.put(&model.Reservation{UserID: uuid.New(), WasherID: &w, Status: model.ReservationStatusConfirmed})
		f.reservations.put(&model.Reservation{UserID: uuid.New(), Status: model.ReservationStatusPending})

		got, err := f.svc.List(ctx, model.Principal{UserID: washerID, Role: model.UserRoleWasher}, ListReservationsOptions{})
		require.NoError(t, err)
		require.Len(t, got, 1)
	})

	t.Run("StrangerCannotFetchDetails", func(t *testing.T) {
		f := newReservationFixture()
		res := f.reservations.put(&model.Reservation{UserID: uuid.New(), Status: model.ReservationStatusPending})

		_, err := f.svc.Get(ctx, model.Principal{UserID: uuid.New(), Role: model.UserRoleClient}, res.ID)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("AdminSeesEverything", func(t *testing.T) {
		f := newReservationFixture()
		f.reservations.put(&model.Reservation{UserID: uuid.New(), Status: model.ReservationStatusPending})
		f.reservations.put(&model.Reservation{UserID: uuid.New(), Status: model.ReservationStatusCompleted})

		got, err := f.svc.List(ctx, model.Principal{UserID: uuid.New(), Role: model.UserRoleAdmin}, ListReservationsOptions{})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestReservationServiceCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("PendingAndConfirmedCancellable", func(t *testing.T) {
		for _, status := range []model.ReservationStatus{model.ReservationStatusPending, model.ReservationStatusConfirmed} {
			f := newReservationFixture()
			clientID := uuid.New()
			res := f.reservations.put(&model.Reservation{UserID: clientID, Status: status})

			err := f.svc.Cancel(ctx, model.Principal{UserID: clientID, Role: model.UserRoleClient}, res.ID)
			require.NoError(t, err)

			got, err := f.reservations.GetByID(ctx, res.ID)
			require.NoError(t, err)
			assert.Equal(t, model.ReservationStatusCancelled, got.Status)
		}
	})

	t.Run("InProgressNotCancellable", func(t *testing.T) {
		f := newReservationFixture()
		clientID := uuid.New()
		res := f.reservations.put(&model.Reservation{UserID: clientID, Status: model.ReservationStatusInProgress})

		err := f.svc.Cancel(ctx, model.Principal{UserID: clientID, Role: model.UserRoleClient}, res.ID)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("NotifiesAssignedWasher", func(t *testing.T) {
		f := newReservationFixture()
		clientID := uuid.New()
		washerID := uuid.New()
		w := washerID
		res := f.reservations.put(&model.Reservation{UserID: clientID, WasherID: &w, Status: model.ReservationStatusConfirmed})

		require.NoError(t, f.svc.Cancel(ctx, model.Principal{UserID: clientID, Role: model.UserRoleClient}, res.ID))
		assert.Equal(t, 1, f.notifications.countFor(washerID, model.NotificationTypeJobCancelled))
	})
}

func TestReservationServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("BlockedByCompletedPayment", func(t *testing.T) {
		f := newReservationFixture()
		clientID := uuid.New()
		res := f.reservations.put(&model.Reservation{UserID: clientID, Status: model.ReservationStatusCancelled})
		require.NoError(t, f.payments.Create(ctx, &model.Payment{
			ReservationID: res.ID,
			Amount:        100,
			Status:        model.PaymentStatusCompleted,
			PaymentMethod: "cash",
		}))

		err := f.svc.Delete(ctx, model.Principal{UserID: clientID, Role: model.UserRoleClient}, res.ID)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("DeletesUnpaidReservation", func(t *testing.T) {
		f := newReservationFixture()
		clientID := uuid.New()
		res := f.reservations.put(&model.Reservation{UserID: clientID, Status: model.ReservationStatusCancelled})

		require.NoError(t, f.svc.Delete(ctx, model.Principal{UserID: clientID, Role: model.UserRoleClient}, res.ID))
		_, err := f.reservations.GetByID(ctx, res.ID)
		assert.Error(t, err)
	})
}
