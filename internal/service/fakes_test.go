package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"carwash-service/internal/model"
	"carwash-service/internal/repository"
)

// In-memory stores backing the service tests. They mirror the conditional
// update semantics of the SQL repositories, including the rows-affected
// return values the services key off.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserStore) put(u *model.User) *model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	f.put(user)
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUserStore) List(ctx context.Context, filter repository.UserFilter) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.User
	for _, u := range f.users {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStore) ListAvailableWashers(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.User
	for _, u := range f.users {
		if u.Role == model.UserRoleWasher && u.IsAvailable && u.IsActive {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) UpdateAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.IsAvailable = available
	}
	return nil
}

func (f *fakeUserStore) UpdateLocation(ctx context.Context, id uuid.UUID, lat, lng float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.Latitude = &lat
		u.Longitude = &lng
	}
	return nil
}

func (f *fakeUserStore) UpdateRating(ctx context.Context, washerID uuid.UUID, rating float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[washerID]; ok {
		u.Rating = rating
	}
	return nil
}

func (f *fakeUserStore) IncrementCompletedServices(ctx context.Context, washerID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[washerID]; ok {
		u.CompletedServices++
	}
	return nil
}

func (f *fakeUserStore) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.IsActive = active
	}
	return nil
}

type fakeReservationStore struct {
	mu           sync.Mutex
	reservations map[uuid.UUID]*model.Reservation
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{reservations: make(map[uuid.UUID]*model.Reservation)}
}

func (f *fakeReservationStore) put(r *model.Reservation) *model.Reservation {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	f.reservations[r.ID] = r
	return r
}

func (f *fakeReservationStore) List(ctx context.Context, filter repository.ReservationFilter) ([]model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Reservation
	for _, r := range f.reservations {
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		if filter.WasherID != nil && (r.WasherID == nil || *r.WasherID != *filter.WasherID) {
			continue
		}
		if filter.Unassigned && r.WasherID != nil {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, st := range filter.Statuses {
				if r.Status == st {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeReservationStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReservationStore) Create(ctx context.Context, reservation *model.Reservation) error {
	f.put(reservation)
	return nil
}

func (f *fakeReservationStore) Assign(ctx context.Context, id, washerID uuid.UUID, estimatedArrival *string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok || r.WasherID != nil || r.Status != model.ReservationStatusPending {
		return 0, nil
	}
	w := washerID
	r.WasherID = &w
	r.Status = model.ReservationStatusConfirmed
	r.EstimatedArrival = estimatedArrival
	return 1, nil
}

func (f *fakeReservationStore) Start(ctx context.Context, id, washerID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok || r.WasherID == nil || *r.WasherID != washerID || r.Status != model.ReservationStatusConfirmed {
		return 0, nil
	}
	r.Status = model.ReservationStatusInProgress
	return 1, nil
}

func (f *fakeReservationStore) Complete(ctx context.Context, id, washerID uuid.UUID, completedAt time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok || r.WasherID == nil || *r.WasherID != washerID || r.Status != model.ReservationStatusInProgress {
		return 0, nil
	}
	r.Status = model.ReservationStatusCompleted
	r.CompletedAt = &completedAt
	return 1, nil
}

func (f *fakeReservationStore) Cancel(ctx context.Context, id uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok || !r.CanCancel() {
		return 0, nil
	}
	r.Status = model.ReservationStatusCancelled
	return 1, nil
}

func (f *fakeReservationStore) MarkCompletedByPayment(ctx context.Context, id uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok || r.Status == model.ReservationStatusCompleted || r.Status == model.ReservationStatusCancelled {
		return 0, nil
	}
	r.Status = model.ReservationStatusCompleted
	now := time.Now()
	r.CompletedAt = &now
	return 1, nil
}

func (f *fakeReservationStore) UpdateSchedule(ctx context.Context, id uuid.UUID, scheduledDate time.Time, scheduledTime, address, notes string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.reservations[id]; ok {
		r.ScheduledDate = scheduledDate
		r.ScheduledTime = scheduledTime
		r.Address = address
		r.Notes = notes
	}
	return nil
}

func (f *fakeReservationStore) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.reservations, id)
	return nil
}

func (f *fakeReservationStore) CountActiveByVehicle(ctx context.Context, vehicleID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, r := range f.reservations {
		if r.VehicleID != vehicleID {
			continue
		}
		if r.Status == model.ReservationStatusCompleted || r.Status == model.ReservationStatusCancelled {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeReservationStore) CountByService(ctx context.Context, serviceID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, r := range f.reservations {
		if r.ServiceID == serviceID {
			count++
		}
	}
	return count, nil
}

func (f *fakeReservationStore) BusyWashers(ctx context.Context, washerIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	busy := make(map[uuid.UUID]bool)
	for _, r := range f.reservations {
		if r.Status != model.ReservationStatusInProgress || r.WasherID == nil {
			continue
		}
		for _, id := range washerIDs {
			if *r.WasherID == id {
				busy[id] = true
			}
		}
	}
	return busy, nil
}

type fakeVehicleStore struct {
	mu       sync.Mutex
	vehicles map[uuid.UUID]*model.Vehicle
}

func newFakeVehicleStore() *fakeVehicleStore {
	return &fakeVehicleStore{vehicles: make(map[uuid.UUID]*model.Vehicle)}
}

func (f *fakeVehicleStore) put(v *model.Vehicle) *model.Vehicle {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	f.vehicles[v.ID] = v
	return v
}

func (f *fakeVehicleStore) Create(ctx context.Context, vehicle *model.Vehicle) error {
	f.put(vehicle)
	return nil
}

func (f *fakeVehicleStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vehicles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *v
	return &copied, nil
}

func (f *fakeVehicleStore) ExistsByPlate(ctx context.Context, plate string, excludeID *uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.vehicles {
		if excludeID != nil && v.ID == *excludeID {
			continue
		}
		if v.Plate == plate {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeVehicleStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, activeOnly bool) ([]model.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Vehicle
	for _, v := range f.vehicles {
		if v.OwnerID != ownerID {
			continue
		}
		if activeOnly && !v.IsActive {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (f *fakeVehicleStore) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vehicles[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if brand, ok := updates["brand"].(string); ok {
		v.Brand = brand
	}
	if mdl, ok := updates["model"].(string); ok {
		v.Model = mdl
	}
	if plate, ok := updates["plate"].(string); ok {
		v.Plate = plate
	}
	if vt, ok := updates["vehicle_type"].(model.VehicleType); ok {
		v.VehicleType = vt
	}
	return nil
}

func (f *fakeVehicleStore) Deactivate(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.vehicles[id]; ok {
		v.IsActive = false
	}
	return nil
}

type fakeCatalogStore struct {
	mu       sync.Mutex
	services map[uuid.UUID]*model.WashService
}

func newFakeCatalogStore() *fakeCatalogStore {
	return &fakeCatalogStore{services: make(map[uuid.UUID]*model.WashService)}
}

func (f *fakeCatalogStore) put(s *model.WashService) *model.WashService {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.services[s.ID] = s
	return s
}

func (f *fakeCatalogStore) Create(ctx context.Context, svc *model.WashService) error {
	f.put(svc)
	return nil
}

func (f *fakeCatalogStore) GetByID(ctx context.Context, id uuid.UUID) (*model.WashService, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeCatalogStore) List(ctx context.Context, activeOnly bool, vehicleType *model.VehicleType) ([]model.WashService, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.WashService
	for _, s := range f.services {
		if activeOnly && !s.IsActive {
			continue
		}
		if vehicleType != nil && s.VehicleType != *vehicleType {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeCatalogStore) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.services[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if name, ok := updates["name"].(string); ok {
		s.Name = name
	}
	if desc, ok := updates["description"].(string); ok {
		s.Description = desc
	}
	if price, ok := updates["price"].(float64); ok {
		s.Price = price
	}
	if dur, ok := updates["duration_minutes"].(int); ok {
		s.DurationMinutes = dur
	}
	if active, ok := updates["is_active"].(bool); ok {
		s.IsActive = active
	}
	return nil
}

func (f *fakeCatalogStore) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.services, id)
	return nil
}

type fakePaymentStore struct {
	mu       sync.Mutex
	payments map[uuid.UUID]*model.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: make(map[uuid.UUID]*model.Payment)}
}

func (f *fakePaymentStore) Create(ctx context.Context, payment *model.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	copied := *payment
	f.payments[payment.ID] = &copied
	return nil
}

func (f *fakePaymentStore) GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.payments {
		if p.TransactionID != nil && *p.TransactionID == transactionID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePaymentStore) MarkCompleted(ctx context.Context, id uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[id]
	if !ok || p.Status != model.PaymentStatusPending {
		return 0, nil
	}
	p.Status = model.PaymentStatusCompleted
	return 1, nil
}

func (f *fakePaymentStore) SumCompletedByReservation(ctx context.Context, reservationID uuid.UUID) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum float64
	for _, p := range f.payments {
		if p.ReservationID == reservationID && p.Status == model.PaymentStatusCompleted {
			sum += p.Amount
		}
	}
	return sum, nil
}

func (f *fakePaymentStore) CountCompletedByReservation(ctx context.Context, reservationID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, p := range f.payments {
		if p.ReservationID == reservationID && p.Status == model.PaymentStatusCompleted {
			count++
		}
	}
	return count, nil
}

func (f *fakePaymentStore) ListByReservation(ctx context.Context, reservationID uuid.UUID) ([]model.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Payment
	for _, p := range f.payments {
		if p.ReservationID == reservationID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeRatingStore struct {
	mu      sync.Mutex
	ratings []*model.Rating
}

func newFakeRatingStore() *fakeRatingStore {
	return &fakeRatingStore{}
}

func (f *fakeRatingStore) Create(ctx context.Context, rating *model.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rating.ID == uuid.Nil {
		rating.ID = uuid.New()
	}
	copied := *rating
	f.ratings = append(f.ratings, &copied)
	return nil
}

func (f *fakeRatingStore) ExistsByReservation(ctx context.Context, reservationID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.ratings {
		if r.ReservationID == reservationID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRatingStore) AverageForWasher(ctx context.Context, washerID uuid.UUID) (float64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum float64
	var count int64
	for _, r := range f.ratings {
		if r.WasherID == washerID {
			sum += float64(r.Stars)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return sum / float64(count), count, nil
}

func (f *fakeRatingStore) ListByWasher(ctx context.Context, washerID uuid.UUID, limit int) ([]model.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Rating
	for _, r := range f.ratings {
		if r.WasherID != washerID {
			continue
		}
		out = append(out, *r)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

type fakeNotificationStore struct {
	mu            sync.Mutex
	notifications []*model.Notification
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{}
}

func (f *fakeNotificationStore) Create(ctx context.Context, notification *model.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	copied := *notification
	f.notifications = append(f.notifications, &copied)
	return nil
}

func (f *fakeNotificationStore) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Notification
	for _, n := range f.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, *n)
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkRead(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.ID == id && n.UserID == userID && !n.IsRead {
			n.IsRead = true
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeNotificationStore) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationStore) countFor(userID uuid.UUID, notifType model.NotificationType) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, n := range f.notifications {
		if n.UserID == userID && n.Type == notifType {
			count++
		}
	}
	return count
}

type fakeProofStore struct {
	mu     sync.Mutex
	proofs map[uuid.UUID]*model.ServiceProof
}

func newFakeProofStore() *fakeProofStore {
	return &fakeProofStore{proofs: make(map[uuid.UUID]*model.ServiceProof)}
}

func (f *fakeProofStore) Upsert(ctx context.Context, proof *model.ServiceProof) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *proof
	f.proofs[proof.ReservationID] = &copied
	return nil
}

func (f *fakeProofStore) GetByReservation(ctx context.Context, reservationID uuid.UUID) (*model.ServiceProof, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.proofs[reservationID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

type fakeChatStore struct {
	mu       sync.Mutex
	messages []*model.ChatMessage
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{}
}

func (f *fakeChatStore) Create(ctx context.Context, message *model.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	copied := *message
	f.messages = append(f.messages, &copied)
	return nil
}

func (f *fakeChatStore) Conversation(ctx context.Context, a, b uuid.UUID, limit int) ([]model.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ChatMessage
	for _, m := range f.messages {
		if (m.SenderID == a && m.RecipientID == b) || (m.SenderID == b && m.RecipientID == a) {
			out = append(out, *m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func testNotifier(store NotificationStore) *Notifier {
	return NewNotifier(store, zerolog.Nop())
}
