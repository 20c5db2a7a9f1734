package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carwash-service/internal/model"
)

type PaymentService struct {
	payments     PaymentStore
	reservations ReservationStore
	notifier     *Notifier
}

func NewPaymentService(payments PaymentStore, reservations ReservationStore, notifier *Notifier) *PaymentService {
	return &PaymentService{
		payments:     payments,
		reservations: reservations,
		notifier:     notifier,
	}
}

type CreatePaymentInput struct {
	ReservationID uuid.UUID
	Amount        float64
	PaymentMethod string
	TransactionID *string
	// Completed marks e.g. a cash payment settled immediately; gateway
	// payments start PENDING and complete via verify/webhook.
	Completed bool
}

// Create records a (possibly partial) payment toward the caller's
// reservation. Completed payments trigger reconciliation right away.
func (s *PaymentService) Create(ctx context.Context, principal model.Principal, input CreatePaymentInput) (*model.Payment, error) {
	if input.Amount <= 0 || strings.TrimSpace(input.PaymentMethod) == "" {
		return nil, ErrInvalidInput
	}

	reservation, err := s.reservations.GetByID(ctx, input.ReservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !principal.IsAdmin() && reservation.UserID != principal.UserID {
		return nil, ErrPermissionDenied
	}
	if reservation.Status == model.ReservationStatusCancelled {
		return nil, ErrInvalidStatus
	}

	status := model.PaymentStatusPending
	if input.Completed {
		status = model.PaymentStatusCompleted
	}
	payment := &model.Payment{
		ReservationID: reservation.ID,
		Amount:        input.Amount,
		Status:        status,
		PaymentMethod: strings.TrimSpace(input.PaymentMethod),
		TransactionID: input.TransactionID,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	if status == model.PaymentStatusCompleted {
		if err := s.reconcile(ctx, reservation.ID); err != nil {
			return nil, err
		}
	}
	return payment, nil
}

// Verify settles a gateway session by transaction id. Idempotent: only a
// PENDING payment transitions; verifying the same session again neither
// double-counts nor re-triggers side effects.
func (s *PaymentService) Verify(ctx context.Context, transactionID string) (*model.Payment, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return nil, ErrInvalidInput
	}

	payment, err := s.payments.GetByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	affected, err := s.payments.MarkCompleted(ctx, payment.ID)
	if err != nil {
		return nil, err
	}
	if affected > 0 {
		if err := s.reconcile(ctx, payment.ReservationID); err != nil {
			return nil, err
		}
	}

	payment.Status = model.PaymentStatusCompleted
	return payment, nil
}

// HandleWebhook is the gateway-facing variant of Verify; an unknown session
// id is acknowledged without effect so the gateway stops retrying.
func (s *PaymentService) HandleWebhook(ctx context.Context, transactionID string) error {
	_, err := s.Verify(ctx, transactionID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

func (s *PaymentService) Summary(ctx context.Context, principal model.Principal, reservationID uuid.UUID) (*model.PaymentSummary, error) {
	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	allowed := principal.IsAdmin() ||
		reservation.UserID == principal.UserID ||
		(reservation.WasherID != nil && *reservation.WasherID == principal.UserID)
	if !allowed {
		return nil, ErrPermissionDenied
	}

	total, err := s.payments.SumCompletedByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	return &model.PaymentSummary{
		ReservationID: reservationID,
		TotalAmount:   reservation.TotalAmount,
		TotalPaid:     total,
		Covered:       total >= reservation.TotalAmount,
		Payments:      payments,
	}, nil
}

// reconcile recomputes the paid total and, once it covers the reservation,
// marks the reservation COMPLETED. This is the payment path to COMPLETED,
// independent of the washer's proof-upload path.
func (s *PaymentService) reconcile(ctx context.Context, reservationID uuid.UUID) error {
	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}

	total, err := s.payments.SumCompletedByReservation(ctx, reservationID)
	if err != nil {
		return err
	}
	if total < reservation.TotalAmount {
		return nil
	}

	affected, err := s.reservations.MarkCompletedByPayment(ctx, reservationID)
	if err != nil {
		return err
	}
	if affected > 0 {
		s.notifier.Notify(ctx, reservation.UserID, model.NotificationTypePayment,
			"Payment received",
			"Your reservation is fully paid.",
			"/reservations/"+reservationID.String(),
			map[string]string{"reservation_id": reservationID.String()})
	}
	return nil
}
