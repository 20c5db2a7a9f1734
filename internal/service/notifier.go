package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"carwash-service/internal/model"
)

// Notifier writes user-facing notifications as a best-effort side effect.
// A failed write is logged and swallowed: core state changes must never be
// rolled back because a notification could not be stored.
type Notifier struct {
	store NotificationStore
	log   zerolog.Logger
}

func NewNotifier(store NotificationStore, log zerolog.Logger) *Notifier {
	return &Notifier{store: store, log: log}
}

func (n *Notifier) Notify(ctx context.Context, userID uuid.UUID, notifType model.NotificationType, title, message, actionURL string, metadata map[string]string) {
	notification := &model.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      notifType,
		ActionURL: actionURL,
		Metadata:  metadata,
	}
	if err := n.store.Create(ctx, notification); err != nil {
		n.log.Error().
			Err(err).
			Str("user_id", userID.String()).
			Str("type", string(notifType)).
			Msg("notification write failed")
	}
}
