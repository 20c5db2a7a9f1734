package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carwash-service/internal/chat"
	"carwash-service/internal/model"
)

type recordingConn struct {
	payloads []interface{}
}

func (c *recordingConn) WriteJSON(v interface{}) error {
	c.payloads = append(c.payloads, v)
	return nil
}

func (c *recordingConn) Close() error { return nil }

func TestChatServiceSend(t *testing.T) {
	ctx := context.Background()

	t.Run("PersistsAndDeliversWhenOnline", func(t *testing.T) {
		registry := chat.NewRegistry()
		store := newFakeChatStore()
		svc := NewChatService(store, registry)

		sender := model.Principal{UserID: uuid.New(), Role: model.UserRoleClient}
		recipientID := uuid.New()
		conn := &recordingConn{}
		registry.Register(recipientID, conn)

		msg, err := svc.Send(ctx, sender, recipientID, "  on my way  ")
		require.NoError(t, err)
		assert.Equal(t, "on my way", msg.Body)
		require.Len(t, conn.payloads, 1)

		history, err := svc.History(ctx, sender, recipientID, 0)
		require.NoError(t, err)
		require.Len(t, history.Messages, 1)
	})

	t.Run("PersistsWhenRecipientOffline", func(t *testing.T) {
		registry := chat.NewRegistry()
		store := newFakeChatStore()
		svc := NewChatService(store, registry)

		sender := model.Principal{UserID: uuid.New(), Role: model.UserRoleWasher}
		recipientID := uuid.New()

		_, err := svc.Send(ctx, sender, recipientID, "done, photos attached")
		require.NoError(t, err)

		history, err := svc.History(ctx, sender, recipientID, 0)
		require.NoError(t, err)
		assert.Len(t, history.Messages, 1)
	})

	t.Run("RejectsEmptyAndSelfMessages", func(t *testing.T) {
		svc := NewChatService(newFakeChatStore(), chat.NewRegistry())
		sender := model.Principal{UserID: uuid.New(), Role: model.UserRoleClient}

		_, err := svc.Send(ctx, sender, uuid.New(), "   ")
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = svc.Send(ctx, sender, sender.UserID, "hello me")
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = svc.Send(ctx, sender, uuid.Nil, "hello nobody")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
