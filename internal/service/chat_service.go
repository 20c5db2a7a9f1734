package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"carwash-service/internal/chat"
	"carwash-service/internal/model"
)

type ChatService struct {
	messages ChatStore
	registry *chat.Registry
}

func NewChatService(messages ChatStore, registry *chat.Registry) *ChatService {
	return &ChatService{messages: messages, registry: registry}
}

// Send persists the message, then forwards it to the recipient's live
// connection if they have one. Delivery is best-effort; persistence is not.
func (s *ChatService) Send(ctx context.Context, principal model.Principal, recipientID uuid.UUID, body string) (*model.ChatMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" || recipientID == uuid.Nil || recipientID == principal.UserID {
		return nil, ErrInvalidInput
	}

	message := &model.ChatMessage{
		SenderID:    principal.UserID,
		RecipientID: recipientID,
		Body:        body,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	s.registry.Send(recipientID, message)
	return message, nil
}

func (s *ChatService) History(ctx context.Context, principal model.Principal, peerID uuid.UUID, limit int) (*model.ChatHistory, error) {
	if peerID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	messages, err := s.messages.Conversation(ctx, principal.UserID, peerID, limit)
	if err != nil {
		return nil, err
	}
	return &model.ChatHistory{
		PeerID:    peerID,
		Messages:  messages,
		FetchedAt: time.Now(),
	}, nil
}
