package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carwash-service/internal/model"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) Create(ctx context.Context, message *model.ChatMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// Conversation returns the message history between two users, oldest first.
func (r *ChatRepository) Conversation(ctx context.Context, a, b uuid.UUID, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var messages []model.ChatMessage
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)", a, b, b, a).
		Order("created_at ASC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
