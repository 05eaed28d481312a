package repository

import (
	"context"

	"github.com/bigbadbobbo/foodtruck-api/entity"

	"gorm.io/gorm"
)

type MessageRepository struct {
	store[entity.Message]
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{store[entity.Message]{DB: db}}
}

// FindForUser returns messages sent or received by userID.
func (r *MessageRepository) FindForUser(ctx context.Context, userID string, p Page) ([]entity.Message, error) {
	var msgs []entity.Message
	q := r.DB.WithContext(ctx).Model(&entity.Message{}).
		Where("sender_id = ? OR receiver_id = ?", userID, userID)
	q, err := p.window(q)
	if err != nil {
		return nil, err
	}
	err = q.Order("created_at DESC").Find(&msgs).Error
	return msgs, err
}
