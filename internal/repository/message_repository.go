package repository

import (
	"context"
	"time"

	"github.com/shinyyama/teamchat-backend/internal/model"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	FindByID(ctx context.Context, id string) (*model.Message, error)
	ListTopLevel(ctx context.Context, channelID string, limit int) ([]model.Message, error)
	ListReplies(ctx context.Context, parentID string) ([]model.Message, error)
	UpdateContent(ctx context.Context, id, content string, updatedAt time.Time) error
	// Delete removes the message, its replies when it is a thread parent,
	// and every reaction attached to the removed rows.
	Delete(ctx context.Context, id string) error
	SetDB(db *gorm.DB)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return translateCreateErr(r.db.WithContext(ctx).Omit("Author").Create(msg).Error)
}

func (r *messageRepository) FindByID(ctx context.Context, id string) (*model.Message, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var msg model.Message
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) ListTopLevel(ctx context.Context, channelID string, limit int) ([]model.Message, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var msgs []model.Message
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("channel_id = ? AND parent_id IS NULL", channelID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepository) ListReplies(ctx context.Context, parentID string) ([]model.Message, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var msgs []model.Message
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepository) UpdateContent(ctx context.Context, id, content string, updatedAt time.Time) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":    content,
			"edited":     true,
			"updated_at": updatedAt,
		}).Error
}

func (r *messageRepository) Delete(ctx context.Context, id string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := []string{id}
		var replyIDs []string
		if err := tx.Model(&model.Message{}).
			Where("parent_id = ?", id).
			Pluck("id", &replyIDs).Error; err != nil {
			return err
		}
		ids = append(ids, replyIDs...)
		if err := tx.Where("message_id IN ?", ids).Delete(&model.Reaction{}).Error; err != nil {
			return err
		}
		if len(replyIDs) > 0 {
			if err := tx.Where("id IN ?", replyIDs).Delete(&model.Message{}).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&model.Message{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
