package repository

import (
	"context"
	"time"

	"github.com/shinyyama/teamchat-backend/internal/model"
	"gorm.io/gorm"
)

type DirectMessageRepository interface {
	Create(ctx context.Context, dm *model.DirectMessage) error
	FindByID(ctx context.Context, id string) (*model.DirectMessage, error)
	ListConversation(ctx context.Context, profileA, profileB string, limit int) ([]model.DirectMessage, error)
	ListByParticipant(ctx context.Context, profileID string) ([]model.DirectMessage, error)
	UpdateContent(ctx context.Context, id, content string, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	SetDB(db *gorm.DB)
}

type directMessageRepository struct {
	db *gorm.DB
}

func NewDirectMessageRepository(db *gorm.DB) DirectMessageRepository {
	return &directMessageRepository{db: db}
}

func (r *directMessageRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *directMessageRepository) Create(ctx context.Context, dm *model.DirectMessage) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return translateCreateErr(r.db.WithContext(ctx).Create(dm).Error)
}

func (r *directMessageRepository) FindByID(ctx context.Context, id string) (*model.DirectMessage, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var dm model.DirectMessage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&dm).Error; err != nil {
		return nil, err
	}
	return &dm, nil
}

func (r *directMessageRepository) ListConversation(ctx context.Context, profileA, profileB string, limit int) ([]model.DirectMessage, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.DirectMessage
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			profileA, profileB, profileB, profileA).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListByParticipant returns every direct message the profile sent or received.
// Conversation discovery scans this; a distinct counterpart query would scale better.
func (r *directMessageRepository) ListByParticipant(ctx context.Context, profileID string) ([]model.DirectMessage, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.DirectMessage
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", profileID, profileID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *directMessageRepository) UpdateContent(ctx context.Context, id, content string, updatedAt time.Time) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).
		Model(&model.DirectMessage{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":    content,
			"edited":     true,
			"updated_at": updatedAt,
		}).Error
}

func (r *directMessageRepository) Delete(ctx context.Context, id string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.DirectMessage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
