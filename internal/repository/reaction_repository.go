package repository

import (
	"context"

	"github.com/shinyyama/teamchat-backend/internal/model"
	"gorm.io/gorm"
)

type ReactionRepository interface {
	// Create returns ErrDuplicate when the (message, profile, emoji) triple already exists.
	Create(ctx context.Context, r *model.Reaction) error
	FindByTriple(ctx context.Context, messageID, profileID, emoji string) (*model.Reaction, error)
	Delete(ctx context.Context, messageID, profileID, emoji string) error
	ListByMessage(ctx context.Context, messageID string) ([]model.Reaction, error)
	SetDB(db *gorm.DB)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *reactionRepository) Create(ctx context.Context, rc *model.Reaction) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return translateCreateErr(r.db.WithContext(ctx).Omit("Profile").Create(rc).Error)
}

func (r *reactionRepository) FindByTriple(ctx context.Context, messageID, profileID, emoji string) (*model.Reaction, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var rc model.Reaction
	if err := r.db.WithContext(ctx).
		Where("message_id = ? AND profile_id = ? AND emoji = ?", messageID, profileID, emoji).
		First(&rc).Error; err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *reactionRepository) Delete(ctx context.Context, messageID, profileID, emoji string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).
		Where("message_id = ? AND profile_id = ? AND emoji = ?", messageID, profileID, emoji).
		Delete(&model.Reaction{}).Error
}

func (r *reactionRepository) ListByMessage(ctx context.Context, messageID string) ([]model.Reaction, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Reaction
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("message_id = ?", messageID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
