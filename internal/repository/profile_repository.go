package repository

import (
	"context"

	"github.com/shinyyama/teamchat-backend/internal/model"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	List(ctx context.Context) ([]model.Profile, error)
	FindByID(ctx context.Context, id string) (*model.Profile, error)
	FindByEmail(ctx context.Context, email string) (*model.Profile, error)
	Save(ctx context.Context, p *model.Profile) error
	Count(ctx context.Context) (int64, error)
	SetDB(db *gorm.DB)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *profileRepository) List(ctx context.Context) ([]model.Profile, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Profile
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *profileRepository) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var p model.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var p model.Profile
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Save inserts the profile or replaces it when the id already exists.
func (r *profileRepository) Save(ctx context.Context, p *model.Profile) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *profileRepository) Count(ctx context.Context) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.Profile{}).Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}
