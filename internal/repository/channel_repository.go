package repository

import (
	"context"
	"strings"

	"github.com/shinyyama/teamchat-backend/internal/model"
	"gorm.io/gorm"
)

type ChannelFilter struct {
	Search        string
	CaseSensitive bool
}

type ChannelRepository interface {
	Create(ctx context.Context, ch *model.Channel) error
	FindByID(ctx context.Context, id string) (*model.Channel, error)
	List(ctx context.Context, filter ChannelFilter) ([]model.Channel, error)
	SetDB(db *gorm.DB)
}

type channelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &channelRepository{db: db}
}

func (r *channelRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *channelRepository) Create(ctx context.Context, ch *model.Channel) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return translateCreateErr(r.db.WithContext(ctx).Omit("Creator").Create(ch).Error)
}

func (r *channelRepository) FindByID(ctx context.Context, id string) (*model.Channel, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var ch model.Channel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ch).Error; err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *channelRepository) List(ctx context.Context, filter ChannelFilter) ([]model.Channel, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	q := r.db.WithContext(ctx).Model(&model.Channel{})
	// Surrounding whitespace in the search box is not significant.
	if term := strings.TrimSpace(filter.Search); term != "" {
		pattern := "%" + escapeLike(term) + "%"
		if filter.CaseSensitive {
			q = q.Where("BINARY name LIKE ?", pattern)
		} else {
			q = q.Where("LOWER(name) LIKE LOWER(?)", pattern)
		}
	}
	var list []model.Channel
	if err := q.Order("created_at DESC").Order("id DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes term match literally inside a LIKE pattern.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
