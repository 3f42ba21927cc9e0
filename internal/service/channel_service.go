package service

import (
	"context"
	"strings"

	"github.com/shinyyama/teamchat-backend/internal/metrics"
	"github.com/shinyyama/teamchat-backend/internal/model"
	"github.com/shinyyama/teamchat-backend/internal/repository"
	"github.com/shinyyama/teamchat-backend/internal/view"
	"go.uber.org/zap"
)

type ChannelService interface {
	Create(ctx context.Context, callerID, name string, description *string, visibility model.Visibility) (*model.Channel, error)
	// List is newest-first and fails open to an empty slice.
	List(ctx context.Context, search string) []model.Channel
	Get(ctx context.Context, id string) (*model.Channel, error)
}

type channelService struct {
	deps
	repo          repository.ChannelRepository
	profiles      ProfileService
	caseSensitive bool
}

func NewChannelService(repo repository.ChannelRepository, profiles ProfileService, views view.Invalidator, caseSensitiveSearch bool, logger *zap.Logger) ChannelService {
	return &channelService{
		deps:          newDeps(logger, views),
		repo:          repo,
		profiles:      profiles,
		caseSensitive: caseSensitiveSearch,
	}
}

func (s *channelService) Create(ctx context.Context, callerID, name string, description *string, visibility model.Visibility) (*model.Channel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("channel name is required")
	}
	if visibility == "" {
		visibility = model.VisibilityPublic
	}
	if !visibility.Valid() {
		return nil, validationError("visibility must be public or private")
	}
	creator, err := resolveActor(ctx, s.profiles, callerID)
	if err != nil {
		return nil, err
	}
	if description != nil && isBlank(*description) {
		description = nil
	}

	now := s.now()
	ch := &model.Channel{
		ID:          newID(prefixChannel),
		Name:        name,
		Description: description,
		CreatorID:   creator.ID,
		Visibility:  visibility,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, ch); err != nil {
		return nil, storageError(ctx, s.logger, "create channel", err)
	}
	created, err := s.repo.FindByID(ctx, ch.ID)
	if err != nil {
		return nil, storageError(ctx, s.logger, "refetch channel", err)
	}
	s.views.Invalidate(ctx, view.ChannelList())
	return created, nil
}

func (s *channelService) List(ctx context.Context, search string) []model.Channel {
	list, err := s.repo.List(ctx, repository.ChannelFilter{
		Search:        search,
		CaseSensitive: s.caseSensitive,
	})
	if err != nil {
		s.logger.Warn("list channels failed; returning empty directory", zap.Error(err), zap.String("search", search))
		metrics.ObserveFailOpen("list_channels")
		return []model.Channel{}
	}
	if list == nil {
		return []model.Channel{}
	}
	return list
}

func (s *channelService) Get(ctx context.Context, id string) (*model.Channel, error) {
	if isBlank(id) {
		return nil, validationError("channel id is required")
	}
	ch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFoundError("channel")
		}
		return nil, storageError(ctx, s.logger, "get channel", err)
	}
	return ch, nil
}
