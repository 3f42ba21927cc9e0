package service

import (
	"context"
	"strings"

	"github.com/shinyyama/teamchat-backend/internal/metrics"
	"github.com/shinyyama/teamchat-backend/internal/model"
	"github.com/shinyyama/teamchat-backend/internal/repository"
	"go.uber.org/zap"
)

// ProfileService is the identity directory. Profiles are read-only here.
type ProfileService interface {
	// List never fails; storage errors are logged and yield an empty slice.
	List(ctx context.Context) []model.Profile
	// Get returns nil, nil when the profile does not exist.
	Get(ctx context.Context, id string) (*model.Profile, error)
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
}

type profileService struct {
	repo   repository.ProfileRepository
	logger *zap.Logger
}

func NewProfileService(repo repository.ProfileRepository, logger *zap.Logger) ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &profileService{repo: repo, logger: logger}
}

func (s *profileService) List(ctx context.Context) []model.Profile {
	list, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn("list profiles failed; returning empty directory", zap.Error(err))
		metrics.ObserveFailOpen("list_profiles")
		return []model.Profile{}
	}
	if list == nil {
		return []model.Profile{}
	}
	return list
}

func (s *profileService) Get(ctx context.Context, id string) (*model.Profile, error) {
	if isBlank(id) {
		return nil, nil
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil
		}
		return nil, storageError(ctx, s.logger, "get profile", err)
	}
	return p, nil
}

func (s *profileService) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, nil
	}
	p, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil
		}
		return nil, storageError(ctx, s.logger, "get profile by email", err)
	}
	return p, nil
}
