package service

import (
	"context"
	"sort"

	"github.com/shinyyama/teamchat-backend/internal/model"
	"github.com/shinyyama/teamchat-backend/internal/repository"
	"go.uber.org/zap"
)

// ConversationService discovers who a profile has exchanged direct messages with.
type ConversationService interface {
	// List returns each counterpart once, sorted by name.
	List(ctx context.Context, profileID string) ([]model.Profile, error)
}

type conversationService struct {
	dms      repository.DirectMessageRepository
	profiles ProfileService
	logger   *zap.Logger
}

func NewConversationService(dms repository.DirectMessageRepository, profiles ProfileService, logger *zap.Logger) ConversationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &conversationService{dms: dms, profiles: profiles, logger: logger}
}

func (s *conversationService) List(ctx context.Context, profileID string) ([]model.Profile, error) {
	if isBlank(profileID) {
		return nil, validationError("profile id is required")
	}
	dms, err := s.dms.ListByParticipant(ctx, profileID)
	if err != nil {
		return nil, storageError(ctx, s.logger, "scan direct messages", err)
	}

	others := make(map[string]struct{})
	for _, dm := range dms {
		other := dm.RecipientID
		if dm.RecipientID == profileID {
			other = dm.SenderID
		}
		if other == profileID {
			continue
		}
		others[other] = struct{}{}
	}

	out := make([]model.Profile, 0, len(others))
	for id := range others {
		p, err := s.profiles.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			s.logger.Debug("conversation counterpart no longer exists", zap.String("profile_id", id))
			continue
		}
		out = append(out, *p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
