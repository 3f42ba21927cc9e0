package service

import (
	"context"
	"errors"

	"github.com/shinyyama/teamchat-backend/internal/metrics"
	"github.com/shinyyama/teamchat-backend/internal/model"
	"github.com/shinyyama/teamchat-backend/internal/repository"
	"github.com/shinyyama/teamchat-backend/internal/view"
	"go.uber.org/zap"
)

// ReactionGroup is one emoji's aggregate on a message.
type ReactionGroup struct {
	Emoji         string   `json:"emoji"`
	Count         int      `json:"count"`
	ReactedBySelf bool     `json:"reactedBySelf"`
	ProfileIDs    []string `json:"profileIds"`
}

type ReactionService interface {
	// Add is idempotent per (message, profile, emoji).
	Add(ctx context.Context, messageID, profileID, emoji string) (*model.Reaction, error)
	Remove(ctx context.Context, messageID, profileID, emoji string) error
	List(ctx context.Context, messageID string) ([]model.Reaction, error)
	Summary(ctx context.Context, messageID, callerID string) ([]ReactionGroup, error)
}

type reactionService struct {
	deps
	repo     repository.ReactionRepository
	messages repository.MessageRepository
	profiles ProfileService
}

func NewReactionService(repo repository.ReactionRepository, messages repository.MessageRepository, profiles ProfileService, views view.Invalidator, logger *zap.Logger) ReactionService {
	return &reactionService{
		deps:     newDeps(logger, views),
		repo:     repo,
		messages: messages,
		profiles: profiles,
	}
}

func (s *reactionService) findMessage(ctx context.Context, id string) (*model.Message, error) {
	msg, err := s.messages.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFoundError("message")
		}
		return nil, storageError(ctx, s.logger, "find message", err)
	}
	return msg, nil
}

func (s *reactionService) Add(ctx context.Context, messageID, profileID, emoji string) (*model.Reaction, error) {
	if isBlank(messageID) {
		return nil, validationError("message id is required")
	}
	if isBlank(emoji) {
		return nil, validationError("emoji is required")
	}
	actor, err := resolveActor(ctx, s.profiles, profileID)
	if err != nil {
		return nil, err
	}
	msg, err := s.findMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}

	rc := &model.Reaction{
		ID:        newID(prefixReaction),
		Emoji:     emoji,
		MessageID: msg.ID,
		ProfileID: actor.ID,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, rc); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, storageError(ctx, s.logger, "create reaction", err)
		}
		// Lost the race or a repeat click: the existing row is the answer.
		metrics.ObserveReactionDuplicate()
		existing, ferr := s.repo.FindByTriple(ctx, msg.ID, actor.ID, emoji)
		if ferr != nil {
			return nil, storageError(ctx, s.logger, "fetch existing reaction", ferr)
		}
		existing.Profile = actor
		return existing, nil
	}
	rc.Profile = actor
	s.views.Invalidate(ctx, messageScope(msg))
	return rc, nil
}

func (s *reactionService) Remove(ctx context.Context, messageID, profileID, emoji string) error {
	if isBlank(messageID) {
		return validationError("message id is required")
	}
	if isBlank(emoji) {
		return validationError("emoji is required")
	}
	if isBlank(profileID) {
		return permissionError("no acting profile")
	}
	msg, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil
		}
		return storageError(ctx, s.logger, "find message", err)
	}
	if err := s.repo.Delete(ctx, msg.ID, profileID, emoji); err != nil {
		return storageError(ctx, s.logger, "delete reaction", err)
	}
	s.views.Invalidate(ctx, messageScope(msg))
	return nil
}

func (s *reactionService) List(ctx context.Context, messageID string) ([]model.Reaction, error) {
	if isBlank(messageID) {
		return nil, validationError("message id is required")
	}
	list, err := s.repo.ListByMessage(ctx, messageID)
	if err != nil {
		return nil, storageError(ctx, s.logger, "list reactions", err)
	}
	if list == nil {
		list = []model.Reaction{}
	}
	return list, nil
}

func (s *reactionService) Summary(ctx context.Context, messageID, callerID string) ([]ReactionGroup, error) {
	list, err := s.List(ctx, messageID)
	if err != nil {
		return nil, err
	}
	return GroupReactions(list, callerID), nil
}

// GroupReactions folds reactions into per-emoji groups in order of first
// appearance. A profile is counted once per emoji.
func GroupReactions(reactions []model.Reaction, callerID string) []ReactionGroup {
	groups := make([]ReactionGroup, 0)
	index := make(map[string]int)
	seen := make(map[[2]string]struct{})
	for _, r := range reactions {
		key := [2]string{r.Emoji, r.ProfileID}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		i, ok := index[r.Emoji]
		if !ok {
			i = len(groups)
			index[r.Emoji] = i
			groups = append(groups, ReactionGroup{Emoji: r.Emoji, ProfileIDs: []string{}})
		}
		g := &groups[i]
		g.Count++
		g.ProfileIDs = append(g.ProfileIDs, r.ProfileID)
		if callerID != "" && r.ProfileID == callerID {
			g.ReactedBySelf = true
		}
	}
	return groups
}
