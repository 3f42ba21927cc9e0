package service

import (
	"context"

	"github.com/shinyyama/teamchat-backend/internal/model"
	"github.com/shinyyama/teamchat-backend/internal/repository"
	"github.com/shinyyama/teamchat-backend/internal/view"
	"go.uber.org/zap"
)

type DirectMessageService interface {
	Create(ctx context.Context, content, senderID, recipientID string) (*model.DirectMessage, error)
	// ListConversation is symmetric in a and b and returns newest first.
	ListConversation(ctx context.Context, a, b string, limit int) ([]model.DirectMessage, error)
	Update(ctx context.Context, id, content, callerID string) (*model.DirectMessage, error)
	Delete(ctx context.Context, id, callerID string) error
}

type directMessageService struct {
	deps
	repo     repository.DirectMessageRepository
	profiles ProfileService
}

func NewDirectMessageService(repo repository.DirectMessageRepository, profiles ProfileService, views view.Invalidator, logger *zap.Logger) DirectMessageService {
	return &directMessageService{
		deps:     newDeps(logger, views),
		repo:     repo,
		profiles: profiles,
	}
}

func (s *directMessageService) Create(ctx context.Context, content, senderID, recipientID string) (*model.DirectMessage, error) {
	if isBlank(content) {
		return nil, validationError("content is required")
	}
	if isBlank(recipientID) {
		return nil, validationError("recipient id is required")
	}
	sender, err := resolveActor(ctx, s.profiles, senderID)
	if err != nil {
		return nil, err
	}
	if sender.ID == recipientID {
		return nil, validationError("cannot message yourself")
	}
	recipient, err := s.profiles.Get(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, notFoundError("recipient")
	}

	now := s.now()
	dm := &model.DirectMessage{
		ID:          newID(prefixDM),
		Content:     content,
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, dm); err != nil {
		return nil, storageError(ctx, s.logger, "create direct message", err)
	}
	created, err := s.repo.FindByID(ctx, dm.ID)
	if err != nil {
		return nil, storageError(ctx, s.logger, "refetch direct message", err)
	}
	s.views.Invalidate(ctx, view.Conversation(sender.ID, recipient.ID))
	return created, nil
}

func (s *directMessageService) ListConversation(ctx context.Context, a, b string, limit int) ([]model.DirectMessage, error) {
	if isBlank(a) || isBlank(b) {
		return nil, validationError("both participants are required")
	}
	list, err := s.repo.ListConversation(ctx, a, b, clampLimit(limit))
	if err != nil {
		return nil, storageError(ctx, s.logger, "list direct messages", err)
	}
	if list == nil {
		list = []model.DirectMessage{}
	}
	return list, nil
}

func (s *directMessageService) owned(ctx context.Context, id, callerID string) (*model.DirectMessage, error) {
	caller, err := resolveActor(ctx, s.profiles, callerID)
	if err != nil {
		return nil, err
	}
	if isBlank(id) {
		return nil, validationError("direct message id is required")
	}
	dm, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFoundError("direct message")
		}
		return nil, storageError(ctx, s.logger, "get direct message", err)
	}
	if dm.SenderID != caller.ID {
		return nil, permissionError("only the sender can change this message")
	}
	return dm, nil
}

func (s *directMessageService) Update(ctx context.Context, id, content, callerID string) (*model.DirectMessage, error) {
	if isBlank(content) {
		return nil, validationError("content is required")
	}
	dm, err := s.owned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateContent(ctx, dm.ID, content, s.now()); err != nil {
		return nil, storageError(ctx, s.logger, "update direct message", err)
	}
	updated, err := s.repo.FindByID(ctx, dm.ID)
	if err != nil {
		return nil, storageError(ctx, s.logger, "refetch direct message", err)
	}
	s.views.Invalidate(ctx, view.Conversation(dm.SenderID, dm.RecipientID))
	return updated, nil
}

func (s *directMessageService) Delete(ctx context.Context, id, callerID string) error {
	dm, err := s.owned(ctx, id, callerID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, dm.ID); err != nil {
		if repository.IsNotFound(err) {
			return notFoundError("direct message")
		}
		return storageError(ctx, s.logger, "delete direct message", err)
	}
	s.views.Invalidate(ctx, view.Conversation(dm.SenderID, dm.RecipientID))
	return nil
}
