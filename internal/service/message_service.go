package service

import (
	"context"

	"github.com/shinyyama/teamchat-backend/internal/model"
	"github.com/shinyyama/teamchat-backend/internal/repository"
	"github.com/shinyyama/teamchat-backend/internal/view"
	"go.uber.org/zap"
)

type MessageService interface {
	// Create posts to a channel; a non-empty parentID makes it a thread reply.
	Create(ctx context.Context, content, channelID, authorID, parentID string) (*model.Message, error)
	// ListTopLevel returns at most limit top-level messages, newest first.
	ListTopLevel(ctx context.Context, channelID string, limit int) ([]model.Message, error)
	Get(ctx context.Context, id string) (*model.Message, error)
	Update(ctx context.Context, id, content, callerID string) (*model.Message, error)
	Delete(ctx context.Context, id, callerID string) error
}

type messageService struct {
	deps
	repo     repository.MessageRepository
	channels repository.ChannelRepository
	profiles ProfileService
}

func NewMessageService(repo repository.MessageRepository, channels repository.ChannelRepository, profiles ProfileService, views view.Invalidator, logger *zap.Logger) MessageService {
	return &messageService{
		deps:     newDeps(logger, views),
		repo:     repo,
		channels: channels,
		profiles: profiles,
	}
}

func (s *messageService) Create(ctx context.Context, content, channelID, authorID, parentID string) (*model.Message, error) {
	if isBlank(content) {
		return nil, validationError("content is required")
	}
	if isBlank(channelID) {
		return nil, validationError("channel id is required")
	}
	author, err := resolveActor(ctx, s.profiles, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.channels.FindByID(ctx, channelID); err != nil {
		if repository.IsNotFound(err) {
			return nil, notFoundError("channel")
		}
		return nil, storageError(ctx, s.logger, "find channel", err)
	}

	var parentRef *string
	if !isBlank(parentID) {
		parent, err := s.repo.FindByID(ctx, parentID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, notFoundError("parent message")
			}
			return nil, storageError(ctx, s.logger, "find parent message", err)
		}
		if parent.IsReply() {
			return nil, validationError("replies cannot be nested")
		}
		if parent.ChannelID != channelID {
			return nil, validationError("parent message belongs to another channel")
		}
		pid := parent.ID
		parentRef = &pid
	}

	now := s.now()
	msg := &model.Message{
		ID:        newID(prefixMessage),
		Content:   content,
		ChannelID: channelID,
		AuthorID:  author.ID,
		ParentID:  parentRef,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, storageError(ctx, s.logger, "create message", err)
	}
	created, err := s.repo.FindByID(ctx, msg.ID)
	if err != nil {
		return nil, storageError(ctx, s.logger, "refetch message", err)
	}
	s.views.Invalidate(ctx, messageScope(created))
	return created, nil
}

func (s *messageService) ListTopLevel(ctx context.Context, channelID string, limit int) ([]model.Message, error) {
	if isBlank(channelID) {
		return nil, validationError("channel id is required")
	}
	list, err := s.repo.ListTopLevel(ctx, channelID, clampLimit(limit))
	if err != nil {
		return nil, storageError(ctx, s.logger, "list messages", err)
	}
	if list == nil {
		list = []model.Message{}
	}
	return list, nil
}

func (s *messageService) Get(ctx context.Context, id string) (*model.Message, error) {
	if isBlank(id) {
		return nil, validationError("message id is required")
	}
	msg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFoundError("message")
		}
		return nil, storageError(ctx, s.logger, "get message", err)
	}
	return msg, nil
}

// owned loads a message and checks the caller authored it.
func (s *messageService) owned(ctx context.Context, id, callerID string) (*model.Message, error) {
	caller, err := resolveActor(ctx, s.profiles, callerID)
	if err != nil {
		return nil, err
	}
	msg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg.AuthorID != caller.ID {
		return nil, permissionError("only the author can change this message")
	}
	return msg, nil
}

func (s *messageService) Update(ctx context.Context, id, content, callerID string) (*model.Message, error) {
	if isBlank(content) {
		return nil, validationError("content is required")
	}
	msg, err := s.owned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateContent(ctx, msg.ID, content, s.now()); err != nil {
		return nil, storageError(ctx, s.logger, "update message", err)
	}
	updated, err := s.repo.FindByID(ctx, msg.ID)
	if err != nil {
		return nil, storageError(ctx, s.logger, "refetch message", err)
	}
	s.views.Invalidate(ctx, messageScope(updated))
	return updated, nil
}

func (s *messageService) Delete(ctx context.Context, id, callerID string) error {
	msg, err := s.owned(ctx, id, callerID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, msg.ID); err != nil {
		if repository.IsNotFound(err) {
			return notFoundError("message")
		}
		return storageError(ctx, s.logger, "delete message", err)
	}
	scopes := []view.Scope{messageScope(msg)}
	if !msg.IsReply() {
		scopes = append(scopes, view.Thread(msg.ChannelID, msg.ID))
	}
	s.views.Invalidate(ctx, scopes...)
	return nil
}
