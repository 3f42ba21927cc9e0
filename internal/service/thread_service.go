package service

import (
	"context"

	"github.com/shinyyama/teamchat-backend/internal/model"
	"github.com/shinyyama/teamchat-backend/internal/repository"
	"go.uber.org/zap"
)

// Thread is a top-level message with its replies, oldest reply first.
type Thread struct {
	Parent  model.Message   `json:"parent"`
	Replies []model.Message `json:"replies"`
}

type ThreadService interface {
	Get(ctx context.Context, parentID string) (*Thread, error)
}

type threadService struct {
	repo   repository.MessageRepository
	logger *zap.Logger
}

func NewThreadService(repo repository.MessageRepository, logger *zap.Logger) ThreadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &threadService{repo: repo, logger: logger}
}

func (s *threadService) Get(ctx context.Context, parentID string) (*Thread, error) {
	if isBlank(parentID) {
		return nil, validationError("parent message id is required")
	}
	parent, err := s.repo.FindByID(ctx, parentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFoundError("message")
		}
		return nil, storageError(ctx, s.logger, "get thread parent", err)
	}
	replies, err := s.repo.ListReplies(ctx, parent.ID)
	if err != nil {
		return nil, storageError(ctx, s.logger, "list replies", err)
	}
	if replies == nil {
		replies = []model.Message{}
	}
	return &Thread{Parent: *parent, Replies: replies}, nil
}
