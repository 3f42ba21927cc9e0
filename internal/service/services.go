package service

import (
	"github.com/shinyyama/teamchat-backend/internal/repository"
	"github.com/shinyyama/teamchat-backend/internal/view"
	"go.uber.org/zap"
)

// Services wires every component over one repository set.
type Services struct {
	Profiles       ProfileService
	Channels       ChannelService
	Messages       MessageService
	Threads        ThreadService
	Reactions      ReactionService
	DirectMessages DirectMessageService
	Conversations  ConversationService
}

type Options struct {
	Views               view.Invalidator
	CaseSensitiveSearch bool
	Logger              *zap.Logger
}

func New(repos repository.Set, opts Options) *Services {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	profiles := NewProfileService(repos.Profiles, logger.Named("profiles"))
	return &Services{
		Profiles:       profiles,
		Channels:       NewChannelService(repos.Channels, profiles, opts.Views, opts.CaseSensitiveSearch, logger.Named("channels")),
		Messages:       NewMessageService(repos.Messages, repos.Channels, profiles, opts.Views, logger.Named("messages")),
		Threads:        NewThreadService(repos.Messages, logger.Named("threads")),
		Reactions:      NewReactionService(repos.Reactions, repos.Messages, profiles, opts.Views, logger.Named("reactions")),
		DirectMessages: NewDirectMessageService(repos.DirectMessages, profiles, opts.Views, logger.Named("direct_messages")),
		Conversations:  NewConversationService(repos.DirectMessages, profiles, logger.Named("conversations")),
	}
}
