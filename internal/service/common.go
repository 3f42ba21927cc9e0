package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shinyyama/teamchat-backend/internal/model"
	"github.com/shinyyama/teamchat-backend/internal/view"
	"go.uber.org/zap"
)

// DefaultLimit caps channel feeds and direct-message conversations.
const DefaultLimit = 50

const (
	prefixChannel  = "channel_"
	prefixMessage  = "msg_"
	prefixReaction = "reaction_"
	prefixDM       = "dm_"
)

func newID(prefix string) string {
	return prefix + uuid.NewString()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > DefaultLimit {
		return DefaultLimit
	}
	return limit
}

// deps holds what every store-backed service shares.
type deps struct {
	logger *zap.Logger
	views  view.Invalidator
	now    func() time.Time
}

func newDeps(logger *zap.Logger, views view.Invalidator) deps {
	if logger == nil {
		logger = zap.NewNop()
	}
	if views == nil {
		views = view.Nop{}
	}
	return deps{
		logger: logger,
		views:  views,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// resolveActor turns the caller id into a live profile or a permission error.
func resolveActor(ctx context.Context, profiles ProfileService, id string) (*model.Profile, error) {
	if isBlank(id) {
		return nil, permissionError("no acting profile")
	}
	p, err := profiles.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, permissionError("acting profile does not exist")
	}
	return p, nil
}

// messageScope is the view a channel message is rendered in.
func messageScope(m *model.Message) view.Scope {
	if m.IsReply() {
		return view.Thread(m.ChannelID, *m.ParentID)
	}
	return view.Channel(m.ChannelID)
}
