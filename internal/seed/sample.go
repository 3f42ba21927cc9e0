package seed

import (
	"context"
	"fmt"

	"github.com/shinyyama/teamchat-backend/internal/service"
)

// SampleStats counts what Samples posted.
type SampleStats struct {
	Messages       int
	Reactions      int
	DirectMessages int
	Skipped        bool
}

// Samples posts a short thread in #general plus a direct-message exchange,
// going through the services so the usual validation applies. It is a no-op when
// #general already has messages.
func Samples(ctx context.Context, svcs *service.Services) (*SampleStats, error) {
	byEmail := func(email string) (string, error) {
		p, err := svcs.Profiles.GetByEmail(ctx, email)
		if err != nil {
			return "", err
		}
		if p == nil {
			return "", fmt.Errorf("profile %s not seeded; run cmd/seed first", email)
		}
		return p.ID, nil
	}
	john, err := byEmail("john@example.com")
	if err != nil {
		return nil, err
	}
	jane, err := byEmail("jane@example.com")
	if err != nil {
		return nil, err
	}
	robert, err := byEmail("robert@example.com")
	if err != nil {
		return nil, err
	}

	var generalID string
	for _, ch := range svcs.Channels.List(ctx, "general") {
		if ch.Name == "general" {
			generalID = ch.ID
			break
		}
	}
	if generalID == "" {
		return nil, fmt.Errorf("channel general not seeded; run cmd/seed first")
	}

	existing, err := svcs.Messages.ListTopLevel(ctx, generalID, 1)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return &SampleStats{Skipped: true}, nil
	}

	stats := &SampleStats{}
	top, err := svcs.Messages.Create(ctx, "Welcome to the team chat! Introduce yourself in this thread.", generalID, john, "")
	if err != nil {
		return nil, fmt.Errorf("post welcome: %w", err)
	}
	stats.Messages++

	replies := []struct{ author, content string }{
		{jane, "Hi all, Jane here. I work on the frontend."},
		{robert, "Robert, backend and infrastructure. Ping me in #help any time."},
	}
	for _, r := range replies {
		if _, err := svcs.Messages.Create(ctx, r.content, generalID, r.author, top.ID); err != nil {
			return nil, fmt.Errorf("post reply: %w", err)
		}
		stats.Messages++
	}

	reactions := []struct{ profile, emoji string }{
		{jane, "👋"},
		{robert, "👋"},
		{robert, "🎉"},
	}
	for _, r := range reactions {
		if _, err := svcs.Reactions.Add(ctx, top.ID, r.profile, r.emoji); err != nil {
			return nil, fmt.Errorf("add reaction: %w", err)
		}
		stats.Reactions++
	}

	dms := []struct{ from, to, content string }{
		{john, jane, "Thanks for joining. Do you have time for a quick sync tomorrow?"},
		{jane, john, "Sure, morning works for me."},
	}
	for _, d := range dms {
		if _, err := svcs.DirectMessages.Create(ctx, d.content, d.from, d.to); err != nil {
			return nil, fmt.Errorf("send direct message: %w", err)
		}
		stats.DirectMessages++
	}
	return stats, nil
}
