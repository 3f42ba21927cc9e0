// Package seed holds the starter directory: five profiles and five channels.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shinyyama/teamchat-backend/internal/model"
	"github.com/shinyyama/teamchat-backend/internal/repository"
)

type profileSeed struct {
	Name  string
	Email string
	Slug  string
}

type channelSeed struct {
	Name        string
	Description string
	Creator     int // index into the seeded profiles
	Visibility  model.Visibility
}

var profileSeeds = []profileSeed{
	{Name: "John Doe", Email: "john@example.com", Slug: "john"},
	{Name: "Jane Smith", Email: "jane@example.com", Slug: "jane"},
	{Name: "Robert Johnson", Email: "robert@example.com", Slug: "robert"},
	{Name: "Sarah Williams", Email: "sarah@example.com", Slug: "sarah"},
	{Name: "Michael Brown", Email: "michael@example.com", Slug: "michael"},
}

var channelSeeds = []channelSeed{
	{Name: "general", Description: "General discussion for everyone", Creator: 0, Visibility: model.VisibilityPublic},
	{Name: "random", Description: "Random topics and fun stuff", Creator: 1, Visibility: model.VisibilityPublic},
	{Name: "help", Description: "Get help with various topics", Creator: 2, Visibility: model.VisibilityPublic},
	{Name: "announcements", Description: "Important announcements for the team", Creator: 0, Visibility: model.VisibilityPublic},
	{Name: "dev-team", Description: "Private channel for development team", Creator: 3, Visibility: model.VisibilityPrivate},
}

// PlaceholderAvatarURL is the dicebear avatar used until a generated one exists.
func PlaceholderAvatarURL(seed string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", seed)
}

// Result reports what Into created.
type Result struct {
	Profiles []model.Profile
	Channels []model.Channel
}

// Into writes the starter profiles and channels through repos. Channels are
// created a second apart so the directory lists them newest first in a
// stable order.
func Into(ctx context.Context, repos repository.Set, now time.Time) (*Result, error) {
	res := &Result{}
	for _, ps := range profileSeeds {
		p := model.Profile{
			ID:        "profile_" + uuid.NewString(),
			Name:      ps.Name,
			Email:     ps.Email,
			ImageURL:  PlaceholderAvatarURL(ps.Slug),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repos.Profiles.Save(ctx, &p); err != nil {
			return nil, fmt.Errorf("insert profile %q: %w", ps.Email, err)
		}
		res.Profiles = append(res.Profiles, p)
	}

	for i, cs := range channelSeeds {
		desc := cs.Description
		at := now.Add(time.Duration(i) * time.Second)
		ch := model.Channel{
			ID:          "channel_" + uuid.NewString(),
			Name:        cs.Name,
			Description: &desc,
			CreatorID:   res.Profiles[cs.Creator].ID,
			Visibility:  cs.Visibility,
			CreatedAt:   at,
			UpdatedAt:   at,
		}
		if err := repos.Channels.Create(ctx, &ch); err != nil {
			return nil, fmt.Errorf("insert channel %q: %w", cs.Name, err)
		}
		res.Channels = append(res.Channels, ch)
	}
	return res, nil
}
