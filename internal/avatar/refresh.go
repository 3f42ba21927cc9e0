// Package avatar replaces placeholder profile pictures with generated ones.
package avatar

import (
	"context"
	"fmt"
	"strings"

	"github.com/shinyyama/teamchat-backend/internal/repository"
	"go.uber.org/zap"
)

const placeholderPrefix = "https://api.dicebear.com/"

type Stats struct {
	Updated   int
	Fallbacks int
	Skipped   int
	Failed    int
}

// Refresher walks every profile. Profiles still on a dicebear placeholder
// (or all of them when Force is set) get a generated avatar, falling back
// to the placeholder image itself when generation fails.
type Refresher struct {
	Profiles    repository.ProfileRepository
	Generator   Generator
	Placeholder Generator
	Uploader    Uploader
	Logger      *zap.Logger
	Force       bool
}

func (r *Refresher) Run(ctx context.Context) (*Stats, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	profiles, err := r.Profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	stats := &Stats{}
	for i := range profiles {
		p := profiles[i]
		log := logger.With(zap.String("profile_id", p.ID), zap.String("name", p.Name))
		if !r.Force && p.ImageURL != "" && !strings.HasPrefix(p.ImageURL, placeholderPrefix) {
			stats.Skipped++
			continue
		}

		data, mime, err := r.generate(ctx, p.Name)
		if err != nil {
			log.Warn("generation failed, falling back to placeholder", zap.Error(err))
			data, mime, err = r.Placeholder.Generate(ctx, p.Name)
			if err != nil {
				log.Error("placeholder fetch failed", zap.Error(err))
				stats.Failed++
				continue
			}
			stats.Fallbacks++
		}

		publicURL, err := r.Uploader.Upload(ctx, objectPath(p.ID, mime), data, mime)
		if err != nil {
			log.Error("upload failed", zap.Error(err))
			stats.Failed++
			continue
		}
		p.ImageURL = publicURL
		if err := r.Profiles.Save(ctx, &p); err != nil {
			log.Error("profile update failed", zap.Error(err))
			stats.Failed++
			continue
		}
		log.Info("avatar updated", zap.String("url", publicURL))
		stats.Updated++
	}
	return stats, nil
}

func (r *Refresher) generate(ctx context.Context, name string) ([]byte, string, error) {
	if r.Generator == nil {
		return nil, "", fmt.Errorf("no generator configured")
	}
	return r.Generator.Generate(ctx, Prompt(name))
}

func objectPath(profileID, mime string) string {
	ext := "png"
	switch mime {
	case "image/jpeg":
		ext = "jpg"
	case "image/webp":
		ext = "webp"
	}
	return fmt.Sprintf("avatars/%s.%s", profileID, ext)
}
