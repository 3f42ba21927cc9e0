// Package view signals that an externally cached rendering of a channel,
// thread or direct-message conversation is stale. It never caches anything
// itself.
package view

import (
	"context"
	"errors"
	"strings"
)

// Scope names one cached view, e.g. "channels/channel_x/threads/msg_y".
type Scope string

func (s Scope) String() string {
	return string(s)
}

// ChannelList is the scope of the channel directory listing.
func ChannelList() Scope {
	return "channels"
}

func Channel(channelID string) Scope {
	return Scope("channels/" + channelID)
}

func Thread(channelID, parentID string) Scope {
	return Scope("channels/" + channelID + "/threads/" + parentID)
}

// Conversation is symmetric in its arguments.
func Conversation(profileA, profileB string) Scope {
	if profileB < profileA {
		profileA, profileB = profileB, profileA
	}
	return Scope("messages/" + profileA + ":" + profileB)
}

var ErrInvalidScope = errors.New("invalid view scope")

// ParseScope accepts the scopes produced by this package.
func ParseScope(raw string) (Scope, error) {
	raw = strings.Trim(strings.TrimSpace(raw), "/")
	if raw == "" {
		return "", ErrInvalidScope
	}
	parts := strings.Split(raw, "/")
	switch {
	case parts[0] == "channels" && (len(parts) == 1 || len(parts) == 2 || (len(parts) == 4 && parts[2] == "threads")):
	case parts[0] == "messages" && len(parts) == 2 && strings.Count(parts[1], ":") == 1:
	default:
		return "", ErrInvalidScope
	}
	for _, p := range parts {
		if p == "" {
			return "", ErrInvalidScope
		}
	}
	return Scope(raw), nil
}

// Invalidator is called after every successful mutation. Implementations are
// best-effort and must not fail the mutation.
type Invalidator interface {
	Invalidate(ctx context.Context, scopes ...Scope)
}

// Versioner reports how many times a scope has been invalidated.
type Versioner interface {
	Version(ctx context.Context, scope Scope) (int64, error)
}

// Nop discards invalidations.
type Nop struct{}

func (Nop) Invalidate(context.Context, ...Scope) {}
