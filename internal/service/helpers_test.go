package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shinyyama/teamchat-backend/internal/model"
	"github.com/shinyyama/teamchat-backend/internal/repository"
	"github.com/shinyyama/teamchat-backend/internal/view"
	"github.com/stretchr/testify/require"
)

// stepClock returns a strictly increasing time on every call.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type recordingViews struct {
	mu     sync.Mutex
	scopes []view.Scope
}

func (r *recordingViews) Invalidate(_ context.Context, scopes ...view.Scope) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scopes = append(r.scopes, scopes...)
}

func (r *recordingViews) has(s view.Scope) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, got := range r.scopes {
		if got == s {
			return true
		}
	}
	return false
}

type testEnv struct {
	ctx   context.Context
	store *repository.MemoryStore
	repos repository.Set
	views *recordingViews
	svcs  *Services

	alice, bob, carol, dave model.Profile
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := repository.NewMemoryStore()
	env := &testEnv{
		ctx:   context.Background(),
		store: store,
		repos: store.Set(),
		views: &recordingViews{},
	}
	env.alice = env.addProfile(t, "profile_alice", "Alice")
	env.bob = env.addProfile(t, "profile_bob", "Bob")
	env.carol = env.addProfile(t, "profile_carol", "Carol")
	env.dave = env.addProfile(t, "profile_dave", "Dave")

	env.svcs = New(env.repos, Options{Views: env.views})
	clock := newStepClock()
	env.svcs.Channels.(*channelService).now = clock.Now
	env.svcs.Messages.(*messageService).now = clock.Now
	env.svcs.Reactions.(*reactionService).now = clock.Now
	env.svcs.DirectMessages.(*directMessageService).now = clock.Now
	return env
}

func (e *testEnv) addProfile(t *testing.T, id, name string) model.Profile {
	t.Helper()
	p := model.Profile{ID: id, Name: name, Email: id + "@example.com"}
	require.NoError(t, e.repos.Profiles.Save(e.ctx, &p))
	return p
}

func (e *testEnv) channel(t *testing.T, name string) *model.Channel {
	t.Helper()
	ch, err := e.svcs.Channels.Create(e.ctx, e.alice.ID, name, nil, "")
	require.NoError(t, err)
	return ch
}

func (e *testEnv) post(t *testing.T, channelID, authorID, content, parentID string) *model.Message {
	t.Helper()
	msg, err := e.svcs.Messages.Create(e.ctx, content, channelID, authorID, parentID)
	require.NoError(t, err)
	return msg
}
