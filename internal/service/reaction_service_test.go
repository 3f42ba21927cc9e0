package service

import (
	"sync"
	"testing"

	"github.com/shinyyama/teamchat-backend/internal/model"
	"github.com/shinyyama/teamchat-backend/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddReactionIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ch := env.channel(t, "general")
	msg := env.post(t, ch.ID, env.alice.ID, "hi", "")

	first, err := env.svcs.Reactions.Add(env.ctx, msg.ID, env.bob.ID, "👍")
	require.NoError(t, err)
	second, err := env.svcs.Reactions.Add(env.ctx, msg.ID, env.bob.ID, "👍")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	list, err := env.svcs.Reactions.List(env.ctx, msg.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	require.NotNil(t, list[0].Profile)
	assert.Equal(t, "Bob", list[0].Profile.Name)
}

func TestAddReactionReturnsReactor(t *testing.T) {
	env := newTestEnv(t)
	ch := env.channel(t, "general")
	msg := env.post(t, ch.ID, env.alice.ID, "hi", "")

	fresh, err := env.svcs.Reactions.Add(env.ctx, msg.ID, env.carol.ID, "🚀")
	require.NoError(t, err)
	require.NotNil(t, fresh.Profile)
	assert.Equal(t, env.carol.ID, fresh.Profile.ID)

	repeat, err := env.svcs.Reactions.Add(env.ctx, msg.ID, env.carol.ID, "🚀")
	require.NoError(t, err)
	require.NotNil(t, repeat.Profile)
	assert.Equal(t, fresh.ID, repeat.ID)
	assert.Equal(t, env.carol.Name, repeat.Profile.Name)
}

func TestAddReactionConcurrentCallersAgree(t *testing.T) {
	env := newTestEnv(t)
	ch := env.channel(t, "general")
	msg := env.post(t, ch.ID, env.alice.ID, "hi", "")

	const callers = 20
	ids := make([]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rc, err := env.svcs.Reactions.Add(env.ctx, msg.ID, env.bob.ID, "🎉")
			if assert.NoError(t, err) {
				ids[i] = rc.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	list, err := env.svcs.Reactions.List(env.ctx, msg.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAddReactionRejections(t *testing.T) {
	env := newTestEnv(t)
	ch := env.channel(t, "general")
	msg := env.post(t, ch.ID, env.alice.ID, "hi", "")

	_, err := env.svcs.Reactions.Add(env.ctx, msg.ID, env.bob.ID, " ")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.svcs.Reactions.Add(env.ctx, "", env.bob.ID, "👍")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.svcs.Reactions.Add(env.ctx, msg.ID, "profile_ghost", "👍")
	assert.ErrorIs(t, err, ErrPermission)
	_, err = env.svcs.Reactions.Add(env.ctx, "msg_ghost", env.bob.ID, "👍")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveMissingReactionIsNoop(t *testing.T) {
	env := newTestEnv(t)
	ch := env.channel(t, "general")
	msg := env.post(t, ch.ID, env.alice.ID, "hi", "")
	_, err := env.svcs.Reactions.Add(env.ctx, msg.ID, env.bob.ID, "👍")
	require.NoError(t, err)

	require.NoError(t, env.svcs.Reactions.Remove(env.ctx, msg.ID, env.carol.ID, "👍"))
	require.NoError(t, env.svcs.Reactions.Remove(env.ctx, msg.ID, env.bob.ID, "🎉"))
	require.NoError(t, env.svcs.Reactions.Remove(env.ctx, "msg_ghost", env.bob.ID, "👍"))

	groups, err := env.svcs.Reactions.Summary(env.ctx, msg.ID, env.bob.ID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].Count)

	require.NoError(t, env.svcs.Reactions.Remove(env.ctx, msg.ID, env.bob.ID, "👍"))
	groups, err = env.svcs.Reactions.Summary(env.ctx, msg.ID, env.bob.ID)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestReactionOnReplyInvalidatesThread(t *testing.T) {
	env := newTestEnv(t)
	ch := env.channel(t, "general")
	top := env.post(t, ch.ID, env.alice.ID, "top", "")
	reply := env.post(t, ch.ID, env.bob.ID, "reply", top.ID)

	_, err := env.svcs.Reactions.Add(env.ctx, reply.ID, env.alice.ID, "👀")
	require.NoError(t, err)
	assert.True(t, env.views.has(view.Thread(ch.ID, top.ID)))
}

func TestGroupReactions(t *testing.T) {
	in := []model.Reaction{
		{Emoji: "👍", ProfileID: "A"},
		{Emoji: "👍", ProfileID: "B"},
		{Emoji: "🎉", ProfileID: "A"},
	}

	groups := GroupReactions(in, "A")
	require.Len(t, groups, 2)
	assert.Equal(t, ReactionGroup{Emoji: "👍", Count: 2, ReactedBySelf: true, ProfileIDs: []string{"A", "B"}}, groups[0])
	assert.Equal(t, ReactionGroup{Emoji: "🎉", Count: 1, ReactedBySelf: true, ProfileIDs: []string{"A"}}, groups[1])

	forB := GroupReactions(in, "B")
	assert.True(t, forB[0].ReactedBySelf)
	assert.False(t, forB[1].ReactedBySelf)

	anonymous := GroupReactions(in, "")
	assert.False(t, anonymous[0].ReactedBySelf)

	assert.Empty(t, GroupReactions(nil, "A"))
	assert.NotNil(t, GroupReactions(nil, "A"))
}

func TestGroupReactionsCountsProfileOncePerEmoji(t *testing.T) {
	groups := GroupReactions([]model.Reaction{
		{Emoji: "👍", ProfileID: "A"},
		{Emoji: "👍", ProfileID: "A"},
	}, "")
	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].Count)
}
