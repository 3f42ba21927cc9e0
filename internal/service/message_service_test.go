package service

import (
	"strings"
	"testing"

	"github.com/shinyyama/teamchat-backend/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateThenGetMessage(t *testing.T) {
	env := newTestEnv(t)
	ch := env.channel(t, "general")

	for _, content := range []string{"hi", "  padded  ", "multi\nline", strings.Repeat("x", 5000)} {
		created := env.post(t, ch.ID, env.alice.ID, content, "")
		assert.True(t, strings.HasPrefix(created.ID, "msg_"))

		got, err := env.svcs.Messages.Get(env.ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got.ParentID)
		assert.False(t, got.Edited)
		assert.Equal(t, content, got.Content)
		require.NotNil(t, got.Author)
		assert.Equal(t, "Alice", got.Author.Name)
	}
	assert.True(t, env.views.has(view.Channel(ch.ID)))
}

func TestCreateMessageRejections(t *testing.T) {
	env := newTestEnv(t)
	ch := env.channel(t, "general")
	other := env.channel(t, "random")
	top := env.post(t, ch.ID, env.alice.ID, "top", "")
	reply := env.post(t, ch.ID, env.bob.ID, "reply", top.ID)

	tests := []struct {
		name      string
		content   string
		channelID string
		authorID  string
		parentID  string
		want      error
	}{
		{name: "blank content", content: "   ", channelID: ch.ID, authorID: env.alice.ID, want: ErrValidation},
		{name: "no author", content: "x", channelID: ch.ID, authorID: "", want: ErrPermission},
		{name: "unknown author", content: "x", channelID: ch.ID, authorID: "profile_ghost", want: ErrPermission},
		{name: "unknown channel", content: "x", channelID: "channel_ghost", authorID: env.alice.ID, want: ErrNotFound},
		{name: "unknown parent", content: "x", channelID: ch.ID, authorID: env.alice.ID, parentID: "msg_ghost", want: ErrNotFound},
		{name: "nested reply", content: "x", channelID: ch.ID, authorID: env.alice.ID, parentID: reply.ID, want: ErrValidation},
		{name: "parent in other channel", content: "x", channelID: other.ID, authorID: env.alice.ID, parentID: top.ID, want: ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svcs.Messages.Create(env.ctx, tt.content, tt.channelID, tt.authorID, tt.parentID)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdateMessageOnlyByAuthor(t *testing.T) {
	env := newTestEnv(t)
	ch := env.channel(t, "general")
	msg := env.post(t, ch.ID, env.alice.ID, "original", "")

	for _, caller := range []string{env.bob.ID, "", "profile_ghost"} {
		_, err := env.svcs.Messages.Update(env.ctx, msg.ID, "hijacked", caller)
		assert.ErrorIs(t, err, ErrPermission)
	}
	unchanged, err := env.svcs.Messages.Get(env.ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", unchanged.Content)
	assert.False(t, unchanged.Edited)

	updated, err := env.svcs.Messages.Update(env.ctx, msg.ID, "fixed typo", env.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "fixed typo", updated.Content)
	assert.True(t, updated.Edited)
	assert.True(t, updated.UpdatedAt.After(msg.UpdatedAt))

	_, err = env.svcs.Messages.Update(env.ctx, msg.ID, " ", env.alice.ID)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.svcs.Messages.Update(env.ctx, "msg_ghost", "x", env.alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMessageNotOwnedLeavesItIntact(t *testing.T) {
	env := newTestEnv(t)
	ch := env.channel(t, "general")
	msg := env.post(t, ch.ID, env.alice.ID, "keep me", "")

	err := env.svcs.Messages.Delete(env.ctx, msg.ID, env.bob.ID)
	assert.ErrorIs(t, err, ErrPermission)

	got, err := env.svcs.Messages.Get(env.ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep me", got.Content)
}

func TestDeleteTopLevelCascadesToThread(t *testing.T) {
	env := newTestEnv(t)
	ch := env.channel(t, "general")
	top := env.post(t, ch.ID, env.alice.ID, "top", "")
	reply := env.post(t, ch.ID, env.bob.ID, "reply", top.ID)
	_, err := env.svcs.Reactions.Add(env.ctx, reply.ID, env.carol.ID, "👍")
	require.NoError(t, err)

	require.NoError(t, env.svcs.Messages.Delete(env.ctx, top.ID, env.alice.ID))

	_, err = env.svcs.Messages.Get(env.ctx, top.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.svcs.Messages.Get(env.ctx, reply.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	reactions, err := env.svcs.Reactions.List(env.ctx, reply.ID)
	require.NoError(t, err)
	assert.Empty(t, reactions)
	assert.True(t, env.views.has(view.Thread(ch.ID, top.ID)))

	assert.ErrorIs(t, env.svcs.Messages.Delete(env.ctx, top.ID, env.alice.ID), ErrNotFound)
}

func TestDeleteReplyKeepsParent(t *testing.T) {
	env := newTestEnv(t)
	ch := env.channel(t, "general")
	top := env.post(t, ch.ID, env.alice.ID, "top", "")
	reply := env.post(t, ch.ID, env.bob.ID, "reply", top.ID)

	require.NoError(t, env.svcs.Messages.Delete(env.ctx, reply.ID, env.bob.ID))

	th, err := env.svcs.Threads.Get(env.ctx, top.ID)
	require.NoError(t, err)
	assert.Empty(t, th.Replies)
}

func TestListTopLevelNewestFirstAndClamped(t *testing.T) {
	env := newTestEnv(t)
	ch := env.channel(t, "general")
	var ids []string
	for i := 0; i < DefaultLimit+5; i++ {
		ids = append(ids, env.post(t, ch.ID, env.alice.ID, "m", "").ID)
	}
	env.post(t, ch.ID, env.bob.ID, "a reply", ids[0])

	list, err := env.svcs.Messages.ListTopLevel(env.ctx, ch.ID, 0)
	require.NoError(t, err)
	require.Len(t, list, DefaultLimit)
	assert.Equal(t, ids[len(ids)-1], list[0].ID)
	for i := 1; i < len(list); i++ {
		assert.True(t, list[i-1].CreatedAt.After(list[i].CreatedAt))
		assert.Nil(t, list[i].ParentID)
	}

	small, err := env.svcs.Messages.ListTopLevel(env.ctx, ch.ID, 3)
	require.NoError(t, err)
	assert.Len(t, small, 3)

	empty, err := env.svcs.Messages.ListTopLevel(env.ctx, "channel_none", 10)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
