package service

import (
	"strings"
	"testing"

	"github.com/shinyyama/teamchat-backend/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectMessagesAreSymmetric(t *testing.T) {
	env := newTestEnv(t)
	a, b := env.alice.ID, env.bob.ID

	m1, err := env.svcs.DirectMessages.Create(env.ctx, "hey bob", a, b)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(m1.ID, "dm_"))
	_, err = env.svcs.DirectMessages.Create(env.ctx, "hey alice", b, a)
	require.NoError(t, err)
	_, err = env.svcs.DirectMessages.Create(env.ctx, "unrelated", a, env.carol.ID)
	require.NoError(t, err)

	ab, err := env.svcs.DirectMessages.ListConversation(env.ctx, a, b, 0)
	require.NoError(t, err)
	ba, err := env.svcs.DirectMessages.ListConversation(env.ctx, b, a, 0)
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
	require.Len(t, ab, 2)
	assert.Equal(t, "hey alice", ab[0].Content)
	assert.True(t, env.views.has(view.Conversation(b, a)))

	none, err := env.svcs.DirectMessages.ListConversation(env.ctx, b, env.dave.ID, 0)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestDirectMessageRejections(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svcs.DirectMessages.Create(env.ctx, "", env.alice.ID, env.bob.ID)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.svcs.DirectMessages.Create(env.ctx, "x", env.alice.ID, "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.svcs.DirectMessages.Create(env.ctx, "x", "", env.bob.ID)
	assert.ErrorIs(t, err, ErrPermission)
	_, err = env.svcs.DirectMessages.Create(env.ctx, "x", env.alice.ID, "profile_ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.svcs.DirectMessages.Create(env.ctx, "x", env.alice.ID, env.alice.ID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDirectMessageOwnership(t *testing.T) {
	env := newTestEnv(t)
	dm, err := env.svcs.DirectMessages.Create(env.ctx, "draft", env.alice.ID, env.bob.ID)
	require.NoError(t, err)

	_, err = env.svcs.DirectMessages.Update(env.ctx, dm.ID, "edited by recipient", env.bob.ID)
	assert.ErrorIs(t, err, ErrPermission)
	assert.ErrorIs(t, env.svcs.DirectMessages.Delete(env.ctx, dm.ID, env.bob.ID), ErrPermission)

	updated, err := env.svcs.DirectMessages.Update(env.ctx, dm.ID, "final", env.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Content)
	assert.True(t, updated.Edited)

	require.NoError(t, env.svcs.DirectMessages.Delete(env.ctx, dm.ID, env.alice.ID))
	assert.ErrorIs(t, env.svcs.DirectMessages.Delete(env.ctx, dm.ID, env.alice.ID), ErrNotFound)
}
