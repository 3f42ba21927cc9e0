package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shinyyama/teamchat-backend/internal/model"
	"github.com/shinyyama/teamchat-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListConversationsReturnsCounterpartsByName(t *testing.T) {
	env := newTestEnv(t)
	p := env.alice
	// Names chosen so insertion order differs from name order.
	r := env.addProfile(t, "profile_r", "Aaron")
	q := env.addProfile(t, "profile_q", "Zed")
	s := env.addProfile(t, "profile_s", "Sam")

	send := func(from, to model.Profile) {
		_, err := env.svcs.DirectMessages.Create(env.ctx, "hello", from.ID, to.ID)
		require.NoError(t, err)
	}
	send(p, q)
	send(q, p)
	send(r, p)
	send(q, s)

	list, err := env.svcs.Conversations.List(env.ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []string{"Aaron", "Zed"}, []string{list[0].Name, list[1].Name})
	for _, other := range list {
		assert.NotEqual(t, p.ID, other.ID)
		assert.NotEqual(t, s.ID, other.ID)
	}
}

func TestListConversationsEmpty(t *testing.T) {
	env := newTestEnv(t)
	list, err := env.svcs.Conversations.List(env.ctx, env.dave.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	_, err = env.svcs.Conversations.List(env.ctx, "")
	assert.ErrorIs(t, err, ErrValidation)
}

type brokenDMs struct {
	repository.DirectMessageRepository
}

func (brokenDMs) ListByParticipant(context.Context, string) ([]model.DirectMessage, error) {
	return nil, errors.New("connection reset")
}

func TestListConversationsPropagatesStorageFailure(t *testing.T) {
	env := newTestEnv(t)
	svc := NewConversationService(brokenDMs{env.repos.DirectMessages}, env.svcs.Profiles, nil)
	_, err := svc.List(env.ctx, env.alice.ID)
	assert.ErrorIs(t, err, ErrStorage)
}
