package memstore

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voting-app/internal/domain/assets"
	"voting-app/internal/domain/voting"
)

func TestTransactRollsBackOnError(t *testing.T) {
	store := New()
	store.SeedAsset("a1", assets.CategoryImage)

	b, err := store.FindOrCreateDraft(1, assets.CategoryImage)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.Transact(func(tx voting.Store) error {
		created, err := tx.RecordVote(1, "a1")
		require.NoError(t, err)
		require.True(t, created)
		require.NoError(t, tx.IncrementLike("a1"))
		require.NoError(t, tx.MarkSubmitted(b.ID, time.Now()))
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Nothing from the failed transaction is observable.
	assert.Zero(t, store.VoteCount())
	assert.Zero(t, store.LikeCount("a1"))
	d, err := store.FindDraft(1, assets.CategoryImage)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, voting.StatusDraft, d.Status)
}

func TestInsertIfAbsentSemantics(t *testing.T) {
	store := New()
	store.SeedAsset("a1", assets.CategoryImage)

	b, err := store.FindOrCreateDraft(1, assets.CategoryImage)
	require.NoError(t, err)

	created, err := store.AddItem(b.ID, "a1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.AddItem(b.ID, "a1")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = store.RecordVote(1, "a1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.RecordVote(1, "a1")
	require.NoError(t, err)
	assert.False(t, created)

	has, err := store.HasVoted(1, "a1")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestMarkSubmittedIsTerminal(t *testing.T) {
	store := New()

	b, err := store.FindOrCreateDraft(1, assets.CategoryVideo)
	require.NoError(t, err)

	require.NoError(t, store.MarkSubmitted(b.ID, time.Now()))
	err = store.MarkSubmitted(b.ID, time.Now())
	assert.ErrorIs(t, err, voting.ErrAlreadySubmitted)
}
