package votestore

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"voting-app/internal/domain/assets"
	"voting-app/internal/domain/voting"
	"voting-app/internal/testutil"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.OpenTestDB(t)
}

func seedAsset(t *testing.T, db *gorm.DB, id string, category assets.Category) {
	t.Helper()
	require.NoError(t, db.Create(&assets.Asset{
		ID:                id,
		Type:              category,
		Status:            assets.StatusApproved,
		BlobPathRaw:       "raw/" + id,
		OwnerID:           99,
		OwnerNameAtUpload: "Uploader",
	}).Error)
}

func likeCount(t *testing.T, db *gorm.DB, id string) int64 {
	t.Helper()
	var a assets.Asset
	require.NoError(t, db.First(&a, "id = ?", id).Error)
	return a.LikeCount
}

func TestFindOrCreateDraftCreatesOnce(t *testing.T) {
	db := setupTestDB(t)
	store := New(db)

	first, err := store.FindOrCreateDraft(1, assets.CategoryImage)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := store.FindOrCreateDraft(1, assets.CategoryImage)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var n int64
	require.NoError(t, db.Model(&voting.Ballot{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestAddItemUsesUniqueConstraint(t *testing.T) {
	db := setupTestDB(t)
	store := New(db)
	seedAsset(t, db, "a1", assets.CategoryImage)

	b, err := store.FindOrCreateDraft(1, assets.CategoryImage)
	require.NoError(t, err)

	created, err := store.AddItem(b.ID, "a1")
	require.NoError(t, err)
	assert.True(t, created)

	// Second insert hits the (ballot, asset) unique index and reports
	// not-created instead of erroring.
	created, err = store.AddItem(b.ID, "a1")
	require.NoError(t, err)
	assert.False(t, created)

	var n int64
	require.NoError(t, db.Model(&voting.BallotItem{}).Where("ballot_id = ?", b.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestRecordVoteIdempotent(t *testing.T) {
	db := setupTestDB(t)
	store := New(db)
	seedAsset(t, db, "a1", assets.CategoryImage)

	has, err := store.HasVoted(1, "a1")
	require.NoError(t, err)
	assert.False(t, has)

	created, err := store.RecordVote(1, "a1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.RecordVote(1, "a1")
	require.NoError(t, err)
	assert.False(t, created)

	has, err = store.HasVoted(1, "a1")
	require.NoError(t, err)
	assert.True(t, has)

	var n int64
	require.NoError(t, db.Model(&voting.Vote{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestCategoryVoteCountsAreScoped(t *testing.T) {
	db := setupTestDB(t)
	store := New(db)
	seedAsset(t, db, "p1", assets.CategoryImage)
	seedAsset(t, db, "v1", assets.CategoryVideo)

	_, err := store.RecordVote(1, "p1")
	require.NoError(t, err)

	has, err := store.HasCategoryVotes(1, assets.CategoryImage)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = store.HasCategoryVotes(1, assets.CategoryVideo)
	require.NoError(t, err)
	assert.False(t, has)

	n, err := store.CountCategoryVotes(1, assets.CategoryImage)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestIncrementLikeIsRelative(t *testing.T) {
	db := setupTestDB(t)
	store := New(db)
	seedAsset(t, db, "a1", assets.CategoryImage)

	require.NoError(t, store.IncrementLike("a1"))
	require.NoError(t, store.IncrementLike("a1"))
	assert.Equal(t, int64(2), likeCount(t, db, "a1"))
}

func TestMarkSubmittedIsTerminal(t *testing.T) {
	db := setupTestDB(t)
	store := New(db)

	b, err := store.FindOrCreateDraft(1, assets.CategoryImage)
	require.NoError(t, err)

	require.NoError(t, store.MarkSubmitted(b.ID, time.Now()))
	err = store.MarkSubmitted(b.ID, time.Now())
	assert.ErrorIs(t, err, voting.ErrAlreadySubmitted)
}

func TestTransactRollsBackSubmissionFanout(t *testing.T) {
	db := setupTestDB(t)
	store := New(db)
	seedAsset(t, db, "a1", assets.CategoryImage)

	b, err := store.FindOrCreateDraft(1, assets.CategoryImage)
	require.NoError(t, err)
	_, err = store.AddItem(b.ID, "a1")
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

	var votes int64
	require.NoError(t, db.Model(&voting.Vote{}).Count(&votes).Error)
	assert.Zero(t, votes)
	assert.Zero(t, likeCount(t, db, "a1"))

	d, err := store.FindDraft(1, assets.CategoryImage)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, voting.StatusDraft, d.Status)
}

func TestControllerEndToEndOnDatabase(t *testing.T) {
	db := setupTestDB(t)
	store := New(db)
	ctrl := voting.NewController(store, func(assets.Category) bool { return true })

	for _, id := range []string{"p1", "p2", "p3"} {
		seedAsset(t, db, id, assets.CategoryImage)
		_, err := ctrl.AddItem(5, assets.CategoryImage, id)
		require.NoError(t, err)
	}

	require.NoError(t, ctrl.Submit(5, assets.CategoryImage))

	for _, id := range []string{"p1", "p2", "p3"} {
		assert.Equal(t, int64(1), likeCount(t, db, id))
	}

	var submitted voting.Ballot
	require.NoError(t, db.Preload("Items").
		Where("user_id = ? AND status = ?", 5, voting.StatusSubmitted).
		First(&submitted).Error)
	assert.Len(t, submitted.Items, 3)
	require.NotNil(t, submitted.SubmittedAt)

	err := ctrl.Submit(5, assets.CategoryImage)
	assert.ErrorIs(t, err, voting.ErrAlreadySubmitted)
}
