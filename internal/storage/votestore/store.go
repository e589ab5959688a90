// Package votestore backs the voting core with a relational database
// through GORM. Uniqueness constraints on ballots, ballot items and
// votes do the conflict prevention; Transact maps to a database
// transaction so the submission fan-out commits as one unit.
package votestore

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"voting-app/internal/domain/assets"
	"voting-app/internal/domain/voting"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Transact(fn func(tx voting.Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// FindDraft locks the draft row for the remainder of the transaction,
// so concurrent mutations and the submission fan-out on the same draft
// serialize instead of interleaving under READ COMMITTED. SQLite has
// no FOR UPDATE; its single-writer transactions already serialize.
func (s *Store) FindDraft(userID uint, category assets.Category) (*voting.Ballot, error) {
	q := s.db.Preload("Items")
	if s.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var b voting.Ballot
	err := q.
		Where("user_id = ? AND category = ? AND status = ?", userID, category, voting.StatusDraft).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) FindOrCreateDraft(userID uint, category assets.Category) (*voting.Ballot, error) {
	b, err := s.FindDraft(userID, category)
	if err != nil {
		return nil, err
	}
	if b != nil {
		return b, nil
	}

	// DoNothing on the (user, category, status) unique index: the loser
	// of a concurrent create falls through to re-reading the winner's
	// row.
	create := &voting.Ballot{
		UserID:   userID,
		Category: category,
		Status:   voting.StatusDraft,
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(create).Error; err != nil {
		return nil, err
	}
	return s.FindDraft(userID, category)
}

func (s *Store) AddItem(ballotID, assetID string) (bool, error) {
	res := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&voting.BallotItem{
		BallotID: ballotID,
		AssetID:  assetID,
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) RemoveItem(ballotID, assetID string) error {
	return s.db.
		Where("ballot_id = ? AND asset_id = ?", ballotID, assetID).
		Delete(&voting.BallotItem{}).Error
}

func (s *Store) AssetExists(assetID string) (bool, error) {
	var n int64
	err := s.db.Model(&assets.Asset{}).Where("id = ?", assetID).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) HasVoted(userID uint, assetID string) (bool, error) {
	var n int64
	err := s.db.Model(&voting.Vote{}).
		Where("user_id = ? AND asset_id = ?", userID, assetID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) HasCategoryVotes(userID uint, category assets.Category) (bool, error) {
	n, err := s.CountCategoryVotes(userID, category)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) CountCategoryVotes(userID uint, category assets.Category) (int64, error) {
	var n int64
	err := s.db.Model(&voting.Vote{}).
		Joins("JOIN assets ON assets.id = votes.asset_id").
		Where("votes.user_id = ? AND assets.type = ?", userID, category).
		Count(&n).Error
	return n, err
}

func (s *Store) RecordVote(userID uint, assetID string) (bool, error) {
	res := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&voting.Vote{
		UserID:  userID,
		AssetID: assetID,
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) IncrementLike(assetID string) error {
	// Relative update, never read-modify-write: unrelated submissions
	// may be bumping the same counter concurrently.
	return s.db.Model(&assets.Asset{}).
		Where("id = ?", assetID).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error
}

func (s *Store) MarkSubmitted(ballotID string, at time.Time) error {
	res := s.db.Model(&voting.Ballot{}).
		Where("id = ? AND status = ?", ballotID, voting.StatusDraft).
		Updates(map[string]any{
			"status":       voting.StatusSubmitted,
			"submitted_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return voting.ErrAlreadySubmitted
	}
	return nil
}
