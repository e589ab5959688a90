// Package memstore is a process-local voting.Store used as a test
// double. It honors the same contracts as the database-backed store:
// set semantics on ballot items, at most one vote per (user, asset),
// and all-or-nothing Transact via snapshot rollback.
package memstore

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"voting-app/internal/domain/assets"
	"voting-app/internal/domain/voting"
)

type voteKey struct {
	userID  uint
	assetID string
}

type ballot struct {
	id          string
	userID      uint
	category    assets.Category
	status      voting.Status
	submittedAt *time.Time
	items       []string
}

type asset struct {
	category  assets.Category
	likeCount int64
}

type state struct {
	ballots map[string]*ballot
	assets  map[string]*asset
	votes   map[voteKey]struct{}
}

func (st *state) clone() *state {
	c := &state{
		ballots: make(map[string]*ballot, len(st.ballots)),
		assets:  make(map[string]*asset, len(st.assets)),
		votes:   make(map[voteKey]struct{}, len(st.votes)),
	}
	for id, b := range st.ballots {
		cp := *b
		cp.items = append([]string(nil), b.items...)
		c.ballots[id] = &cp
	}
	for id, a := range st.assets {
		cp := *a
		c.assets[id] = &cp
	}
	for k := range st.votes {
		c.votes[k] = struct{}{}
	}
	return c
}

type Store struct {
	mu sync.Mutex
	st *state
}

func New() *Store {
	return &Store{st: &state{
		ballots: make(map[string]*ballot),
		assets:  make(map[string]*asset),
		votes:   make(map[voteKey]struct{}),
	}}
}

// SeedAsset registers an asset the store should treat as existing.
func (s *Store) SeedAsset(assetID string, category assets.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.assets[assetID] = &asset{category: category}
}

// LikeCount returns the current counter for a seeded asset.
func (s *Store) LikeCount(assetID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.st.assets[assetID]; ok {
		return a.likeCount
	}
	return 0
}

// SubmittedItems returns the frozen item set of the user's submitted
// ballot for a category, or nil if none exists.
func (s *Store) SubmittedItems(userID uint, category assets.Category) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.st.ballots {
		if b.userID == userID && b.category == category && b.status == voting.StatusSubmitted {
			return append([]string(nil), b.items...)
		}
	}
	return nil
}

// VoteCount returns how many votes exist in total.
func (s *Store) VoteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.votes)
}

func (s *Store) Transact(fn func(tx voting.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.st.clone()
	if err := fn(&txStore{st: s.st}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) FindDraft(userID uint, category assets.Category) (*voting.Ballot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txStore{st: s.st}).FindDraft(userID, category)
}

func (s *Store) FindOrCreateDraft(userID uint, category assets.Category) (*voting.Ballot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txStore{st: s.st}).FindOrCreateDraft(userID, category)
}

func (s *Store) AddItem(ballotID, assetID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txStore{st: s.st}).AddItem(ballotID, assetID)
}

func (s *Store) RemoveItem(ballotID, assetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txStore{st: s.st}).RemoveItem(ballotID, assetID)
}

func (s *Store) AssetExists(assetID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txStore{st: s.st}).AssetExists(assetID)
}

func (s *Store) HasVoted(userID uint, assetID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txStore{st: s.st}).HasVoted(userID, assetID)
}

func (s *Store) HasCategoryVotes(userID uint, category assets.Category) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txStore{st: s.st}).HasCategoryVotes(userID, category)
}

func (s *Store) CountCategoryVotes(userID uint, category assets.Category) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txStore{st: s.st}).CountCategoryVotes(userID, category)
}

func (s *Store) RecordVote(userID uint, assetID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txStore{st: s.st}).RecordVote(userID, assetID)
}

func (s *Store) IncrementLike(assetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txStore{st: s.st}).IncrementLike(assetID)
}

func (s *Store) MarkSubmitted(ballotID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txStore{st: s.st}).MarkSubmitted(ballotID, at)
}

// txStore operates on state already guarded by the owning Store's
// mutex.
type txStore struct {
	st *state
}

func (t *txStore) Transact(fn func(tx voting.Store) error) error {
	// Already inside a transaction; nest flatly.
	return fn(t)
}

func (t *txStore) view(b *ballot) *voting.Ballot {
	out := &voting.Ballot{
		ID:          b.id,
		UserID:      b.userID,
		Category:    b.category,
		Status:      b.status,
		SubmittedAt: b.submittedAt,
		Items:       make([]voting.BallotItem, 0, len(b.items)),
	}
	for _, assetID := range b.items {
		out.Items = append(out.Items, voting.BallotItem{BallotID: b.id, AssetID: assetID})
	}
	return out
}

func (t *txStore) findDraftRec(userID uint, category assets.Category) *ballot {
	for _, b := range t.st.ballots {
		if b.userID == userID && b.category == category && b.status == voting.StatusDraft {
			return b
		}
	}
	return nil
}

func (t *txStore) FindDraft(userID uint, category assets.Category) (*voting.Ballot, error) {
	if b := t.findDraftRec(userID, category); b != nil {
		return t.view(b), nil
	}
	return nil, nil
}

func (t *txStore) FindOrCreateDraft(userID uint, category assets.Category) (*voting.Ballot, error) {
	if b := t.findDraftRec(userID, category); b != nil {
		return t.view(b), nil
	}
	b := &ballot{
		id:       uuid.NewString(),
		userID:   userID,
		category: category,
		status:   voting.StatusDraft,
	}
	t.st.ballots[b.id] = b
	return t.view(b), nil
}

func (t *txStore) AddItem(ballotID, assetID string) (bool, error) {
	b, ok := t.st.ballots[ballotID]
	if !ok {
		return false, nil
	}
	for _, id := range b.items {
		if id == assetID {
			return false, nil
		}
	}
	b.items = append(b.items, assetID)
	return true, nil
}

func (t *txStore) RemoveItem(ballotID, assetID string) error {
	b, ok := t.st.ballots[ballotID]
	if !ok {
		return nil
	}
	kept := b.items[:0]
	for _, id := range b.items {
		if id != assetID {
			kept = append(kept, id)
		}
	}
	b.items = kept
	return nil
}

func (t *txStore) AssetExists(assetID string) (bool, error) {
	_, ok := t.st.assets[assetID]
	return ok, nil
}

func (t *txStore) HasVoted(userID uint, assetID string) (bool, error) {
	_, ok := t.st.votes[voteKey{userID: userID, assetID: assetID}]
	return ok, nil
}

func (t *txStore) HasCategoryVotes(userID uint, category assets.Category) (bool, error) {
	n, err := t.CountCategoryVotes(userID, category)
	return n > 0, err
}

func (t *txStore) CountCategoryVotes(userID uint, category assets.Category) (int64, error) {
	var n int64
	for k := range t.st.votes {
		if k.userID != userID {
			continue
		}
		if a, ok := t.st.assets[k.assetID]; ok && a.category == category {
			n++
		}
	}
	return n, nil
}

func (t *txStore) RecordVote(userID uint, assetID string) (bool, error) {
	k := voteKey{userID: userID, assetID: assetID}
	if _, ok := t.st.votes[k]; ok {
		return false, nil
	}
	t.st.votes[k] = struct{}{}
	return true, nil
}

func (t *txStore) IncrementLike(assetID string) error {
	if a, ok := t.st.assets[assetID]; ok {
		a.likeCount++
	}
	return nil
}

func (t *txStore) MarkSubmitted(ballotID string, at time.Time) error {
	b, ok := t.st.ballots[ballotID]
	if !ok || b.status != voting.StatusDraft {
		return voting.ErrAlreadySubmitted
	}
	b.status = voting.StatusSubmitted
	b.submittedAt = &at
	return nil
}
