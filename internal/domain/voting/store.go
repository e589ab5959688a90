package voting

import (
	"time"

	"voting-app/internal/domain/assets"
)

// Store is the persistence boundary for ballots, votes and like
// counts. The controller composes these operations inside Transact;
// implementations must make each Transact callback all-or-nothing and
// must back the insert-if-absent operations with a uniqueness
// constraint rather than a check-then-act sequence.
type Store interface {
	// Transact runs fn against a store view whose effects commit only
	// if fn returns nil. Calls within fn are serialized with respect to
	// other transactions touching the same rows.
	Transact(fn func(tx Store) error) error

	// FindDraft returns the user's DRAFT ballot for the category with
	// its items loaded, or nil if none exists.
	FindDraft(userID uint, category assets.Category) (*Ballot, error)

	// FindOrCreateDraft is FindDraft plus lazy creation of an empty
	// draft. Concurrent calls for the same (user, category) must yield
	// the same single draft.
	FindOrCreateDraft(userID uint, category assets.Category) (*Ballot, error)

	// AddItem inserts the membership row if absent and reports whether
	// this call inserted it.
	AddItem(ballotID, assetID string) (bool, error)

	// RemoveItem deletes the membership row; absent rows are a no-op.
	RemoveItem(ballotID, assetID string) error

	AssetExists(assetID string) (bool, error)

	// HasVoted reports whether a (user, asset) vote record exists.
	HasVoted(userID uint, assetID string) (bool, error)

	// HasCategoryVotes reports whether the user has any vote recorded
	// against any asset of the category.
	HasCategoryVotes(userID uint, category assets.Category) (bool, error)

	// CountCategoryVotes returns how many of the user's votes landed on
	// assets of the category.
	CountCategoryVotes(userID uint, category assets.Category) (int64, error)

	// RecordVote inserts the (user, asset) vote if absent and reports
	// whether this call inserted it. The return value gates the like
	// increment.
	RecordVote(userID uint, assetID string) (bool, error)

	// IncrementLike applies a relative +1 to the asset's like count.
	IncrementLike(assetID string) error

	// MarkSubmitted flips a DRAFT ballot to SUBMITTED and stamps the
	// submission time. Submitted ballots are terminal.
	MarkSubmitted(ballotID string, at time.Time) error
}
