package voting

import (
	"time"

	"voting-app/internal/domain/assets"
)

// OpenFunc reports whether a category is currently accepting
// submissions. Consulted only at submit time.
type OpenFunc func(category assets.Category) bool

// Controller owns the ballot lifecycle: draft mutation under the
// five-item cap, and the one-time DRAFT -> SUBMITTED transition that
// fans out into vote records and like increments.
type Controller struct {
	store Store
	open  OpenFunc
}

func NewController(store Store, open OpenFunc) *Controller {
	return &Controller{store: store, open: open}
}

// GetOrCreateDraft returns the user's draft ballot for the category,
// materializing an empty one on first access.
func (c *Controller) GetOrCreateDraft(userID uint, category assets.Category) (*Ballot, error) {
	var out *Ballot
	err := c.store.Transact(func(tx Store) error {
		b, err := tx.FindOrCreateDraft(userID, category)
		if err != nil {
			return err
		}
		out = b
		return nil
	})
	return out, err
}

// AddItem puts an asset on the draft. Adding an asset already on the
// ballot is a no-op; adding a sixth fails with ErrLimitExceeded and
// leaves the draft unchanged.
func (c *Controller) AddItem(userID uint, category assets.Category, assetID string) (*Ballot, error) {
	var out *Ballot
	err := c.store.Transact(func(tx Store) error {
		exists, err := tx.AssetExists(assetID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrAssetNotFound
		}

		b, err := tx.FindOrCreateDraft(userID, category)
		if err != nil {
			return err
		}
		if b.HasAsset(assetID) {
			out = b
			return nil
		}
		if len(b.Items) >= MaxBallotItems {
			return ErrLimitExceeded
		}
		if _, err := tx.AddItem(b.ID, assetID); err != nil {
			return err
		}

		refreshed, err := tx.FindDraft(userID, category)
		if err != nil {
			return err
		}
		// The store serializes mutations of one draft (row lock or
		// mutex), so a concurrent add cannot slip past the cap check
		// above. The re-count is a backstop: roll back rather than
		// commit an over-cap draft.
		if len(refreshed.Items) > MaxBallotItems {
			return ErrLimitExceeded
		}
		out = refreshed
		return nil
	})
	return out, err
}

// RemoveItem takes an asset off the draft. Removing an asset that is
// not on the ballot, or acting on a user with no draft yet, is a
// no-op returning the (possibly fresh) draft.
func (c *Controller) RemoveItem(userID uint, category assets.Category, assetID string) (*Ballot, error) {
	var out *Ballot
	err := c.store.Transact(func(tx Store) error {
		b, err := tx.FindOrCreateDraft(userID, category)
		if err != nil {
			return err
		}
		if !b.HasAsset(assetID) {
			out = b
			return nil
		}
		if err := tx.RemoveItem(b.ID, assetID); err != nil {
			return err
		}

		refreshed, err := tx.FindDraft(userID, category)
		if err != nil {
			return err
		}
		out = refreshed
		return nil
	})
	return out, err
}

// Submit performs the terminal DRAFT -> SUBMITTED transition: one vote
// per draft item, one like increment per vote actually created, then
// the status flip, all in a single transaction. A vote that already
// exists (a retried submission after a partial failure) is skipped
// without incrementing, so retries never double-count.
func (c *Controller) Submit(userID uint, category assets.Category) error {
	if !c.open(category) {
		return ErrVotingClosed
	}

	return c.store.Transact(func(tx Store) error {
		voted, err := tx.HasCategoryVotes(userID, category)
		if err != nil {
			return err
		}
		if voted {
			return ErrAlreadySubmitted
		}

		b, err := tx.FindDraft(userID, category)
		if err != nil {
			return err
		}
		if b == nil || len(b.Items) == 0 {
			return ErrEmptyBallot
		}
		// The cap is a ballot invariant, not just input validation, so
		// it is re-checked at the transition.
		if len(b.Items) > MaxBallotItems {
			return ErrOverLimit
		}

		for _, it := range b.Items {
			created, err := tx.RecordVote(userID, it.AssetID)
			if err != nil {
				return err
			}
			if created {
				if err := tx.IncrementLike(it.AssetID); err != nil {
					return err
				}
			}
		}

		return tx.MarkSubmitted(b.ID, time.Now())
	})
}
