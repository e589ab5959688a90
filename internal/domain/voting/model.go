package voting

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"voting-app/internal/domain/assets"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSubmitted Status = "SUBMITTED"
)

// MaxBallotItems caps how many assets a single ballot may hold.
const MaxBallotItems = 5

// Ballot is a user's per-category shortlist. The unique index over
// (user_id, category, status) enforces at most one DRAFT and at most
// one SUBMITTED ballot per user and category, even under concurrent
// creation.
type Ballot struct {
	ID       string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uint            `gorm:"not null;uniqueIndex:idx_ballots_user_category_status,priority:1" json:"-"`
	Category assets.Category `gorm:"type:varchar(10);not null;uniqueIndex:idx_ballots_user_category_status,priority:2" json:"category"`
	Status   Status          `gorm:"type:varchar(10);not null;default:'DRAFT';uniqueIndex:idx_ballots_user_category_status,priority:3" json:"status"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty"`

	Items []BallotItem `gorm:"foreignKey:BallotID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Ballot) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// HasAsset reports whether the ballot already references the asset.
func (b *Ballot) HasAsset(assetID string) bool {
	for _, it := range b.Items {
		if it.AssetID == assetID {
			return true
		}
	}
	return false
}

// BallotItem is the membership relation between a ballot and an asset.
// The unique index gives set semantics: an asset appears at most once
// per ballot.
type BallotItem struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	BallotID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_ballot_items_ballot_asset,priority:1" json:"-"`
	AssetID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_ballot_items_ballot_asset,priority:2" json:"asset_id"`
	CreatedAt time.Time `json:"-"`
}

// Vote is the permanent record that (user, asset) has been counted.
// The unique index is what makes vote recording idempotent under
// retries; rows are never updated or deleted.
type Vote struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_votes_user_asset,priority:1"`
	AssetID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_votes_user_asset,priority:2"`
	CreatedAt time.Time
}
