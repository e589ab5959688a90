package assets

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category separates the two voting tracks. Every asset belongs to
// exactly one, fixed at ingestion.
type Category string

const (
	CategoryImage Category = "IMAGE"
	CategoryVideo Category = "VIDEO"
)

func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToUpper(s)) {
	case CategoryImage:
		return CategoryImage, nil
	case CategoryVideo:
		return CategoryVideo, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Asset is a single uploaded media item. The owner's name, department
// and supervisor are copied onto the row at upload time so the
// leaderboard keeps showing uploader info as of upload, even after
// later profile edits.
type Asset struct {
	ID     string   `gorm:"type:uuid;primaryKey" json:"id"`
	Type   Category `gorm:"type:varchar(10);not null;index" json:"type"`
	Status string   `gorm:"type:varchar(20);not null;default:'APPROVED';index" json:"status"`

	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`

	BlobPathRaw   string  `gorm:"not null" json:"blob_path_raw"`
	BlobPathMain  *string `json:"blob_path_main,omitempty"`
	BlobPathThumb *string `json:"blob_path_thumb,omitempty"`

	LikeCount int64 `gorm:"not null;default:0" json:"like_count"`

	OwnerID                 uint    `gorm:"not null;index" json:"-"`
	OwnerNameAtUpload       string  `gorm:"not null" json:"owner_name_at_upload"`
	OwnerDepartmentAtUpload *string `json:"owner_department_at_upload,omitempty"`
	OwnerSupervisorAtUpload *string `json:"owner_supervisor_at_upload,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
