package users

import "time"

type User struct {
	ID    uint   `gorm:"primaryKey"`
	Email string `gorm:"not null;uniqueIndex:idx_users_email"`

	// Empty until the user completes their profile. Ballot mutation and
	// uploads are blocked while this is empty.
	Name string

	Department *string
	Supervisor *string

	IsAdmin bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) ProfileComplete() bool {
	return u.Name != ""
}
