package database

import (
	"fmt"
	"log"

	"voting-app/config"
	"voting-app/internal/domain/assets"
	"voting-app/internal/domain/users"
	"voting-app/internal/domain/voting"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	var (
		db  *gorm.DB
		err error
	)

	if config.DEMO_MODE {
		// Demo mode keeps everything in-process; the embedded database
		// still enforces the same uniqueness constraints as postgres.
		// cache=shared lets pooled connections see the same in-memory
		// database.
		db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	} else {
		db, err = gorm.Open(postgres.Open(config.DB_URL), &gorm.Config{})
	}
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	fmt.Println("Connected and migrated successfully")
}

// Migrate applies the schema for every domain model. Shared with tests
// running against an embedded database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&assets.Asset{},

		&voting.Ballot{},
		&voting.BallotItem{},
		&voting.Vote{},
	)
}
