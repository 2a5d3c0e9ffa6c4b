package model

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var seedSeq atomic.Int64

// setupTestDB swaps the package DB for a fresh in-memory sqlite database.
// A single connection keeps every query on the same :memory: instance.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&User{}, &Resource{}, &Review{}, &Bookmark{}))

	old := DB
	DB = db
	t.Cleanup(func() {
		DB = old
		_ = sqlDB.Close()
	})
}

func seedUser(t *testing.T, name, college string) *User {
	t.Helper()
	n := seedSeq.Add(1)
	user := &User{
		Name:     name,
		Email:    fmt.Sprintf("%s%d@example.edu", name, n),
		Password: "password123",
		College:  college,
		Branch:   "CSE",
		Semester: "5",
	}
	require.NoError(t, user.Insert())
	return user
}

func seedResource(t *testing.T, owner *User, title, privacy string) *Resource {
	t.Helper()
	n := seedSeq.Add(1)
	resource := &Resource{
		UserID:           owner.ID,
		Title:            title,
		Subject:          "Data Structures",
		Semester:         "5",
		ResourceType:     "notes",
		YearBatch:        "2024",
		Privacy:          privacy,
		College:          owner.College,
		Filename:         fmt.Sprintf("stored_%d.pdf", n),
		OriginalFilename: title + ".pdf",
		FileSize:         1024,
	}
	require.NoError(t, CreateResource(resource))
	return resource
}
