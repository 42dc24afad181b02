package services

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/playlisterapp/playlister-server/internal/database"
	"github.com/playlisterapp/playlister-server/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, userName, email string) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New(),
		UserName:     userName,
		Email:        email,
		PasswordHash: "$2a$10$testhashtesthashtesthashtesthashtesthashtesthashtesth",
		Playlists:    []uuid.UUID{},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestSong(t *testing.T, db *gorm.DB, title, artist string, year int, ownerEmail string) *models.Song {
	t.Helper()

	song := &models.Song{
		ID:         uuid.New(),
		Title:      title,
		Artist:     artist,
		Year:       year,
		YouTubeID:  "dQw4w9WgXcQ",
		OwnerEmail: ownerEmail,
		Playlists:  []uuid.UUID{},
	}
	require.NoError(t, db.Create(song).Error)
	return song
}

func reloadSong(t *testing.T, db *gorm.DB, id uuid.UUID) *models.Song {
	t.Helper()

	var song models.Song
	require.NoError(t, db.First(&song, "id = ?", id).Error)
	return &song
}

func reloadPlaylist(t *testing.T, db *gorm.DB, id uuid.UUID) *models.Playlist {
	t.Helper()

	var playlist models.Playlist
	require.NoError(t, db.First(&playlist, "id = ?", id).Error)
	return &playlist
}
