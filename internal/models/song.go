package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Song is a catalog entry. Playlists is the back-reference list: the ids of
// every playlist currently embedding a copy of this song.
type Song struct {
	ID         uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string                         `gorm:"size:255;not null;uniqueIndex:idx_songs_title_artist_year" json:"title"`
	Artist     string                         `gorm:"size:255;not null;uniqueIndex:idx_songs_title_artist_year" json:"artist"`
	Year       int                            `gorm:"not null;uniqueIndex:idx_songs_title_artist_year" json:"year"`
	YouTubeID  string                         `gorm:"size:64;not null" json:"youTubeId"`
	OwnerEmail string                         `gorm:"size:255;not null;index" json:"ownerEmail"`
	Listens    int                            `gorm:"not null;default:0" json:"listens"`
	Playlists  datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb" json:"playlists"`
	CreatedAt  time.Time                      `json:"created_at"`
	UpdatedAt  time.Time                      `json:"updated_at"`
}

// Key returns the natural identity of a catalog song. Embedded copies are
// deduplicated and, when they predate id stamping, matched by this triple.
func (s *Song) Key() SongKey {
	return SongKey{Title: s.Title, Artist: s.Artist, Year: s.Year}
}

// SongKey is the (title, artist, year) composite the catalog enforces as
// unique.
type SongKey struct {
	Title  string
	Artist string
	Year   int
}
