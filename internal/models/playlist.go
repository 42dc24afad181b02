package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Playlist owns a denormalized list of song copies. Songs is a JSONB array of
// EmbeddedSong snapshots, not references; the catalog synchronizer rewrites
// them when the source song changes. ListenerNames records each account that
// has opened the playlist, once per email.
type Playlist struct {
	ID            uuid.UUID                         `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string                            `gorm:"size:255;not null" json:"name"`
	OwnerEmail    string                            `gorm:"size:255;not null;index" json:"ownerEmail"`
	Songs         datatypes.JSONSlice[EmbeddedSong] `gorm:"type:jsonb" json:"songs"`
	ListenerNames datatypes.JSONSlice[string]       `gorm:"type:jsonb" json:"listenerNames"`
	CreatedAt     time.Time                         `json:"created_at"`
	UpdatedAt     time.Time                         `json:"updated_at"`
}

// EmbeddedSong is a snapshot of a catalog song's fields stored inline in a
// playlist. SongID points back at the catalog row so renames stay matchable;
// copies written before id stamping fall back to the (title, artist, year)
// key.
type EmbeddedSong struct {
	SongID     uuid.UUID `json:"songId,omitempty"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	Year       int       `json:"year"`
	YouTubeID  string    `json:"youTubeId"`
	OwnerEmail string    `json:"ownerEmail"`
}

// Key returns the natural identity of the embedded copy.
func (e EmbeddedSong) Key() SongKey {
	return SongKey{Title: e.Title, Artist: e.Artist, Year: e.Year}
}

// Matches reports whether the copy refers to the catalog song identified by
// id, or failing that by its prior natural key.
func (e EmbeddedSong) Matches(id uuid.UUID, key SongKey) bool {
	if e.SongID != uuid.Nil && id != uuid.Nil {
		return e.SongID == id
	}
	return e.Key() == key
}
