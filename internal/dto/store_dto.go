package dto

import (
	"github.com/google/uuid"

	"github.com/playlisterapp/playlister-server/internal/models"
)

type CreatePlaylistRequest struct {
	Name  string                `json:"name" validate:"required"`
	Songs []models.EmbeddedSong `json:"songs"`
}

// UpdatePlaylistRequest mirrors the client payload, which wraps the playlist
// under a "playlist" key. Name and Songs replace the stored values;
// ownerEmail is never taken from the request.
type UpdatePlaylistRequest struct {
	Playlist UpdatePlaylistBody `json:"playlist"`
}

type UpdatePlaylistBody struct {
	Name  string                `json:"name" validate:"required"`
	Songs []models.EmbeddedSong `json:"songs"`
}

type AddSongRequest struct {
	Title     string `json:"title" validate:"required"`
	Artist    string `json:"artist" validate:"required"`
	Year      int    `json:"year" validate:"required"`
	YouTubeID string `json:"youTubeId" validate:"required"`
}

type RemoveSongRequest struct {
	Title  string `json:"title" validate:"required"`
	Artist string `json:"artist" validate:"required"`
	Year   int    `json:"year" validate:"required"`
}

type CreateSongRequest struct {
	Title     string `json:"title" validate:"required"`
	Artist    string `json:"artist" validate:"required"`
	Year      int    `json:"year" validate:"required"`
	YouTubeID string `json:"youTubeId" validate:"required"`
}

// UpdateSongRequest edits the identifying fields of a catalog song. Zero
// values mean "keep"; listens is deliberately absent, it only moves through
// the listen endpoint.
type UpdateSongRequest struct {
	Title     string `json:"title,omitempty"`
	Artist    string `json:"artist,omitempty"`
	Year      int    `json:"year,omitempty"`
	YouTubeID string `json:"youTubeId,omitempty"`
}

type PlaylistResponse struct {
	Success  bool             `json:"success"`
	Playlist *models.Playlist `json:"playlist"`
}

type PlaylistsResponse struct {
	Success bool              `json:"success"`
	Data    []models.Playlist `json:"data"`
}

// IDNamePair is the minimal projection used by playlist pickers.
type IDNamePair struct {
	ID   uuid.UUID `json:"_id"`
	Name string    `json:"name"`
}

type PlaylistPairsResponse struct {
	Success     bool         `json:"success"`
	IDNamePairs []IDNamePair `json:"idNamePairs"`
}

type SongResponse struct {
	Success bool         `json:"success"`
	Song    *models.Song `json:"song"`
}

type SongsResponse struct {
	Success bool          `json:"success"`
	Data    []models.Song `json:"data"`
}
