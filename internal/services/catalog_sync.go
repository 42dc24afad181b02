package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/playlisterapp/playlister-server/internal/models"
)

// CatalogSync keeps the two denormalized views of song membership
// consistent: the embedded song copies inside playlists, and the playlist id
// back-references on catalog songs. Catalog-triggered propagation (song edit
// or delete) runs in the caller's transaction and fails it on error.
// Membership-triggered back-reference upkeep is best-effort: a song missing
// from the catalog is logged and skipped, never surfaced to the playlist
// operation.
type CatalogSync struct{}

func NewCatalogSync() *CatalogSync {
	return &CatalogSync{}
}

// PropagateUpdate rewrites the embedded copy of song in every playlist the
// song's back-reference list names. Copies are matched by song id, falling
// back to the song's prior (title, artist, year) key for copies written
// before id stamping.
func (cs *CatalogSync) PropagateUpdate(tx *gorm.DB, song *models.Song, prior models.SongKey) error {
	for _, pid := range song.Playlists {
		var playlist models.Playlist
		if err := tx.First(&playlist, "id = ?", pid).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				slog.Warn("stale playlist back-reference on song",
					"song_id", song.ID, "playlist_id", pid)
				continue
			}
			return fmt.Errorf("load playlist %s: %w", pid, err)
		}

		changed := false
		for i, copy := range playlist.Songs {
			if !copy.Matches(song.ID, prior) {
				continue
			}
			playlist.Songs[i] = models.EmbeddedSong{
				SongID:     song.ID,
				Title:      song.Title,
				Artist:     song.Artist,
				Year:       song.Year,
				YouTubeID:  song.YouTubeID,
				OwnerEmail: song.OwnerEmail,
			}
			changed = true
		}
		if !changed {
			continue
		}

		if err := tx.Model(&playlist).Update("songs", playlist.Songs).Error; err != nil {
			return fmt.Errorf("update playlist %s: %w", pid, err)
		}
	}
	return nil
}

// PropagateDelete strips the embedded copy of song from every playlist in
// its back-reference list. Called before the catalog row is removed.
func (cs *CatalogSync) PropagateDelete(tx *gorm.DB, song *models.Song) error {
	key := song.Key()
	for _, pid := range song.Playlists {
		var playlist models.Playlist
		if err := tx.First(&playlist, "id = ?", pid).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return fmt.Errorf("load playlist %s: %w", pid, err)
		}

		kept := playlist.Songs[:0]
		for _, copy := range playlist.Songs {
			if !copy.Matches(song.ID, key) {
				kept = append(kept, copy)
			}
		}
		if len(kept) == len(playlist.Songs) {
			continue
		}
		playlist.Songs = kept

		if err := tx.Model(&playlist).Update("songs", playlist.Songs).Error; err != nil {
			return fmt.Errorf("update playlist %s: %w", pid, err)
		}
	}
	return nil
}

// AddBackRef records that playlistID now embeds the catalog song matching
// copy. A song absent from the catalog is not an error; repeated adds are
// no-ops.
func (cs *CatalogSync) AddBackRef(tx *gorm.DB, copy models.EmbeddedSong, playlistID uuid.UUID) {
	song, err := cs.findCatalogSong(tx, copy)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Error("back-reference add failed",
				"playlist_id", playlistID, "title", copy.Title, "error", err)
		}
		return
	}

	if containsID(song.Playlists, playlistID) {
		return
	}
	song.Playlists = append(song.Playlists, playlistID)

	if err := tx.Model(song).Update("playlists", song.Playlists).Error; err != nil {
		slog.Error("back-reference add failed",
			"playlist_id", playlistID, "song_id", song.ID, "error", err)
	}
}

// RemoveBackRef drops playlistID from the back-reference list of the catalog
// song matching copy. Safe to call for songs already gone from the catalog.
func (cs *CatalogSync) RemoveBackRef(tx *gorm.DB, copy models.EmbeddedSong, playlistID uuid.UUID) {
	song, err := cs.findCatalogSong(tx, copy)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Error("back-reference remove failed",
				"playlist_id", playlistID, "title", copy.Title, "error", err)
		}
		return
	}

	trimmed := removeID(song.Playlists, playlistID)
	if len(trimmed) == len(song.Playlists) {
		return
	}
	song.Playlists = trimmed

	if err := tx.Model(song).Update("playlists", song.Playlists).Error; err != nil {
		slog.Error("back-reference remove failed",
			"playlist_id", playlistID, "song_id", song.ID, "error", err)
	}
}

// ReconcileMembership diffs two versions of a playlist's songs and fixes the
// catalog back-references for every copy that entered or left.
func (cs *CatalogSync) ReconcileMembership(tx *gorm.DB, playlistID uuid.UUID, before, after []models.EmbeddedSong) {
	prev := make(map[models.SongKey]bool, len(before))
	for _, copy := range before {
		prev[copy.Key()] = true
	}
	next := make(map[models.SongKey]bool, len(after))
	for _, copy := range after {
		next[copy.Key()] = true
	}

	for _, copy := range after {
		if !prev[copy.Key()] {
			cs.AddBackRef(tx, copy, playlistID)
		}
	}
	for _, copy := range before {
		if !next[copy.Key()] {
			cs.RemoveBackRef(tx, copy, playlistID)
		}
	}
}

// DetachPlaylist clears playlistID from the back-reference list of every
// song the playlist embeds. Called before the playlist is deleted.
func (cs *CatalogSync) DetachPlaylist(tx *gorm.DB, playlist *models.Playlist) {
	for _, copy := range playlist.Songs {
		cs.RemoveBackRef(tx, copy, playlist.ID)
	}
}

// StampCopies resolves client-supplied embedded songs against the catalog so
// stored copies carry the catalog song id when one exists.
func (cs *CatalogSync) StampCopies(tx *gorm.DB, songs []models.EmbeddedSong) []models.EmbeddedSong {
	stamped := make([]models.EmbeddedSong, 0, len(songs))
	for _, copy := range songs {
		if copy.SongID == uuid.Nil {
			if song, err := cs.findCatalogSong(tx, copy); err == nil {
				copy.SongID = song.ID
			}
		}
		stamped = append(stamped, copy)
	}
	return stamped
}

// findCatalogSong resolves an embedded copy to its catalog row, by stamped
// id first, then by natural key.
func (cs *CatalogSync) findCatalogSong(tx *gorm.DB, copy models.EmbeddedSong) (*models.Song, error) {
	var song models.Song
	if copy.SongID != uuid.Nil {
		if err := tx.First(&song, "id = ?", copy.SongID).Error; err == nil {
			return &song, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	err := tx.Where("title = ? AND artist = ? AND year = ?",
		copy.Title, copy.Artist, copy.Year).First(&song).Error
	if err != nil {
		return nil, err
	}
	return &song, nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	kept := make([]uuid.UUID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	return kept
}
