package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/playlisterapp/playlister-server/internal/dto"
	"github.com/playlisterapp/playlister-server/internal/models"
)

// PlaylistService handles playlist CRUD, membership edits and listener
// tracking. Every mutation runs in a single transaction so the playlist
// write and the catalog back-reference write commit or roll back together.
type PlaylistService struct {
	db   *gorm.DB
	sync *CatalogSync
}

func NewPlaylistService(db *gorm.DB, sync *CatalogSync) *PlaylistService {
	return &PlaylistService{db: db, sync: sync}
}

// Create stores a playlist owned by the requesting user, records its id on
// the user document, and registers back-references for any songs supplied
// at creation time.
func (s *PlaylistService) Create(userID uuid.UUID, req *dto.CreatePlaylistRequest) (*models.Playlist, error) {
	var playlist *models.Playlist
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := loadUser(tx, userID)
		if err != nil {
			return err
		}

		playlist = &models.Playlist{
			ID:            uuid.New(),
			Name:          req.Name,
			OwnerEmail:    user.Email,
			Songs:         s.sync.StampCopies(tx, req.Songs),
			ListenerNames: []string{},
		}
		if err := tx.Create(playlist).Error; err != nil {
			return fmt.Errorf("failed to create playlist: %w", err)
		}

		user.Playlists = append(user.Playlists, playlist.ID)
		if err := tx.Model(user).Update("playlists", user.Playlists).Error; err != nil {
			return fmt.Errorf("failed to record playlist on user: %w", err)
		}

		for _, copy := range playlist.Songs {
			s.sync.AddBackRef(tx, copy, playlist.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return playlist, nil
}

// Get returns a playlist and tracks the viewer as a listener. The first
// fetch by a given account appends its email to listenerNames; later
// fetches and fetches by the owner change nothing.
func (s *PlaylistService) Get(viewerID uuid.UUID, playlistID uuid.UUID) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := s.db.First(&playlist, "id = ?", playlistID).Error; err != nil {
		return nil, ErrPlaylistNotFound
	}

	viewer, err := loadUser(s.db, viewerID)
	if err != nil {
		return nil, err
	}

	if viewer.Email != playlist.OwnerEmail && !containsString(playlist.ListenerNames, viewer.Email) {
		playlist.ListenerNames = append(playlist.ListenerNames, viewer.Email)
		if err := s.db.Model(&playlist).Update("listener_names", playlist.ListenerNames).Error; err != nil {
			return nil, fmt.Errorf("failed to record listener: %w", err)
		}
	}

	return &playlist, nil
}

func (s *PlaylistService) GetAll() ([]models.Playlist, error) {
	var playlists []models.Playlist
	if err := s.db.Order("created_at DESC").Find(&playlists).Error; err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	return playlists, nil
}

// GetPairs returns the id/name projection of the caller's own playlists.
func (s *PlaylistService) GetPairs(userID uuid.UUID) ([]dto.IDNamePair, error) {
	user, err := loadUser(s.db, userID)
	if err != nil {
		return nil, err
	}

	var playlists []models.Playlist
	if err := s.db.Select("id", "name").
		Where("owner_email = ?", user.Email).
		Order("created_at DESC").
		Find(&playlists).Error; err != nil {
		return nil, fmt.Errorf("failed to list playlist pairs: %w", err)
	}

	pairs := make([]dto.IDNamePair, 0, len(playlists))
	for _, p := range playlists {
		pairs = append(pairs, dto.IDNamePair{ID: p.ID, Name: p.Name})
	}
	return pairs, nil
}

// Update replaces a playlist's name and songs, keeping its owner. The
// synchronizer reconciles catalog back-references for every song that
// entered or left the list.
func (s *PlaylistService) Update(userID uuid.UUID, playlistID uuid.UUID, req *dto.UpdatePlaylistBody) (*models.Playlist, error) {
	var playlist models.Playlist
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&playlist, "id = ?", playlistID).Error; err != nil {
			return ErrPlaylistNotFound
		}
		if err := requireOwner(tx, userID, playlist.OwnerEmail); err != nil {
			return err
		}

		before := []models.EmbeddedSong(playlist.Songs)
		after := s.sync.StampCopies(tx, req.Songs)

		playlist.Name = req.Name
		playlist.Songs = after
		if err := tx.Model(&playlist).Updates(map[string]interface{}{
			"name":  playlist.Name,
			"songs": playlist.Songs,
		}).Error; err != nil {
			return fmt.Errorf("failed to update playlist: %w", err)
		}

		s.sync.ReconcileMembership(tx, playlist.ID, before, after)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// Delete removes a playlist, its id from the owner's user document, and its
// back-reference from every catalog song it embedded.
func (s *PlaylistService) Delete(userID uuid.UUID, playlistID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var playlist models.Playlist
		if err := tx.First(&playlist, "id = ?", playlistID).Error; err != nil {
			return ErrPlaylistNotFound
		}
		if err := requireOwner(tx, userID, playlist.OwnerEmail); err != nil {
			return err
		}

		s.sync.DetachPlaylist(tx, &playlist)

		var owner models.User
		if err := tx.Where("email = ?", playlist.OwnerEmail).First(&owner).Error; err == nil {
			owner.Playlists = removeID(owner.Playlists, playlist.ID)
			if err := tx.Model(&owner).Update("playlists", owner.Playlists).Error; err != nil {
				return fmt.Errorf("failed to update owner playlists: %w", err)
			}
		}

		if err := tx.Delete(&playlist).Error; err != nil {
			return fmt.Errorf("failed to delete playlist: %w", err)
		}
		return nil
	})
}

// Copy duplicates a playlist for the requesting user: name gains a " (Copy)"
// suffix, the songs array is copied structurally, listenerNames starts
// empty.
func (s *PlaylistService) Copy(userID uuid.UUID, playlistID uuid.UUID) (*models.Playlist, error) {
	var duplicate *models.Playlist
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var source models.Playlist
		if err := tx.First(&source, "id = ?", playlistID).Error; err != nil {
			return ErrPlaylistNotFound
		}

		user, err := loadUser(tx, userID)
		if err != nil {
			return err
		}

		songs := make([]models.EmbeddedSong, len(source.Songs))
		copy(songs, source.Songs)

		duplicate = &models.Playlist{
			ID:            uuid.New(),
			Name:          source.Name + " (Copy)",
			OwnerEmail:    user.Email,
			Songs:         songs,
			ListenerNames: []string{},
		}
		if err := tx.Create(duplicate).Error; err != nil {
			return fmt.Errorf("failed to copy playlist: %w", err)
		}

		user.Playlists = append(user.Playlists, duplicate.ID)
		if err := tx.Model(user).Update("playlists", user.Playlists).Error; err != nil {
			return fmt.Errorf("failed to record playlist on user: %w", err)
		}

		for _, c := range duplicate.Songs {
			s.sync.AddBackRef(tx, c, duplicate.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return duplicate, nil
}

// AddSong appends an embedded copy of a song to the playlist. A copy with
// the same (title, artist, year) already present is rejected. When the song
// exists in the catalog, its back-reference list gains the playlist id in
// the same transaction.
func (s *PlaylistService) AddSong(userID uuid.UUID, playlistID uuid.UUID, req *dto.AddSongRequest) (*models.Playlist, error) {
	var playlist models.Playlist
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&playlist, "id = ?", playlistID).Error; err != nil {
			return ErrPlaylistNotFound
		}
		if err := requireOwner(tx, userID, playlist.OwnerEmail); err != nil {
			return err
		}

		key := models.SongKey{Title: req.Title, Artist: req.Artist, Year: req.Year}
		for _, existing := range playlist.Songs {
			if existing.Key() == key {
				return ErrDuplicateSong
			}
		}

		copy := models.EmbeddedSong{
			Title:     req.Title,
			Artist:    req.Artist,
			Year:      req.Year,
			YouTubeID: req.YouTubeID,
		}
		if song, err := s.sync.findCatalogSong(tx, copy); err == nil {
			copy.SongID = song.ID
			copy.OwnerEmail = song.OwnerEmail
		} else {
			copy.OwnerEmail = playlist.OwnerEmail
		}

		playlist.Songs = append(playlist.Songs, copy)
		if err := tx.Model(&playlist).Update("songs", playlist.Songs).Error; err != nil {
			return fmt.Errorf("failed to add song: %w", err)
		}

		s.sync.AddBackRef(tx, copy, playlist.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// RemoveSong filters the embedded copy matching the (title, artist, year)
// key out of the playlist and drops the catalog back-reference. Removing an
// absent song is a no-op.
func (s *PlaylistService) RemoveSong(userID uuid.UUID, playlistID uuid.UUID, req *dto.RemoveSongRequest) (*models.Playlist, error) {
	var playlist models.Playlist
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&playlist, "id = ?", playlistID).Error; err != nil {
			return ErrPlaylistNotFound
		}
		if err := requireOwner(tx, userID, playlist.OwnerEmail); err != nil {
			return err
		}

		key := models.SongKey{Title: req.Title, Artist: req.Artist, Year: req.Year}
		var removed []models.EmbeddedSong
		kept := make([]models.EmbeddedSong, 0, len(playlist.Songs))
		for _, existing := range playlist.Songs {
			if existing.Key() == key {
				removed = append(removed, existing)
				continue
			}
			kept = append(kept, existing)
		}
		if len(removed) == 0 {
			return nil
		}

		playlist.Songs = kept
		if err := tx.Model(&playlist).Update("songs", playlist.Songs).Error; err != nil {
			return fmt.Errorf("failed to remove song: %w", err)
		}

		for _, copy := range removed {
			s.sync.RemoveBackRef(tx, copy, playlist.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

func loadUser(tx *gorm.DB, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// requireOwner enforces the ownership guard: the authenticated principal's
// email must match the resource's owner email.
func requireOwner(tx *gorm.DB, userID uuid.UUID, ownerEmail string) error {
	user, err := loadUser(tx, userID)
	if err != nil {
		return err
	}
	if user.Email != ownerEmail {
		return ErrNotOwner
	}
	return nil
}

func containsString(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
