package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/playlisterapp/playlister-server/internal/dto"
	"github.com/playlisterapp/playlister-server/internal/models"
)

// SongService handles catalog CRUD. Edits and deletions run the catalog
// synchronizer inside the same transaction, so every playlist embedding the
// song sees the change or none do.
type SongService struct {
	db   *gorm.DB
	sync *CatalogSync
}

func NewSongService(db *gorm.DB, sync *CatalogSync) *SongService {
	return &SongService{db: db, sync: sync}
}

func (s *SongService) Create(userID uuid.UUID, req *dto.CreateSongRequest) (*models.Song, error) {
	user, err := loadUser(s.db, userID)
	if err != nil {
		return nil, err
	}

	song := models.Song{
		ID:         uuid.New(),
		Title:      req.Title,
		Artist:     req.Artist,
		Year:       req.Year,
		YouTubeID:  req.YouTubeID,
		OwnerEmail: user.Email,
		Playlists:  []uuid.UUID{},
	}

	if err := s.db.Create(&song).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSongExists
		}
		return nil, fmt.Errorf("failed to create song: %w", err)
	}

	return &song, nil
}

func (s *SongService) GetAll() ([]models.Song, error) {
	var songs []models.Song
	if err := s.db.Order("created_at DESC").Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	return songs, nil
}

// Update edits a song's identifying fields and propagates the new values
// into the embedded copy held by every playlist in the song's back-reference
// list. The new (title, artist, year) key must not collide with another
// catalog song.
func (s *SongService) Update(userID uuid.UUID, songID uuid.UUID, req *dto.UpdateSongRequest) (*models.Song, error) {
	var song models.Song
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&song, "id = ?", songID).Error; err != nil {
			return ErrSongNotFound
		}
		if err := requireOwner(tx, userID, song.OwnerEmail); err != nil {
			return err
		}

		prior := song.Key()

		if req.Title != "" {
			song.Title = req.Title
		}
		if req.Artist != "" {
			song.Artist = req.Artist
		}
		if req.Year != 0 {
			song.Year = req.Year
		}
		if req.YouTubeID != "" {
			song.YouTubeID = req.YouTubeID
		}

		if song.Key() != prior {
			var clash models.Song
			err := tx.Where("title = ? AND artist = ? AND year = ? AND id <> ?",
				song.Title, song.Artist, song.Year, song.ID).First(&clash).Error
			if err == nil {
				return ErrSongExists
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to check song uniqueness: %w", err)
			}
		}

		if err := tx.Model(&song).Updates(map[string]interface{}{
			"title":       song.Title,
			"artist":      song.Artist,
			"year":        song.Year,
			"you_tube_id": song.YouTubeID,
		}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSongExists
			}
			return fmt.Errorf("failed to update song: %w", err)
		}

		return s.sync.PropagateUpdate(tx, &song, prior)
	})
	if err != nil {
		return nil, err
	}
	return &song, nil
}

// Delete removes a catalog song after the synchronizer has stripped its
// embedded copy from every referenced playlist.
func (s *SongService) Delete(userID uuid.UUID, songID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var song models.Song
		if err := tx.First(&song, "id = ?", songID).Error; err != nil {
			return ErrSongNotFound
		}
		if err := requireOwner(tx, userID, song.OwnerEmail); err != nil {
			return err
		}

		if err := s.sync.PropagateDelete(tx, &song); err != nil {
			return err
		}

		if err := tx.Delete(&song).Error; err != nil {
			return fmt.Errorf("failed to delete song: %w", err)
		}
		return nil
	})
}

// Listen atomically bumps the listen counter. Any authenticated user may
// call it; the guarded SQL keeps concurrent listens from losing counts.
func (s *SongService) Listen(songID uuid.UUID) (*models.Song, error) {
	result := s.db.Model(&models.Song{}).Where("id = ?", songID).
		UpdateColumn("listens", gorm.Expr("listens + 1"))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to record listen: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrSongNotFound
	}

	var song models.Song
	if err := s.db.First(&song, "id = ?", songID).Error; err != nil {
		return nil, ErrSongNotFound
	}
	return &song, nil
}
