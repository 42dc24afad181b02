package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User is an account that can own playlists and catalog songs.
// Playlists carries the ids of the lists the user owns, mirrored from
// playlist.owner_email at write time.
type User struct {
	ID           uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	UserName     string                         `gorm:"size:255;not null" json:"userName"`
	Email        string                         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string                         `gorm:"not null" json:"-"`
	AvatarImage  string                         `gorm:"type:text" json:"avatarImage,omitempty"`
	Playlists    datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb" json:"playlists"`
	CreatedAt    time.Time                      `json:"created_at"`
	UpdatedAt    time.Time                      `json:"updated_at"`
}
