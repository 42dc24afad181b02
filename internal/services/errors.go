package services

import "errors"

var (
	// Auth
	ErrEmailTaken         = errors.New("an account with this email address already exists")
	ErrInvalidCredentials = errors.New("wrong email or password provided")
	ErrUserNotFound       = errors.New("user not found")
	ErrNothingToUpdate    = errors.New("no fields to update")
	ErrPasswordMismatch   = errors.New("please enter the same password twice")

	// Store
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrSongNotFound     = errors.New("song not found")
	ErrNotOwner         = errors.New("not the owner of this resource")
	ErrDuplicateSong    = errors.New("song is already in this playlist")
	ErrSongExists       = errors.New("a song with this title, artist and year already exists")
)
