package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/playlisterapp/playlister-server/internal/dto"
	"github.com/playlisterapp/playlister-server/internal/services"
	"github.com/playlisterapp/playlister-server/internal/session"
	"github.com/playlisterapp/playlister-server/internal/validation"
)

type PlaylistHandler struct {
	playlists *services.PlaylistService
	validate  *validation.Validator
}

func NewPlaylistHandler(playlists *services.PlaylistService, validate *validation.Validator) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists, validate: validate}
}

func (h *PlaylistHandler) Create(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreatePlaylistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "You must provide a playlist",
		})
	}
	if err := h.validate.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: err.Error(),
		})
	}

	playlist, err := h.playlists.Create(userID, &req)
	if err != nil {
		return respondStoreError(c, err, "create_playlist")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.PlaylistResponse{
		Success:  true,
		Playlist: playlist,
	})
}

func (h *PlaylistHandler) GetByID(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	playlistID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "Invalid playlist id",
		})
	}

	playlist, err := h.playlists.Get(userID, playlistID)
	if err != nil {
		return respondStoreError(c, err, "get_playlist")
	}

	return c.JSON(dto.PlaylistResponse{Success: true, Playlist: playlist})
}

func (h *PlaylistHandler) GetAll(c *fiber.Ctx) error {
	if _, err := session.UserID(c); err != nil {
		return unauthorized(c)
	}

	playlists, err := h.playlists.GetAll()
	if err != nil {
		return respondStoreError(c, err, "get_playlists")
	}

	return c.JSON(dto.PlaylistsResponse{Success: true, Data: playlists})
}

func (h *PlaylistHandler) GetPairs(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	pairs, err := h.playlists.GetPairs(userID)
	if err != nil {
		return respondStoreError(c, err, "get_playlist_pairs")
	}

	return c.JSON(dto.PlaylistPairsResponse{Success: true, IDNamePairs: pairs})
}

func (h *PlaylistHandler) Update(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	playlistID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "Invalid playlist id",
		})
	}

	var req dto.UpdatePlaylistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "You must provide a playlist",
		})
	}
	if err := h.validate.Validate(&req.Playlist); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: err.Error(),
		})
	}

	playlist, err := h.playlists.Update(userID, playlistID, &req.Playlist)
	if err != nil {
		return respondStoreError(c, err, "update_playlist")
	}

	return c.JSON(dto.PlaylistResponse{Success: true, Playlist: playlist})
}

func (h *PlaylistHandler) Delete(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	playlistID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "Invalid playlist id",
		})
	}

	if err := h.playlists.Delete(userID, playlistID); err != nil {
		return respondStoreError(c, err, "delete_playlist")
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *PlaylistHandler) Copy(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	playlistID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "Invalid playlist id",
		})
	}

	playlist, err := h.playlists.Copy(userID, playlistID)
	if err != nil {
		return respondStoreError(c, err, "copy_playlist")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.PlaylistResponse{
		Success:  true,
		Playlist: playlist,
	})
}

func (h *PlaylistHandler) AddSong(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	playlistID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "Invalid playlist id",
		})
	}

	var req dto.AddSongRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "You must provide a song",
		})
	}
	if err := h.validate.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: err.Error(),
		})
	}

	playlist, err := h.playlists.AddSong(userID, playlistID, &req)
	if err != nil {
		return respondStoreError(c, err, "add_song_to_playlist")
	}

	return c.JSON(dto.PlaylistResponse{Success: true, Playlist: playlist})
}

func (h *PlaylistHandler) RemoveSong(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	playlistID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "Invalid playlist id",
		})
	}

	var req dto.RemoveSongRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "You must provide a song",
		})
	}
	if err := h.validate.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: err.Error(),
		})
	}

	playlist, err := h.playlists.RemoveSong(userID, playlistID, &req)
	if err != nil {
		return respondStoreError(c, err, "remove_song_from_playlist")
	}

	return c.JSON(dto.PlaylistResponse{Success: true, Playlist: playlist})
}
