package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/playlisterapp/playlister-server/internal/dto"
	"github.com/playlisterapp/playlister-server/internal/services"
	"github.com/playlisterapp/playlister-server/internal/session"
	"github.com/playlisterapp/playlister-server/internal/validation"
)

type SongHandler struct {
	songs    *services.SongService
	validate *validation.Validator
}

func NewSongHandler(songs *services.SongService, validate *validation.Validator) *SongHandler {
	return &SongHandler{songs: songs, validate: validate}
}

func (h *SongHandler) Create(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateSongRequest
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

	song, err := h.songs.Create(userID, &req)
	if err != nil {
		return respondStoreError(c, err, "create_song")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SongResponse{Success: true, Song: song})
}

func (h *SongHandler) GetAll(c *fiber.Ctx) error {
	if _, err := session.UserID(c); err != nil {
		return unauthorized(c)
	}

	songs, err := h.songs.GetAll()
	if err != nil {
		return respondStoreError(c, err, "get_songs")
	}

	return c.JSON(dto.SongsResponse{Success: true, Data: songs})
}

func (h *SongHandler) Update(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	songID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "Invalid song id",
		})
	}

	var req dto.UpdateSongRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "You must provide song fields",
		})
	}

	song, err := h.songs.Update(userID, songID, &req)
	if err != nil {
		return respondStoreError(c, err, "update_song")
	}

	return c.JSON(dto.SongResponse{Success: true, Song: song})
}

func (h *SongHandler) Delete(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	songID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "Invalid song id",
		})
	}

	if err := h.songs.Delete(userID, songID); err != nil {
		return respondStoreError(c, err, "delete_song")
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *SongHandler) Listen(c *fiber.Ctx) error {
	if _, err := session.UserID(c); err != nil {
		return unauthorized(c)
	}

	songID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "Invalid song id",
		})
	}

	song, err := h.songs.Listen(songID)
	if err != nil {
		return respondStoreError(c, err, "listen_song")
	}

	return c.JSON(dto.SongResponse{Success: true, Song: song})
}
