package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/playlisterapp/playlister-server/internal/dto"
	"github.com/playlisterapp/playlister-server/internal/services"
)

// respondStoreError maps service errors onto the response taxonomy:
// validation 400, missing session 401, wrong owner 403, missing document
// 404, anything unexpected a logged 500 with a generic message.
func respondStoreError(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, services.ErrPlaylistNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			ErrorMessage: "Playlist not found",
		})
	case errors.Is(err, services.ErrSongNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			ErrorMessage: "Song not found",
		})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			ErrorMessage: "User not found",
		})
	case errors.Is(err, services.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			ErrorMessage: "You do not own this resource",
		})
	case errors.Is(err, services.ErrDuplicateSong):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "Song is already in this playlist",
		})
	case errors.Is(err, services.ErrSongExists):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "A song with this title, artist and year already exists",
		})
	default:
		slog.Error("store operation failed", "action", action, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			ErrorMessage: "Internal server error",
		})
	}
}

// unauthorized is the uniform answer when the session guard let nothing
// usable through.
func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		ErrorMessage: "Unauthorized",
	})
}
