package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/playlisterapp/playlister-server/internal/config"
	"github.com/playlisterapp/playlister-server/internal/dto"
	"github.com/playlisterapp/playlister-server/internal/models"
	"github.com/playlisterapp/playlister-server/internal/services"
	"github.com/playlisterapp/playlister-server/internal/session"
	"github.com/playlisterapp/playlister-server/internal/validation"
)

type AuthHandler struct {
	authService *services.AuthService
	validate    *validation.Validator
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, validate *validation.Validator, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, validate: validate, cfg: cfg}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "Invalid request body",
		})
	}
	if err := h.validate.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: err.Error(),
		})
	}

	_, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				ErrorMessage: "An account with this email address already exists.",
			})
		}
		if errors.Is(err, services.ErrPasswordMismatch) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				ErrorMessage: "Please enter the same password twice.",
			})
		}
		slog.Error("register failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			ErrorMessage: "An error occurred while creating the account.",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Account created successfully. Please login.",
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "Invalid request body",
		})
	}
	if err := h.validate.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "Please enter all required fields.",
		})
	}

	user, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				ErrorMessage: "Wrong email or password provided.",
			})
		}
		slog.Error("login failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			ErrorMessage: "An error occurred while logging in.",
		})
	}

	token, err := session.Sign(user.ID, h.cfg.JWTSecret, h.cfg.SessionExpiry)
	if err != nil {
		slog.Error("failed to sign session token", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			ErrorMessage: "An error occurred while logging in.",
		})
	}

	c.Cookie(h.sessionCookie(token, time.Now().Add(h.cfg.SessionExpiry)))

	return c.JSON(fiber.Map{
		"success": true,
		"user":    publicUser(user),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(h.sessionCookie("", time.Unix(0, 0)))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

// LoggedIn answers 200 whether or not a session exists; an invalid or
// missing cookie is a negative answer, not an error.
func (h *AuthHandler) LoggedIn(c *fiber.Ctx) error {
	userID, err := session.Parse(c.Cookies(session.CookieName), h.cfg.JWTSecret)
	if err != nil {
		return c.JSON(dto.LoggedInResponse{LoggedIn: false, User: nil})
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		return c.JSON(dto.LoggedInResponse{LoggedIn: false, User: nil})
	}

	return c.JSON(dto.LoggedInResponse{LoggedIn: true, User: publicUser(user)})
}

func (h *AuthHandler) EditAccount(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			ErrorMessage: "Unauthorized. Please login to edit your account.",
		})
	}

	var req dto.EditAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "Invalid request body",
		})
	}
	if err := h.validate.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: err.Error(),
		})
	}

	user, err := h.authService.EditAccount(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				ErrorMessage: "User not found.",
			})
		case errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				ErrorMessage: "An account with this email address already exists.",
			})
		case errors.Is(err, services.ErrNothingToUpdate) || errors.Is(err, services.ErrPasswordMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				ErrorMessage: err.Error(),
			})
		default:
			slog.Error("account edit failed", "error", err, "user_id", userID)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				ErrorMessage: "An error occurred while updating the account.",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    publicUser(user),
		"message": "Account updated successfully.",
	})
}

func (h *AuthHandler) GetUserByEmail(c *fiber.Ctx) error {
	email := c.Params("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorMessage: "Email is required",
		})
	}

	user, err := h.authService.GetUserByEmail(email)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			ErrorMessage: "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    publicUser(user),
	})
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

func publicUser(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		UserName:    user.UserName,
		Email:       user.Email,
		AvatarImage: user.AvatarImage,
	}
}
