package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/playlisterapp/playlister-server/internal/config"
	"github.com/playlisterapp/playlister-server/internal/handlers"
	"github.com/playlisterapp/playlister-server/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	playlistHandler *handlers.PlaylistHandler,
	songHandler *handlers.SongHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/health", healthHandler.Check)

	// Auth. Stricter rate limit than the store: 10 req/min per IP.
	auth := app.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/logout", authHandler.Logout)
	auth.Get("/loggedIn", authHandler.LoggedIn)
	auth.Get("/user/:email", authHandler.GetUserByEmail)
	auth.Put("/edit", middleware.SessionProtected(cfg), authHandler.EditAccount)

	// Store. Every endpoint requires a session; 60 req/min per IP.
	store := app.Group("/store", middleware.SessionProtected(cfg))
	store.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	store.Post("/playlist", playlistHandler.Create)
	store.Get("/playlist/:id", playlistHandler.GetByID)
	store.Put("/playlist/:id", playlistHandler.Update)
	store.Delete("/playlist/:id", playlistHandler.Delete)
	store.Post("/playlist/:id/copy", playlistHandler.Copy)
	store.Post("/playlist/:id/song", playlistHandler.AddSong)
	store.Delete("/playlist/:id/song", playlistHandler.RemoveSong)
	store.Get("/playlists", playlistHandler.GetAll)
	store.Get("/playlistpairs", playlistHandler.GetPairs)

	store.Get("/songs", songHandler.GetAll)
	store.Post("/song", songHandler.Create)
	store.Put("/song/:id", songHandler.Update)
	store.Delete("/song/:id", songHandler.Delete)
	store.Post("/song/:id/listen", songHandler.Listen)
}
