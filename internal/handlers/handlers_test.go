package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/playlisterapp/playlister-server/internal/config"
	"github.com/playlisterapp/playlister-server/internal/database"
	"github.com/playlisterapp/playlister-server/internal/dto"
	"github.com/playlisterapp/playlister-server/internal/handlers"
	"github.com/playlisterapp/playlister-server/internal/routes"
	"github.com/playlisterapp/playlister-server/internal/services"
	"github.com/playlisterapp/playlister-server/internal/session"
	"github.com/playlisterapp/playlister-server/internal/validation"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:     "test-secret",
		SessionExpiry: time.Hour,
	}

	sync := services.NewCatalogSync()
	validate := validation.New()

	authHandler := handlers.NewAuthHandler(services.NewAuthService(db, cfg), validate, cfg)
	playlistHandler := handlers.NewPlaylistHandler(services.NewPlaylistService(db, sync), validate)
	songHandler := handlers.NewSongHandler(services.NewSongService(db, sync), validate)
	healthHandler := handlers.NewHealthHandler(db)

	app := fiber.New()
	routes.Setup(app, cfg, authHandler, playlistHandler, songHandler, healthHandler)
	return app
}

func jsonRequest(t *testing.T, method, target string, body any, cookie string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

// registerAndLogin creates an account through the API and returns the session
// cookie value from the login response.
func registerAndLogin(t *testing.T, app *fiber.App, userName, email string) string {
	t.Helper()

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/auth/register", fiber.Map{
		"userName":       userName,
		"email":          email,
		"password":       "password123",
		"passwordVerify": "password123",
	}, ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, fiber.MethodPost, "/auth/login", fiber.Map{
		"email":    email,
		"password": "password123",
	}, ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			require.True(t, c.HttpOnly)
			return c.Value
		}
	}
	t.Fatal("login response did not set a session cookie")
	return ""
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/auth/register", fiber.Map{
		"userName":       "joe",
		"email":          "joe@example.com",
		"password":       "short",
		"passwordVerify": "short",
	}, ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogin_WrongPasswordIs401(t *testing.T) {
	app := setupTestApp(t)
	registerAndLogin(t, app, "joe", "joe@example.com")

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/auth/login", fiber.Map{
		"email":    "joe@example.com",
		"password": "wrongpassword",
	}, ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Wrong email or password provided.", body.ErrorMessage)
}

func TestLoggedIn_ReflectsSessionState(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(jsonRequest(t, fiber.MethodGet, "/auth/loggedIn", nil, ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var anon dto.LoggedInResponse
	decodeBody(t, resp, &anon)
	assert.False(t, anon.LoggedIn)

	cookie := registerAndLogin(t, app, "joe", "joe@example.com")
	resp, err = app.Test(jsonRequest(t, fiber.MethodGet, "/auth/loggedIn", nil, cookie))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var authed dto.LoggedInResponse
	decodeBody(t, resp, &authed)
	assert.True(t, authed.LoggedIn)
	require.NotNil(t, authed.User)
	assert.Equal(t, "joe@example.com", authed.User.Email)
}

func TestStore_RequiresSessionCookie(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(jsonRequest(t, fiber.MethodGet, "/store/playlists", nil, ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, fiber.MethodGet, "/store/playlists", nil, "garbage-token"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestPlaylistLifecycleOverHTTP(t *testing.T) {
	app := setupTestApp(t)
	cookie := registerAndLogin(t, app, "joe", "joe@example.com")

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/store/playlist", fiber.Map{
		"name": "Road Trip",
	}, cookie))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created dto.PlaylistResponse
	decodeBody(t, resp, &created)
	require.NotNil(t, created.Playlist)
	playlistID := created.Playlist.ID

	resp, err = app.Test(jsonRequest(t, fiber.MethodPost,
		fmt.Sprintf("/store/playlist/%s/song", playlistID), fiber.Map{
			"title": "American Pie", "artist": "Don McLean", "year": 2000, "youTubeId": "abc123",
		}, cookie))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Same (title, artist, year) again: rejected
	resp, err = app.Test(jsonRequest(t, fiber.MethodPost,
		fmt.Sprintf("/store/playlist/%s/song", playlistID), fiber.Map{
			"title": "American Pie", "artist": "Don McLean", "year": 2000, "youTubeId": "abc123",
		}, cookie))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, fiber.MethodDelete,
		fmt.Sprintf("/store/playlist/%s", playlistID), nil, cookie))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, fiber.MethodGet,
		fmt.Sprintf("/store/playlist/%s", playlistID), nil, cookie))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPlaylist_ForeignEditIs403(t *testing.T) {
	app := setupTestApp(t)
	ownerCookie := registerAndLogin(t, app, "owner", "owner@example.com")
	otherCookie := registerAndLogin(t, app, "other", "other@example.com")

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/store/playlist", fiber.Map{
		"name": "Private",
	}, ownerCookie))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created dto.PlaylistResponse
	decodeBody(t, resp, &created)
	playlistID := created.Playlist.ID

	resp, err = app.Test(jsonRequest(t, fiber.MethodDelete,
		fmt.Sprintf("/store/playlist/%s", playlistID), nil, otherCookie))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestPlaylist_BadIDIs400(t *testing.T) {
	app := setupTestApp(t)
	cookie := registerAndLogin(t, app, "joe", "joe@example.com")

	resp, err := app.Test(jsonRequest(t, fiber.MethodGet, "/store/playlist/not-a-uuid", nil, cookie))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSongListenOverHTTP(t *testing.T) {
	app := setupTestApp(t)
	cookie := registerAndLogin(t, app, "joe", "joe@example.com")

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/store/song", fiber.Map{
		"title": "Track", "artist": "Band", "year": 2005, "youTubeId": "v",
	}, cookie))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created dto.SongResponse
	decodeBody(t, resp, &created)
	require.NotNil(t, created.Song)

	resp, err = app.Test(jsonRequest(t, fiber.MethodPost,
		fmt.Sprintf("/store/song/%s/listen", created.Song.ID), nil, cookie))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var listened dto.SongResponse
	decodeBody(t, resp, &listened)
	require.NotNil(t, listened.Song)
	assert.Equal(t, 1, listened.Song.Listens)
}

func TestDuplicateSongCatalogEntryIs400(t *testing.T) {
	app := setupTestApp(t)
	cookie := registerAndLogin(t, app, "joe", "joe@example.com")

	body := fiber.Map{"title": "Track", "artist": "Band", "year": 2005, "youTubeId": "v"}
	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/store/song", body, cookie))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, fiber.MethodPost, "/store/song", body, cookie))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
