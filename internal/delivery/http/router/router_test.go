package router

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vitrine/config"
	"vitrine/internal/delivery/http/middleware"
	"vitrine/internal/delivery/http/router/handler"
	"vitrine/internal/delivery/http/validator"
	"vitrine/internal/infra/auth"
	"vitrine/internal/infra/blob"
	"vitrine/internal/infra/persistence"
	"vitrine/internal/infra/persistence/memory"
	"vitrine/internal/mocks"
	"vitrine/internal/renderer"
	"vitrine/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

const testAccessSecret = "test-access-secret"

// newTestServer wires the full HTTP stack over in-memory infrastructure.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = testAccessSecret
	cfg.SecretKey.Refresh = "test-refresh-secret"
	cfg.ApplyDefaults()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := memory.New()
	profileRepo := persistence.NewProfileRepository(store)
	messageRepo := persistence.NewMessageRepository(store)

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { bucket.Close() })
	blobStore := blob.NewWithBucket(bucket, time.Minute)
	images := blob.NewImageResolver(blobStore, time.Minute, "https://cdn.example.com/placeholder.png", logger)

	publisher := &mocks.NoopPublisher{}

	editor := impl.NewEditorService(impl.EditorServiceParams{
		ProfileRepo: profileRepo,
		BlobStore:   blobStore,
		Publisher:   publisher,
		Config:      cfg,
		Logger:      logger,
	})
	messages := impl.NewMessageService(impl.MessageServiceParams{
		ProfileRepo: profileRepo,
		MessageRepo: messageRepo,
		Publisher:   publisher,
		Logger:      logger,
	})

	siteRenderer, err := renderer.New(images, logger)
	require.NoError(t, err)
	render := impl.NewRenderService(impl.RenderServiceParams{
		Editor:   editor,
		Renderer: siteRenderer,
	})

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	r := NewRouter(RouterParams{
		AuthHandler:    handler.NewAuthHandler(tokenSvc, cfg, logger),
		ProfileHandler: handler.NewProfileHandler(editor, logger),
		MessageHandler: handler.NewMessageHandler(messages, logger),
		SiteHandler:    handler.NewSiteHandler(render, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(tokenSvc, cfg),
	})
	r.RegisterRoutes(e)

	return e
}

func doJSON(e *echo.Echo, method, target, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func issueToken(t *testing.T, e *echo.Echo, ownerID string) string {
	t.Helper()

	rec := doJSON(e, http.MethodPost, "/auth/token", "",
		`{"ownerId":"`+ownerID+`","secret":"`+testAccessSecret+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)

	return envelope.Data.AccessToken
}

func TestRouter_HealthCheck(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRouter_IssueToken_WrongSecret(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/token", "",
		`{"ownerId":"owner-1","secret":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_SECRET")
}

func TestRouter_CreateProfile_RequiresToken(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/profiles", "",
		`{"businessId":"le-bistro","businessType":"restaurant"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ProfileLifecycle(t *testing.T) {
	e := newTestServer(t)
	token := issueToken(t, e, "owner-1")

	rec := doJSON(e, http.MethodPost, "/profiles", token,
		`{"businessId":"le-bistro","businessType":"restaurant"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"businessId":"le-bistro"`)

	// profile reads are public
	rec = doJSON(e, http.MethodGet, "/profiles/le-bistro", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"businessType":"restaurant"`)

	rec = doJSON(e, http.MethodPut, "/profiles/le-bistro/sections/basicInfo", token,
		`{"name":"Le Bistro","description":"Cuisine de saison","phone":"+33 1 23 45 67 89"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"name":"Le Bistro"`)

	// the rendered site reflects the save
	rec = doJSON(e, http.MethodGet, "/sites/le-bistro", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
	assert.Contains(t, rec.Body.String(), "Le Bistro")
}

func TestRouter_SaveSection_WrongOwnerForbidden(t *testing.T) {
	e := newTestServer(t)
	ownerToken := issueToken(t, e, "owner-1")
	otherToken := issueToken(t, e, "owner-2")

	rec := doJSON(e, http.MethodPost, "/profiles", ownerToken,
		`{"businessId":"le-bistro","businessType":"restaurant"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPut, "/profiles/le-bistro/sections/basicInfo", otherToken,
		`{"name":"Hijacked"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
}

func TestRouter_AcceptMessage(t *testing.T) {
	e := newTestServer(t)
	token := issueToken(t, e, "owner-1")

	rec := doJSON(e, http.MethodPost, "/profiles", token,
		`{"businessId":"le-bistro","businessType":"restaurant"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/profiles/le-bistro/messages", "",
		`{"name":"Alice","email":"alice@example.com","message":"Une table pour deux?"}`)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"id"`)
}

func TestRouter_SiteUnknownBusiness(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/sites/nobody-here", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "PROFILE_NOT_FOUND")
}
