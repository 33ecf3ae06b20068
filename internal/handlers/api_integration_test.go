package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go_5_kanji_keep/internal/catalog"
	"go_5_kanji_keep/internal/config"
	"go_5_kanji_keep/internal/handlers"
	"go_5_kanji_keep/internal/middleware"
	"go_5_kanji_keep/internal/model"
	"go_5_kanji_keep/internal/repository"
	"go_5_kanji_keep/internal/search"
	"go_5_kanji_keep/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const integrationSecret = "integration-secret"

// setupAPIServer は sqlite 上で本物のリポジトリ・サービス・ルーターを組み立てます。
func setupAPIServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Flashcard{}))

	c, err := catalog.Default()
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Auth.Enabled = true
	cfg.Auth.JWTSecret = integrationSecret
	cfg.Auth.SignInURL = "/auth"

	router := handlers.NewRouter(handlers.RouterDeps{
		Config:           cfg,
		Logger:           testLogger,
		KanjiService:     service.NewKanjiService(c, search.NewShuffler(nil)),
		FlashcardService: service.NewFlashcardService(db, repository.NewGormFlashcardRepository(), testLogger),
		DB:               sqlDB,
	})
	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		sqlDB.Close()
	})
	return server
}

func bearer(t *testing.T, userID uuid.UUID) map[string]string {
	t.Helper()
	token, err := middleware.NewSessionToken(integrationSecret, userID, "", time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestAPI_FlashcardLifecycle(t *testing.T) {
	server := setupAPIServer(t)
	alice := uuid.New()
	bob := uuid.New()

	// 作成
	_, body := sendRequest(t, server, httpRequestDetails{
		Method:  http.MethodPost,
		Path:    "/api/v1/flashcards",
		Body:    model.CreateFlashcardRequest{Kanji: " 山 ", Kunyomi: "やま", Meaning: "mountain "},
		Headers: bearer(t, alice),
	}, httpResponseExpectations{ExpectedCode: http.StatusCreated})
	var created model.Flashcard
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "山", created.Kanji)
	assert.Equal(t, "mountain", created.Meaning)
	assert.Equal(t, alice, created.UserID)

	// 検証エラー
	_, body = sendRequest(t, server, httpRequestDetails{
		Method:  http.MethodPost,
		Path:    "/api/v1/flashcards",
		Body:    model.CreateFlashcardRequest{Kanji: "川", Meaning: "   "},
		Headers: bearer(t, alice),
	}, httpResponseExpectations{ExpectedCode: http.StatusBadRequest})
	assert.Contains(t, string(body), "Meaning is required")

	// 他人からは見えない
	_, body = sendRequest(t, server, httpRequestDetails{
		Method:  http.MethodGet,
		Path:    "/api/v1/flashcards",
		Headers: bearer(t, bob),
	}, httpResponseExpectations{ExpectedCode: http.StatusOK})
	assert.JSONEq(t, `[]`, string(body))

	// 他人は削除できない
	sendRequest(t, server, httpRequestDetails{
		Method:  http.MethodDelete,
		Path:    "/api/v1/flashcards/" + created.ID.String(),
		Headers: bearer(t, bob),
	}, httpResponseExpectations{ExpectedCode: http.StatusForbidden})

	_, body = sendRequest(t, server, httpRequestDetails{
		Method:  http.MethodGet,
		Path:    "/api/v1/flashcards",
		Headers: bearer(t, alice),
	}, httpResponseExpectations{ExpectedCode: http.StatusOK})
	var cards []model.Flashcard
	require.NoError(t, json.Unmarshal(body, &cards))
	require.Len(t, cards, 1)

	// 所有者は削除できる
	sendRequest(t, server, httpRequestDetails{
		Method:  http.MethodDelete,
		Path:    "/api/v1/flashcards/" + created.ID.String(),
		Headers: bearer(t, alice),
	}, httpResponseExpectations{ExpectedCode: http.StatusNoContent})
	sendRequest(t, server, httpRequestDetails{
		Method:  http.MethodDelete,
		Path:    "/api/v1/flashcards/" + created.ID.String(),
		Headers: bearer(t, alice),
	}, httpResponseExpectations{ExpectedCode: http.StatusNotFound})
}

func TestAPI_AuthRequired(t *testing.T) {
	server := setupAPIServer(t)

	for _, path := range []string{"/api/v1/flashcards", "/api/v1/session"} {
		_, body := sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: path},
			httpResponseExpectations{ExpectedCode: http.StatusUnauthorized})
		var resp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, "AUTH_REQUIRED", resp.Error.Code)
		assert.Equal(t, "/auth", resp.Error.RedirectTo)
	}

	userID := uuid.New()
	_, body := sendRequest(t, server, httpRequestDetails{
		Method:  http.MethodGet,
		Path:    "/api/v1/session",
		Headers: bearer(t, userID),
	}, httpResponseExpectations{ExpectedCode: http.StatusOK})
	var session model.Session
	require.NoError(t, json.Unmarshal(body, &session))
	assert.Equal(t, userID, session.UserID)
}

func TestAPI_PublicCatalogAndHealth(t *testing.T) {
	server := setupAPIServer(t)

	_, body := sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/kanji?q=WATER"},
		httpResponseExpectations{ExpectedCode: http.StatusOK})
	var resp model.KanjiListResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "WATER", resp.Query)
	assert.Equal(t, len(resp.Kanji), resp.Count)
	require.NotEmpty(t, resp.Kanji)

	sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/kanji/18"},
		httpResponseExpectations{ExpectedCode: http.StatusOK})

	_, body = sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/health"},
		httpResponseExpectations{ExpectedCode: http.StatusOK})
	assert.Equal(t, "OK", string(body))
}
