package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_5_kanji_keep/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"NotFound", model.ErrNotFound, http.StatusNotFound},
		{"InvalidInput (AppError)", model.NewAppError("VALIDATION_ERROR", "Kanji is required", "kanji", model.ErrInvalidInput), http.StatusBadRequest},
		{"AuthRequired", model.ErrAuthRequired, http.StatusUnauthorized},
		{"Unauthorized (wrapped)", fmt.Errorf("delete: %w", model.ErrUnauthorized), http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestHandleError(t *testing.T) {
	t.Run("AppErrorの詳細をそのまま返す", func(t *testing.T) {
		rr := httptest.NewRecorder()
		appErr := model.NewAppError("AUTH_REQUIRED", "Please sign in.", "", model.ErrAuthRequired).WithRedirect("/auth")
		HandleError(rr, testLogger, appErr)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		var resp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "AUTH_REQUIRED", resp.Error.Code)
		assert.Equal(t, "/auth", resp.Error.RedirectTo)
	})

	t.Run("予期せぬエラーは汎用メッセージ", func(t *testing.T) {
		rr := httptest.NewRecorder()
		HandleError(rr, testLogger, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "connection refused")
		assert.Contains(t, rr.Body.String(), "INTERNAL_SERVER_ERROR")
	})

	t.Run("センチネルのみ", func(t *testing.T) {
		rr := httptest.NewRecorder()
		HandleError(rr, testLogger, model.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "NOT_FOUND")
	})
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		req       model.CreateFlashcardRequest
		wantMsg   string
		wantField string
	}{
		{"正常系", model.CreateFlashcardRequest{Kanji: "水", Meaning: "water"}, "", ""},
		{"異常系: kanjiが空", model.CreateFlashcardRequest{Meaning: "water"}, "Kanji is required", "kanji"},
		{"異常系: meaningが空", model.CreateFlashcardRequest{Kanji: "水"}, "Meaning is required", "meaning"},
		{"異常系: 両方空ならkanjiを先に報告", model.CreateFlashcardRequest{}, "Kanji is required", "kanji"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrInvalidInput)
			var appErr *model.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.wantMsg, appErr.Message)
			assert.Equal(t, tt.wantField, appErr.Field)
		})
	}
}

func TestDecodeJSONBody(t *testing.T) {
	var req model.CreateFlashcardRequest

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"kanji":"水","meaning":"water"}`))
	require.NoError(t, DecodeJSONBody(r, &req))
	assert.Equal(t, "水", req.Kanji)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"kanji":"水","user_id":"x"}`))
	assert.ErrorIs(t, DecodeJSONBody(r, &req), model.ErrInvalidInput)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.ErrorIs(t, DecodeJSONBody(r, &req), model.ErrInvalidInput)
}
