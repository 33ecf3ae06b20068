// internal/handlers/kanji_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"go_5_kanji_keep/internal/model"
	"go_5_kanji_keep/internal/service"
	"go_5_kanji_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type KanjiHandler struct {
	service service.KanjiService
	logger  *slog.Logger
}

func NewKanjiHandler(s service.KanjiService, logger *slog.Logger) *KanjiHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &KanjiHandler{service: s, logger: logger}
}

// GetKanjiList は ?q= で検索し、?study=true なら並べ替えた結果を返します
func (h *KanjiHandler) GetKanjiList(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetKanjiList"))

	query := r.URL.Query().Get("q")
	studyMode := false
	if raw := r.URL.Query().Get("study"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			logger.Warn("Invalid study parameter", slog.String("study", raw))
			appErr := model.NewAppError("INVALID_QUERY_PARAM", "study must be true or false.", "study", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		studyMode = v
	}

	resp, err := h.service.Search(r.Context(), query, studyMode)
	if err != nil {
		logger.Error("Error searching kanji", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Debug("Kanji searched", slog.String("query", query), slog.Bool("study_mode", studyMode), slog.Int("count", resp.Count))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// GetKanji はカタログの1件を返します
func (h *KanjiHandler) GetKanji(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetKanji"))

	idStr := chi.URLParam(r, "kanji_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		logger.Warn("Invalid kanji ID format in URL", slog.String("kanji_id_str", idStr))
		appErr := model.NewAppError("INVALID_URL_PARAM", "kanji_id must be an integer.", "kanji_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	k, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Kanji not found", slog.Int("kanji_id", id))
		} else {
			logger.Error("Error getting kanji", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, k, logger)
}
