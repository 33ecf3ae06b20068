// internal/handlers/flashcard_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_5_kanji_keep/internal/middleware"
	"go_5_kanji_keep/internal/model"
	"go_5_kanji_keep/internal/service"
	"go_5_kanji_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type FlashcardHandler struct {
	service service.FlashcardService
	logger  *slog.Logger
}

func NewFlashcardHandler(s service.FlashcardService, logger *slog.Logger) *FlashcardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FlashcardHandler{
		service: s,
		logger:  logger,
	}
}

// PostFlashcard はログイン中のユーザーのフラッシュカードを作成します
func (h *FlashcardHandler) PostFlashcard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostFlashcard"))

	session, err := middleware.GetSessionFromContext(r.Context())
	if err != nil {
		logger.Error("Session missing in protected route", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("user_id", session.UserID.String()))

	var req model.CreateFlashcardRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	// 空白除去と必須チェックはサービス側で行う
	card, err := h.service.CreateFlashcard(r.Context(), session.UserID, &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			logger.Warn("Validation failed", slog.Any("error", err))
		} else {
			logger.Error("Error creating flashcard in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Flashcard created successfully", slog.String("flashcard_id", card.ID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, card, logger)
}

// GetFlashcards はユーザーのカードを新しい順に返します
func (h *FlashcardHandler) GetFlashcards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetFlashcards"))

	session, err := middleware.GetSessionFromContext(r.Context())
	if err != nil {
		logger.Error("Session missing in protected route", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("user_id", session.UserID.String()))

	cards, err := h.service.ListFlashcards(r.Context(), session.UserID)
	if err != nil {
		logger.Error("Error listing flashcards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if cards == nil {
		cards = []*model.Flashcard{}
	}

	logger.Info("Flashcards listed successfully", slog.Int("count", len(cards)))
	webutil.RespondWithJSON(w, http.StatusOK, cards, logger)
}

// DeleteFlashcard は保存先の ID (UUID) でカードを削除します
func (h *FlashcardHandler) DeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteFlashcard"))

	session, err := middleware.GetSessionFromContext(r.Context())
	if err != nil {
		logger.Error("Session missing in protected route", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("user_id", session.UserID.String()))

	idStr := chi.URLParam(r, "flashcard_id")
	flashcardID, err := uuid.Parse(idStr)
	if err != nil {
		logger.Warn("Invalid flashcard ID format in URL", slog.String("flashcard_id_str", idStr))
		appErr := model.NewAppError("INVALID_URL_PARAM", "flashcard_id must be a UUID.", "flashcard_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("flashcard_id", flashcardID.String()))

	if err := h.service.DeleteFlashcard(r.Context(), session.UserID, flashcardID); err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			logger.Info("Flashcard not found", slog.Any("error", err))
		case errors.Is(err, model.ErrUnauthorized):
			logger.Warn("Flashcard belongs to another user")
		default:
			logger.Error("Error deleting flashcard in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Flashcard deleted successfully")
	webutil.RespondNoContent(w)
}
