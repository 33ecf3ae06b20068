package handlers

import (
	"log/slog"
	"net/http"

	"go_5_kanji_keep/internal/middleware"
	"go_5_kanji_keep/internal/webutil"
)

// SessionHandler は認証ミドルウェアが確立したセッションを返すだけのハンドラです。
// クライアントはリモート操作の前にこれでサインイン状態を確認します。
type SessionHandler struct {
	logger *slog.Logger
}

func NewSessionHandler(logger *slog.Logger) *SessionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionHandler{logger: logger}
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSession"))

	session, err := middleware.GetSessionFromContext(r.Context())
	if err != nil {
		logger.Error("Session missing in protected route", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, session, logger)
}
