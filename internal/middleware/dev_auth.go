package middleware

import (
	"net/http"
	"time"

	"go_5_kanji_keep/internal/config"
	"go_5_kanji_keep/internal/model"
	"go_5_kanji_keep/internal/webutil"

	"github.com/google/uuid"
)

// DevSessionMiddleware は auth.enabled=false のとき用のミドルウェアです。
// X-User-ID ヘッダーの UUID をそのままセッションとして扱います (トークン検証なし)。
func DevSessionMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			userIDStr := r.Header.Get("X-User-ID")
			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				logger.Warn("[DEV AUTH] Missing or invalid X-User-ID header", "value", userIDStr)
				appErr := model.NewAppError("AUTH_REQUIRED", "[DEV] X-User-ID header with a UUID is required.", "", model.ErrAuthRequired).
					WithRedirect(cfg.Auth.SignInURL)
				webutil.HandleError(w, logger, appErr)
				return
			}

			logger.Debug("[DEV AUTH] Session set to context (no validation)", "user_id", userID.String())
			session := &model.Session{UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}
