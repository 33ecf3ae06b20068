package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go_5_kanji_keep/internal/config"
	"go_5_kanji_keep/internal/model"
	"go_5_kanji_keep/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// sessionClaims はアクセストークンのペイロードです。sub にユーザーの UUID が入ります。
type sessionClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークン (HS256) を検証し、
// セッションをコンテキストにセットします。
// トークンがない・不正な場合は 401 AUTH_REQUIRED と sign-in URL を返します。
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	secret := []byte(cfg.Auth.JWTSecret)
	signInURL := cfg.Auth.SignInURL

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			reject := func(msg string, attrs ...any) {
				logger.Warn("JWT auth failed: "+msg, attrs...)
				appErr := model.NewAppError("AUTH_REQUIRED", "Please sign in to continue.", "", model.ErrAuthRequired).
					WithRedirect(signInURL)
				webutil.HandleError(w, logger, appErr)
			}

			if len(secret) == 0 {
				reject("jwt secret is not configured")
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				reject("Authorization header missing")
				return
			}
			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				reject("Invalid Authorization header format")
				return
			}

			claims := &sessionClaims{}
			token, err := jwt.ParseWithClaims(headerParts[1], claims, func(token *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
			if err != nil || !token.Valid {
				reject("Invalid token", slog.Any("error", err))
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				reject("Invalid subject (sub) format", slog.String("subject", claims.Subject))
				return
			}

			session := &model.Session{UserID: userID, Email: claims.Email}
			if claims.ExpiresAt != nil {
				session.ExpiresAt = claims.ExpiresAt.Time
			}

			ctx := WithSession(r.Context(), session)
			ctx = WithLogger(ctx, logger.With(slog.String("user_id", userID.String())))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewSessionToken は検証用と同じ形式のアクセストークンを発行します (開発・テスト用)。
func NewSessionToken(secret string, userID uuid.UUID, email string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("middleware.NewSessionToken: empty secret")
	}
	now := time.Now()
	claims := sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// WithSession はセッションをコンテキストに格納します。
func WithSession(ctx context.Context, session *model.Session) context.Context {
	return context.WithValue(ctx, model.SessionKey, session)
}

// GetSessionFromContext はコンテキストからセッションを取り出します。
func GetSessionFromContext(ctx context.Context) (*model.Session, error) {
	session, ok := ctx.Value(model.SessionKey).(*model.Session)
	if !ok || session == nil {
		// 認証ミドルウェアを通っていない
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Could not read session from context.", "", model.ErrInternalServer)
	}
	return session, nil
}
