package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"go_5_kanji_keep/internal/config"
	"go_5_kanji_keep/internal/middleware"
	"go_5_kanji_keep/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// RouterDeps はルーターの組み立てに必要な依存をまとめたものです
type RouterDeps struct {
	Config           *config.Config
	Logger           *slog.Logger
	KanjiService     service.KanjiService
	FlashcardService service.FlashcardService
	DB               Pinger // nil ならヘルスチェックで ping しない
	RequestTimeout   time.Duration
}

// NewRouter は API のルーティングとミドルウェアを組み立てます。
func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config
	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	kanjiHandler := NewKanjiHandler(deps.KanjiService, logger)
	flashcardHandler := NewFlashcardHandler(deps.FlashcardService, logger)
	sessionHandler := NewSessionHandler(logger)
	healthHandler := NewHealthHandler(deps.DB, logger)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
		Debug:            false,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(timeout))

	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Get("/kanji", kanjiHandler.GetKanjiList)
		r.Get("/kanji/{kanji_id}", kanjiHandler.GetKanji)

		// --- Protected routes ---
		r.Group(func(r chi.Router) {
			if cfg.Auth.Enabled {
				logger.Info("Applying JWT authentication middleware")
				r.Use(middleware.JWTAuthMiddleware(cfg))
			} else {
				logger.Warn("Auth disabled: applying development session middleware (X-User-ID)")
				r.Use(middleware.DevSessionMiddleware(cfg))
			}

			r.Get("/session", sessionHandler.GetSession)
			r.Route("/flashcards", func(r chi.Router) {
				r.Post("/", flashcardHandler.PostFlashcard)
				r.Get("/", flashcardHandler.GetFlashcards)
				r.Delete("/{flashcard_id}", flashcardHandler.DeleteFlashcard)
			})
		})
	})

	r.Get("/health", healthHandler.GetHealth)

	return r
}
