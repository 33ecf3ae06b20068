// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go_5_kanji_keep/internal/catalog"
	"go_5_kanji_keep/internal/config"
	"go_5_kanji_keep/internal/handlers"
	"go_5_kanji_keep/internal/repository"
	"go_5_kanji_keep/internal/search"
	"go_5_kanji_keep/internal/service"
)

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	if err := config.LoadConfig(config.DefaultConfigDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}
	cfg := &config.Cfg

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	level, ok := config.ParseLogLevel(cfg.Log.Level)
	if !ok {
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", cfg.Log.Level))
	}
	logLevel.Set(level)

	appEnv := os.Getenv("APP_ENV")
	logger := config.NewLogger(os.Stderr, logLevel, appEnv)
	tempLogger.Info("Log handler selected", slog.String("APP_ENV", appEnv))
	log.Println("Log Config Loaded...")

	slog.SetDefault(logger)
	slog.Info("Application starting...", slog.String("app", config.AppName), slog.String("version", config.AppVersion))

	// カタログは起動時に一度だけ読み込んで検証する
	kanjiCatalog, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		slog.Error("Error loading kanji catalog", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("Kanji catalog loaded", slog.Int("records", kanjiCatalog.Len()))

	db, err := repository.NewDB(cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// Dependency Injection
	flashcardRepo := repository.NewGormFlashcardRepository()
	flashcardService := service.NewFlashcardService(db, flashcardRepo, logger)
	kanjiService := service.NewKanjiService(kanjiCatalog, search.NewShuffler(nil))

	router := handlers.NewRouter(handlers.RouterDeps{
		Config:           cfg,
		Logger:           logger,
		KanjiService:     kanjiService,
		FlashcardService: flashcardService,
		DB:               sqlDB,
		RequestTimeout:   60 * time.Second,
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
