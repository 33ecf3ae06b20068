package repository

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go_5_kanji_keep/internal/model"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newGormLogger は slog を使う GORM Logger を作ります
func newGormLogger(appLogger *slog.Logger) gormlogger.Interface {
	var gormLogLevel gormlogger.LogLevel
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		gormLogLevel = gormlogger.Info
	} else {
		gormLogLevel = gormlogger.Warn
	}

	return slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond),
	).LogMode(gormLogLevel)
}

// NewDB はフラッシュカードを保存する PostgreSQL (Supabase) に接続します。
// テーブルは外部で管理されている前提で、ここではマイグレーションしません。
func NewDB(databaseURL string, appLogger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: newGormLogger(appLogger),
	})
	if err != nil {
		appLogger.Error("Failed to connect to database with GORM", slog.Any("error", err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}

	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	appLogger.Info("Database connection established with GORM")
	return db, nil
}

// NewLocalDB はクライアント側のローカルストレージ (sqlite ファイル) を開きます。
// ブラウザの localStorage に相当するもので、local_storage テーブルだけを持ちます。
func NewLocalDB(path string, appLogger *slog.Logger) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("repository.NewLocalDB: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newGormLogger(appLogger),
	})
	if err != nil {
		appLogger.Error("Failed to open local storage", slog.Any("error", err), slog.String("path", path))
		return nil, err
	}
	if err := db.AutoMigrate(&model.LocalStorageItem{}); err != nil {
		appLogger.Error("Failed to prepare local storage table", slog.Any("error", err))
		return nil, fmt.Errorf("repository.NewLocalDB: %w", err)
	}

	appLogger.Debug("Local storage opened", slog.String("path", path))
	return db, nil
}
