// cmd/seed/main.go
// 開発用: カタログの漢字をユーザーのフラッシュカードとして投入し、動作確認用のアクセストークンを発行します。
// flashcards テーブルは作成済みであること (スキーマはホスティング側で管理)。
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go_5_kanji_keep/internal/catalog"
	"go_5_kanji_keep/internal/config"
	"go_5_kanji_keep/internal/middleware"
	"go_5_kanji_keep/internal/model"
	"go_5_kanji_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func main() {
	userFlag := flag.String("user", "", "user id (uuid). 空なら新しく採番する")
	email := flag.String("email", "dev@example.com", "トークンに入れるメールアドレス")
	count := flag.Int("count", 5, "投入するカード数 (0 ならトークンのみ)")
	ttl := flag.Duration("ttl", 24*time.Hour, "トークンの有効期間")
	flag.Parse()

	if err := config.LoadConfig(config.DefaultConfigDir); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	cfg := &config.Cfg

	userID := uuid.New()
	if *userFlag != "" {
		parsed, err := uuid.Parse(*userFlag)
		if err != nil {
			log.Fatalf("Invalid -user: %v", err)
		}
		userID = parsed
	}
	fmt.Println("User ID:", userID)

	if *count > 0 {
		logger := config.NewLogger(os.Stderr, nil, os.Getenv("APP_ENV"))
		db, err := repository.NewDB(cfg.Database.URL, logger)
		if err != nil {
			log.Fatalf("Failed to connect database: %v", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("Failed to get underlying sql.DB: %v", err)
		}
		defer sqlDB.Close()

		kanjiCatalog, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}

		created, err := seedFlashcards(context.Background(), db, repository.NewGormFlashcardRepository(), kanjiCatalog, userID, *count)
		if err != nil {
			log.Fatalf("Failed to seed flashcards: %v", err)
		}
		for _, card := range created {
			fmt.Printf("- %s %s (%s)\n", card.ID, card.Kanji, card.Meaning)
		}
		fmt.Printf("Created %d flashcards.\n", len(created))
	}

	if cfg.Auth.JWTSecret == "" {
		fmt.Println("auth.jwt_secret is empty; skipping token. Use X-User-ID with auth.enabled=false instead.")
		return
	}
	token, err := middleware.NewSessionToken(cfg.Auth.JWTSecret, userID, *email, *ttl)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println("\nexport KANJI_ACCESS_TOKEN=" + token)
}

// seedFlashcards はカタログの先頭から count 件を1トランザクションで登録します。
func seedFlashcards(ctx context.Context, db *gorm.DB, repo repository.FlashcardRepository, c *catalog.Catalog, userID uuid.UUID, count int) ([]*model.Flashcard, error) {
	records := c.Records()
	if count > len(records) {
		count = len(records)
	}

	created := make([]*model.Flashcard, 0, count)
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, k := range records[:count] {
			card := &model.Flashcard{
				ID:      uuid.New(),
				UserID:  userID,
				Kanji:   k.Kanji,
				Onyomi:  k.Onyomi,
				Kunyomi: k.Kunyomi,
				Meaning: k.Meaning,
				Example: k.Example,
			}
			if err := repo.Create(ctx, tx, card); err != nil {
				return err
			}
			created = append(created, card)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
