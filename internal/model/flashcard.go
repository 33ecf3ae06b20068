// internal/model/flashcard.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Flashcard はユーザーが作成したフラッシュカードです (flashcards テーブル)
type Flashcard struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Kanji     string    `gorm:"type:text;not null" json:"kanji"`
	Onyomi    string    `gorm:"type:text" json:"onyomi"`
	Kunyomi   string    `gorm:"type:text" json:"kunyomi"`
	Meaning   string    `gorm:"type:text;not null" json:"meaning"`
	Example   string    `gorm:"type:text" json:"example"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Flashcard) TableName() string {
	return "flashcards"
}

// フラッシュカード作成リクエストDTO
// 必須チェックは Normalize で前後の空白を取り除いた後に行う
type CreateFlashcardRequest struct {
	Kanji   string `json:"kanji" validate:"required"`
	Onyomi  string `json:"onyomi"`
	Kunyomi string `json:"kunyomi"`
	Meaning string `json:"meaning" validate:"required"`
	Example string `json:"example"`
}

// Normalize は全フィールドの前後の空白を取り除きます。
func (r *CreateFlashcardRequest) Normalize() {
	r.Kanji = strings.TrimSpace(r.Kanji)
	r.Onyomi = strings.TrimSpace(r.Onyomi)
	r.Kunyomi = strings.TrimSpace(r.Kunyomi)
	r.Meaning = strings.TrimSpace(r.Meaning)
	r.Example = strings.TrimSpace(r.Example)
}
