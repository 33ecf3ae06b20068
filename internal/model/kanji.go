// internal/model/kanji.go
package model

import "github.com/google/uuid"

// Kanji はカタログに含まれる漢字1件です。カタログ読み込み後は変更されません。
type Kanji struct {
	ID      int    `json:"id" yaml:"id"`
	Kanji   string `json:"kanji" yaml:"kanji"`
	Onyomi  string `json:"onyomi" yaml:"onyomi"`   // 音読み
	Kunyomi string `json:"kunyomi" yaml:"kunyomi"` // 訓読み
	Meaning string `json:"meaning" yaml:"meaning"`
	Example string `json:"example" yaml:"example"`
}

// KanjiListResponse は GET /kanji のレスポンスDTO
type KanjiListResponse struct {
	Query     string  `json:"query"`
	StudyMode bool    `json:"study_mode"`
	Count     int     `json:"count"`
	Kanji     []Kanji `json:"kanji"`
}

// DisplayCard はカード表示用の形です。
// DisplayID は描画1回分だけ有効な表示用IDで、保存も削除にも使いません。
// ユーザー作成カードの場合のみ FlashcardID (保存先のID) が入り、カタログの漢字は uuid.Nil です。
type DisplayCard struct {
	DisplayID   string
	FlashcardID uuid.UUID
	Kanji       string
	Onyomi      string
	Kunyomi     string
	Meaning     string
	Example     string
}
