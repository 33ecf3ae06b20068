package study

import (
	"fmt"
	"sync/atomic"

	"go_5_kanji_keep/internal/model"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

var fallbackSeq atomic.Uint64

// newDisplayID は描画用の一時的なIDを作ります。保存先のIDとは無関係です。
func newDisplayID() string {
	id, err := gonanoid.New()
	if err != nil {
		return fmt.Sprintf("card-%d", fallbackSeq.Add(1))
	}
	return id
}

// FromKanji はカタログの漢字を表示用カードに変換します。
func FromKanji(k model.Kanji) model.DisplayCard {
	return model.DisplayCard{
		DisplayID: newDisplayID(),
		Kanji:     k.Kanji,
		Onyomi:    k.Onyomi,
		Kunyomi:   k.Kunyomi,
		Meaning:   k.Meaning,
		Example:   k.Example,
	}
}

// FromFlashcard はユーザーのカードを表示用カードに変換します。削除には FlashcardID を使います。
func FromFlashcard(f *model.Flashcard) model.DisplayCard {
	return model.DisplayCard{
		DisplayID:   newDisplayID(),
		FlashcardID: f.ID,
		Kanji:       f.Kanji,
		Onyomi:      f.Onyomi,
		Kunyomi:     f.Kunyomi,
		Meaning:     f.Meaning,
		Example:     f.Example,
	}
}

func FromKanjiList(records []model.Kanji) []model.DisplayCard {
	out := make([]model.DisplayCard, len(records))
	for i, k := range records {
		out[i] = FromKanji(k)
	}
	return out
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// KanjiCountLabel は "3 kanjis found" のような件数表示です。
func KanjiCountLabel(n int) string {
	return plural(n, "kanji") + " found"
}

// FlashcardCountLabel は "1 flashcard saved" のような件数表示です。
func FlashcardCountLabel(n int) string {
	return plural(n, "flashcard") + " saved"
}

// NoKanjiMessage は検索結果が0件のときの表示です。
func NoKanjiMessage(query string) string {
	return fmt.Sprintf("No kanjis found matching %q", query)
}

const EmptyDeckMessage = "You haven't created any flashcards yet."
