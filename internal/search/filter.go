// Package search はカタログの検索 (部分一致フィルタ) と学習モードのシャッフルを行います。
// どちらも I/O を持たない同期処理です。
package search

import (
	"strings"

	"go_5_kanji_keep/internal/model"

	"golang.org/x/text/cases"
)

// Filter は query を含むレコードだけを元の順序で返します。
// 比較対象は kanji / meaning / onyomi / kunyomi / example の5項目で、
// Unicode の case folding (ロケール非依存) を通してから部分一致を取ります。
// 空白だけのクエリはカタログ全体をそのまま返します。
func Filter(records []model.Kanji, query string) []model.Kanji {
	q := strings.TrimSpace(query)
	if q == "" {
		out := make([]model.Kanji, len(records))
		copy(out, records)
		return out
	}

	// Caser は状態を持つので呼び出しごとに作る
	folder := cases.Fold()
	q = folder.String(q)

	out := make([]model.Kanji, 0, len(records))
	for _, r := range records {
		if matches(folder, r, q) {
			out = append(out, r)
		}
	}
	return out
}

func matches(folder cases.Caser, r model.Kanji, foldedQuery string) bool {
	for _, field := range [...]string{r.Kanji, r.Meaning, r.Onyomi, r.Kunyomi, r.Example} {
		if field == "" {
			continue
		}
		if strings.Contains(folder.String(field), foldedQuery) {
			return true
		}
	}
	return false
}
