package search

import (
	"testing"

	"go_5_kanji_keep/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []model.Kanji {
	return []model.Kanji{
		{ID: 1, Kanji: "水", Onyomi: "スイ", Kunyomi: "みず", Meaning: "water", Example: "水曜日 (すいようび) - Wednesday"},
		{ID: 2, Kanji: "火", Onyomi: "カ", Kunyomi: "ひ", Meaning: "fire", Example: "火曜日 (かようび) - Tuesday"},
		{ID: 3, Kanji: "赤", Onyomi: "セキ", Kunyomi: "あか", Meaning: "Red", Example: ""},
		{ID: 4, Kanji: "学", Onyomi: "ガク", Kunyomi: "まな.ぶ", Meaning: "study", Example: "学校 (がっこう) - école"},
	}
}

func TestFilter(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name    string
		query   string
		wantIDs []int
	}{
		{name: "空クエリは全件をそのまま返す", query: "", wantIDs: []int{1, 2, 3, 4}},
		{name: "空白だけのクエリも全件", query: "   \t", wantIDs: []int{1, 2, 3, 4}},
		{name: "meaningの部分一致", query: "wat", wantIDs: []int{1}},
		{name: "音読み (カタカナ)", query: "スイ", wantIDs: []int{1}},
		{name: "訓読み (ひらがな)", query: "みず", wantIDs: []int{1}},
		{name: "漢字そのもの", query: "火", wantIDs: []int{2}},
		{name: "exampleの部分一致", query: "曜日", wantIDs: []int{1, 2}},
		{name: "前後の空白は無視", query: "  fire ", wantIDs: []int{2}},
		{name: "大文字小文字を区別しない", query: "RED", wantIDs: []int{3}},
		{name: "ASCII以外のcase folding", query: "ÉCOLE", wantIDs: []int{4}},
		{name: "一致なし", query: "xyz", wantIDs: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(catalog, tt.query)
			ids := make([]int, 0, len(got))
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilter_EmptyQueryIsPassthrough(t *testing.T) {
	catalog := testCatalog()
	assert.Equal(t, catalog, Filter(catalog, ""))
	assert.Equal(t, Filter(catalog, "red"), Filter(catalog, "RED"))
}

func TestFilter_SubsetAndOrderPreserved(t *testing.T) {
	catalog := testCatalog()
	index := make(map[int]int, len(catalog))
	for i, r := range catalog {
		index[r.ID] = i
	}

	for _, q := range []string{"", "a", "曜", "ス", "e", "DAY", "ひ"} {
		got := Filter(catalog, q)
		last := -1
		for _, r := range got {
			i, ok := index[r.ID]
			require.True(t, ok, "query %q returned unknown record %d", q, r.ID)
			assert.Equal(t, catalog[i], r, "record must be returned unmodified")
			assert.Greater(t, i, last, "query %q broke catalog order", q)
			last = i
		}
	}
}

func TestFilter_DoesNotAliasInput(t *testing.T) {
	catalog := testCatalog()
	got := Filter(catalog, "")
	got[0].Meaning = "changed"
	assert.Equal(t, "water", catalog[0].Meaning)
}
