package search

import (
	"strings"
	"sync"

	"go_5_kanji_keep/internal/model"
)

// View はカタログ -> フィルタ -> シャッフルのパイプラインを入力ごとにキャッシュします。
// フィルタはクエリが変わったときだけ、シャッフルはフィルタ結果か学習モードが変わったときだけ再計算します。
// 無関係な再描画で Results を呼んでも並びは変わりません。
type View struct {
	mu       sync.Mutex
	records  []model.Kanji
	shuffler *Shuffler

	computed  bool
	query     string
	studyMode bool
	filtered  []model.Kanji
	results   []model.Kanji
}

func NewView(records []model.Kanji, shuffler *Shuffler) *View {
	if shuffler == nil {
		shuffler = NewShuffler(nil)
	}
	return &View{records: records, shuffler: shuffler}
}

// Results は表示順のレコード列を返します。返したスライスは変更しないこと。
func (v *View) Results(query string, studyMode bool) []model.Kanji {
	v.mu.Lock()
	defer v.mu.Unlock()

	q := strings.TrimSpace(query)
	filterChanged := !v.computed || q != v.query
	if filterChanged {
		v.filtered = Filter(v.records, q)
		v.query = q
	}
	if filterChanged || studyMode != v.studyMode {
		v.results = v.shuffler.Shuffle(v.filtered, studyMode)
		v.studyMode = studyMode
	}
	v.computed = true
	return v.results
}
