package search

import (
	"math/rand"
	"sync"
	"time"

	"go_5_kanji_keep/internal/model"
)

// RandSource はシャッフルに使う乱数源です。*rand.Rand がそのまま満たします。
// テストでは固定シードの rand.New(rand.NewSource(seed)) を渡します。
type RandSource interface {
	Intn(n int) int
}

// Shuffler は学習モード用のシャッフル段です。
// 有効時は呼び出しごとに並びを作り直します (同じ入力でも毎回違う順序になり得る)。
// サーバーではハンドラから並行に呼ばれるので乱数源は mu で守る。
type Shuffler struct {
	mu  sync.Mutex
	rnd RandSource
}

// NewShuffler は rnd が nil なら現在時刻をシードにした乱数源を使います。
func NewShuffler(rnd RandSource) *Shuffler {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Shuffler{rnd: rnd}
}

// Shuffle は enabled が false なら seq をそのまま返し、
// true なら Fisher-Yates で並べ替えた新しいスライスを返します。seq 自体は変更しません。
func (s *Shuffler) Shuffle(seq []model.Kanji, enabled bool) []model.Kanji {
	if !enabled {
		return seq
	}
	out := make([]model.Kanji, len(seq))
	copy(out, seq)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(out) - 1; i > 0; i-- {
		j := s.rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
