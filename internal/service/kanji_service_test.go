package service

import (
	"context"
	"math/rand"
	"testing"

	"go_5_kanji_keep/internal/catalog"
	"go_5_kanji_keep/internal/model"
	"go_5_kanji_keep/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKanjiService(t *testing.T) KanjiService {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return NewKanjiService(c, search.NewShuffler(rand.New(rand.NewSource(42))))
}

func Test_kanjiService_Search(t *testing.T) {
	ctx := context.Background()
	svc := newTestKanjiService(t)

	t.Run("正常系: water で水を含む結果", func(t *testing.T) {
		resp, err := svc.Search(ctx, "water", false)
		require.NoError(t, err)
		require.Greater(t, resp.Count, 0)
		assert.Equal(t, len(resp.Kanji), resp.Count)
		found := false
		for _, k := range resp.Kanji {
			if k.Kanji == "水" {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("正常系: 該当なしは空配列", func(t *testing.T) {
		resp, err := svc.Search(ctx, "zzzzzz", false)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Count)
		assert.NotNil(t, resp.Kanji)
	})

	t.Run("正常系: 学習モードは同じ集合の並べ替え", func(t *testing.T) {
		plain, err := svc.Search(ctx, "", false)
		require.NoError(t, err)
		shuffled, err := svc.Search(ctx, "  ", true)
		require.NoError(t, err)

		assert.Equal(t, "", shuffled.Query)
		assert.True(t, shuffled.StudyMode)
		assert.ElementsMatch(t, plain.Kanji, shuffled.Kanji)
		assert.NotEqual(t, plain.Kanji, shuffled.Kanji)
	})
}

func Test_kanjiService_Get(t *testing.T) {
	ctx := context.Background()
	svc := newTestKanjiService(t)

	k, err := svc.Get(ctx, 18)
	require.NoError(t, err)
	assert.Equal(t, "水", k.Kanji)

	_, err = svc.Get(ctx, 100000)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
