//go:generate mockery --name KanjiService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"strings"

	"go_5_kanji_keep/internal/catalog"
	"go_5_kanji_keep/internal/model"
	"go_5_kanji_keep/internal/search"
)

// KanjiService は組み込みカタログの検索を提供します。カタログは読み取り専用なので DB は使いません。
type KanjiService interface {
	Search(ctx context.Context, query string, studyMode bool) (*model.KanjiListResponse, error)
	Get(ctx context.Context, id int) (*model.Kanji, error)
}

type kanjiService struct {
	catalog  *catalog.Catalog
	shuffler *search.Shuffler
}

func NewKanjiService(c *catalog.Catalog, shuffler *search.Shuffler) KanjiService {
	if shuffler == nil {
		shuffler = search.NewShuffler(nil)
	}
	return &kanjiService{catalog: c, shuffler: shuffler}
}

// Search は query で絞り込み、studyMode なら並べ替えた結果を返します。
// 学習モードではリクエストのたびに並びが変わります。
func (s *kanjiService) Search(ctx context.Context, query string, studyMode bool) (*model.KanjiListResponse, error) {
	filtered := search.Filter(s.catalog.Records(), query)
	results := s.shuffler.Shuffle(filtered, studyMode)
	if results == nil {
		results = []model.Kanji{}
	}
	return &model.KanjiListResponse{
		Query:     strings.TrimSpace(query),
		StudyMode: studyMode,
		Count:     len(results),
		Kanji:     results,
	}, nil
}

func (s *kanjiService) Get(ctx context.Context, id int) (*model.Kanji, error) {
	k, ok := s.catalog.Get(id)
	if !ok {
		return nil, model.NewAppError("KANJI_NOT_FOUND", "Kanji not found.", "kanji_id", model.ErrNotFound)
	}
	return &k, nil
}
