// Package catalog は組み込みの漢字カタログ (JLPT N5) を読み込み、検証して保持します。
// 読み込み後のカタログは読み取り専用で、複数のゴルーチンから共有して構いません。
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go_5_kanji_keep/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed data/jlpt_n5_kanji.json
var n5KanjiJSON []byte

var (
	ErrEmptyCatalog    = errors.New("catalog: no records")
	ErrDuplicateID     = errors.New("catalog: duplicate id")
	ErrMissingKanji    = errors.New("catalog: kanji is empty")
	ErrMissingMeaning  = errors.New("catalog: meaning is empty")
	ErrUnsupportedFile = errors.New("catalog: unsupported file extension")
)

// Catalog は読み込み順を保った漢字レコードの列です。
type Catalog struct {
	records []model.Kanji
	byID    map[int]int // id -> records の添字
}

// Default は埋め込みの N5 カタログを返します。
func Default() (*Catalog, error) {
	return LoadJSON(bytes.NewReader(n5KanjiJSON))
}

// LoadJSON は JSON 配列からカタログを読み込みます。
func LoadJSON(r io.Reader) (*Catalog, error) {
	var records []model.Kanji
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("catalog.LoadJSON: %w", err)
	}
	return New(records)
}

// LoadYAML は YAML のシーケンスからカタログを読み込みます。
func LoadYAML(r io.Reader) (*Catalog, error) {
	var records []model.Kanji
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("catalog.LoadYAML: %w", err)
	}
	return New(records)
}

// LoadFile は拡張子 (.json / .yaml / .yml) に応じてファイルを読み込みます。
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog.LoadFile: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
}

// Load は path が空なら埋め込みカタログ、そうでなければ外部ファイルを読み込みます。
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	return LoadFile(path)
}

// New はレコードを検証してカタログを作ります。渡されたスライスはコピーされます。
func New(records []model.Kanji) (*Catalog, error) {
	if len(records) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		records: make([]model.Kanji, len(records)),
		byID:    make(map[int]int, len(records)),
	}
	copy(c.records, records)

	for i, r := range c.records {
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, r.ID)
		}
		if strings.TrimSpace(r.Kanji) == "" {
			return nil, fmt.Errorf("%w: id=%d", ErrMissingKanji, r.ID)
		}
		if strings.TrimSpace(r.Meaning) == "" {
			return nil, fmt.Errorf("%w: id=%d", ErrMissingMeaning, r.ID)
		}
		c.byID[r.ID] = i
	}
	return c, nil
}

// Records はカタログ全体を元の順序で返します。呼び出し側が変更してもカタログには影響しません。
func (c *Catalog) Records() []model.Kanji {
	out := make([]model.Kanji, len(c.records))
	copy(out, c.records)
	return out
}

// Len はレコード数
func (c *Catalog) Len() int {
	return len(c.records)
}

// Get は id でレコードを引きます。
func (c *Catalog) Get(id int) (model.Kanji, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Kanji{}, false
	}
	return c.records[i], true
}
