// Package preference はクライアントローカルの表示設定 (ダークモード・学習モード) を扱います。
// 起動時に保存済みの値を読み込み、トグルのたびに保存してから購読者へ通知します。
package preference

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"go_5_kanji_keep/internal/model"
)

// ErrNotFound は保存済みの値がないことを表します。
var ErrNotFound = errors.New("preference: not found")

// Persister は設定の永続化先です (repository.LocalStorageRepository など)。
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Consumer は設定の変更を受け取る側 (テーマの切り替えなど) です。
type Consumer interface {
	ApplyPreferences(p model.Preferences)
}

// ConsumerFunc は関数を Consumer として使うためのアダプタ
type ConsumerFunc func(p model.Preferences)

func (f ConsumerFunc) ApplyPreferences(p model.Preferences) { f(p) }

type Store struct {
	// updateMu は変更・保存・通知をひとまとまりで直列化する (保存順とメモリ上の値を一致させる)
	updateMu  sync.Mutex
	mu        sync.Mutex
	prefs     model.Preferences
	persister Persister
	consumers []Consumer
	logger    *slog.Logger
}

// NewStore は保存済みの設定を読み込んで Store を作ります。
// 値がない・壊れている・読めない場合はデフォルト (両方 false) で起動します。
func NewStore(ctx context.Context, persister Persister, logger *slog.Logger, consumers ...Consumer) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		persister: persister,
		consumers: consumers,
		logger:    logger.With(slog.String("component", "preference")),
	}
	s.prefs = s.load(ctx)
	s.notify(s.prefs)
	return s
}

func (s *Store) load(ctx context.Context) model.Preferences {
	if s.persister == nil {
		return model.Preferences{}
	}
	raw, err := s.persister.Load(ctx, model.PreferencesStorageKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("Failed to load preferences, using defaults", slog.Any("error", err))
		}
		return model.Preferences{}
	}
	var p model.Preferences
	if err := json.Unmarshal(raw, &p); err != nil {
		s.logger.Warn("Stored preferences are corrupt, using defaults", slog.Any("error", err), slog.String("raw", string(raw)))
		return model.Preferences{}
	}
	return p
}

// Snapshot は現在の設定を返します。
func (s *Store) Snapshot() model.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

func (s *Store) DarkMode() bool  { return s.Snapshot().DarkMode }
func (s *Store) StudyMode() bool { return s.Snapshot().StudyMode }

// ToggleDarkMode はダークモードだけを反転します。
func (s *Store) ToggleDarkMode(ctx context.Context) model.Preferences {
	return s.update(ctx, func(p *model.Preferences) { p.DarkMode = !p.DarkMode })
}

// ToggleStudyMode は学習モードだけを反転します。
func (s *Store) ToggleStudyMode(ctx context.Context) model.Preferences {
	return s.update(ctx, func(p *model.Preferences) { p.StudyMode = !p.StudyMode })
}

// Subscribe は購読者を追加し、現在の値をすぐに渡します。
func (s *Store) Subscribe(c Consumer) {
	s.mu.Lock()
	s.consumers = append(s.consumers, c)
	p := s.prefs
	s.mu.Unlock()
	c.ApplyPreferences(p)
}

// update は購読者の ApplyPreferences から呼ばないこと (updateMu を再取得してデッドロックする)
func (s *Store) update(ctx context.Context, mutate func(p *model.Preferences)) model.Preferences {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	s.mu.Lock()
	mutate(&s.prefs)
	p := s.prefs
	s.mu.Unlock()

	// 保存に失敗してもメモリ上の変更は残す (このセッション中は有効)
	s.save(ctx, p)
	s.notify(p)
	return p
}

func (s *Store) save(ctx context.Context, p model.Preferences) {
	if s.persister == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		s.logger.Warn("Failed to encode preferences", slog.Any("error", err))
		return
	}
	if err := s.persister.Save(ctx, model.PreferencesStorageKey, raw); err != nil {
		s.logger.Warn("Failed to persist preferences", slog.Any("error", err),
			slog.Bool("dark_mode", p.DarkMode), slog.Bool("study_mode", p.StudyMode))
	}
}

func (s *Store) notify(p model.Preferences) {
	s.mu.Lock()
	consumers := make([]Consumer, len(s.consumers))
	copy(consumers, s.consumers)
	s.mu.Unlock()

	for _, c := range consumers {
		c.ApplyPreferences(p)
	}
}
