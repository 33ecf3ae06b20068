package preference

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"go_5_kanji_keep/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockPersister は Persister のモック
type mockPersister struct {
	mock.Mock
}

func (m *mockPersister) Load(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockPersister) Save(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewStore_Load(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		raw  []byte
		err  error
		want model.Preferences
	}{
		{name: "正常系: 保存済みの値", raw: []byte(`{"darkMode":true,"studyMode":false}`), want: model.Preferences{DarkMode: true}},
		{name: "正常系: 両方true", raw: []byte(`{"darkMode":true,"studyMode":true}`), want: model.Preferences{DarkMode: true, StudyMode: true}},
		{name: "未保存ならデフォルト", err: ErrNotFound, want: model.Preferences{}},
		{name: "壊れたJSONはデフォルト", raw: []byte(`{"darkMode":tru`), want: model.Preferences{}},
		{name: "型違いもデフォルト", raw: []byte(`{"darkMode":"yes"}`), want: model.Preferences{}},
		{name: "読み込みエラーもデフォルト", err: errors.New("disk error"), want: model.Preferences{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := new(mockPersister)
			if tt.err != nil {
				p.On("Load", ctx, model.PreferencesStorageKey).Return(nil, tt.err).Once()
			} else {
				p.On("Load", ctx, model.PreferencesStorageKey).Return(tt.raw, nil).Once()
			}

			s := NewStore(ctx, p, testLogger())
			assert.Equal(t, tt.want, s.Snapshot())
			p.AssertExpectations(t)
		})
	}
}

func TestStore_ToggleFlipsExactlyOneFlag(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, NewMemoryPersister(), testLogger())

	p := s.ToggleDarkMode(ctx)
	assert.Equal(t, model.Preferences{DarkMode: true}, p)

	p = s.ToggleStudyMode(ctx)
	assert.Equal(t, model.Preferences{DarkMode: true, StudyMode: true}, p)

	p = s.ToggleDarkMode(ctx)
	assert.Equal(t, model.Preferences{StudyMode: true}, p)
	assert.False(t, s.DarkMode())
	assert.True(t, s.StudyMode())
}

func TestStore_ToggleIsSelfInverse(t *testing.T) {
	ctx := context.Background()
	for _, initial := range []model.Preferences{{}, {DarkMode: true}, {StudyMode: true}, {DarkMode: true, StudyMode: true}} {
		mem := NewMemoryPersister()
		raw := []byte(`{"darkMode":` + boolString(initial.DarkMode) + `,"studyMode":` + boolString(initial.StudyMode) + `}`)
		require.NoError(t, mem.Save(ctx, model.PreferencesStorageKey, raw))

		s := NewStore(ctx, mem, testLogger())
		require.Equal(t, initial, s.Snapshot())

		s.ToggleDarkMode(ctx)
		s.ToggleDarkMode(ctx)
		assert.Equal(t, initial, s.Snapshot())

		s.ToggleStudyMode(ctx)
		s.ToggleStudyMode(ctx)
		assert.Equal(t, initial, s.Snapshot())
	}
}

func TestStore_PersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryPersister()

	first := NewStore(ctx, mem, testLogger())
	first.ToggleStudyMode(ctx)

	second := NewStore(ctx, mem, testLogger())
	assert.Equal(t, model.Preferences{StudyMode: true}, second.Snapshot())
}

func TestStore_SaveFailureKeepsToggle(t *testing.T) {
	ctx := context.Background()
	p := new(mockPersister)
	p.On("Load", ctx, model.PreferencesStorageKey).Return(nil, ErrNotFound).Once()
	p.On("Save", ctx, model.PreferencesStorageKey, []byte(`{"darkMode":true,"studyMode":false}`)).
		Return(errors.New("read-only file system")).Once()

	var applied []model.Preferences
	s := NewStore(ctx, p, testLogger(), ConsumerFunc(func(pr model.Preferences) {
		applied = append(applied, pr)
	}))

	got := s.ToggleDarkMode(ctx)
	assert.True(t, got.DarkMode)
	assert.True(t, s.DarkMode())
	// 起動時の適用 + トグル後の通知
	assert.Equal(t, []model.Preferences{{}, {DarkMode: true}}, applied)
	p.AssertExpectations(t)
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, nil, testLogger())

	var last model.Preferences
	calls := 0
	s.Subscribe(ConsumerFunc(func(p model.Preferences) {
		last = p
		calls++
	}))
	assert.Equal(t, 1, calls, "購読時に現在の値を受け取る")

	s.ToggleStudyMode(ctx)
	assert.Equal(t, 2, calls)
	assert.True(t, last.StudyMode)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// gatedPersister は最初の Save を gate が閉じられるまで止めます。
type gatedPersister struct {
	*MemoryPersister
	gate    chan struct{}
	entered chan struct{}
	once    sync.Once
}

func (g *gatedPersister) Save(ctx context.Context, key string, value []byte) error {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.gate
	}
	return g.MemoryPersister.Save(ctx, key, value)
}

func TestStore_ConcurrentTogglesPersistInOrder(t *testing.T) {
	ctx := context.Background()
	gp := &gatedPersister{
		MemoryPersister: NewMemoryPersister(),
		gate:            make(chan struct{}),
		entered:         make(chan struct{}),
	}
	var (
		mu      sync.Mutex
		applied []model.Preferences
	)
	s := NewStore(ctx, gp, testLogger(), ConsumerFunc(func(p model.Preferences) {
		mu.Lock()
		defer mu.Unlock()
		applied = append(applied, p)
	}))

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		s.ToggleDarkMode(ctx)
	}()
	<-gp.entered

	secondDone := make(chan struct{})
	go func() {
		defer close(secondDone)
		s.ToggleDarkMode(ctx)
	}()

	// 1回目の保存が終わるまで 2回目は進まない
	select {
	case <-secondDone:
		t.Fatal("second toggle finished while the first save was still pending")
	case <-time.After(50 * time.Millisecond):
	}

	close(gp.gate)
	<-firstDone
	<-secondDone

	assert.False(t, s.DarkMode())
	restarted := NewStore(ctx, gp.MemoryPersister, testLogger())
	assert.Equal(t, s.Snapshot(), restarted.Snapshot())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []model.Preferences{{}, {DarkMode: true}, {}}, applied)
}
