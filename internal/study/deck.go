// Package study はユーザーのフラッシュカード一覧 (作成・取得・削除) の画面ロジックです。
// 表示は Notifier / Redirector / Confirmer 越しに行うので、TUI からもコマンドからも使えます。
package study

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"go_5_kanji_keep/internal/model"
	"go_5_kanji_keep/internal/webutil"

	"github.com/google/uuid"
)

// ErrBusy は同じカードへの操作がまだ終わっていないことを表します。
var ErrBusy = errors.New("study: operation already in progress")

const (
	DeleteConfirmPrompt     = "Are you sure you want to delete this flashcard?"
	DeleteInProgressMessage = "This flashcard is already being deleted."
)

// FlashcardStore はリモートのフラッシュカードストアです (client.Client が満たします)。
type FlashcardStore interface {
	Create(ctx context.Context, req model.CreateFlashcardRequest) (*model.Flashcard, error)
	ListByOwner(ctx context.Context) ([]*model.Flashcard, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CurrentSession(ctx context.Context) (*model.Session, error)
}

type Notifier interface {
	Error(msg string)
	Success(msg string)
}

type Redirector interface {
	RedirectToSignIn()
}

type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc は関数を Confirmer として使うためのアダプタ
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Deck はサインイン中のユーザーのカード一覧を保持します。
type Deck struct {
	store      FlashcardStore
	notifier   Notifier
	redirector Redirector
	logger     *slog.Logger

	mu       sync.Mutex
	cards    []*model.Flashcard
	loaded   bool
	creating bool
	inFlight map[uuid.UUID]struct{}
}

func NewDeck(store FlashcardStore, notifier Notifier, redirector Redirector, logger *slog.Logger) *Deck {
	if logger == nil {
		logger = slog.Default()
	}
	return &Deck{
		store:      store,
		notifier:   notifier,
		redirector: redirector,
		logger:     logger.With(slog.String("component", "deck")),
		inFlight:   make(map[uuid.UUID]struct{}),
	}
}

// requireSession はセッションがなければサインインへ誘導します。
func (d *Deck) requireSession(ctx context.Context, failPrefix string) error {
	session, err := d.store.CurrentSession(ctx)
	if err != nil {
		d.notifier.Error(failPrefix + err.Error())
		return err
	}
	if session == nil {
		d.redirector.RedirectToSignIn()
		return model.ErrAuthRequired
	}
	return nil
}

// Load はカード一覧を取得し直します。失敗した場合は前の一覧のままです。
func (d *Deck) Load(ctx context.Context) error {
	const prefix = "Failed to fetch flashcards: "
	if err := d.requireSession(ctx, prefix); err != nil {
		return err
	}
	cards, err := d.store.ListByOwner(ctx)
	if err != nil {
		d.logger.Warn("Failed to fetch flashcards", slog.Any("error", err))
		d.notifier.Error(prefix + err.Error())
		return err
	}

	d.mu.Lock()
	d.cards = cards
	d.loaded = true
	d.mu.Unlock()
	return nil
}

// Create は入力を検証してからカードを作成し、一覧の先頭に追加します。
func (d *Deck) Create(ctx context.Context, req model.CreateFlashcardRequest) (*model.Flashcard, error) {
	const prefix = "Failed to create flashcard: "

	req.Normalize()
	if err := webutil.ValidateStruct(&req); err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			d.notifier.Error(appErr.Message)
		} else {
			d.notifier.Error(err.Error())
		}
		return nil, err
	}

	d.mu.Lock()
	if d.creating {
		d.mu.Unlock()
		return nil, ErrBusy
	}
	d.creating = true
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.creating = false
		d.mu.Unlock()
	}()

	if err := d.requireSession(ctx, prefix); err != nil {
		return nil, err
	}

	card, err := d.store.Create(ctx, req)
	if err != nil {
		d.logger.Warn("Failed to create flashcard", slog.Any("error", err))
		d.notifier.Error(prefix + err.Error())
		return nil, err
	}

	d.mu.Lock()
	d.cards = append([]*model.Flashcard{card}, d.cards...)
	d.mu.Unlock()

	d.notifier.Success("Flashcard created successfully!")
	return card, nil
}

// Delete は確認のあとで保存先の ID のカードを削除します。確認で断られた場合や confirm が nil の場合は何もしません。
func (d *Deck) Delete(ctx context.Context, flashcardID uuid.UUID, confirm Confirmer) error {
	const prefix = "Failed to delete flashcard: "
	if flashcardID == uuid.Nil {
		return model.NewAppError("INVALID_FLASHCARD_ID", "Flashcard id is required.", "flashcard_id", model.ErrInvalidInput)
	}

	// 確認の前に進行中かを見る (確認したのに何も起きない、を避ける)
	d.mu.Lock()
	if _, busy := d.inFlight[flashcardID]; busy {
		d.mu.Unlock()
		d.notifier.Error(DeleteInProgressMessage)
		return ErrBusy
	}
	d.inFlight[flashcardID] = struct{}{}
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		delete(d.inFlight, flashcardID)
		d.mu.Unlock()
	}()

	// Confirmer がなければ確認できないので断られたものとして扱う
	if confirm == nil || !confirm.Confirm(DeleteConfirmPrompt) {
		return nil
	}

	if err := d.requireSession(ctx, prefix); err != nil {
		return err
	}

	if err := d.store.Delete(ctx, flashcardID); err != nil {
		d.logger.Warn("Failed to delete flashcard", slog.Any("error", err), slog.String("flashcard_id", flashcardID.String()))
		d.notifier.Error(prefix + err.Error())
		return err
	}

	d.mu.Lock()
	kept := d.cards[:0:0]
	for _, c := range d.cards {
		if c.ID != flashcardID {
			kept = append(kept, c)
		}
	}
	d.cards = kept
	d.mu.Unlock()

	d.notifier.Success("Flashcard deleted")
	return nil
}

// Flashcards は現在の一覧 (新しい順) のコピーを返します。
func (d *Deck) Flashcards() []*model.Flashcard {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*model.Flashcard, len(d.cards))
	copy(out, d.cards)
	return out
}

// Cards は表示用のカード一覧です。DisplayID は呼び出しごとに振り直されます。
func (d *Deck) Cards() []model.DisplayCard {
	cards := d.Flashcards()
	out := make([]model.DisplayCard, len(cards))
	for i, c := range cards {
		out[i] = FromFlashcard(c)
	}
	return out
}

// Loaded は一度でも一覧の取得に成功したかどうか
func (d *Deck) Loaded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loaded
}

// CountLabel は "N flashcards saved" を返します。
func (d *Deck) CountLabel() string {
	return FlashcardCountLabel(len(d.Flashcards()))
}
