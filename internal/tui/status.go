package tui

import "sync"

type statusKind int

const (
	statusNone statusKind = iota
	statusError
	statusSuccess
	statusSignIn
)

// statusBoard はデッキからの通知 (Notifier / Redirector) を受けて、次の描画で表示します。
// デッキの操作は tea.Cmd のゴルーチンで走るので mu で守る。
type statusBoard struct {
	mu        sync.Mutex
	kind      statusKind
	message   string
	signInURL string
}

func (b *statusBoard) set(kind statusKind, msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.kind = kind
	b.message = msg
}

func (b *statusBoard) Error(msg string)   { b.set(statusError, msg) }
func (b *statusBoard) Success(msg string) { b.set(statusSuccess, msg) }

func (b *statusBoard) RedirectToSignIn() {
	b.set(statusSignIn, "Please sign in first: "+b.signInURL+" (then set KANJI_ACCESS_TOKEN)")
}

func (b *statusBoard) Clear() { b.set(statusNone, "") }

func (b *statusBoard) Get() (statusKind, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.kind, b.message
}
