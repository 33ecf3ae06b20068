// Package tui はカタログ閲覧とマイフラッシュカードのターミナル画面 (bubbletea) です。
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go_5_kanji_keep/internal/catalog"
	"go_5_kanji_keep/internal/model"
	"go_5_kanji_keep/internal/preference"
	"go_5_kanji_keep/internal/search"
	"go_5_kanji_keep/internal/study"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type screen int

const (
	screenBrowse screen = iota
	screenDeck
	screenAdd
)

const listWindow = 8

// フォームの入力欄 (順番は kanji, onyomi, kunyomi, meaning, example)
var formLabels = []string{"Kanji *", "Onyomi (音読み)", "Kunyomi (訓読み)", "Meaning *", "Example Word"}

var formPlaceholders = []string{"例: 漢", "例: カン", "例: かんじ", "例: Chinese character", "例: 漢字 (かんじ) - kanji"}

type deckLoadedMsg struct{ err error }
type deckCreatedMsg struct{ err error }
type deckDeletedMsg struct{ err error }

type Options struct {
	Context   context.Context
	Catalog   *catalog.Catalog
	Shuffler  *search.Shuffler
	Prefs     *preference.Store
	Store     study.FlashcardStore
	SignInURL string
	Logger    *slog.Logger
}

type Model struct {
	ctx    context.Context
	screen screen
	prefs  *preference.Store
	view   *search.View
	deck   *study.Deck
	theme  *themeHolder
	board  *statusBoard

	search  textinput.Model
	results []model.Kanji
	cursor  int
	flipped bool

	deckCards     []model.DisplayCard
	deckCursor    int
	deckLoading   bool
	confirmDelete uuid.UUID

	form       []textinput.Model
	formFocus  int
	submitting bool
}

// New は画面モデルを作ります。テーマは Prefs を購読して切り替わります。
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	theme := newThemeHolder()
	opts.Prefs.Subscribe(theme)

	board := &statusBoard{signInURL: opts.SignInURL}

	ti := textinput.New()
	ti.Placeholder = "Search kanji, meaning, reading..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 64
	ti.Focus()

	form := make([]textinput.Model, len(formLabels))
	for i := range form {
		in := textinput.New()
		in.Placeholder = formPlaceholders[i]
		in.CharLimit = 200
		form[i] = in
	}

	m := Model{
		ctx:    ctx,
		screen: screenBrowse,
		prefs:  opts.Prefs,
		view:   search.NewView(opts.Catalog.Records(), opts.Shuffler),
		deck:   study.NewDeck(opts.Store, board, board, opts.Logger),
		theme:  theme,
		board:  board,
		search: ti,
		form:   form,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) refresh() {
	m.results = m.view.Results(m.search.Value(), m.prefs.StudyMode())
	if m.cursor >= len(m.results) {
		m.cursor = max(0, len(m.results)-1)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case deckLoadedMsg:
		m.deckLoading = false
		m.syncDeck()
		return m, nil

	case deckCreatedMsg:
		m.submitting = false
		if msg.err == nil {
			for i := range m.form {
				m.form[i].Reset()
			}
			m.form[m.formFocus].Blur()
			m.formFocus = 0
			m.screen = screenDeck
			m.deckCursor = 0
			m.flipped = false
			m.syncDeck()
		}
		return m, nil

	case deckDeletedMsg:
		m.syncDeck()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.screen {
		case screenDeck:
			return m.updateDeck(msg)
		case screenAdd:
			return m.updateForm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	// カーソル点滅などはフォーカス中の入力欄へ
	var cmd tea.Cmd
	switch m.screen {
	case screenBrowse:
		m.search, cmd = m.search.Update(msg)
	case screenAdd:
		m.form[m.formFocus], cmd = m.form[m.formFocus].Update(msg)
	}
	return m, cmd
}

func (m *Model) syncDeck() {
	m.deckCards = m.deck.Cards()
	if m.deckCursor >= len(m.deckCards) {
		m.deckCursor = max(0, len(m.deckCards)-1)
	}
}

// toggleShared は全画面共通のキー (テーマ・学習モード)
func (m *Model) toggleShared(key string) bool {
	switch key {
	case "ctrl+d":
		m.prefs.ToggleDarkMode(m.ctx)
		return true
	case "ctrl+s":
		m.prefs.ToggleStudyMode(m.ctx)
		m.cursor = 0
		m.flipped = false
		m.refresh()
		return true
	}
	return false
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.toggleShared(key) {
		return m, nil
	}
	switch key {
	case "esc":
		return m, tea.Quit
	case "up":
		if m.cursor > 0 {
			m.cursor--
			m.flipped = false
		}
		return m, nil
	case "down":
		if m.cursor < len(m.results)-1 {
			m.cursor++
			m.flipped = false
		}
		return m, nil
	case "enter":
		m.flipped = !m.flipped
		return m, nil
	case "tab":
		return m.openDeck()
	case "ctrl+n":
		return m.openForm()
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.cursor = 0
		m.flipped = false
	}
	m.refresh()
	return m, cmd
}

func (m Model) openDeck() (tea.Model, tea.Cmd) {
	m.screen = screenDeck
	m.search.Blur()
	m.flipped = false
	m.deckLoading = true
	m.board.Clear()
	deck, ctx := m.deck, m.ctx
	return m, func() tea.Msg { return deckLoadedMsg{err: deck.Load(ctx)} }
}

func (m Model) openForm() (tea.Model, tea.Cmd) {
	m.screen = screenAdd
	m.search.Blur()
	m.board.Clear()
	m.formFocus = 0
	return m, m.form[0].Focus()
}

func (m Model) backToBrowse() (tea.Model, tea.Cmd) {
	m.screen = screenBrowse
	m.flipped = false
	m.confirmDelete = uuid.Nil
	return m, m.search.Focus()
}

func (m Model) updateDeck(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.confirmDelete != uuid.Nil {
		id := m.confirmDelete
		m.confirmDelete = uuid.Nil
		if key != "y" && key != "Y" {
			return m, nil
		}
		deck, ctx := m.deck, m.ctx
		return m, func() tea.Msg {
			// 画面上の y/N で確認済み
			confirmed := study.ConfirmFunc(func(string) bool { return true })
			return deckDeletedMsg{err: deck.Delete(ctx, id, confirmed)}
		}
	}

	if m.toggleShared(key) {
		return m, nil
	}
	switch key {
	case "esc", "tab":
		return m.backToBrowse()
	case "up":
		if m.deckCursor > 0 {
			m.deckCursor--
			m.flipped = false
		}
	case "down":
		if m.deckCursor < len(m.deckCards)-1 {
			m.deckCursor++
			m.flipped = false
		}
	case "enter":
		m.flipped = !m.flipped
	case "d", "delete":
		if len(m.deckCards) > 0 {
			m.confirmDelete = m.deckCards[m.deckCursor].FlashcardID
		}
	case "r":
		return m.openDeck()
	case "ctrl+n":
		return m.openForm()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form[m.formFocus].Blur()
		return m.backToBrowse()
	case "tab", "down":
		return m.focusField((m.formFocus + 1) % len(m.form))
	case "shift+tab", "up":
		return m.focusField((m.formFocus + len(m.form) - 1) % len(m.form))
	case "enter":
		if m.submitting {
			return m, nil
		}
		m.submitting = true
		req := model.CreateFlashcardRequest{
			Kanji:   m.form[0].Value(),
			Onyomi:  m.form[1].Value(),
			Kunyomi: m.form[2].Value(),
			Meaning: m.form[3].Value(),
			Example: m.form[4].Value(),
		}
		deck, ctx := m.deck, m.ctx
		return m, func() tea.Msg {
			_, err := deck.Create(ctx, req)
			return deckCreatedMsg{err: err}
		}
	}

	var cmd tea.Cmd
	m.form[m.formFocus], cmd = m.form[m.formFocus].Update(msg)
	return m, cmd
}

func (m Model) focusField(i int) (tea.Model, tea.Cmd) {
	m.form[m.formFocus].Blur()
	m.formFocus = i
	return m, m.form[i].Focus()
}

func (m Model) View() string {
	theme := m.theme.Current()
	var s strings.Builder

	s.WriteString(theme.Title.Render("漢字 Kanji Keep · JLPT N5"))
	s.WriteString("\n")
	s.WriteString(m.renderBadges(theme))
	s.WriteString("\n\n")

	switch m.screen {
	case screenDeck:
		m.renderDeck(&s, theme)
	case screenAdd:
		m.renderForm(&s, theme)
	default:
		m.renderBrowse(&s, theme)
	}

	if kind, msg := m.board.Get(); kind != statusNone {
		s.WriteString("\n")
		switch kind {
		case statusSuccess:
			s.WriteString(theme.Success.Render(msg))
		default:
			s.WriteString(theme.Error.Render(msg))
		}
		s.WriteString("\n")
	}

	s.WriteString(theme.HelpStyle.Render(m.helpLine()))
	return theme.Base.Render(s.String())
}

func (m Model) renderBadges(theme Theme) string {
	mode, dark := "Study Mode: off", "Light"
	if m.prefs.StudyMode() {
		mode = "Study Mode: on"
	}
	if m.prefs.DarkMode() {
		dark = "Dark"
	}
	return theme.Badge.Render(mode) + " " + theme.Badge.Render(dark)
}

func (m Model) renderBrowse(s *strings.Builder, theme Theme) {
	s.WriteString(m.search.View())
	s.WriteString("\n")
	s.WriteString(theme.Subtle.Render(study.KanjiCountLabel(len(m.results))))
	s.WriteString("\n\n")

	if len(m.results) == 0 {
		s.WriteString(theme.Subtle.Render(study.NoKanjiMessage(strings.TrimSpace(m.search.Value()))))
		s.WriteString("\n")
		return
	}

	start, end := window(m.cursor, len(m.results))
	for i := start; i < end; i++ {
		k := m.results[i]
		line := fmt.Sprintf("%s  %s", k.Kanji, k.Meaning)
		if i == m.cursor {
			s.WriteString(theme.Selected.Render("> " + line))
		} else {
			s.WriteString(theme.Normal.Render("  " + line))
		}
		s.WriteString("\n")
	}
	s.WriteString("\n")
	s.WriteString(renderCard(theme, study.FromKanji(m.results[m.cursor]), m.flipped))
	s.WriteString("\n")
}

func (m Model) renderDeck(s *strings.Builder, theme Theme) {
	s.WriteString(theme.Title.Render("My Flashcards"))
	s.WriteString("\n")
	if m.deckLoading {
		s.WriteString(theme.Subtle.Render("Loading..."))
		s.WriteString("\n")
		return
	}
	s.WriteString(theme.Subtle.Render(study.FlashcardCountLabel(len(m.deckCards))))
	s.WriteString("\n\n")

	if len(m.deckCards) == 0 {
		s.WriteString(theme.Subtle.Render(study.EmptyDeckMessage))
		s.WriteString("\n")
		return
	}

	start, end := window(m.deckCursor, len(m.deckCards))
	for i := start; i < end; i++ {
		c := m.deckCards[i]
		line := fmt.Sprintf("%s  %s", c.Kanji, c.Meaning)
		if i == m.deckCursor {
			s.WriteString(theme.Selected.Render("> " + line))
		} else {
			s.WriteString(theme.Normal.Render("  " + line))
		}
		s.WriteString("\n")
	}
	s.WriteString("\n")
	s.WriteString(renderCard(theme, m.deckCards[m.deckCursor], m.flipped))
	s.WriteString("\n")

	if m.confirmDelete != uuid.Nil {
		s.WriteString(theme.Error.Render(study.DeleteConfirmPrompt + " [y/N]"))
		s.WriteString("\n")
	}
}

func (m Model) renderForm(s *strings.Builder, theme Theme) {
	s.WriteString(theme.Title.Render("Add New Flashcard"))
	s.WriteString("\n")
	for i, in := range m.form {
		label := formLabels[i]
		if i == m.formFocus {
			s.WriteString(theme.Selected.Render(label))
		} else {
			s.WriteString(theme.Normal.Render(label))
		}
		s.WriteString("\n")
		s.WriteString(in.View())
		s.WriteString("\n")
	}
	if m.submitting {
		s.WriteString(theme.Subtle.Render("Creating..."))
		s.WriteString("\n")
	}
}

func (m Model) helpLine() string {
	switch m.screen {
	case screenDeck:
		if m.confirmDelete != uuid.Nil {
			return "y: delete • any other key: cancel"
		}
		return "↑/↓ move • enter flip • d delete • r reload • ctrl+n add • tab/esc back • ctrl+d theme • ctrl+c quit"
	case screenAdd:
		return "tab/shift+tab move • enter create • esc back"
	default:
		return "type to search • ↑/↓ move • enter flip • ctrl+s study mode • ctrl+d theme • tab my flashcards • ctrl+n add • esc quit"
	}
}

func renderCard(theme Theme, c model.DisplayCard, flipped bool) string {
	if !flipped {
		return theme.Card.Render(theme.Glyph.Render(c.Kanji) + "\n\n" + theme.Subtle.Render("Press enter to flip"))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "On'yomi: %s\n", c.Onyomi)
	fmt.Fprintf(&b, "Kun'yomi: %s\n", c.Kunyomi)
	fmt.Fprintf(&b, "Meaning: %s\n", c.Meaning)
	if c.Example != "" {
		fmt.Fprintf(&b, "Example: %s\n", c.Example)
	}
	b.WriteString("\n")
	b.WriteString(theme.Subtle.Render("Press enter to flip back"))
	return theme.Card.Render(b.String())
}

// window はカーソル周辺の表示範囲 [start, end) を返します。
func window(cursor, n int) (int, int) {
	start := cursor - listWindow/2
	if start < 0 {
		start = 0
	}
	end := start + listWindow
	if end > n {
		end = n
		start = max(0, end-listWindow)
	}
	return start, end
}
