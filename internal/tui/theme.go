package tui

import (
	"sync"

	"go_5_kanji_keep/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Theme は画面全体の lipgloss スタイル一式です。
type Theme struct {
	Dark      bool
	Base      lipgloss.Style
	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Selected  lipgloss.Style
	Normal    lipgloss.Style
	Card      lipgloss.Style
	Glyph     lipgloss.Style
	Badge     lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	HelpStyle lipgloss.Style
}

// 朱色 (japanese red) をアクセントに使う
const (
	accentLight = "#BC002D"
	accentDark  = "#E8486A"
)

func NewTheme(dark bool) Theme {
	fg, bg, subtle, accent := lipgloss.Color("#1F2937"), lipgloss.Color("#F9FAFB"), lipgloss.Color("#6B7280"), lipgloss.Color(accentLight)
	if dark {
		fg, bg, subtle, accent = lipgloss.Color("#F3F4F6"), lipgloss.Color("#111827"), lipgloss.Color("#9CA3AF"), lipgloss.Color(accentDark)
	}

	return Theme{
		Dark:     dark,
		Base:     lipgloss.NewStyle().Foreground(fg).Background(bg).Padding(1, 2),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Subtle:   lipgloss.NewStyle().Foreground(subtle),
		Selected: lipgloss.NewStyle().Foreground(accent).Bold(true),
		Normal:   lipgloss.NewStyle().Foreground(fg),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Width(44).
			Align(lipgloss.Center),
		Glyph:     lipgloss.NewStyle().Bold(true).Foreground(fg),
		Badge:     lipgloss.NewStyle().Foreground(bg).Background(accent).Padding(0, 1),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		HelpStyle: lipgloss.NewStyle().Foreground(subtle).MarginTop(1),
	}
}

// themeHolder は preference.Consumer として設定変更を受け取り、テーマを差し替えます。
type themeHolder struct {
	mu    sync.RWMutex
	theme Theme
}

func newThemeHolder() *themeHolder {
	return &themeHolder{theme: NewTheme(false)}
}

func (h *themeHolder) ApplyPreferences(p model.Preferences) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.theme.Dark != p.DarkMode {
		h.theme = NewTheme(p.DarkMode)
	}
}

func (h *themeHolder) Current() Theme {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.theme
}
