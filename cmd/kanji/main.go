// cmd/kanji/main.go
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go_5_kanji_keep/internal/catalog"
	"go_5_kanji_keep/internal/client"
	"go_5_kanji_keep/internal/config"
	"go_5_kanji_keep/internal/model"
	"go_5_kanji_keep/internal/preference"
	"go_5_kanji_keep/internal/repository"
	"go_5_kanji_keep/internal/search"
	"go_5_kanji_keep/internal/study"
	"go_5_kanji_keep/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

const usage = `Usage: kanji [command] [flags]

Commands:
  (none)                 start the terminal UI
  search [-study] QUERY  search the kanji catalog
  list                   list your flashcards
  add -kanji K -meaning M [-onyomi O] [-kunyomi K] [-example E]
                         create a flashcard
  delete [-yes] ID       delete a flashcard
`

func main() {
	// config の読み込みログは TUI の前に出るので標準エラーのままにする
	log.SetOutput(os.Stderr)
	if err := config.LoadConfig(config.DefaultConfigDir); err != nil {
		fmt.Fprintln(os.Stderr, "Error loading configuration:", err)
		os.Exit(1)
	}
	cfg := &config.Cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storagePath := resolveStoragePath(cfg.Client.StoragePath)
	logger, closeLog := newClientLogger(storagePath)
	defer closeLog()
	slog.SetDefault(logger)

	kanjiCatalog, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading kanji catalog:", err)
		os.Exit(1)
	}

	prefs := preference.NewStore(ctx, openPersister(storagePath, logger), logger)

	remote := client.New(cfg.Client.APIBaseURL, cfg.Client.AccessToken,
		client.WithLogger(logger),
		client.WithTimeout(cfg.Client.Timeout),
	)

	args := os.Args[1:]
	if len(args) == 0 {
		if err := runTUI(ctx, kanjiCatalog, prefs, remote, cfg, logger); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	}

	cli := &cli{
		out:     os.Stdout,
		errOut:  os.Stderr,
		in:      os.Stdin,
		catalog: kanjiCatalog,
		prefs:   prefs,
		signIn:  cfg.Auth.SignInURL,
	}
	cli.deck = study.NewDeck(remote, cli, cli, logger)

	if err := cli.run(ctx, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(1)
	}
}

func runTUI(ctx context.Context, c *catalog.Catalog, prefs *preference.Store, store study.FlashcardStore, cfg *config.Config, logger *slog.Logger) error {
	m := tui.New(tui.Options{
		Context:   ctx,
		Catalog:   c,
		Shuffler:  search.NewShuffler(nil),
		Prefs:     prefs,
		Store:     store,
		SignInURL: cfg.Auth.SignInURL,
		Logger:    logger,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// resolveStoragePath は未設定ならユーザー設定ディレクトリ配下を使います。
func resolveStoragePath(path string) string {
	if strings.TrimSpace(path) != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, config.AppName, config.DefaultStorageFile)
}

// newClientLogger は TUI の画面を崩さないよう、ログをストレージの隣のファイルへ書きます。
func newClientLogger(storagePath string) (*slog.Logger, func()) {
	logPath := strings.TrimSuffix(storagePath, filepath.Ext(storagePath)) + ".log"
	level, _ := config.ParseLogLevel(config.Cfg.Log.Level)
	if level < slog.LevelWarn {
		level = slog.LevelWarn
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err == nil {
			return config.NewLogger(f, level, os.Getenv("APP_ENV")), func() { f.Close() }
		}
	}
	return config.NewLogger(os.Stderr, level, os.Getenv("APP_ENV")), func() {}
}

// openPersister はローカルの sqlite を開きます。開けなければメモリ上だけで保持します。
func openPersister(storagePath string, logger *slog.Logger) preference.Persister {
	db, err := repository.NewLocalDB(storagePath, logger)
	if err != nil {
		logger.Warn("Local storage unavailable, preferences will not be saved",
			slog.String("path", storagePath), slog.Any("error", err))
		return preference.NewMemoryPersister()
	}
	return repository.NewLocalStorageRepository(db)
}

// cli はサブコマンド用の表示 (Notifier / Redirector / Confirmer) です。
type cli struct {
	out     io.Writer
	errOut  io.Writer
	in      io.Reader
	catalog *catalog.Catalog
	prefs   *preference.Store
	deck    *study.Deck
	signIn  string
	yes     bool
}

func (c *cli) Error(msg string)   { fmt.Fprintln(c.errOut, msg) }
func (c *cli) Success(msg string) { fmt.Fprintln(c.out, msg) }

func (c *cli) RedirectToSignIn() {
	fmt.Fprintf(c.errOut, "Please sign in first: %s (then set KANJI_ACCESS_TOKEN)\n", c.signIn)
}

func (c *cli) Confirm(prompt string) bool {
	if c.yes {
		return true
	}
	fmt.Fprintf(c.out, "%s [y/N]: ", prompt)
	line, _ := bufio.NewReader(c.in).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (c *cli) run(ctx context.Context, args []string) error {
	switch args[0] {
	case "search":
		return c.search(args[1:])
	case "list":
		return c.list(ctx)
	case "add":
		return c.add(ctx, args[1:])
	case "delete":
		return c.delete(ctx, args[1:])
	case "-h", "--help", "help":
		fmt.Fprint(c.out, usage)
		return flag.ErrHelp
	default:
		fmt.Fprintf(c.errOut, "unknown command %q\n\n%s", args[0], usage)
		return errors.New("unknown command")
	}
}

func (c *cli) search(args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	studyMode := fs.Bool("study", c.prefs.StudyMode(), "shuffle the results")
	if err := fs.Parse(args); err != nil {
		return err
	}
	query := strings.Join(fs.Args(), " ")

	view := search.NewView(c.catalog.Records(), nil)
	results := view.Results(query, *studyMode)
	fmt.Fprintln(c.out, study.KanjiCountLabel(len(results)))
	if len(results) == 0 {
		fmt.Fprintln(c.out, study.NoKanjiMessage(strings.TrimSpace(query)))
		return nil
	}
	for _, k := range results {
		fmt.Fprintf(c.out, "%s\t%s\t%s\t%s\n", k.Kanji, k.Onyomi, k.Kunyomi, k.Meaning)
	}
	return nil
}

func (c *cli) list(ctx context.Context) error {
	if err := c.deck.Load(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, c.deck.CountLabel())
	cards := c.deck.Flashcards()
	if len(cards) == 0 {
		fmt.Fprintln(c.out, study.EmptyDeckMessage)
		return nil
	}
	for _, f := range cards {
		fmt.Fprintf(c.out, "%s\t%s\t%s\t%s\t%s\n", f.ID, f.Kanji, f.Onyomi, f.Kunyomi, f.Meaning)
	}
	return nil
}

func (c *cli) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	var req model.CreateFlashcardRequest
	fs.StringVar(&req.Kanji, "kanji", "", "kanji (required)")
	fs.StringVar(&req.Meaning, "meaning", "", "meaning (required)")
	fs.StringVar(&req.Onyomi, "onyomi", "", "on'yomi reading")
	fs.StringVar(&req.Kunyomi, "kunyomi", "", "kun'yomi reading")
	fs.StringVar(&req.Example, "example", "", "example word")
	if err := fs.Parse(args); err != nil {
		return err
	}

	card, err := c.deck.Create(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, card.ID)
	return nil
}

func (c *cli) delete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	fs.BoolVar(&c.yes, "yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(c.errOut, "delete requires exactly one flashcard ID")
		return errors.New("missing flashcard id")
	}
	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(c.errOut, "invalid flashcard ID %q\n", fs.Arg(0))
		return err
	}
	return c.deck.Delete(ctx, id, c)
}
