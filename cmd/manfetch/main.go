package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/manfetch"
	"github.com/fwojciec/manfetch/acquire"
	"github.com/fwojciec/manfetch/fs"
	"github.com/fwojciec/manfetch/gemini"
	manhttp "github.com/fwojciec/manfetch/http"
	"github.com/fwojciec/manfetch/resolve"
	"github.com/fwojciec/manfetch/rod"
	"github.com/fwojciec/manfetch/search"
	manslog "github.com/fwojciec/manfetch/slog"
	"github.com/fwojciec/manfetch/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database backing the journal.
	DB *sqlite.DB

	// Overrides for end-to-end testing. When nil, real implementations
	// are built from the command-line flags.
	Transport manfetch.Transport
	Completer manfetch.Completer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("manfetch"),
		kong.Description("Find and download product manuals as PDF"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'manfetch --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = NewLogger(stderr, cli.Verbose)

	if cmd == "get" || cmd == "history" {
		if cli.DB != "" {
			m.DBPath = cli.DB
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set MANFETCH_DB or --db to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		deps.Journal = manslog.NewLoggingJournal(sqlite.NewJournal(m.DB), deps.Logger)
	}

	if cmd == "get" || cmd == "search" {
		transport := m.transport(cli)

		completer, err := m.completer(ctx, cli)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		generator, err := NewGenerator(cli, transport, completer, deps.Logger)
		if err != nil {
			return err
		}
		deps.Generator = generator

		if cmd == "get" {
			fetcher, err := m.fetcher(cli, transport)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = manslog.NewLoggingFetcher(fetcher, deps.Logger)
			defer fetcher.Close()

			downloader := acquire.NewDownloader(transport)
			downloader.Timeout = cli.DownloadTimeout
			downloader.Log = func(format string, args ...any) {
				deps.Logger.Warn(fmt.Sprintf(format, args...))
			}

			deps.Acquirer = &acquire.Acquirer{
				Generator:  generator,
				Resolver:   manslog.NewLoggingResolver(resolve.NewResolver(fetcher, resolve.DefaultSites(fetcher)...), deps.Logger),
				Downloader: manslog.NewLoggingDownloader(downloader, deps.Logger),
			}
			deps.Writer = fs.NewWriter(cli.Get.Output)
		}
	}

	return kongCtx.Run(deps)
}

// NewLogger returns a text logger on w at info level, or debug when
// verbose.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewGenerator assembles the candidate sources in priority order:
// repository templates, AI suggestions when a completer is available, then
// the search engine.
func NewGenerator(cli *CLI, transport manfetch.Transport, completer manfetch.Completer, logger *slog.Logger) (*search.Generator, error) {
	brands, err := loadBrands(cli.Brands)
	if err != nil {
		return nil, err
	}

	sources := []manfetch.CandidateSource{
		manslog.NewLoggingSource(search.NewRepositorySource(brands), logger),
	}
	if completer != nil {
		completer = manslog.NewLoggingCompleter(completer, logger)
		sources = append(sources, manslog.NewLoggingSource(search.NewAISource(completer, brands), logger))
	}
	engine := search.NewEngineSource(transport, search.WithTimeout(cli.SearchTimeout))
	sources = append(sources, manslog.NewLoggingSource(engine, logger))

	return search.NewGenerator(sources...), nil
}

func (m *Main) transport(cli *CLI) manfetch.Transport {
	if m.Transport != nil {
		return m.Transport
	}
	opts := []manhttp.Option{
		manhttp.WithTimeout(cli.Timeout),
		manhttp.WithRateLimit(cli.Rate),
	}
	if cli.UserAgent != "" {
		opts = append(opts, manhttp.WithUserAgent(cli.UserAgent))
	}
	return manhttp.NewClient(opts...)
}

func (m *Main) completer(ctx context.Context, cli *CLI) (manfetch.Completer, error) {
	if cli.NoAI {
		return nil, nil
	}
	if m.Completer != nil {
		return m.Completer, nil
	}
	if cli.APIKey == "" {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cli.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return gemini.NewCompleter(client, cli.Model), nil
}

func (m *Main) fetcher(cli *CLI, transport manfetch.Transport) (manfetch.Fetcher, error) {
	if !cli.Browser {
		return manhttp.NewFetcher(transport), nil
	}
	opts := []rod.Option{rod.WithFetchTimeout(cli.Timeout)}
	if cli.UserAgent != "" {
		opts = append(opts, rod.WithUserAgent(cli.UserAgent))
	}
	return rod.NewFetcher(opts...)
}

func loadBrands(path string) ([]search.Brand, error) {
	if path == "" {
		return search.DefaultBrands, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening brands file: %w", err)
	}
	defer f.Close()

	overrides, err := search.LoadBrands(f)
	if err != nil {
		return nil, fmt.Errorf("loading brands from %q: %w", path, err)
	}
	return search.MergeBrands(overrides, search.DefaultBrands), nil
}

func defaultDBPath() string {
	if path := os.Getenv("MANFETCH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "manfetch.db"
	}
	dir := filepath.Join(home, ".manfetch")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "manfetch.db")
}
