package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/tanaclip"
	"github.com/fwojciec/tanaclip/batch"
	clipfs "github.com/fwojciec/tanaclip/fs"
	"github.com/fwojciec/tanaclip/goquery"
	"github.com/fwojciec/tanaclip/htmltomarkdown"
	cliphttp "github.com/fwojciec/tanaclip/http"
	"github.com/fwojciec/tanaclip/readability"
	"github.com/fwojciec/tanaclip/rod"
	clipslog "github.com/fwojciec/tanaclip/slog"
	"github.com/fwojciec/tanaclip/sqlite"
	"github.com/fwojciec/tanaclip/trafilatura"
	"github.com/fwojciec/tanaclip/yaml"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

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

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher opened for the current command, closed by Close.
	Fetcher tanaclip.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var errs []error
	if m.Fetcher != nil {
		errs = append(errs, m.Fetcher.Close())
	}
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
	}
	return errors.Join(errs...)
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
		kong.Name("tanaclip"),
		kong.Description("Clip web pages into Tana Paste or Tana Input API payloads."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tanaclip --help' to see available commands")
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

	configPath := cli.Config
	if configPath == "" {
		configPath = defaultConfigPath()
	}
	deps.Config, err = yaml.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set TANACLIP_CONFIG or --config to use a different config file\n")
		return fmt.Errorf("failed to load config: %w", err)
	}

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	defer m.Close()

	if needsDB(cmd, cli) {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set TANACLIP_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		deps.Clips = sqlite.NewClipService(m.DB)
		if logger != nil {
			deps.Clips = clipslog.NewLoggingClipService(deps.Clips, logger)
		}
	}

	switch cmd {
	case "clip":
		if cli.Clip.File == "" {
			if err := m.openFetcher(cli.Clip.Fetcher, logger, stderr); err != nil {
				return err
			}
			deps.Fetcher = m.Fetcher
		}
		deps.Clipper = newClipper(cli.Clip.Engine, cli.Clip.URL, logger)
		deps.Converter = htmltomarkdown.NewConverter(siteOf(cli.Clip.URL))
		if cli.Clip.Out != "" {
			deps.Writer = clipfs.NewWriter(cli.Clip.Out)
		}

	case "batch":
		if err := m.openFetcher(cli.Batch.Fetcher, logger, stderr); err != nil {
			return err
		}
		deps.Fetcher = m.Fetcher
		deps.Sitemaps = cliphttp.NewSitemapService(nil)
		if logger != nil {
			deps.Sitemaps = clipslog.NewLoggingSitemapService(deps.Sitemaps, logger)
		}
		deps.Clipper = newClipper(cli.Batch.Engine, "", logger)
		deps.Converter = htmltomarkdown.NewConverter("")
		if cli.Batch.Out != "" {
			deps.Writer = clipfs.NewWriter(cli.Batch.Out)
		}
		deps.Runner = &batch.Runner{
			Fetcher:     deps.Fetcher,
			Clipper:     deps.Clipper,
			RateLimiter: batch.NewDomainLimiter(cli.Batch.RPS),
			Log: func(format string, args ...any) {
				fmt.Fprintf(stderr, format+"\n", args...)
			},
		}
	}

	return kongCtx.Run(deps)
}

// needsDB reports whether cmd reads or writes clip history.
func needsDB(cmd string, cli *CLI) bool {
	switch cmd {
	case "history", "show", "delete":
		return true
	case "clip":
		return cli.Clip.Save
	case "batch":
		return cli.Batch.Save
	}
	return false
}

func (m *Main) openFetcher(kind string, logger *slog.Logger, stderr io.Writer) error {
	var fetcher tanaclip.Fetcher
	switch kind {
	case FetcherRod:
		f, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	default:
		fetcher = cliphttp.NewFetcher()
	}
	if logger != nil {
		fetcher = clipslog.NewLoggingFetcher(fetcher, logger)
	}
	m.Fetcher = fetcher
	return nil
}

// newClipper builds the clipper for engine. pageURL lets engines resolve
// relative links; it may be empty.
func newClipper(engine, pageURL string, logger *slog.Logger) tanaclip.Clipper {
	var e tanaclip.ContentExtractor
	switch engine {
	case EngineReadability:
		e = readability.NewExtractor(pageURL)
	case EngineTrafilatura:
		e = trafilatura.NewExtractor(pageURL)
	}

	var opts []goquery.Option
	if e != nil {
		if logger != nil {
			e = clipslog.NewLoggingExtractor(e, engine, logger)
		}
		opts = append(opts, goquery.WithEngine(e))
	}

	var c tanaclip.Clipper = goquery.NewClipper(opts...)
	if logger != nil {
		c = clipslog.NewLoggingClipper(c, logger)
	}
	return c
}

// siteOf returns the scheme and host of rawURL, or empty.
func siteOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func defaultDBPath() string {
	if path := os.Getenv("TANACLIP_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "tanaclip.db"
	}
	dir := filepath.Join(home, ".tanaclip")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "clips.db")
}

// defaultConfigPath returns ~/.tanaclip/config.yaml when it exists.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".tanaclip", "config.yaml")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return ""
	}
	return path
}
