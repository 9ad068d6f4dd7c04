package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/nps"
	"github.com/fwojciec/nps/fs"
	"github.com/fwojciec/nps/goquery"
	npshttp "github.com/fwojciec/nps/http"
	"github.com/fwojciec/nps/scrape"
	npsslog "github.com/fwojciec/nps/slog"
	"github.com/fwojciec/nps/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Cache store opened by Run. Closed by Close().
	Cache nps.CacheStore

	// Site service used by commands. When nil, Run wires the scraper
	// against the configured cache and upstream URLs.
	Service nps.SiteService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program, flushing the cache.
func (m *Main) Close() error {
	if m.Cache != nil {
		return m.Cache.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("nps"),
		kong.Description("Look up U.S. national park sites and places near them."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 {
		if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if m.Service == nil {
		if kongCtx.Command() == "nearby <state> <index>" && cli.APIKey == "" {
			fmt.Fprintln(stderr, "MAPQUEST_API_KEY environment variable not set. Get a key at https://developer.mapquest.com")
			return nps.Errorf(nps.EINVALID, "MAPQUEST_API_KEY not set")
		}

		m.Cache = openCache(cli.CacheBackend, cli.Cache)
		defer m.Close()

		m.Service = newScraper(cli, m.Cache, newLogger(stderr, cli.Verbose))
	}
	deps.Sites = m.Service

	return kongCtx.Run(deps)
}

// openCache opens the cache store for the given backend. An empty path
// selects the default location for the backend.
func openCache(backend, path string) nps.CacheStore {
	if path == "" {
		path = defaultCachePath(backend)
	}
	if backend == "sqlite" {
		return sqlite.Open(path)
	}
	return fs.Open(path)
}

func newScraper(cli *CLI, cache nps.CacheStore, logger *slog.Logger) *scrape.Scraper {
	parser := goquery.NewParser()
	opts := []npshttp.Option{npshttp.WithTimeout(cli.Timeout)}

	var places nps.PlacesClient
	if cli.APIKey != "" {
		places = npsslog.NewLoggingPlacesClient(npshttp.NewPlacesClient(cli.PlacesURL, cli.APIKey, opts...), logger)
	}

	return &scrape.Scraper{
		BaseURL:     cli.BaseURL,
		Fetcher:     npsslog.NewLoggingFetcher(npshttp.NewFetcher(opts...), logger),
		Directories: parser,
		Listings:    parser,
		Sites:       parser,
		Places:      places,
		Cache:       npsslog.NewLoggingCacheStore(cache, logger),
		RateLimiter: scrape.NewDomainLimiter(cli.Rate),
		Concurrency: cli.Concurrency,
		Logger:      logger,
	}
}

// newLogger logs to stderr. Cache and fetch activity is shown only when
// verbose; warnings are always shown.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultCachePath(backend string) string {
	name := "cache.json"
	if backend == "sqlite" {
		name = "cache.db"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	dir := filepath.Join(home, ".nps")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, name)
}
