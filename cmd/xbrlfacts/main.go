package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/xbrlfacts"
	"github.com/fwojciec/xbrlfacts/decimal"
	"github.com/fwojciec/xbrlfacts/etree"
	"github.com/fwojciec/xbrlfacts/fs"
	"github.com/fwojciec/xbrlfacts/goquery"
	xhttp "github.com/fwojciec/xbrlfacts/http"
	"github.com/fwojciec/xbrlfacts/ingest"
	xslog "github.com/fwojciec/xbrlfacts/slog"
	"github.com/fwojciec/xbrlfacts/sqlite"
	"github.com/fwojciec/xbrlfacts/zip"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	// A missing .env file is not an error.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the storage services, if --db is set.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
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
		kong.Name("xbrlfacts"),
		kong.Description("Extract numeric facts from EDINET inline XBRL filings"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'xbrlfacts --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Ingester = NewIngester(deps.Logger)

	cmd := strings.Fields(kongCtx.Command())[0]

	if cmd == "list" || cmd == "extract" {
		if cli.APIKey == "" {
			fmt.Fprintln(stderr, "Hint: Set EDINET_API_KEY or pass --api-key. Keys are issued at https://api.edinet-fsa.go.jp/")
			return xbrlfacts.Errorf(xbrlfacts.EINVALID, "EDINET API key not set")
		}
		client := xhttp.NewClient(
			xhttp.WithAPIKey(cli.APIKey),
			xhttp.WithTimeout(cli.Timeout),
		)
		deps.Source = xslog.NewLoggingSource(client, deps.Logger)
	}

	if cmd == "facts" || cmd == "delete" {
		if cli.DB == "" {
			fmt.Fprintln(stderr, "Hint: Set XBRLFACTS_DB or pass --db to choose the database")
			return xbrlfacts.Errorf(xbrlfacts.EINVALID, "database not set")
		}
	}

	if cli.DB != "" && cmd != "list" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set XBRLFACTS_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()

		deps.Filings = sqlite.NewFilingService(m.DB)
		deps.Facts = sqlite.NewFactService(m.DB)
	}

	switch {
	case cmd == "extract" && cli.Extract.Out != "":
		deps.Writer = fs.NewTableWriter(cli.Extract.Out)
	case cmd == "file" && cli.File.Out != "":
		deps.Writer = fs.NewTableWriter(cli.File.Out)
	}

	return kongCtx.Run(deps)
}

// NewIngester wires the production fact-extraction pipeline.
func NewIngester(logger *slog.Logger) *ingest.Ingester {
	return &ingest.Ingester{
		Extractor: xslog.NewLoggingExtractor(zip.NewExtractor(), logger),
		Decoder:   decimal.NewDecoder(),
		Filter:    xbrlfacts.DefaultCandidateFilter(),
		Locators: map[string]xbrlfacts.FactLocator{
			".xbrl": xslog.NewLoggingLocator(etree.NewLocator(), logger),
		},
		DefaultLocator: xslog.NewLoggingLocator(goquery.NewLocator(), logger),
	}
}
