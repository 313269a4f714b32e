package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/xbrlfacts"
	"github.com/fwojciec/xbrlfacts/ingest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Ingester *ingest.Ingester
	Source   xbrlfacts.FilingSource
	Filings  xbrlfacts.FilingService
	Facts    xbrlfacts.FactService
	Writer   xbrlfacts.TableWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	APIKey  string        `name:"api-key" env:"EDINET_API_KEY" help:"EDINET API subscription key"`
	DB      string        `name:"db" env:"XBRLFACTS_DB" help:"SQLite database to store filings and facts in"`
	Timeout time.Duration `default:"60s" help:"HTTP request timeout"`
	Verbose bool          `short:"v" help:"Log pipeline stages"`

	List    ListCmd    `cmd:"" help:"List documents submitted on a date or date range"`
	Extract ExtractCmd `cmd:"" help:"Fetch filings from EDINET and extract their facts"`
	File    FileCmd    `cmd:"" help:"Extract facts from local filing archives"`
	Facts   FactsCmd   `cmd:"" help:"Show stored facts"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored filing and its facts"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Date  string `arg:"" help:"Submission date (YYYY-MM-DD)"`
	To    string `help:"Last date of a range (YYYY-MM-DD)"`
	All   bool   `short:"a" help:"Include documents other than annual reports with XBRL"`
	Limit int    `short:"n" default:"0" help:"Maximum documents to print (0 for all)"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	DocIDs      []string `arg:"" name:"doc-id" help:"EDINET document IDs"`
	Concurrency int      `short:"c" default:"3" help:"Concurrent download limit"`
	Preview     int      `short:"n" default:"10" help:"Rows to preview per filing (0 hides the table)"`
	Out         string   `short:"o" help:"Directory to write one CSV file per filing to"`
	Force       bool     `short:"f" help:"Store facts even if an identical archive is already stored"`
}

// FileCmd is the "file" subcommand.
type FileCmd struct {
	Paths   []string `arg:"" help:"Filing archive (.zip) paths"`
	Preview int      `short:"n" default:"10" help:"Rows to preview per filing (0 hides the table)"`
	Out     string   `short:"o" help:"Directory to write one CSV file per filing to"`
	Force   bool     `short:"f" help:"Store facts even if an identical archive is already stored"`
}

// FactsCmd is the "facts" subcommand.
type FactsCmd struct {
	Filing  string `help:"Only facts of this filing ID"`
	Account string `help:"Only facts of this account item (e.g. jppfs_cor:NetSales)"`
	Context string `help:"Only facts of this context reference"`
	Limit   int    `short:"n" default:"0" help:"Maximum facts to print (0 for all)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	FilingID string `arg:"" name:"filing-id" help:"Filing ID to delete"`
	Force    bool   `short:"f" help:"Confirm deletion"`
}
