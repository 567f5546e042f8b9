package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/manfetch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Acquirer  manfetch.Acquirer
	Generator manfetch.CandidateGenerator
	Writer    manfetch.ManualWriter
	Journal   manfetch.Journal
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB              string        `name:"db" help:"Journal database path (default: $MANFETCH_DB or ~/.manfetch/manfetch.db)"`
	Timeout         time.Duration `default:"30s" help:"Page fetch timeout"`
	DownloadTimeout time.Duration `default:"90s" help:"PDF download timeout per attempt"`
	SearchTimeout   time.Duration `default:"20s" help:"Search engine query timeout"`
	UserAgent       string        `name:"user-agent" help:"User-Agent header for outgoing requests"`
	Rate            float64       `default:"0" help:"Requests per second per domain (0 disables limiting)"`
	Browser         bool          `help:"Render landing pages with headless Chrome"`
	Brands          string        `help:"YAML file with extra brand URL templates"`
	Model           string        `default:"gemini-2.5-flash" help:"Gemini model for AI-suggested URLs"`
	APIKey          string        `name:"api-key" env:"GEMINI_API_KEY" help:"Gemini API key; AI suggestions are skipped when unset"`
	NoAI            bool          `name:"no-ai" help:"Skip AI-suggested URLs"`
	Verbose         bool          `short:"v" help:"Enable debug logging"`

	Get     GetCmd     `cmd:"" help:"Find and download the manual for a product"`
	Search  SearchCmd  `cmd:"" help:"List ranked candidate URLs without downloading"`
	History HistoryCmd `cmd:"" help:"Show past acquisitions"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	Make   string `arg:"" help:"Manufacturer, e.g. Samsung"`
	Model  string `arg:"" help:"Model number, e.g. RF28R7351SG"`
	Output string `short:"o" default:"." help:"Output directory"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Make  string `arg:"" help:"Manufacturer"`
	Model string `arg:"" help:"Model number"`
	JSON  bool   `name:"json" help:"Print the result as JSON"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Make    string `help:"Only show entries for this make"`
	Found   bool   `xor:"outcome" help:"Only show acquisitions that found a manual"`
	Missing bool   `xor:"outcome" help:"Only show acquisitions that found nothing"`
	Limit   int    `short:"n" default:"20" help:"Maximum number of entries"`
}
