package main

import (
	"context"
	"io"

	"github.com/fwojciec/tanaclip"
	"github.com/fwojciec/tanaclip/batch"
)

// Engine names accepted by --engine.
const (
	EngineHeuristic   = "heuristic"
	EngineReadability = "readability"
	EngineTrafilatura = "trafilatura"
)

// Fetcher names accepted by --fetcher.
const (
	FetcherHTTP = "http"
	FetcherRod  = "rod"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *tanaclip.Config
	Clips     tanaclip.ClipService
	Sitemaps  tanaclip.SitemapService
	Fetcher   tanaclip.Fetcher
	Clipper   tanaclip.Clipper
	Converter tanaclip.Converter
	Writer    tanaclip.ClipWriter
	Runner    *batch.Runner
}

// Renderer returns a renderer for the configured field mappings.
func (d *Dependencies) Renderer() *tanaclip.Renderer {
	return &tanaclip.Renderer{Config: d.Config, Markdown: d.Converter}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" type:"path" env:"TANACLIP_CONFIG" help:"Path to YAML config file"`
	Verbose bool   `short:"v" help:"Log operations to stderr"`

	Clip    ClipCmd    `cmd:"" help:"Clip a web page into Tana format"`
	Batch   BatchCmd   `cmd:"" help:"Clip many pages at once"`
	History HistoryCmd `cmd:"" help:"List saved clips"`
	Show    ShowCmd    `cmd:"" help:"Print a saved clip"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved clip"`
	Conf    ConfigCmd  `cmd:"" name:"config" help:"Print the effective configuration"`
}

// ClipCmd is the "clip" subcommand.
type ClipCmd struct {
	URL       string `arg:"" help:"Page URL"`
	File      string `short:"f" type:"existingfile" help:"Read page HTML from file instead of fetching"`
	Selection string `short:"s" help:"HTML of the selected range; only the selection is clipped"`
	Engine    string `short:"e" enum:"heuristic,readability,trafilatura" default:"heuristic" help:"Content engine (${enum})"`
	Format    string `short:"F" enum:"paste,json,markdown" default:"paste" help:"Output format (${enum})"`
	Fetcher   string `enum:"http,rod" default:"http" help:"Page fetcher (${enum})"`
	Out       string `short:"o" type:"path" help:"Write payload under this directory instead of stdout"`
	Save      bool   `help:"Save clip to history"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URLs        []string `arg:"" optional:"" help:"Page URLs"`
	List        string   `short:"l" type:"existingfile" help:"Read URLs from file, one per line"`
	Index       string   `short:"i" help:"Clip the pages linked from this index page"`
	Sitemap     string   `help:"Clip the pages listed in this site's sitemaps"`
	Filter      []string `name:"filter" help:"Only clip discovered URLs matching regex (repeatable)"`
	Exclude     []string `help:"Skip discovered URLs matching regex (repeatable)"`
	Since       string   `help:"Only clip sitemap pages modified on or after this date"`
	Limit       int      `help:"Clip at most this many discovered pages"`
	Engine      string   `short:"e" enum:"heuristic,readability,trafilatura" default:"heuristic" help:"Content engine (${enum})"`
	Format      string   `short:"F" enum:"paste,json,markdown" default:"paste" help:"Output format (${enum})"`
	Fetcher     string   `enum:"http,rod" default:"http" help:"Page fetcher (${enum})"`
	Out         string   `short:"o" type:"path" help:"Write payloads under this directory"`
	Save        bool     `help:"Save clips to history"`
	Concurrency int      `short:"n" default:"4" help:"Concurrent fetch limit"`
	RPS         float64  `name:"rps" default:"1" help:"Requests per second per domain (0 disables)"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL    string `help:"Only show clips of this URL"`
	Limit  int    `default:"20" help:"Maximum number of clips"`
	Offset int    `help:"Number of clips to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Clip ID"`
	Format string `short:"F" help:"Re-render in this format instead of the saved one"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Clip ID"`
	Force bool   `help:"Confirm deletion"`
}

// ConfigCmd is the "config" subcommand.
type ConfigCmd struct{}
