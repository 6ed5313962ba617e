package main

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/fwojciec/arenadl"
	"github.com/fwojciec/arenadl/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdin      *bufio.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	Getenv     func(string) string
	APIBaseURL string
	DB         *sqlite.DB
	Runs       arenadl.RunService
	Assets     arenadl.AssetService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Fetch   FetchCmd   `cmd:"" help:"Download every image of a channel"`
	History HistoryCmd `cmd:"" help:"List recorded fetch runs"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	Channel     string        `arg:"" optional:"" help:"Channel slug (default: ARENA_CHANNEL_SLUG)"`
	Out         string        `short:"o" help:"Output directory (default: images/<channel>)"`
	Concurrency int           `short:"c" default:"5" help:"Concurrent downloads"`
	Attempts    int           `default:"3" help:"Attempts per image"`
	Timeout     time.Duration `short:"t" default:"30s" help:"Timeout per request"`
	Rate        float64       `help:"Requests per second per image host (0 for no limit)"`
	Partial     bool          `help:"Keep images found before a failing page instead of aborting"`
	Token       string        `help:"Access token for private channels (default: ARENA_ACCESS_TOKEN)"`
	Env         string        `default:".env" help:"Path of the .env file"`
	NoProgress  bool          `help:"Disable the progress bar"`
	Verbose     bool          `short:"v" help:"Log retries and discovery details"`
	Debug       bool          `help:"Log every request"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Channel  string `arg:"" optional:"" help:"Only show runs of this channel"`
	Limit    int    `short:"n" default:"10" help:"Number of runs to show"`
	Failures bool   `short:"f" help:"List failed images of each run"`
}
