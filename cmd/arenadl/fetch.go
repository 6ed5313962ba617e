package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/arenadl"
	"github.com/fwojciec/arenadl/dotenv"
	"github.com/fwojciec/arenadl/download"
	"github.com/fwojciec/arenadl/fs"
	arenahttp "github.com/fwojciec/arenadl/http"
	"github.com/fwojciec/arenadl/progressbar"
	arenaslog "github.com/fwojciec/arenadl/slog"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	logger := newLogger(deps.Stderr, c.Verbose, c.Debug)

	env := dotenv.NewConfigStore(c.Env, deps.Getenv)
	settings, err := env.Load()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	channel := firstNonEmpty(c.Channel, settings.Channel)
	if channel == "" {
		channel, err = prompt(deps, "Channel slug: ")
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", arenadl.ErrorMessage(err))
			return err
		}
	}

	cfg := c.config(channel, firstNonEmpty(c.Token, settings.Token))
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", arenadl.ErrorMessage(err))
		return err
	}

	out, err := c.harvest(deps, cfg, logger)
	if arenadl.ErrorCode(err) == arenadl.EUNAUTHORIZED {
		fmt.Fprintf(deps.Stderr, "Channel %q is private or the access token was rejected.\n", channel)
		token, perr := prompt(deps, "Access token: ")
		if perr != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", arenadl.ErrorMessage(perr))
			return perr
		}
		if serr := env.SaveToken(token); serr != nil {
			fmt.Fprintf(deps.Stderr, "warning: token not saved: %v\n", serr)
		} else {
			fmt.Fprintf(deps.Stdout, "Saved access token to %s\n", env.Path())
		}
		cfg.Token = token
		out, err = c.harvest(deps, cfg, logger)
	}

	switch arenadl.ErrorCode(err) {
	case "":
	case arenadl.ENOTFOUND:
		fmt.Fprintf(deps.Stderr, "error: channel %q not found\n", channel)
		return err
	case arenadl.EUNAUTHORIZED, arenadl.EINVALID:
		fmt.Fprintf(deps.Stderr, "error: %s\n", arenadl.ErrorMessage(err))
		return err
	default:
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	c.report(deps, cfg, out, logger)
	return nil
}

func (c *FetchCmd) config(channel, token string) arenadl.Config {
	policy := arenadl.PageErrorAbort
	if c.Partial {
		policy = arenadl.PageErrorPartial
	}
	return arenadl.Config{
		Channel:     channel,
		OutputDir:   c.Out,
		Token:       token,
		Concurrency: c.Concurrency,
		MaxAttempts: c.Attempts,
		Timeout:     c.Timeout,
		RatePerHost: c.Rate,
		PageErrors:  policy,
	}.WithDefaults()
}

// harvest runs one complete pass over the channel and records it as a run.
func (c *FetchCmd) harvest(deps *Dependencies, cfg arenadl.Config, logger *slog.Logger) (*download.HarvestResult, error) {
	store := fs.NewAssetStore(cfg.OutputDir)
	if err := store.EnsureDir(); err != nil {
		return nil, err
	}

	var channels arenadl.ChannelService = arenahttp.NewChannelService(
		arenahttp.WithBaseURL(deps.APIBaseURL),
		arenahttp.WithToken(cfg.Token),
		arenahttp.WithPerPage(arenadl.DefaultPerPage),
		arenahttp.WithAPITimeout(cfg.Timeout),
	)
	var fetcher arenadl.AssetFetcher = arenahttp.NewAssetFetcher(
		arenahttp.WithTimeout(cfg.Timeout),
		arenahttp.WithMaxRedirects(cfg.MaxRedirects),
	)
	var assets arenadl.AssetStore = store
	if c.Debug {
		channels = arenaslog.NewLoggingChannelService(channels, logger)
		fetcher = arenaslog.NewLoggingAssetFetcher(fetcher, logger)
		assets = arenaslog.NewLoggingAssetStore(assets, logger)
	}

	downloader := &download.Downloader{
		Fetcher: fetcher,
		Store:   assets,
		Retry: download.RetryPolicy{
			MaxAttempts: cfg.MaxAttempts,
			BaseDelay:   time.Second,
			Multiplier:  2,
		},
		Log: infoLog(logger),
	}
	if cfg.RatePerHost > 0 {
		downloader.Limiter = download.NewHostLimiter(cfg.RatePerHost)
	}

	h := &download.Harvester{
		Channels:    channels,
		Downloader:  downloader,
		Concurrency: cfg.Concurrency,
		PageErrors:  cfg.PageErrors,
		Log:         infoLog(logger),
	}

	run := &arenadl.Run{Channel: cfg.Channel, OutputDir: cfg.OutputDir}
	if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}

	var sink *progressbar.Sink
	if !c.NoProgress {
		sink = progressbar.NewSink(deps.Stderr, cfg.Channel)
		sink.Failures = deps.Stderr
	}
	progress := func(p arenadl.Progress) {
		if err := deps.Assets.CreateAsset(deps.Ctx, arenadl.NewAsset(run.ID, p.Result)); err != nil {
			logger.Warn("record asset", "file", p.Result.Task.Filename, "err", err)
		}
		if sink != nil {
			sink.Update(p)
		} else if p.Result.Outcome == arenadl.OutcomeFailed {
			fmt.Fprintf(deps.Stderr, "  fail %s: %v\n", download.TruncateURL(p.Result.Task.SourceURL, progressbar.URLWidth), p.Result.Err)
		}
	}

	out, err := h.Harvest(deps.Ctx, cfg.Channel, progress)
	if sink != nil {
		_ = sink.Finish()
	}

	discovered, result := 0, arenadl.RunResult{}
	if out != nil {
		discovered, result = len(out.Discovery.Tasks), out.Result
	}
	if _, ferr := deps.Runs.FinishRun(deps.Ctx, run.ID, discovered, result, arenadl.ErrorDetail(err)); ferr != nil {
		logger.Warn("record run", "run", run.ID, "err", ferr)
	}

	return out, err
}

func (c *FetchCmd) report(deps *Dependencies, cfg arenadl.Config, out *download.HarvestResult, logger *slog.Logger) {
	disc := out.Discovery
	for _, col := range disc.Collisions {
		logger.Warn("filename collision", "file", col.Filename, "kept", col.Kept, "dropped", col.Dropped)
	}
	if disc.Truncated != nil {
		fmt.Fprintf(deps.Stderr, "warning: stopped listing channel early: %v\n", disc.Truncated)
	}

	if len(disc.Tasks) == 0 {
		fmt.Fprintf(deps.Stdout, "No images found in channel %q\n", cfg.Channel)
		return
	}

	var bytes int
	for _, res := range out.Downloads {
		bytes += res.Bytes
	}

	r := out.Result
	fmt.Fprintf(deps.Stdout, "Found %d images in channel %q\n", len(disc.Tasks), cfg.Channel)
	if r.Total() < len(disc.Tasks) {
		fmt.Fprintf(deps.Stderr, "warning: interrupted after %d of %d images\n", r.Total(), len(disc.Tasks))
	}
	fmt.Fprintf(deps.Stdout, "Downloaded %d (skipped %d), failed %d\n", r.Downloaded(), r.Skipped, r.Failed)
	fmt.Fprintf(deps.Stdout, "Saved %s to %s\n", download.FormatBytes(bytes), cfg.OutputDir)
}

func newLogger(w io.Writer, verbose, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func infoLog(logger *slog.Logger) download.LogFunc {
	return func(format string, args ...any) {
		logger.Info(fmt.Sprintf(format, args...))
	}
}

// prompt asks for a single line on stdin.
func prompt(deps *Dependencies, label string) (string, error) {
	fmt.Fprint(deps.Stdout, label)
	line, err := deps.Stdin.ReadString('\n')
	line = strings.TrimSpace(line)
	if line != "" {
		return line, nil
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return "", arenadl.Errorf(arenadl.EINVALID, "no input for %q", strings.TrimSuffix(strings.TrimSpace(label), ":"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
