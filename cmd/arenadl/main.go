package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	arenahttp "github.com/fwojciec/arenadl/http"
	"github.com/fwojciec/arenadl/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Base URL of the channel API.
	APIBaseURL string

	// Getenv looks up environment variables.
	Getenv func(string) string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultDBPath(os.Getenv),
		APIBaseURL: arenahttp.DefaultBaseURL,
		Getenv:     os.Getenv,
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
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:        ctx,
		Stdin:      bufio.NewReader(stdin),
		Stdout:     stdout,
		Stderr:     stderr,
		Getenv:     m.Getenv,
		APIBaseURL: m.APIBaseURL,
	}
	if deps.Getenv == nil {
		deps.Getenv = os.Getenv
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("arenadl"),
		kong.Description("Download every image of an Are.na channel"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'arenadl --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ARENADL_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.DB = m.DB
	deps.Runs = sqlite.NewRunService(m.DB)
	deps.Assets = sqlite.NewAssetService(m.DB)

	return kongCtx.Run(deps)
}

func defaultDBPath(getenv func(string) string) string {
	if path := getenv("ARENADL_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "arenadl.db"
	}
	dir := filepath.Join(home, ".arenadl")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "arenadl.db")
}
