package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/mazrean/hashfiles/internal/cli"
	"github.com/mazrean/hashfiles/internal/domain"
)

// CLI represents the command-line interface structure
type CLI struct {
	Debug   bool             `help:"Print debug information to stderr" short:"d"`
	Config  string           `help:"Path to the defaults file (default .hashfiles.toml)" placeholder:"PATH"`
	Version kong.VersionFlag `help:"Show version and exit"`

	Hash       cli.HashCmd       `cmd:"" default:"withargs" help:"Hash files and print one line per file (default command)"`
	Check      cli.CheckCmd      `cmd:"" help:"Verify files against a checksum list printed by hashfiles"`
	Algorithms cli.AlgorithmsCmd `cmd:"" help:"List supported hash algorithms"`
	Init       cli.InitCmd       `cmd:"" help:"Create a .hashfiles.toml defaults file"`
}

// Version information (will be injected by GoReleaser via ldflags)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run parses args, executes the selected command and returns the process exit code.
func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var root CLI
	parser, err := kong.New(&root,
		kong.Name("hashfiles"),
		kong.Description("Hash files with CRC32, MD5, SHA-1, SHA-2, SHA-3, Whirlpool or BLAKE2, in parallel"),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Vars{
			"version": fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashfiles: %v\n", err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) && parseErr.Context != nil {
			_ = parseErr.Context.PrintUsage(false)
		}
		return 1
	}

	// Commands report their own errors; configuration errors also get usage help.
	if err := kctx.Run(); err != nil {
		if errors.Is(err, domain.ErrInvalidConfig) {
			_ = kctx.PrintUsage(false)
		}
		return 1
	}

	return 0
}
