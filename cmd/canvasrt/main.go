package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/funvibe/canvasrt/internal/config"
)

// Version information, set at build time via -ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches to a subcommand. It never touches os.Args or the process
// environment directly so tests can drive it.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	if len(args) == 0 {
		printUsage(stderr)
		return errors.New("missing command")
	}

	switch args[0] {
	case "test":
		return runTestCommand(ctx, args[1:], stdout, stderr, getenv)
	case "publish":
		return runPublishCommand(ctx, args[1:], stdout, stderr, getenv)
	case "eval":
		return runEvalCommand(ctx, args[1:], stdout, stderr, getenv)
	case "fmt":
		return runFmtCommand(args[1:], stdout, stderr, getenv)
	case "version", "--version", "-version":
		fmt.Fprintf(stdout, "canvasrt version %s (%s)\n", Version, Commit)
		return nil
	case "help", "--help", "-help", "-h":
		printUsage(stdout)
		return nil
	}
	printUsage(stderr)
	return fmt.Errorf("unknown command %q", args[0])
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `canvasrt - expression evaluator for canvas programs

Usage:
  canvasrt test [-config file] [-run substring] [-v] [dir]
  canvasrt publish [-config file] [-db path] suite.yaml...
  canvasrt eval [-config file] [-db name]... [-e yaml | file]
  canvasrt fmt [-e yaml | file]
  canvasrt version

Environment:
  CANVASRT_FIXTURES, CANVASRT_PACKAGE_DB, CANVASRT_LOG_FORMAT,
  CANVASRT_LOG_LEVEL, CANVASRT_MAX_DEPTH
`)
}

// commandFlags is the flag set shared by all subcommands.
type commandFlags struct {
	*flag.FlagSet
	configPath *string
}

func newCommandFlags(name string, stderr io.Writer) commandFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return commandFlags{
		FlagSet:    fs,
		configPath: fs.String("config", "", "Path to config file"),
	}
}

// setup parses flags and loads the configuration they point at.
func (f commandFlags) setup(args []string, getenv func(string) string) (*config.Config, error) {
	if err := f.Parse(args); err != nil {
		return nil, err
	}
	cfg, err := config.Load(*f.configPath, getenv)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
