package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/config"
	"github.com/funvibe/canvasrt/internal/conformance"
	"github.com/funvibe/canvasrt/internal/evaluator"
	"github.com/funvibe/canvasrt/internal/packages"
	"github.com/funvibe/canvasrt/internal/prettyprinter"
	"github.com/funvibe/canvasrt/internal/treecodec"
)

// loadPackages reads the package catalog into memory. With no catalog
// configured it returns a nil resolver.
func loadPackages(ctx context.Context, cfg *config.Config, logger *slog.Logger) (evaluator.PackageResolver, error) {
	if cfg.PackageDB == "" {
		return nil, nil
	}
	store, err := packages.Open(cfg.PackageDB)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	reg, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("package catalog loaded", "path", store.Path(), "functions", reg.Len())
	for _, problem := range reg.CheckConsistency() {
		logger.Warn("package catalog", "problem", problem)
	}
	return reg, nil
}

func runTestCommand(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	flags := newCommandFlags("test", stderr)
	filter := flags.String("run", "", "Only run tests whose file/name contains this substring")
	verbose := flags.Bool("v", false, "Print passing and skipped tests too")
	cfg, err := flags.setup(args, getenv)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Logging, stderr)

	dir := cfg.Fixtures
	if flags.NArg() > 0 {
		dir = flags.Arg(0)
	}
	tests, err := conformance.LoadDir(dir)
	if err != nil {
		return fmt.Errorf("loading suites: %w", err)
	}
	if *filter != "" {
		kept := tests[:0]
		for _, t := range tests {
			if strings.Contains(t.File+"/"+t.Test.Name, *filter) {
				kept = append(kept, t)
			}
		}
		tests = kept
	}

	runner := conformance.NewRunner()
	runner.Logger = logger
	runner.MaxDepth = cfg.Evaluator.MaxDepth
	if runner.Packages, err = loadPackages(ctx, cfg, logger); err != nil {
		return err
	}

	p := painter{enabled: isTerminal(stdout)}
	var results []conformance.TestResult
	for _, test := range tests {
		if err := ctx.Err(); err != nil {
			return err
		}
		result := runner.Run(test)
		results = append(results, result)

		label := test.File + "/" + test.Test.Name
		switch {
		case result.Skipped:
			if *verbose {
				fmt.Fprintf(stdout, "%s %s (%s)\n", p.paint(colorGray, "SKIP"), label, result.SkipReason)
			}
		case result.Passed:
			if *verbose {
				fmt.Fprintf(stdout, "%s %s\n", p.paint(colorGreen, "PASS"), label)
			}
		default:
			fmt.Fprintf(stdout, "%s %s: %v\n", p.paint(colorRed, "FAIL"), label, result.Error)
		}
	}

	stats := conformance.ComputeStats(results)
	fmt.Fprintln(stdout, conformance.FormatStats(stats))
	if stats.Failed > 0 {
		return fmt.Errorf("%d test(s) failed", stats.Failed)
	}
	return nil
}

func runPublishCommand(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	flags := newCommandFlags("publish", stderr)
	dbPath := flags.String("db", "", "Package catalog path (overrides package_db)")
	cfg, err := flags.setup(args, getenv)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Logging, stderr)

	if *dbPath != "" {
		cfg.PackageDB = *dbPath
	}
	if cfg.PackageDB == "" {
		return errors.New("no package catalog: set package_db, CANVASRT_PACKAGE_DB or -db")
	}
	if flags.NArg() == 0 {
		return errors.New("publish needs at least one suite file")
	}

	store, err := packages.Open(cfg.PackageDB)
	if err != nil {
		return err
	}
	defer store.Close()

	published := 0
	for _, path := range flags.Args() {
		suite, err := conformance.LoadSuite(path)
		if err != nil {
			return err
		}
		for _, def := range suite.Registry.Functions() {
			if err := store.Save(ctx, def); err != nil {
				return err
			}
			logger.Info("published", "function", def.Name.String(), "suite", path)
			published++
		}
	}
	fmt.Fprintf(stdout, "published %d package function(s) to %s\n", published, store.Path())
	return nil
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func runEvalCommand(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	flags := newCommandFlags("eval", stderr)
	inline := flags.String("e", "", "Expression tree as YAML")
	var databases stringList
	flags.Var(&databases, "db", "Declare a datastore name (repeatable)")
	cfg, err := flags.setup(args, getenv)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Logging, stderr)

	expr, err := readExpression("eval", *inline, flags.Args())
	if err != nil {
		return err
	}

	ev := evaluator.New()
	ev.Logger = logger
	ev.MaxDepth = cfg.Evaluator.MaxDepth
	if ev.Packages, err = loadPackages(ctx, cfg, logger); err != nil {
		return err
	}
	for _, name := range databases {
		ev.AddDatabase(name)
	}

	result := ev.Run(expr)
	fmt.Fprintln(stdout, result.Inspect())
	if n := ev.Faults(); n > 0 {
		logger.Warn("evaluation raised native faults", "count", n)
	}
	return nil
}

// readExpression decodes the expression tree given inline or in the first
// positional file.
func readExpression(command, inline string, args []string) (ast.Expression, error) {
	var src []byte
	switch {
	case inline != "":
		src = []byte(inline)
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, err
		}
		src = data
	default:
		return nil, fmt.Errorf("%s needs -e or a file", command)
	}
	return treecodec.Unmarshal(src)
}

func runFmtCommand(args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	flags := newCommandFlags("fmt", stderr)
	inline := flags.String("e", "", "Expression tree as YAML")
	if _, err := flags.setup(args, getenv); err != nil {
		return err
	}
	expr, err := readExpression("fmt", *inline, flags.Args())
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, prettyprinter.Print(expr))
	return nil
}
