package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"loxeval/ast"
	"loxeval/config"
	"loxeval/interpreter"
	"loxeval/loader"
)

// exit codes, as in sysexits.h
const (
	exitOK       = 0
	exitUsage    = 64
	exitDataErr  = 65
	exitSoftware = 70
)

func main() {
	os.Exit(glox(os.Args[1:], os.Stdout, os.Stderr))
}

func glox(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("glox", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "path to a YAML config file")
	logLevel := flags.String("log-level", "", "debug, info, warn or error")
	logFormat := flags.String("log-format", "", "text or json")
	halt := flags.Bool("halt", false, "stop every remaining sequence after a runtime error")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "Usage: glox [flags] <program.yml>")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return exitUsage
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return exitUsage
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
		cfg = loaded
	}

	// flags win over the config file
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-format":
			cfg.Log.Format = *logFormat
		case "halt":
			cfg.HaltOnError = *halt
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger, err := cfg.Log.NewLogger(stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	programs, err := loadFile(flags.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, "Loader:", err)
		return exitDataErr
	}
	logger.Debug("loaded program",
		slog.String("path", flags.Arg(0)),
		slog.Int("sequences", len(programs)))

	interp := interpreter.NewInterpreter(stdout, logger)
	if failed := run(programs, interp, cfg, stderr, logger); failed > 0 {
		return exitSoftware
	}
	return exitOK
}

func loadFile(path string) ([][]ast.Stmt, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return loader.Load(file)
}

// run executes each sequence on the same interpreter, so globals defined by
// one sequence are visible to the next. A runtime error ends its own
// sequence; the rest still run unless cfg.HaltOnError is set. It returns the
// number of sequences that failed.
func run(programs [][]ast.Stmt, interp *interpreter.Interpreter,
	cfg config.Config, stderr io.Writer, logger *slog.Logger,
) int {
	failed := 0
	for n, stmts := range programs {
		err := interp.Interpret(stmts...)
		if err == nil {
			continue
		}

		failed++
		fmt.Fprintln(stderr, "Runtime:", err)
		logger.Error("sequence aborted",
			slog.Int("sequence", n),
			slog.Any("error", err))

		if cfg.HaltOnError {
			break
		}
	}

	return failed
}
