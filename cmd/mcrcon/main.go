// =============================================================================
// main.go - mcrcon CLI Entry Point
// =============================================================================
//
// mcrcon is a remote console for Minecraft servers. It connects over RCON,
// authenticates with the server's rcon.password, and either runs the
// commands given on the command line or starts an interactive REPL.
//
// Usage:
//
//	mcrcon                                   Start the REPL (127.0.0.1:25575)
//	mcrcon --host mc.example.com -p hunter2  Connect to a remote server
//	mcrcon "list" "time query daytime"       Run commands and exit
//	mcrcon --config ~/.config/mcrcon.yaml    Load settings from a file
//	mcrcon --help                            Show help
//
// Settings come from, in increasing priority: built-in defaults, the config
// file (--config or MCRCON_CONFIG), and command-line flags.
//
// =============================================================================

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/mcrcon/mcrcon-go/internal/config"
	"github.com/mcrcon/mcrcon-go/mcrcon"
)

// =============================================================================
// Version Information
// =============================================================================

const (
	// version is the current version of the CLI.
	version = "0.1.0"

	// appName is the application name.
	appName = "mcrcon"

	// copyright is the copyright notice.
	copyright = "Copyright (c) 2026"
)

// fullTitle returns the application name with version.
func fullTitle() string {
	return fmt.Sprintf("%s v%s", appName, version)
}

// welcomeBanner returns the banner displayed when the REPL starts.
func welcomeBanner(address string) string {
	return fmt.Sprintf(`%s - Minecraft Remote Console
%s

Connected to %s.
Type '.help' for available commands.
Type '.quit' to exit.
`, fullTitle(), copyright, address)
}

// =============================================================================
// Command-Line Arguments
// =============================================================================

// arguments holds the parsed command-line arguments.
//
// GO CONCEPT: Zero Values
// -----------------------
// Every Go type has a zero value ("" for strings, 0 for ints, false for
// bools). Flags left unset keep their zero value, and the flag set's
// Changed() method tells us which ones the user actually typed, so only
// those override the config file.
//
// Compare with Python: argparse uses `default=None` and a later
// `if args.host is not None` check for the same effect.
type arguments struct {
	host       string
	port       int
	password   string
	configPath string
	timeout    time.Duration
	plain      bool
	logLevel   string

	showHelp    bool
	showVersion bool

	// commands are the positional arguments, run in order as one-shot commands.
	commands []string

	// changed records which flags were given explicitly.
	changed map[string]bool

	// usage is the generated flag listing.
	usage string
}

// parseArguments parses argv (without the program name).
//
// GO CONCEPT: pflag FlagSets
// --------------------------
// spf13/pflag is a drop-in replacement for the standard flag package with
// POSIX/GNU-style flags: long "--host" and short "-H" forms. A FlagSet
// with ContinueOnError returns parse errors instead of exiting, which
// keeps the function testable.
//
// Compare with Python: `argparse.ArgumentParser(exit_on_error=False)`.
func parseArguments(argv []string) (arguments, error) {
	var args arguments

	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.StringVarP(&args.host, "host", "H", mcrcon.DefaultHost, "Server host")
	fs.IntVarP(&args.port, "port", "P", mcrcon.DefaultPort, "RCON port")
	fs.StringVarP(&args.password, "password", "p", "", "RCON password (prompted for if empty)")
	fs.StringVarP(&args.configPath, "config", "c", "", "Config file (default: $MCRCON_CONFIG)")
	fs.DurationVarP(&args.timeout, "timeout", "t", mcrcon.DefaultTimeout, "Reply timeout")
	fs.BoolVar(&args.plain, "plain", false, "Strip formatting codes instead of colouring replies")
	fs.StringVar(&args.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	fs.BoolVarP(&args.showHelp, "help", "h", false, "Show this help")
	fs.BoolVarP(&args.showVersion, "version", "v", false, "Show version")

	args.usage = fs.FlagUsages()

	if err := fs.Parse(argv); err != nil {
		return args, err
	}

	args.commands = fs.Args()
	args.changed = make(map[string]bool)
	fs.Visit(func(f *pflag.Flag) {
		args.changed[f.Name] = true
	})

	return args, nil
}

// applyArguments overrides config values with explicitly given flags.
func applyArguments(cfg *config.Config, args arguments) {
	if args.changed["host"] {
		cfg.Host = args.host
	}
	if args.changed["port"] {
		cfg.Port = args.port
	}
	if args.changed["password"] {
		cfg.Password = args.password
	}
	if args.changed["timeout"] {
		cfg.Timeout = args.timeout.String()
	}
	if args.changed["plain"] {
		cfg.Plain = args.plain
	}
	if args.changed["log-level"] {
		cfg.LogLevel = args.logLevel
	}
}

// loadConfig loads the config file named by --config, or MCRCON_CONFIG.
func loadConfig(args arguments) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.configPath != "" {
		cfg, err = config.LoadFile(args.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	applyArguments(cfg, args)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// =============================================================================
// Help and Usage
// =============================================================================

// printUsage prints usage information to w.
func printUsage(w io.Writer, flagUsage string) {
	fmt.Fprintf(w, `USAGE: %s [options] [command ...]

OPTIONS:
%s
COMMANDS:
  Each positional argument is sent as one server command. Commands run
  in order; the first failure stops the run with exit status 1. Without
  commands, an interactive REPL starts.

EXAMPLES:
  %s                                     Start the REPL
  %s -H mc.example.com -p hunter2 list   List players on a remote server
  %s "time set 1000" "save-all"          Run two commands

CONFIG FILE (YAML):
  host: mc.example.com
  port: 25575
  password: ${MCRCON_PASSWORD}
  timeout: 5s
`, appName, flagUsage, appName, appName, appName)
}

// printVersion prints version information to stdout.
func printVersion() {
	fmt.Println(fullTitle())
}

// printError prints an error message to stderr.
func printError(message string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}

// newLogger builds the stderr logger at the configured level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// =============================================================================
// Signal Handling
// =============================================================================

// setupSignalHandler installs handlers for SIGINT and SIGTERM so the CLI
// disconnects cleanly on exit.
//
// GO CONCEPT: Channels and Goroutines
// ------------------------------------
// signal.Notify delivers signals on a channel instead of killing the
// process. A goroutine blocks on the channel and runs cleanup when a
// signal arrives. The channel is buffered so delivery never blocks.
//
// Compare with Python: `signal.signal(signal.SIGINT, handler)` registers
// a callback that runs on the main thread between bytecodes.
func setupSignalHandler(cleanup func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println()
		cleanup()
		os.Exit(130)
	}()
}

// =============================================================================
// Main
// =============================================================================

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is main without the os.Exit, returning the process exit status.
func run(argv []string) int {
	args, err := parseArguments(argv)
	if err != nil {
		printError(err.Error())
		printUsage(os.Stderr, args.usage)
		return 2
	}

	if args.showHelp {
		printUsage(os.Stdout, args.usage)
		return 0
	}
	if args.showVersion {
		printVersion()
		return 0
	}

	cfg, err := loadConfig(args)
	if err != nil {
		printError(fmt.Sprintf("invalid configuration: %v", err))
		return 1
	}

	logger, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		printError(err.Error())
		return 1
	}

	if cfg.Password == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := ReadPassword("Password: ")
		if err != nil {
			printError(err.Error())
			return 1
		}
		cfg.Password = password
	}

	client := mcrcon.NewClient(cfg.Options(logger))
	client.SetFaultHandler(func(err error) {
		fmt.Fprintf(os.Stderr, "\n*** Connection faulted: %v\n", err)
	})

	cleanup := func() {
		client.Disconnect()
	}
	setupSignalHandler(cleanup)
	defer cleanup()

	ctx := context.Background()
	options := client.Options()
	address := mcrcon.Address(options.Host, options.Port)

	logger.Info("connecting", "address", address)
	if err := client.Connect(ctx); err != nil {
		if errors.Is(err, mcrcon.ErrProtocol) {
			printError(fmt.Sprintf("authentication with %s failed: %v", address, err))
		} else {
			printError(fmt.Sprintf("failed to connect to %s: %v", address, err))
		}
		return 1
	}

	s := newSession(client, NewTranslator(os.Stdout, cfg.Plain), os.Stdout, os.Stderr)

	if len(args.commands) > 0 {
		if err := runCommands(ctx, s, args.commands); err != nil {
			printError(err.Error())
			return 1
		}
		return 0
	}

	editor := NewLineEditor(cfg.HistoryFile)
	defer editor.Close()

	fmt.Print(welcomeBanner(address))
	fmt.Println()

	if err := runREPL(ctx, s, editor); err != nil {
		return 1
	}
	return 0
}
