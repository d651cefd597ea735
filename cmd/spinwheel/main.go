// Spinwheel is a random picker that spins a wheel of items.
// Usage: spinwheel [--version] [--plain] [--script <file>] [--trace] [--serve]
//
//	[--seed <n>] [--log <file>] [wheel.lua | wheel_directory]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/nathoo/spinwheel/cli"
	"github.com/nathoo/spinwheel/config"
	"github.com/nathoo/spinwheel/engine"
	"github.com/nathoo/spinwheel/engine/layout"
	"github.com/nathoo/spinwheel/engine/sched"
	"github.com/nathoo/spinwheel/httpapi"
	"github.com/nathoo/spinwheel/loader"
	"github.com/nathoo/spinwheel/tui"
	"github.com/nathoo/spinwheel/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: spinwheel [--version] [--plain] [--script <file>] [--trace] [--serve] [--seed <n>] [--log <file>] [wheel.lua | wheel_directory]\n"

func main() {
	plain := false
	trace := false
	serve := false
	var wheelPath, scriptFile, logFile string
	var seed int64

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("spinwheel %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--help", "-h":
			fmt.Print(usage)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--serve":
			serve = true
		case "--script", "--log", "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a value\n", args[i])
				os.Exit(1)
			}
			flag := args[i]
			i++
			switch flag {
			case "--script":
				scriptFile = args[i]
			case "--log":
				logFile = args[i]
			case "--seed":
				n, err := strconv.ParseInt(args[i], 10, 64)
				if err != nil {
					fmt.Fprintf(os.Stderr, "--seed must be an integer: %v\n", err)
					os.Exit(1)
				}
				seed = n
			}
		default:
			if wheelPath == "" {
				wheelPath = args[i]
			}
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	def := loader.Default()
	if wheelPath != "" {
		def, err = loader.Load(wheelPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading wheel: %v\n", err)
			os.Exit(1)
		}
	}
	def.Seed = pickSeed(seed, cfg.Seed, def.Seed)

	if serve {
		os.Exit(runServer(cfg, def))
	}

	logger, closeLog, err := interactiveLogger(logFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := newCLI(def, cfg, logger, trace)
		c.In = f
		c.EchoInput = true
		c.Sleep = nil // replay scripts without waiting out each spin
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		newCLI(def, cfg, logger, trace).Run()
		return
	}

	sc := tui.NewScheduler()
	eng := engine.New(def, sc)
	eng.Logger = logger
	if err := tui.Run(eng, sc, cfg.SaveDir, trace); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCLI(def *types.WheelDef, cfg config.Config, logger *slog.Logger, trace bool) *cli.CLI {
	q := sched.NewQueue()
	eng := engine.New(def, q)
	eng.Logger = logger
	c := cli.New(eng, q)
	c.SaveDir = cfg.SaveDir
	c.Trace = trace
	return c
}

// runServer serves the wheel over HTTP until interrupted and returns the
// process exit code.
func runServer(cfg config.Config, def *types.WheelDef) int {
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	radius := def.Radius
	if radius <= 0 {
		radius = cfg.Radius
	}

	var mu sync.Mutex
	eng := engine.New(def, sched.NewTimer(&mu))
	eng.Logger = logger
	h := httpapi.NewHandler(eng, &mu, logger, radius, layout.Options{LineCap: def.LabelCap})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr, "items", len(eng.State.Items), "seed", def.Seed)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			logger.Error("server error", "error", err)
			return 1
		}
		return 0
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return 1
	}
	return 0
}

// interactiveLogger keeps the terminal clean: logs go to path when given,
// otherwise nowhere.
func interactiveLogger(path string, level slog.Level) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), func() { _ = f.Close() }, nil
}

// pickSeed prefers the flag, then the environment, then the wheel file,
// and falls back to the clock.
func pickSeed(flag, env, file int64) int64 {
	for _, s := range []int64{flag, env, file} {
		if s != 0 {
			return s
		}
	}
	return time.Now().UnixNano()
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
