package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"

	"github.com/agalitsyn/todo-weather/internal/app"
	"github.com/agalitsyn/todo-weather/internal/errlog"
	"github.com/agalitsyn/todo-weather/internal/storage/sqlite"
	"github.com/agalitsyn/todo-weather/internal/weather"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := ParseFlags()
	setupLogger(cfg.Debug)
	if cfg.NoColor {
		color.NoColor = true
	}

	if cfg.Debug {
		lgr.Printf("[DEBUG] running with config")
		fmt.Fprintln(os.Stderr, cfg.String())
	}

	if err := cfg.Validate(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}

	uploader := errlog.SimulatedUploader{Log: lgr.Default()}
	if err := run(ctx, cfg, os.Stdin, os.Stdout, uploader); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, in io.Reader, out io.Writer, uploader errlog.Uploader) error {
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("could not open database %s: %w", cfg.DBPath, err)
	}
	defer db.Close()
	lgr.Printf("[DEBUG] database %s ready", cfg.DBPath)

	logger := lgr.Default()
	errLog := errlog.New(cfg.ErrorLogPath, uploader, out, logger)
	errLog.UploadLogs(ctx)

	weatherClient := weather.NewClient(weather.Config{
		BaseURL: cfg.Weather.BaseURL,
		APIKey:  cfg.Weather.APIKey,
		Units:   cfg.Weather.Units,
	}, &http.Client{}, logger)

	todo := app.New(sqlite.NewTaskStorage(db), weatherClient, errLog, in, out, logger)
	runErr := todo.Run(ctx)
	if errors.Is(runErr, context.Canceled) {
		fmt.Fprintln(out)
		runErr = nil
	}

	// ctx may be cancelled already, the last upload gets its own
	errLog.UploadLogs(context.Background())
	return runErr
}

func setupLogger(debug bool) {
	opts := []lgr.Option{lgr.Out(os.Stderr), lgr.Err(os.Stderr), lgr.Msec}
	if debug {
		opts = append(opts, lgr.Debug, lgr.CallerFunc)
	}
	lgr.Setup(opts...)
	lgr.SetupStdLogger(opts...)
}
