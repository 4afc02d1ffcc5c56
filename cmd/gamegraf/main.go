package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/gamegraf/pkg/backend"
	"github.com/umputun/gamegraf/pkg/config"
	"github.com/umputun/gamegraf/pkg/feedclient"
	"github.com/umputun/gamegraf/server"
)

// Opts with all CLI options
type Opts struct {
	Config     string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults with the embedded backend if not set"`
	Listen     string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides server.listen"`
	BackendURL string `short:"b" long:"backend-url" env:"BACKEND_URL" description:"feed backend base url, overrides client.base_url"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	color.NoColor = color.NoColor || opts.NoColor
	setupLog(opts.Debug)

	log.Printf("[INFO] starting gamegraf version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run loads configuration, wires the feed client and optional backend, and serves until ctx is done
func run(ctx context.Context, opts Opts) error {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// cli overrides
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.BackendURL != "" {
		cfg.Client.BaseURL = opts.BackendURL
		if opts.Config == "" {
			cfg.Backend.Enabled = false // external backend replaces the default embedded one
		}
	}
	if cfg.Backend.Enabled && cfg.Client.BaseURL == "" {
		cfg.Client.BaseURL = localBaseURL(cfg.Server.Listen)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var feedBackend server.Backend
	if cfg.Backend.Enabled {
		feedBackend = backend.New(backend.Config{
			Feeds:      cfg.Backend.Feeds,
			SteamURL:   cfg.Backend.SteamURL,
			EpicURL:    cfg.Backend.EpicURL,
			DealsLimit: cfg.Backend.DealsLimit,
			Timeout:    cfg.Backend.Timeout,
			RateLimit:  cfg.Backend.RateLimit,
			MaxWorkers: cfg.Backend.MaxWorkers,
			UserAgent:  cfg.Backend.UserAgent,
		})
		log.Printf("[INFO] embedded backend enabled, %d feeds", len(cfg.Backend.Feeds))
	}

	client := feedclient.New(cfg.Client.BaseURL,
		feedclient.WithHTTPClient(&http.Client{Timeout: cfg.Client.Timeout}),
		feedclient.WithUserAgent(cfg.Client.UserAgent),
	)
	log.Printf("[INFO] feeds from %s", cfg.Client.BaseURL)

	srv := server.New(cfg, client, feedBackend, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// localBaseURL makes the url of this server for the embedded backend, wildcard hosts map to loopback
func localBaseURL(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return "http://" + listen
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
