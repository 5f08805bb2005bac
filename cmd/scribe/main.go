package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/clive/scribe/internal/config"
	"github.com/clive/scribe/internal/dialog"
	"github.com/clive/scribe/internal/effects"
	"github.com/clive/scribe/internal/recent"
	"github.com/clive/scribe/internal/storage"
	"github.com/clive/scribe/internal/tui"
	"github.com/mattn/go-isatty"
)

// Set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	configPath := flag.String("config", "", "read config from this file instead of the default locations")
	debug := flag.Bool("debug", false, "show the message trace panel and log at debug level")
	dialogFlag := flag.String("dialog", "", "file dialog backend, one of:\n"+config.DialogBackendUsage())
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: scribe [flags] [file]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println("scribe", version)
		return
	}
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "scribe needs an interactive terminal")
		os.Exit(1)
	}

	// Config. Preference changes are written back to the file it came from.
	var cfg *config.Config
	savePath, err := config.Path()
	if *configPath != "" {
		savePath = *configPath
		cfg, err = config.LoadFile(savePath)
	} else if err == nil {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *debug {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}
	if *dialogFlag != "" {
		cfg.Dialog = config.DialogBackend(strings.ToLower(*dialogFlag))
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error in config: %v\n", err)
		os.Exit(1)
	}

	// Logger
	logger, closeLog := openLogger(cfg.LogLevel)
	defer closeLog()
	slog.SetDefault(logger)

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	saveConfig := func(edit func(*config.Config)) error {
		return config.Update(savePath, edit)
	}
	deps := tui.Deps{
		SaveConfig: saveConfig,
		Logger:     logger,
	}

	// Dialogs
	var picker dialog.Picker
	switch cfg.Dialog {
	case config.DialogNative:
		picker = dialog.Native{StartDir: cwd}
	default:
		terminal := dialog.NewTerminal(cwd)
		picker = terminal
		deps.Requests = terminal.Requests()
	}
	deps.Runner = effects.NewRunner(picker, storage.NewDisk(logger), logger)

	// Recent files are optional
	if path, err := config.RecentPath(); err == nil {
		store, err := recent.Open(path, cfg.RecentLimit)
		if err != nil {
			logger.Warn("recent files disabled", "error", err)
		} else {
			defer store.Close()
			deps.Recent = store
		}
	}

	logger.Info("starting", "version", version, "dialog", string(cfg.Dialog), "file", flag.Arg(0))

	p := tea.NewProgram(
		tui.NewRootModel(cfg, flag.Arg(0), deps),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		logger.Error("program exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// openLogger writes JSON logs to ~/.scribe/logs/scribe.log. The terminal
// belongs to the UI, so logging is dropped when the file cannot be opened.
func openLogger(level string) (*slog.Logger, func()) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if path, err := config.LogPath(); err == nil {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
				w = f
				closeFn = func() { f.Close() }
			}
		}
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})), closeFn
}
