package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"taskprog/internal/api"
	"taskprog/internal/config"
	"taskprog/internal/draft"
	"taskprog/internal/kvstore"
	"taskprog/internal/logging"
	"taskprog/internal/notify"
	"taskprog/internal/ui"
)

// flags are command-line overrides. Empty values leave the loaded config
// alone.
type flags struct {
	configPath string
	server     string
	drafts     string
	draftsPath string
	timeout    time.Duration
	logLevel   string
	logFile    string
}

func parseFlags(args []string, stderr io.Writer) (flags, error) {
	var f flags
	fs := pflag.NewFlagSet(config.AppName, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&f.configPath, "config", "c", "", "config file (default: user config dir)")
	fs.StringVarP(&f.server, "server", "s", "", "task API base URL")
	fs.StringVar(&f.drafts, "drafts", "", "draft backend: memory, file, sqlite or redis")
	fs.StringVar(&f.draftsPath, "drafts-path", "", "draft file or database path")
	fs.DurationVar(&f.timeout, "timeout", 0, "per-request timeout")
	fs.StringVar(&f.logLevel, "log-level", "", "log level")
	fs.StringVar(&f.logFile, "log-file", "", `log file, "-" for stderr`)
	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}
	return f, nil
}

func (f flags) apply(cfg config.Config) config.Config {
	if f.server != "" {
		cfg.ServerURL = f.server
	}
	if f.drafts != "" {
		cfg.Drafts.Backend = f.drafts
	}
	if f.draftsPath != "" {
		cfg.Drafts.Path = f.draftsPath
	}
	if f.timeout > 0 {
		cfg.Timeout = f.timeout
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFile != "" {
		cfg.Log.File = f.logFile
	}
	return cfg
}

func loadConfig(f flags) (config.Config, error) {
	path := f.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	cfg = f.apply(cfg)
	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg config.Config) error {
	logger, logCloser, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	backend, err := kvstore.Open(ctx, cfg.Drafts)
	if err != nil {
		return fmt.Errorf("open drafts: %w", err)
	}
	defer backend.Close()

	notices := notify.NewCenter()
	client := api.New(cfg.ServerURL,
		api.WithTimeout(cfg.Timeout),
		api.WithNotifier(notices),
		api.WithLogger(logger),
	)

	logger.Info().
		Str("server", cfg.ServerURL).
		Str("drafts", cfg.Drafts.Backend).
		Msg("starting")

	model := ui.New(ui.Options{
		Context: ctx,
		Client:  client,
		Drafts:  draft.NewStore(backend, logger),
		Notices: notices,
		Logger:  logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	logger.WithLevel(levelFor(err)).Err(err).Msg("stopped")
	return err
}

func levelFor(err error) zerolog.Level {
	if err != nil {
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

func main() {
	f, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if err == pflag.ErrHelp {
			return
		}
		os.Exit(2)
	}

	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
