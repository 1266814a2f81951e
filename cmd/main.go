package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/angeloszaimis/runconfig/config"
	"github.com/angeloszaimis/runconfig/pkg/logger"
)

// runOptions shares the APP_ prefix with config.Config and only drives the
// runner's own logging.
type runOptions struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	LogSource *bool  `mapstructure:"log_source"`
}

func (o *runOptions) Defaults() config.Defaults {
	return config.Defaults{
		"log_level":  func() any { return "info" },
		"log_format": func() any { return logger.FormatText },
	}
}

func (o *runOptions) Validate() error {
	return validation.ValidateStruct(o,
		validation.Field(&o.LogLevel,
			validation.Required,
			validation.By(oneOfFold("debug", "info", "warn", "error")),
		),
		validation.Field(&o.LogFormat,
			validation.Required,
			validation.By(oneOfFold(logger.FormatText, logger.FormatJSON)),
		),
	)
}

// oneOfFold is validation.In without case sensitivity, matching how
// pkg/logger reads level and format names.
func oneOfFold(options ...string) validation.RuleFunc {
	return func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return validation.NewError("validation_invalid_type", "must be a string")
		}
		for _, opt := range options {
			if strings.EqualFold(strings.TrimSpace(s), opt) {
				return nil
			}
		}
		return validation.NewError("validation_in_invalid",
			fmt.Sprintf("must be one of %s", strings.Join(options, ", ")))
	}
}

func main() {
	if err := run(os.Stdout, os.Environ); err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(out io.Writer, environ func() []string) error {
	opts, err := config.LoadInto[runOptions](config.WithEnviron(environ))
	if err != nil {
		return fmt.Errorf("log options: %w", err)
	}

	log := logger.New(logger.Options{
		Level:     opts.LogLevel,
		Format:    opts.LogFormat,
		AddSource: opts.LogSource != nil && *opts.LogSource,
		Output:    out,
	})

	cfg, err := config.NewLoader(config.WithEnviron(environ), config.WithLogger(log)).Load()
	if err != nil {
		return err
	}

	log.Info("loaded configuration",
		slog.String("part", cfg.Part.String()),
		slog.String("input_file", cfg.InputFile))

	lines, err := countLines(cfg.InputFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warn("input file not found", slog.String("input_file", cfg.InputFile))
	case err != nil:
		log.Warn("input file unreadable",
			slog.String("input_file", cfg.InputFile),
			slog.Any("err", err))
	default:
		log.Info("input ready", slog.Int("lines", lines))
	}

	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
	}
	return lines, scanner.Err()
}
