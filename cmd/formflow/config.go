package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/formflow/modules/account"
	"github.com/dmitrymomot/formflow/pkg/config"
	"github.com/dmitrymomot/formflow/pkg/httpserver"
	"github.com/dmitrymomot/formflow/pkg/logger"
	"github.com/dmitrymomot/formflow/pkg/requestid"
)

type appConfig struct {
	Env       string `env:"FORMFLOW_ENV" envDefault:"development"`
	Service   string `env:"FORMFLOW_SERVICE" envDefault:"formflow"`
	LogLevel  string `env:"FORMFLOW_LOG_LEVEL"`
	LogFormat string `env:"FORMFLOW_LOG_FORMAT"`

	Form account.Config
	HTTP httpserver.Config
}

func loadConfig() (appConfig, error) {
	var cfg appConfig
	if err := config.Load(&cfg, config.WithFiles(envFiles...), config.WithOptionalFiles()); err != nil {
		return cfg, exitWith(ExitConfig, err)
	}
	return cfg, nil
}

// newLogger writes to stderr so command output on stdout stays parseable.
func newLogger(cfg appConfig) (log *slog.Logger, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = exitWith(ExitConfig, fmt.Errorf("logger: %v", r))
		}
	}()

	opts := []logger.Option{
		logger.WithOutput(os.Stderr),
		logger.WithEnvironment(cfg.Env, cfg.Service),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevelName(cfg.LogLevel))
	}
	if cfg.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(cfg.LogFormat)))
	}
	return logger.New(opts...), nil
}
