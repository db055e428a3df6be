package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option configures Load.
type Option func(*options)

type options struct {
	files    []string
	prefix   string
	optional bool
}

// WithFiles loads the given .env files before parsing. Variables already set
// in the process environment win over file values.
func WithFiles(files ...string) Option {
	return func(o *options) {
		o.files = append(o.files, files...)
	}
}

// WithOptionalFiles makes missing .env files a no-op instead of an error.
func WithOptionalFiles() Option {
	return func(o *options) {
		o.optional = true
	}
}

// WithPrefix prepends prefix to every env tag, e.g. "FORMFLOW_".
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// Load parses environment variables into v using `env` and `envDefault`
// struct tags.
//
// Example:
//
//	type FormConfig struct {
//		SubmitDelay time.Duration `env:"SUBMIT_DELAY" envDefault:"1500ms"`
//		PhoneRegion string        `env:"PHONE_REGION" envDefault:"BR"`
//	}
//
//	var cfg FormConfig
//	err := config.Load(&cfg, config.WithPrefix("FORMFLOW_"), config.WithFiles(".env"))
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if err := loadFiles(o.files, o.optional); err != nil {
		return err
	}

	if err := env.ParseWithOptions(v, env.Options{Prefix: o.prefix}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func loadFiles(files []string, optional bool) error {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if optional && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return errors.Join(ErrLoadingEnvFile, err)
		}
		existing = append(existing, f)
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}
