// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct-tag parsing:
//
//	type Config struct {
//	    Env         string        `env:"ENV" envDefault:"development"`
//	    SubmitDelay time.Duration `env:"SUBMIT_DELAY" envDefault:"1500ms"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg,
//	    config.WithPrefix("FORMFLOW_"),
//	    config.WithFiles(".env"),
//	    config.WithOptionalFiles(),
//	); err != nil {
//	    return err
//	}
//
// godotenv never overrides variables that are already set, so the process
// environment always wins over file contents.
package config
