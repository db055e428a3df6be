package account

import "time"

// Config holds the form service settings.
type Config struct {
	SubmitDelay      time.Duration `env:"FORMFLOW_SUBMIT_DELAY" envDefault:"1500ms"`
	ToastDuration    time.Duration `env:"FORMFLOW_TOAST_DURATION" envDefault:"3000ms"`
	PhoneRegion      string        `env:"FORMFLOW_PHONE_REGION" envDefault:"BR"`
	DefaultLanguage  string        `env:"FORMFLOW_LANG" envDefault:"en"`
	ValidateOnChange bool          `env:"FORMFLOW_VALIDATE_ON_CHANGE" envDefault:"false"`
	StreamBuffer     int           `env:"FORMFLOW_STREAM_BUFFER" envDefault:"16"`
}

// DefaultConfig mirrors the env defaults.
func DefaultConfig() Config {
	return Config{
		SubmitDelay:     1500 * time.Millisecond,
		ToastDuration:   3000 * time.Millisecond,
		PhoneRegion:     "BR",
		DefaultLanguage: "en",
		StreamBuffer:    16,
	}
}
