// Package config loads moodtrack settings from the config file and
// command-line flags
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ayoisaiah/moodtrack/internal/models"
)

type (
	// Config holds all configuration settings
	Config struct {
		Survey        SurveyConfig       `mapstructure:"survey"`
		Upload        UploadConfig       `mapstructure:"upload"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Display       DisplayConfig      `mapstructure:"display"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		CLI           CLIConfig          `mapstructure:"-"`
	}

	// SurveyConfig holds the prompt cadence and the fixed question sets
	SurveyConfig struct {
		Anchor        string            `mapstructure:"anchor"`
		Metrics       []models.Metric   `mapstructure:"metrics"`
		PreQuestions  []models.Question `mapstructure:"pre_questions"`
		PostQuestions []models.Question `mapstructure:"post_questions"`
		Interval      time.Duration     `mapstructure:"interval"`
		AnswerWindow  time.Duration     `mapstructure:"answer_window"`
	}

	// UploadConfig holds delivery settings
	UploadConfig struct {
		Endpoint  string        `mapstructure:"endpoint"`
		BackupDir string        `mapstructure:"backup_dir"`
		Timeout   time.Duration `mapstructure:"timeout"`
	}

	// NotificationConfig holds notification settings
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
		Sound   bool `mapstructure:"sound"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		DarkTheme      bool `mapstructure:"dark_theme"`
		TwentyFourHour bool `mapstructure:"24hr_clock"`
	}

	// SettingsConfig holds general settings
	SettingsConfig struct {
		Cmd         string `mapstructure:"cmd"`
		StatePrefix string `mapstructure:"state_prefix"`
	}

	// CLIConfig holds values that only come from command-line flags
	CLIConfig struct {
		ParticipantID   string
		ParticipantName string
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// MetricNames returns the configured metric names in order.
func (c *Config) MetricNames() []string {
	names := make([]string, len(c.Survey.Metrics))
	for i, m := range c.Survey.Metrics {
		names[i] = m.Name
	}

	return names
}

// New creates a new Config with default values and applies options
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

func parseDuration(s string) (time.Duration, error) {
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	// Try parsing as minutes in case duration unit is absent
	mins, err := time.ParseDuration(s + "m")
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	return mins, nil
}
