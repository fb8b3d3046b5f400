package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

const (
	keyInterval       = "survey.interval"
	keyAnswerWindow   = "survey.answer_window"
	keyAnchor         = "survey.anchor"
	keyMetrics        = "survey.metrics"
	keyPreQuestions   = "survey.pre_questions"
	keyPostQuestions  = "survey.post_questions"
	keyUploadEndpoint = "upload.endpoint"
	keyUploadTimeout  = "upload.timeout"
	keyBackupDir      = "upload.backup_dir"
	keyNotifyEnabled  = "notifications.enabled"
	keyNotifySound    = "notifications.sound"
	keyDarkTheme      = "display.dark_theme"
	keyTwentyFourHour = "display.24hr_clock"
	keySessionCmd     = "settings.cmd"
	keyStatePrefix    = "settings.state_prefix"
)

// WithViperConfig returns an Option that loads configuration from Viper. The
// file is created with default values if it does not exist.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults and values gathered from the
// first-run prompt.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyInterval, "1m")
	v.SetDefault(keyAnswerWindow, "5m")
	v.SetDefault(keyAnchor, "issued")
	v.SetDefault(keyMetrics, []map[string]any{
		{"name": "Q1", "label": "Unpleasant - Neutral - Pleasant", "min": 1, "max": 9},
		{"name": "Q2", "label": "Calm - Neutral - Excited", "min": 1, "max": 9},
		{"name": "Traffic", "label": "Light - Moderate - Heavy traffic", "min": 1, "max": 9},
	})
	v.SetDefault(keyPreQuestions, []map[string]any{
		{"key": "age", "label": "Age"},
		{"key": "gender", "label": "Gender"},
		{"key": "sleep", "label": "Hours slept last night"},
	})
	v.SetDefault(keyPostQuestions, []map[string]any{
		{"key": "fatigue", "label": "How tired are you now (1-9)?"},
		{"key": "notes", "label": "Anything unusual during the activity?"},
	})
	v.SetDefault(keyUploadEndpoint, "")
	v.SetDefault(keyUploadTimeout, "30s")
	v.SetDefault(keyBackupDir, "")
	v.SetDefault(keyNotifyEnabled, true)
	v.SetDefault(keyNotifySound, true)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyStatePrefix, "moodtrack")

	if c.Upload.Endpoint != "" {
		v.Set(keyUploadEndpoint, c.Upload.Endpoint)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	return nil
}
