package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/moodtrack/internal/config"
	"github.com/ayoisaiah/moodtrack/internal/models"
	"github.com/ayoisaiah/moodtrack/internal/testutil"
)

// defaultConfig returns a new Config instance with default values.
func defaultConfig() *config.Config {
	return &config.Config{
		Survey: config.SurveyConfig{
			Interval:     time.Minute,
			AnswerWindow: 5 * time.Minute,
			Anchor:       "issued",
			Metrics: []models.Metric{
				{Name: "Q1", Label: "Unpleasant - Neutral - Pleasant", Min: 1, Max: 9},
				{Name: "Q2", Label: "Calm - Neutral - Excited", Min: 1, Max: 9},
				{Name: "Traffic", Label: "Light - Moderate - Heavy traffic", Min: 1, Max: 9},
			},
			PreQuestions: []models.Question{
				{Key: "age", Label: "Age"},
				{Key: "gender", Label: "Gender"},
				{Key: "sleep", Label: "Hours slept last night"},
			},
			PostQuestions: []models.Question{
				{Key: "fatigue", Label: "How tired are you now (1-9)?"},
				{Key: "notes", Label: "Anything unusual during the activity?"},
			},
		},
		Upload: config.UploadConfig{
			Timeout: 30 * time.Second,
		},
		Notifications: config.NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Display: config.DisplayConfig{
			DarkTheme: true,
		},
		Settings: config.SettingsConfig{
			StatePrefix: "moodtrack",
		},
	}
}

func TestViperWriteConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, defaultConfig(), cfg)

	_, err = os.Stat(configPath)
	require.NoError(t, err, "default config was not written")

	// Reading the written file back yields the same settings
	again, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, cfg, again)
	assert.Equal(t, []string{"Q1", "Q2", "Traffic"}, again.MetricNames())
}

func TestViperReadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	err := testutil.CopyFile("testdata/modified_config.yml", configPath)
	require.NoError(t, err)

	want := &config.Config{
		Survey: config.SurveyConfig{
			Interval:     2 * time.Minute,
			AnswerWindow: 4 * time.Minute,
			Anchor:       "answered",
			Metrics: []models.Metric{
				{Name: "Valence", Label: "Unpleasant - Pleasant", Min: 1, Max: 7},
				{Name: "Arousal", Label: "Calm - Excited", Min: 1, Max: 7},
			},
			PreQuestions:  []models.Question{{Key: "age", Label: "Age"}},
			PostQuestions: []models.Question{{Key: "notes", Label: "Notes"}},
		},
		Upload: config.UploadConfig{
			Endpoint:  "https://script.example.com/exec",
			Timeout:   10 * time.Second,
			BackupDir: "/tmp/moodtrack",
		},
		Display: config.DisplayConfig{
			TwentyFourHour: true,
		},
		Settings: config.SettingsConfig{
			Cmd:         "echo done",
			StatePrefix: "study1",
		},
	}

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, want, cfg)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		modify func(c *config.Config)
		name   string
	}{
		{name: "interval too short", modify: func(c *config.Config) { c.Survey.Interval = time.Second }},
		{name: "window shorter than interval", modify: func(c *config.Config) { c.Survey.AnswerWindow = 30 * time.Second }},
		{name: "unknown anchor", modify: func(c *config.Config) { c.Survey.Anchor = "drift" }},
		{name: "no metrics", modify: func(c *config.Config) { c.Survey.Metrics = nil }},
		{name: "duplicate metric", modify: func(c *config.Config) {
			c.Survey.Metrics = append(c.Survey.Metrics, c.Survey.Metrics[0])
		}},
		{name: "inverted scale", modify: func(c *config.Config) { c.Survey.Metrics[0].Min = 10 }},
		{name: "empty question key", modify: func(c *config.Config) { c.Survey.PreQuestions[0].Key = " " }},
		{name: "duplicate question", modify: func(c *config.Config) {
			c.Survey.PostQuestions = append(c.Survey.PostQuestions, c.Survey.PostQuestions[0])
		}},
		{name: "bad endpoint", modify: func(c *config.Config) { c.Upload.Endpoint = "ftp://example.com" }},
		{name: "zero timeout", modify: func(c *config.Config) { c.Upload.Timeout = 0 }},
		{name: "empty prefix", modify: func(c *config.Config) { c.Settings.StatePrefix = "" }},
	}

	require.NoError(t, defaultConfig().Validate())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.modify(cfg)

			assert.Error(t, cfg.Validate())
		})
	}
}
