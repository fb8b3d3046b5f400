package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

// WithPromptConfig returns an Option that asks for the upload endpoint the
// first time moodtrack runs, before the config file exists.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		endpoint, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		c.Upload.Endpoint = endpoint

		return nil
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (string, error) {
	var endpoint string

	_ = pterm.DefaultBulletList.WithItems(putils.BulletListFromString(`Follow the prompt below to configure moodtrack for the first time.
Leave the endpoint empty to keep results as local backup files only.
Edit the config file with 'moodtrack edit-config' to change any settings.`, " ").Items).
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Upload endpoint").
				Placeholder("https://example.com/upload").
				Validate(func(s string) error {
					if s == "" {
						return nil
					}

					u, err := url.Parse(s)
					if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
						return errInvalidEndpoint.Fmt(s)
					}

					return nil
				}).
				Value(&endpoint),
		),
	)

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("form interaction failed: %w", err)
	}

	return endpoint, nil
}
