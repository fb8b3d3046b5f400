package config

import (
	"strings"

	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	ParticipantID   string
	ParticipantName string
	Endpoint        string
	BackupDir       string
	Interval        string
	SessionCmd      string
	DisableNotify   bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			ParticipantID:   ctx.String("id"),
			ParticipantName: ctx.String("name"),
			Endpoint:        ctx.String("endpoint"),
			BackupDir:       ctx.String("backup-dir"),
			Interval:        ctx.String("interval"),
			SessionCmd:      ctx.String("session-cmd"),
			DisableNotify:   ctx.Bool("disable-notification"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	c.CLI.ParticipantID = strings.TrimSpace(opts.ParticipantID)
	c.CLI.ParticipantName = strings.TrimSpace(opts.ParticipantName)

	if opts.Endpoint != "" {
		c.Upload.Endpoint = strings.TrimSpace(opts.Endpoint)
	}

	if opts.BackupDir != "" {
		c.Upload.BackupDir = opts.BackupDir
	}

	if opts.Interval != "" {
		dur, err := parseDuration(opts.Interval)
		if err != nil {
			return errInvalidCLIDuration.Fmt("interval").Wrap(err)
		}

		c.Survey.Interval = dur
	}

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	return nil
}
