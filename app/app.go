package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/moodtrack/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the moodtrack app instance.
func Get() *cli.App {
	moodtrackApp := &cli.App{
		Name: "moodtrack",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		moodtrack asks for a quick self-report of how you feel at a fixed 
		interval during an activity, then uploads the minute-by-minute results 
		together with your pre- and post-activity answers.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
			{
				Name:   "status",
				Usage:  "Print the state of the current session",
				Flags:  []cli.Flag{jsonFlag},
				Action: statusAction,
			},
			{
				Name:   "export",
				Usage:  "Write the results collected so far to a backup CSV file",
				Flags:  []cli.Flag{dirFlag},
				Action: exportAction,
			},
			{
				Name:   "backups",
				Usage:  "List the backup files that have been written",
				Flags:  []cli.Flag{dirFlag},
				Action: backupsAction,
			},
			{
				Name:   "reset",
				Usage:  "Discard the current session and start over",
				Flags:  []cli.Flag{yesFlag},
				Action: resetAction,
			},
		},
		Flags: []cli.Flag{
			idFlag,
			nameFlag,
			endpointFlag,
			backupDirFlag,
			intervalFlag,
			disableNotificationFlag,
			sessionCmdFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return moodtrackApp
}
