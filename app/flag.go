package app

import "github.com/urfave/cli/v2"

var (
	idFlag = &cli.StringFlag{
		Name:  "id",
		Usage: "Participant ID to prefill in the pre-survey",
	}

	nameFlag = &cli.StringFlag{
		Name:  "name",
		Usage: "Participant name to prefill in the pre-survey",
	}

	endpointFlag = &cli.StringFlag{
		Name:    "endpoint",
		Aliases: []string{"e"},
		Usage:   "URL that receives the results when the session ends",
	}

	backupDirFlag = &cli.StringFlag{
		Name:    "backup-dir",
		Aliases: []string{"b"},
		Usage:   "Directory where backup CSV files are written",
	}

	intervalFlag = &cli.StringFlag{
		Name:    "interval",
		Aliases: []string{"i"},
		Usage:   "Time between prompts (default: 1m)",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears when a prompt is issued",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after the results are uploaded",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	dirFlag = &cli.StringFlag{
		Name:  "dir",
		Usage: "Directory to write the backup file to (defaults to the configured backup directory)",
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Skip the confirmation prompt",
	}
)
