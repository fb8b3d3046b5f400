package app

import (
	"strings"

	"github.com/pterm/pterm"
)

type helpSection struct {
	title string
	body  string
}

// envHelp documents the environment variables moodtrack reads.
var envHelp = []string{
	"NO_COLOR, MOODTRACK_NO_COLOR: print plain text without colours.",
	"MOODTRACK_ENV: keep the config, database and log in files suffixed with this value, e.g. a separate pilot study.",
	"MOODTRACK_DEBUG: record debug entries in the log file.",
}

// helpText builds the urfave/cli app help template.
func helpText() string {
	flagName := pterm.Green("--{{.Name}} {{.DefaultText}}")
	alias := pterm.Green("-{{$alias}}")

	sections := []helpSection{
		{"DESCRIPTION", "\t\t{{.Usage}}"},
		{"USAGE", "\t\t{{.HelpName}} {{if .UsageText}}{{ .UsageText }}{{end}}"},
		{
			"COMMANDS",
			"{{range .Commands}}{{if not .HideHelp}}   " +
				pterm.Green("{{join .Names `, `}}") +
				"{{ `\t`}}{{.Usage}}{{ `\n` }}{{end}}{{end}}",
		},
		{
			"OPTIONS",
			"{{range .VisibleFlags}}\t\t{{if .Aliases}}{{range $alias := .Aliases}}" +
				alias + ",{{end}}{{end}} " + flagName +
				"\n\t\t\t\t{{.Usage}}\n{{end}}",
		},
		{"ENVIRONMENT", "\t\t" + strings.Join(envHelp, "\n\n\t\t")},
		{"VERSION", "\t\t{{.Version}}"},
		{"WEBSITE", "\t\thttps://github.com/ayoisaiah/moodtrack"},
	}

	var b strings.Builder

	for _, s := range sections {
		b.WriteString(pterm.Yellow(s.title))
		b.WriteString("\n")
		b.WriteString(s.body)
		b.WriteString("\n\n")
	}

	return b.String()
}
