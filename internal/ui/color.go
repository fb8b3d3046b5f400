package ui

import (
	"strings"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/moodtrack/internal/models"
)

// DarkTheme selects the bright variant of every tone.
var DarkTheme bool

// Tone is a foreground colour with a brighter variant for dark terminals.
type Tone struct {
	Normal pterm.Color
	Bright pterm.Color
}

var (
	ToneIdle     = Tone{pterm.FgBlue, pterm.FgLightBlue}
	ToneActive   = Tone{pterm.FgMagenta, pterm.FgLightMagenta}
	ToneReview   = Tone{pterm.FgCyan, pterm.FgLightCyan}
	ToneOK       = Tone{pterm.FgGreen, pterm.FgLightGreen}
	ToneAlert    = Tone{pterm.FgRed, pterm.FgLightRed}
	ToneEmphasis = Tone{pterm.FgBlack, pterm.FgLightWhite}
)

// Paint renders a in the tone's colour for the current theme.
func (t Tone) Paint(a any) string {
	if DarkTheme {
		return t.Bright.Sprint(a)
	}

	return t.Normal.Sprint(a)
}

var stageTones = map[models.Stage]Tone{
	models.StagePreSurvey:  ToneIdle,
	models.StageCollecting: ToneActive,
	models.StagePostSurvey: ToneReview,
	models.StageDone:       ToneOK,
}

// Stage renders a stage label such as "post-survey" in its tone. Unknown
// stages are shown as pre-survey.
func Stage(s models.Stage) string {
	tone, ok := stageTones[s]
	if !ok {
		s, tone = models.StagePreSurvey, ToneIdle
	}

	return tone.Paint(strings.ReplaceAll(string(s), "_", "-"))
}

func Highlight(a any) string {
	return ToneEmphasis.Paint(a)
}
