// Package notify alerts the participant when a new prompt is waiting
package notify

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/gen2brain/beeep"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/ayoisaiah/moodtrack/internal/models"
)

const (
	sampleRate = beep.SampleRate(44100)
	chimeFreq  = 880
	chimeLen   = 250 * time.Millisecond
)

// Notifier is told about prompt events.
type Notifier interface {
	PromptIssued(p models.Prompt)
}

// Options configures a Notifier.
type Options struct {
	ConfigDir string
	Enabled   bool
	Sound     bool
	Clock24   bool
}

// New returns a desktop Notifier, or one that does nothing when
// notifications are disabled.
func New(opts Options) Notifier {
	if !opts.Enabled {
		return Noop{}
	}

	// pathToIcon will be an empty string if the file is not found
	icon, _ := xdg.SearchDataFile(filepath.Join(opts.ConfigDir, "icon.png"))

	return &desktop{
		opts:  opts,
		icon:  icon,
		send:  sendDesktop,
		chime: playChime,
	}
}

func sendDesktop(title, message, icon string) error {
	return beeep.Notify(title, message, icon)
}

// Noop discards every notification.
type Noop struct{}

func (Noop) PromptIssued(models.Prompt) {}

type desktop struct {
	send  func(title, message, icon string) error
	chime func() error
	icon  string
	opts  Options
}

func (d *desktop) PromptIssued(p models.Prompt) {
	layout := "03:04 PM"
	if d.opts.Clock24 {
		layout = "15:04"
	}

	msg := fmt.Sprintf(
		"How are you feeling? Answer before %s",
		p.Deadline.Local().Format(layout),
	)

	if err := d.send("moodtrack", msg, d.icon); err != nil {
		slog.Warn("unable to display notification", slog.Any("error", err))
	}

	if !d.opts.Sound {
		return
	}

	go func() {
		if err := d.chime(); err != nil {
			slog.Warn("unable to play chime", slog.Any("error", err))
		}
	}()
}

var speakerOnce sync.Once

func playChime() error {
	var initErr error

	speakerOnce.Do(func() {
		initErr = speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	})

	if initErr != nil {
		return initErr
	}

	tone, err := generators.SineTone(sampleRate, chimeFreq)
	if err != nil {
		return err
	}

	done := make(chan struct{})

	speaker.Play(beep.Seq(
		beep.Take(sampleRate.N(chimeLen), tone),
		beep.Callback(func() {
			close(done)
		}),
	))

	<-done

	return nil
}
