// Package tui is the interactive terminal front end of a moodtrack session
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ayoisaiah/moodtrack/internal/config"
	"github.com/ayoisaiah/moodtrack/internal/models"
	"github.com/ayoisaiah/moodtrack/internal/session"
	"github.com/ayoisaiah/moodtrack/internal/ui"
)

const (
	padding  = 2
	maxWidth = 80
)

// redrawMsg refreshes the countdown once per second.
type redrawMsg time.Time

// deliveredMsg carries the outcome of an upload back to the update loop.
type deliveredMsg struct {
	err     error
	ack     string
	payload models.Payload
}

// Options configures the Model.
type Options struct {
	Controller      *session.Controller
	Notice          error
	Init            tea.Cmd
	Style           ui.Style
	ParticipantID   string
	ParticipantName string
	BackupDir       string
	Survey          config.SurveyConfig
	TwentyFourHour  bool
}

// Model is the bubbletea model of a session.
type Model struct {
	ctrl     *session.Controller
	form     *huh.Form
	ratings  map[string]*int
	pre      map[string]*string
	post     map[string]*string
	initCmd  tea.Cmd
	notice   string
	err      string
	ack      string
	backup   string
	progress progress.Model
	help     help.Model
	style    ui.Style

	participantID   string
	participantName string
	backupDir       string
	survey          config.SurveyConfig
	kind            formKind
	clock24         bool
}

// New returns a Model over a recovered controller.
func New(opts Options) *Model {
	m := &Model{
		ctrl:            opts.Controller,
		initCmd:         opts.Init,
		style:           opts.Style,
		participantID:   opts.ParticipantID,
		participantName: opts.ParticipantName,
		backupDir:       opts.BackupDir,
		survey:          opts.Survey,
		clock24:         opts.TwentyFourHour,
		pre:             make(map[string]*string),
		post:            make(map[string]*string),
		progress:        progress.New(progress.WithDefaultGradient()),
		help:            help.New(),
	}

	if opts.Notice != nil {
		m.notice = opts.Notice.Error()
	}

	snap := m.ctrl.Snapshot()
	if snap.Session.ParticipantID != "" {
		m.participantID = snap.Session.ParticipantID
		m.participantName = snap.Session.ParticipantName
	}

	for k, v := range snap.PreAnswers {
		m.pre[k] = &v
	}

	for k, v := range snap.PostAnswers {
		m.post[k] = &v
	}

	m.syncForm()

	return m
}

// syncForm shows the form that matches the controller's state.
func (m *Model) syncForm() {
	switch m.ctrl.Stage() {
	case models.StagePreSurvey:
		m.setForm(preForm, m.newPreForm())
	case models.StageCollecting:
		if m.ctrl.Prompt() != nil {
			m.setForm(promptForm, m.newPromptForm())
			return
		}

		m.setForm(noForm, nil)
	case models.StagePostSurvey:
		if m.ctrl.Pending() != nil || m.ctrl.Delivering() {
			m.setForm(noForm, nil)
			return
		}

		m.setForm(postForm, m.newPostForm())
	default:
		m.setForm(noForm, nil)
	}
}

func (m *Model) setForm(kind formKind, form *huh.Form) {
	m.kind = kind
	m.form = form
}

func (m *Model) formInit() tea.Cmd {
	if m.form == nil {
		return nil
	}

	return m.form.Init()
}

func redraw() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return redrawMsg(t)
	})
}

func (m *Model) deliver(p models.Payload) tea.Cmd {
	return func() tea.Msg {
		ack, err := m.ctrl.Deliver(context.Background(), p)

		return deliveredMsg{payload: p, ack: ack, err: err}
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.initCmd, m.formInit(), redraw())
}
