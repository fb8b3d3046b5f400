package tui

import (
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/moodtrack/internal/models"
	"github.com/ayoisaiah/moodtrack/internal/scheduler"
	"github.com/ayoisaiah/moodtrack/internal/session"
)

const timeoutNotice = "The last prompt was not answered in time."

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case redrawMsg:
		return m, redraw()

	case scheduler.TickMsg:
		return m.handleTick(msg)

	case deliveredMsg:
		return m.handleDelivered(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, defaultKeymap.quit):
			return m, tea.Batch(tea.ClearScreen, tea.Quit)

		case key.Matches(msg, defaultKeymap.stop):
			if m.ctrl.Stage() == models.StageCollecting {
				return m.stop()
			}
		}

		if m.form == nil {
			return m.handleKeyPress(msg)
		}

	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-padding*2-4, maxWidth)

	// FrameMsg is sent when the progress bar wants to animate itself
	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress, _ = progressModel.(progress.Model)

		return m, cmd
	}

	if m.form == nil {
		return m, nil
	}

	return m.updateForm(msg)
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	slog.Debug(spew.Sdump(msg))

	form, cmd := m.form.Update(msg)

	f, ok := form.(*huh.Form)
	if !ok {
		return m, cmd
	}

	m.form = f

	switch f.State {
	case huh.StateCompleted:
		return m.submit()
	case huh.StateAborted:
		m.syncForm()
		return m, m.formInit()
	}

	return m, cmd
}

// submit applies a completed form to the controller.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	m.err = ""

	switch m.kind {
	case preForm:
		cmd, err := m.ctrl.Start(m.participantID, m.participantName, collect(m.pre))
		if err != nil {
			m.err = err.Error()
		}

		m.syncForm()

		return m, tea.Batch(cmd, m.formInit())

	case promptForm:
		cmd, err := m.ctrl.Answer(m.collectRatings())
		if err != nil {
			if errors.Is(err, scheduler.ErrPromptTimeout) {
				m.notice = timeoutNotice
			} else {
				m.err = err.Error()
			}
		} else {
			m.notice = ""
		}

		m.syncForm()

		return m, tea.Batch(cmd, m.formInit())

	case postForm:
		return m.submitPost()
	}

	return m, nil
}

func (m *Model) submitPost() (tea.Model, tea.Cmd) {
	p, err := m.ctrl.PreparePost(collect(m.post))
	if err != nil {
		m.err = err.Error()

		if errors.Is(err, session.ErrValidation) {
			m.setForm(postForm, m.newPostForm())
			return m, m.formInit()
		}

		return m, nil
	}

	m.setForm(noForm, nil)

	return m, m.deliver(p)
}

func (m *Model) stop() (tea.Model, tea.Cmd) {
	if err := m.ctrl.Stop(); err != nil {
		m.err = err.Error()
	}

	m.notice = ""
	m.syncForm()

	return m, m.formInit()
}

func (m *Model) handleTick(msg scheduler.TickMsg) (tea.Model, tea.Cmd) {
	ev, cmd := m.ctrl.HandleTick(msg)

	switch ev {
	case scheduler.EventIssued:
		m.syncForm()
		return m, tea.Batch(cmd, m.formInit())

	case scheduler.EventTimeout:
		m.notice = timeoutNotice
		m.syncForm()
	}

	return m, cmd
}

func (m *Model) handleDelivered(msg deliveredMsg) (tea.Model, tea.Cmd) {
	ack, err := m.ctrl.CompletePost(msg.payload, msg.ack, msg.err)
	if err != nil {
		m.err = err.Error()
	} else {
		m.err = ""
		m.ack = ack
	}

	m.syncForm()

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.backup):
		if m.ctrl.Session().StartTime == nil {
			return m, nil
		}

		path, err := m.ctrl.Backup(m.backupDir)
		if err != nil {
			m.err = err.Error()
			return m, nil
		}

		m.backup = path

	case key.Matches(msg, defaultKeymap.retry):
		if m.ctrl.Stage() == models.StagePostSurvey && m.ctrl.Pending() != nil {
			m.err = ""
			return m.submitPost()
		}

	case key.Matches(msg, defaultKeymap.enter):
		if m.ctrl.Stage() == models.StageDone {
			return m, tea.Quit
		}
	}

	return m, nil
}
