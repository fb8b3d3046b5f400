package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/ayoisaiah/moodtrack/internal/models"
	"github.com/ayoisaiah/moodtrack/internal/timeutil"
)

func (m *Model) headerView() string {
	var s strings.Builder

	if m.ctrl.Stage() == models.StageCollecting {
		s.WriteString(m.style.Collect.Render())
	} else {
		s.WriteString(m.style.Survey.Render())
	}

	sess := m.ctrl.Session()
	if sess.ParticipantID != "" {
		s.WriteString(m.style.Hint.Render(sess.ParticipantID))
	}

	if m.notice != "" {
		s.WriteString("\n\n" + m.style.Secondary.Render(m.notice))
	}

	if m.err != "" {
		s.WriteString("\n\n" + m.style.Error.Render(m.err))
	}

	return s.String()
}

func (m *Model) promptView(p *models.Prompt) string {
	var s strings.Builder

	layout := timeutil.ClockFormat(m.clock24)

	s.WriteString(m.style.Main.Render("How are you feeling right now?"))
	s.WriteString(m.style.Hint.Render(
		" (asked at " + p.IssuedAt.Local().Format(layout) + ")",
	))

	remaining := m.ctrl.Remaining()

	var percent float64
	if w := m.ctrl.Window(); w > 0 {
		percent = float64(remaining) / float64(w)
	}

	s.WriteString("\n\n")
	s.WriteString(m.style.Main.Render(timeutil.FormatRemaining(remaining)))
	s.WriteString("\n\n")
	s.WriteString(m.progress.ViewAs(percent))
	s.WriteString("\n\n")
	s.WriteString(m.form.View())

	return s.String()
}

func (m *Model) waitingView() string {
	var s strings.Builder

	title := "Waiting for the next prompt."
	if m.notice == "" && len(m.ctrl.Responses()) > 0 {
		title = "Thanks, your answer was recorded."
	}

	s.WriteString(m.style.Main.Render(title))

	if next := m.ctrl.NextPromptAt(); next != nil {
		s.WriteString("\n\n" + m.style.Secondary.Render(
			"The next prompt will appear at "+
				next.Local().Format(timeutil.ClockFormat(m.clock24)),
		))
	}

	s.WriteString("\n\n" + m.style.Hint.Render(
		fmt.Sprintf("%d responses so far", len(m.ctrl.Responses())),
	))

	return s.String()
}

func (m *Model) formView(title string) string {
	return m.style.Main.Render(title) + "\n\n" + m.form.View()
}

func (m *Model) pendingView() string {
	var s strings.Builder

	if m.ctrl.Delivering() {
		return m.style.Main.Render("Uploading your responses...")
	}

	s.WriteString(m.style.Main.Render("Your responses could not be uploaded."))
	s.WriteString("\n\n" + m.style.Secondary.Render(
		"Save a backup file and send it to the study team, or try again.",
	))

	if m.backup != "" {
		s.WriteString("\n\n" + m.style.Success.Render("Backup saved to "+m.backup))
	}

	return s.String()
}

func (m *Model) doneView() string {
	var s strings.Builder

	s.WriteString(m.style.Success.Render("Upload complete. Thank you for taking part!"))

	if m.ack != "" {
		s.WriteString("\n\n" + m.style.Secondary.Render(m.ack))
	}

	return s.String()
}

func (m *Model) helpView() string {
	var bindings []key.Binding

	switch m.ctrl.Stage() {
	case models.StageCollecting:
		bindings = []key.Binding{defaultKeymap.stop, defaultKeymap.quit}
		if m.form == nil {
			bindings = append(bindings, defaultKeymap.backup)
		}
	case models.StagePostSurvey:
		if m.form == nil && !m.ctrl.Delivering() {
			bindings = []key.Binding{defaultKeymap.retry, defaultKeymap.backup}
		}

		bindings = append(bindings, defaultKeymap.quit)
	case models.StageDone:
		bindings = []key.Binding{defaultKeymap.enter}
	default:
		bindings = []key.Binding{defaultKeymap.quit}
	}

	return "\n\n" + m.help.ShortHelpView(bindings)
}

func (m *Model) View() string {
	var body string

	switch m.ctrl.Stage() {
	case models.StagePreSurvey:
		body = m.formView("Before you begin")
	case models.StageCollecting:
		if p := m.ctrl.Prompt(); p != nil && m.form != nil {
			body = m.promptView(p)
		} else {
			body = m.waitingView()
		}
	case models.StagePostSurvey:
		if m.form != nil {
			body = m.formView("After the activity")
		} else {
			body = m.pendingView()
		}
	case models.StageDone:
		body = m.doneView()
	}

	return m.style.Base.Render(m.headerView() + "\n\n" + body + m.helpView())
}
