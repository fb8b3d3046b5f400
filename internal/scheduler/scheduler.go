// Package scheduler issues rating prompts on a fixed cadence and enforces the
// answer window of each prompt. Timers are bubbletea commands so that every
// state change happens on the program's update loop.
package scheduler

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayoisaiah/moodtrack/internal/models"
	"github.com/ayoisaiah/moodtrack/internal/timeutil"
)

// Anchor determines what the cadence interval is measured from.
type Anchor string

const (
	// AnchorIssued measures the interval from each prompt's issuance, so
	// prompts land on a fixed grid regardless of how quickly they are
	// answered.
	AnchorIssued Anchor = "issued"
	// AnchorAnswered waits a full interval after each answer.
	AnchorAnswered Anchor = "answered"
)

type timerKind int

const (
	cadenceTimer timerKind = iota
	countdownTimer
)

func (k timerKind) String() string {
	if k == cadenceTimer {
		return "cadence"
	}

	return "countdown"
}

// TickMsg is delivered when an armed timer fires.
type TickMsg struct {
	Time time.Time
	kind timerKind
	gen  int
}

// Event describes what a tick did.
type Event int

const (
	EventNone Event = iota
	EventIssued
	EventTimeout
)

// ArmFunc schedules msg to be delivered after d.
type ArmFunc func(d time.Duration, msg TickMsg) tea.Cmd

// TeaArm delivers msg through tea.Tick.
func TeaArm(d time.Duration, msg TickMsg) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		msg.Time = t
		return msg
	})
}

// handle tracks the single armed instance of a timer class. Each arm or cancel
// bumps gen, so ticks from an earlier instance no longer match.
type handle struct {
	at    time.Time
	gen   int
	armed bool
}

func (h *handle) matches(gen int) bool {
	return h.armed && h.gen == gen
}

func (h *handle) cancel() {
	h.gen++
	h.armed = false
}

// Options configures a Scheduler.
type Options struct {
	Clock   func() time.Time
	Arm     ArmFunc
	Anchor  Anchor
	Metrics []models.Metric
	Cadence time.Duration
	Window  time.Duration
}

// Scheduler owns the active prompt and both timers.
type Scheduler struct {
	now       func() time.Time
	arm       ArmFunc
	active    *models.Prompt
	defaults  models.Metrics
	anchor    Anchor
	metrics   []models.Metric
	cadence   time.Duration
	window    time.Duration
	cadenceH  handle
	countdown handle
}

// New returns a Scheduler with no prompt and no armed timers.
func New(opts Options) *Scheduler {
	s := &Scheduler{
		now:     opts.Clock,
		arm:     opts.Arm,
		anchor:  opts.Anchor,
		metrics: opts.Metrics,
		cadence: opts.Cadence,
		window:  opts.Window,
	}

	if s.now == nil {
		s.now = time.Now
	}

	if s.arm == nil {
		s.arm = TeaArm
	}

	if s.anchor == "" {
		s.anchor = AnchorIssued
	}

	s.resetDefaults()

	return s
}

// Active returns the prompt awaiting an answer, or nil.
func (s *Scheduler) Active() *models.Prompt {
	if s.active == nil {
		return nil
	}

	p := *s.active

	return &p
}

// NextAt returns when the armed cadence tick fires, or nil if none is armed.
func (s *Scheduler) NextAt() *time.Time {
	if !s.cadenceH.armed {
		return nil
	}

	at := s.cadenceH.at

	return &at
}

// Defaults returns the neutral ratings shown when a prompt is issued.
func (s *Scheduler) Defaults() models.Metrics {
	out := make(models.Metrics, len(s.defaults))
	for k, v := range s.defaults {
		out[k] = v
	}

	return out
}

// Remaining returns the time left to answer the active prompt.
func (s *Scheduler) Remaining() time.Duration {
	if s.active == nil {
		return 0
	}

	return s.active.Remaining(s.now())
}

// Window returns the answer window of a prompt.
func (s *Scheduler) Window() time.Duration {
	return s.window
}

// Start issues the first prompt immediately.
func (s *Scheduler) Start() (*models.Prompt, tea.Cmd, error) {
	s.Cancel()

	return s.Issue()
}

// Issue creates a new prompt and arms its countdown. It fails if a prompt is
// already active.
func (s *Scheduler) Issue() (*models.Prompt, tea.Cmd, error) {
	if s.active != nil {
		return nil, nil, ErrPromptActive
	}

	now := s.now()

	s.cadenceH.cancel()

	s.active = &models.Prompt{
		IssuedAt: now,
		Deadline: now.Add(s.window),
	}

	s.resetDefaults()

	slog.Debug("prompt issued", slog.Time("deadline", s.active.Deadline))

	return s.Active(), s.armTimer(&s.countdown, countdownTimer, s.window), nil
}

// Answer records metrics for the active prompt, clears it, and arms the next
// cadence tick. Configured metrics missing from metrics are recorded as NA.
func (s *Scheduler) Answer(
	metrics models.Metrics,
) (models.Response, tea.Cmd, error) {
	if s.active == nil || s.active.Answered {
		return models.Response{}, nil, ErrNoActivePrompt
	}

	now := s.now()

	if s.active.Expired(now) {
		err := ErrPromptTimeout.Fmt(s.active.IssuedAt.Format(time.RFC3339))
		return models.Response{}, s.expire(), err
	}

	s.active.Answered = true

	resp := models.Response{
		PromptTime: s.active.IssuedAt,
		Metrics:    s.complete(metrics),
	}

	issuedAt := s.active.IssuedAt

	s.active = nil
	s.countdown.cancel()

	next := timeutil.NextTick(issuedAt, now, s.cadence)
	if s.anchor == AnchorAnswered {
		next = now.Add(s.cadence)
	}

	return resp, s.armTimer(&s.cadenceH, cadenceTimer, next.Sub(now)), nil
}

// Handle processes a timer tick. Ticks from cancelled timers are ignored.
func (s *Scheduler) Handle(msg TickMsg) (Event, tea.Cmd) {
	switch msg.kind {
	case cadenceTimer:
		if !s.cadenceH.matches(msg.gen) {
			return EventNone, nil
		}

		s.cadenceH.armed = false

		_, cmd, err := s.Issue()
		if err != nil {
			return EventNone, nil
		}

		return EventIssued, cmd
	case countdownTimer:
		if !s.countdown.matches(msg.gen) {
			return EventNone, nil
		}

		s.countdown.armed = false

		return EventTimeout, s.expire()
	}

	return EventNone, nil
}

// expire drops the unanswered prompt and arms the next cadence tick
// immediately.
func (s *Scheduler) expire() tea.Cmd {
	if s.active == nil {
		return nil
	}

	slog.Warn(
		"prompt unanswered",
		slog.Any("error", ErrPromptTimeout.Fmt(s.active.IssuedAt.Format(time.RFC3339))),
	)

	s.active = nil
	s.countdown.cancel()

	return s.armTimer(&s.cadenceH, cadenceTimer, 0)
}

// Cancel disarms both timers and drops the active prompt.
func (s *Scheduler) Cancel() {
	s.cadenceH.cancel()
	s.countdown.cancel()
	s.active = nil
}

// Recover rehydrates the scheduler from persisted state. An unexpired prompt
// resumes its countdown for the remaining time. An expired one is discarded,
// the next cadence tick is armed immediately, and ErrTimedOutAway is returned
// as a notice. Without a prompt, the cadence tick is armed for nextAt, or
// immediately if that has passed.
func (s *Scheduler) Recover(
	prompt *models.Prompt,
	nextAt *time.Time,
) (tea.Cmd, error) {
	s.Cancel()

	now := s.now()

	if prompt != nil && !prompt.Answered {
		if !prompt.Expired(now) {
			p := *prompt
			s.active = &p
			s.resetDefaults()

			return s.armTimer(&s.countdown, countdownTimer, p.Remaining(now)), nil
		}

		notice := ErrTimedOutAway.Fmt(prompt.IssuedAt.Format(time.Kitchen))

		return s.armTimer(&s.cadenceH, cadenceTimer, 0), notice
	}

	var delay time.Duration
	if nextAt != nil && nextAt.After(now) {
		delay = nextAt.Sub(now)
	}

	return s.armTimer(&s.cadenceH, cadenceTimer, delay), nil
}

func (s *Scheduler) armTimer(h *handle, kind timerKind, d time.Duration) tea.Cmd {
	if d < 0 {
		d = 0
	}

	h.cancel()
	h.armed = true
	h.at = s.now().Add(d)

	slog.Debug("timer armed", slog.String("timer", kind.String()), slog.Duration("in", d))

	return s.arm(d, TickMsg{kind: kind, gen: h.gen})
}

func (s *Scheduler) resetDefaults() {
	s.defaults = make(models.Metrics, len(s.metrics))
	for _, m := range s.metrics {
		s.defaults[m.Name] = models.Score(m.Neutral())
	}
}

func (s *Scheduler) complete(metrics models.Metrics) models.Metrics {
	out := make(models.Metrics, len(s.metrics))
	for _, m := range s.metrics {
		v, ok := metrics[m.Name]
		if !ok {
			v = models.NA
		}

		out[m.Name] = v
	}

	return out
}
