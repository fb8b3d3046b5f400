package scheduler

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/moodtrack/internal/models"
)

var base = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

type armed struct {
	msg TickMsg
	d   time.Duration
}

// harness drives a Scheduler with a manual clock and records every armed
// timer instead of starting real ones.
type harness struct {
	s     *Scheduler
	now   time.Time
	armed []armed
}

func newHarness(anchor Anchor) *harness {
	h := &harness{now: base}

	h.s = New(Options{
		Clock:  func() time.Time { return h.now },
		Anchor: anchor,
		Arm: func(d time.Duration, msg TickMsg) tea.Cmd {
			h.armed = append(h.armed, armed{d: d, msg: msg})
			return func() tea.Msg { return msg }
		},
		Metrics: []models.Metric{
			{Name: "Q1", Min: 1, Max: 9},
			{Name: "Q2", Min: 1, Max: 9},
		},
		Cadence: time.Minute,
		Window:  5 * time.Minute,
	})

	return h
}

func (h *harness) last() armed {
	return h.armed[len(h.armed)-1]
}

func (h *harness) fire(a armed) (Event, tea.Cmd) {
	h.now = h.now.Add(a.d)
	return h.s.Handle(a.msg)
}

func TestStartIssuesPromptImmediately(t *testing.T) {
	h := newHarness(AnchorIssued)

	p, cmd, err := h.s.Start()
	require.NoError(t, err)
	require.NotNil(t, cmd)

	assert.Equal(t, base, p.IssuedAt)
	assert.Equal(t, base.Add(5*time.Minute), p.Deadline)
	assert.Equal(t, countdownTimer, h.last().msg.kind)
	assert.Equal(t, 5*time.Minute, h.last().d)
	assert.Equal(t, models.Score(5), h.s.Defaults()["Q1"])
}

func TestIssueWhileActiveFails(t *testing.T) {
	h := newHarness(AnchorIssued)

	_, _, err := h.s.Start()
	require.NoError(t, err)

	_, _, err = h.s.Issue()
	assert.ErrorIs(t, err, ErrPromptActive)
}

func TestAnswerArmsCadenceFromIssuance(t *testing.T) {
	h := newHarness(AnchorIssued)

	_, _, err := h.s.Start()
	require.NoError(t, err)

	h.now = base.Add(20 * time.Second)

	resp, cmd, err := h.s.Answer(models.Metrics{"Q1": models.Score(7)})
	require.NoError(t, err)
	require.NotNil(t, cmd)

	assert.Equal(t, base, resp.PromptTime)
	assert.Equal(t, models.Score(7), resp.Metrics["Q1"])
	assert.True(t, resp.Metrics["Q2"].IsNA())
	assert.Nil(t, h.s.Active())

	next := h.last()
	assert.Equal(t, cadenceTimer, next.msg.kind)
	assert.Equal(t, 40*time.Second, next.d)
	assert.Equal(t, base.Add(time.Minute), *h.s.NextAt())
}

func TestAnswerAnchoredOnAnswer(t *testing.T) {
	h := newHarness(AnchorAnswered)

	_, _, err := h.s.Start()
	require.NoError(t, err)

	h.now = base.Add(20 * time.Second)

	_, _, err = h.s.Answer(models.Metrics{})
	require.NoError(t, err)

	assert.Equal(t, time.Minute, h.last().d)
}

func TestAnswerWithoutPrompt(t *testing.T) {
	h := newHarness(AnchorIssued)

	_, _, err := h.s.Answer(models.Metrics{})
	assert.ErrorIs(t, err, ErrNoActivePrompt)
}

func TestCountdownFiresAfterAnswerIsIgnored(t *testing.T) {
	h := newHarness(AnchorIssued)

	_, _, err := h.s.Start()
	require.NoError(t, err)

	countdown := h.last()

	_, _, err = h.s.Answer(models.Metrics{})
	require.NoError(t, err)

	ev, cmd := h.s.Handle(countdown.msg)
	assert.Equal(t, EventNone, ev)
	assert.Nil(t, cmd)
}

func TestTimeoutIssuesNextPromptImmediately(t *testing.T) {
	h := newHarness(AnchorIssued)

	_, _, err := h.s.Start()
	require.NoError(t, err)

	ev, cmd := h.fire(h.last())
	assert.Equal(t, EventTimeout, ev)
	require.NotNil(t, cmd)
	assert.Nil(t, h.s.Active())

	next := h.last()
	assert.Equal(t, cadenceTimer, next.msg.kind)
	assert.Equal(t, time.Duration(0), next.d)

	ev, _ = h.fire(next)
	assert.Equal(t, EventIssued, ev)
	require.NotNil(t, h.s.Active())
	assert.Equal(t, base.Add(5*time.Minute), h.s.Active().IssuedAt)
}

func TestLateAnswerTimesOut(t *testing.T) {
	h := newHarness(AnchorIssued)

	_, _, err := h.s.Start()
	require.NoError(t, err)

	countdown := h.last()
	h.now = base.Add(5 * time.Minute)

	_, cmd, err := h.s.Answer(models.Metrics{})
	assert.ErrorIs(t, err, ErrPromptTimeout)
	require.NotNil(t, cmd)
	assert.Nil(t, h.s.Active())

	ev, _ := h.s.Handle(countdown.msg)
	assert.Equal(t, EventNone, ev)
}

func TestStaleCadenceTickIgnored(t *testing.T) {
	h := newHarness(AnchorIssued)

	_, _, err := h.s.Start()
	require.NoError(t, err)

	_, _, err = h.s.Answer(models.Metrics{})
	require.NoError(t, err)

	stale := h.last()

	h.s.Cancel()

	ev, cmd := h.s.Handle(stale.msg)
	assert.Equal(t, EventNone, ev)
	assert.Nil(t, cmd)
	assert.Nil(t, h.s.NextAt())
}

func TestAtMostOneActivePrompt(t *testing.T) {
	h := newHarness(AnchorIssued)

	_, _, err := h.s.Start()
	require.NoError(t, err)

	// Replay every tick armed so far, including stale ones, many times.
	for i := 0; i < 50; i++ {
		for _, a := range append([]armed(nil), h.armed...) {
			h.s.Handle(a.msg)
		}

		if h.s.Active() != nil && i%3 == 0 {
			_, _, _ = h.s.Answer(models.Metrics{})
		}

		assert.False(t, h.s.cadenceH.armed && h.s.active != nil,
			"cadence armed while a prompt is active")
	}
}

func TestRecoverResumesCountdown(t *testing.T) {
	h := newHarness(AnchorIssued)

	prompt := &models.Prompt{IssuedAt: base, Deadline: base.Add(5 * time.Minute)}
	h.now = base.Add(2 * time.Minute)

	cmd, notice := h.s.Recover(prompt, nil)
	require.NoError(t, notice)
	require.NotNil(t, cmd)

	assert.Equal(t, countdownTimer, h.last().msg.kind)
	assert.Equal(t, 3*time.Minute, h.last().d)
	assert.Equal(t, base, h.s.Active().IssuedAt)
}

func TestRecoverExpiredPrompt(t *testing.T) {
	h := newHarness(AnchorIssued)

	prompt := &models.Prompt{IssuedAt: base, Deadline: base.Add(5 * time.Minute)}
	h.now = base.Add(time.Hour)

	cmd, notice := h.s.Recover(prompt, nil)
	assert.ErrorIs(t, notice, ErrTimedOutAway)
	require.NotNil(t, cmd)

	assert.Nil(t, h.s.Active())
	assert.Equal(t, cadenceTimer, h.last().msg.kind)
	assert.Equal(t, time.Duration(0), h.last().d)
}

func TestRecoverWaitsForNextTick(t *testing.T) {
	h := newHarness(AnchorIssued)

	next := base.Add(time.Minute)
	h.now = base.Add(15 * time.Second)

	_, notice := h.s.Recover(nil, &next)
	require.NoError(t, notice)
	assert.Equal(t, 45*time.Second, h.last().d)

	past := base
	_, _ = h.s.Recover(nil, &past)
	assert.Equal(t, time.Duration(0), h.last().d)
}
