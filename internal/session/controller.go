// Package session drives a participant through the survey lifecycle:
// pre-survey, prompt collection, post-survey and upload. Every mutation is
// persisted before the call returns so that a restart resumes where the
// participant left off.
package session

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/moodtrack/internal/config"
	"github.com/ayoisaiah/moodtrack/internal/models"
	"github.com/ayoisaiah/moodtrack/internal/notify"
	"github.com/ayoisaiah/moodtrack/internal/scheduler"
	"github.com/ayoisaiah/moodtrack/internal/series"
	"github.com/ayoisaiah/moodtrack/internal/upload"
	"github.com/ayoisaiah/moodtrack/store"
)

// Options configures a Controller.
type Options struct {
	DB        store.DB
	Deliverer upload.Deliverer
	Notifier  notify.Notifier
	Clock     func() time.Time
	Arm       scheduler.ArmFunc
	Location  *time.Location
	Prefix    string
	Cmd       string
	Survey    config.SurveyConfig
}

// Controller is the single owner of session state.
type Controller struct {
	db        store.DB
	deliverer upload.Deliverer
	notifier  notify.Notifier
	sched     *scheduler.Scheduler
	now       func() time.Time
	loc       *time.Location
	pending   *models.Payload
	pre       models.Answers
	post      models.Answers
	prefix    string
	cmd       string
	survey    config.SurveyConfig
	session   models.Session
	responses []models.Response
	metrics   []string

	delivering bool
}

// New returns a Controller in the pre-survey stage.
func New(opts Options) *Controller {
	c := &Controller{
		db:        opts.DB,
		deliverer: opts.Deliverer,
		notifier:  opts.Notifier,
		now:       opts.Clock,
		loc:       opts.Location,
		prefix:    opts.Prefix,
		cmd:       opts.Cmd,
		survey:    opts.Survey,
	}

	if c.now == nil {
		c.now = time.Now
	}

	if c.loc == nil {
		c.loc = time.Local
	}

	if c.notifier == nil {
		c.notifier = notify.Noop{}
	}

	for _, m := range opts.Survey.Metrics {
		c.metrics = append(c.metrics, m.Name)
	}

	c.sched = scheduler.New(scheduler.Options{
		Clock:   c.now,
		Arm:     opts.Arm,
		Anchor:  scheduler.Anchor(opts.Survey.Anchor),
		Metrics: opts.Survey.Metrics,
		Cadence: opts.Survey.Interval,
		Window:  opts.Survey.AnswerWindow,
	})

	c.init()

	return c
}

func (c *Controller) init() {
	c.session = models.Session{
		ID:    uuid.NewString(),
		Stage: models.StagePreSurvey,
	}
	c.responses = nil
	c.pre = nil
	c.post = nil
	c.pending = nil
	c.delivering = false
}

func (c *Controller) Stage() models.Stage {
	return c.session.Stage
}

func (c *Controller) Session() models.Session {
	return c.session
}

func (c *Controller) Survey() config.SurveyConfig {
	return c.survey
}

// Prompt returns the prompt awaiting an answer, or nil.
func (c *Controller) Prompt() *models.Prompt {
	return c.sched.Active()
}

// Defaults returns the neutral ratings to preselect for the active prompt.
func (c *Controller) Defaults() models.Metrics {
	return c.sched.Defaults()
}

// Remaining returns the time left to answer the active prompt.
func (c *Controller) Remaining() time.Duration {
	return c.sched.Remaining()
}

// Window returns the answer window of each prompt.
func (c *Controller) Window() time.Duration {
	return c.sched.Window()
}

// NextPromptAt returns when the next prompt is due, or nil.
func (c *Controller) NextPromptAt() *time.Time {
	return c.sched.NextAt()
}

// Responses returns the response log.
func (c *Controller) Responses() []models.Response {
	out := make([]models.Response, len(c.responses))
	copy(out, c.responses)

	return out
}

// Pending returns the payload retained after a failed delivery, or nil.
func (c *Controller) Pending() *models.Payload {
	if c.pending == nil {
		return nil
	}

	p := *c.pending

	return &p
}

// Delivering reports whether an upload is in flight.
func (c *Controller) Delivering() bool {
	return c.delivering
}

// Snapshot returns the durable view of the current state.
func (c *Controller) Snapshot() *models.Snapshot {
	return &models.Snapshot{
		Session:      c.session,
		Prompt:       c.sched.Active(),
		NextPromptAt: c.sched.NextAt(),
		Responses:    c.Responses(),
		PreAnswers:   c.pre,
		PostAnswers:  c.post,
		Pending:      c.Pending(),
	}
}

func (c *Controller) persist() error {
	if err := c.db.SaveSnapshot(c.prefix, c.Snapshot()); err != nil {
		return errPersist.Wrap(err)
	}

	return nil
}

func (c *Controller) requireStage(action string, stage models.Stage) error {
	if c.session.Stage != stage {
		return ErrInvalidStage.Fmt(action, c.session.Stage)
	}

	return nil
}

// Start validates the pre-survey, begins collection and issues the first
// prompt.
func (c *Controller) Start(
	participantID, name string,
	pre models.Answers,
) (tea.Cmd, error) {
	if err := c.requireStage("start", models.StagePreSurvey); err != nil {
		return nil, err
	}

	fields := append([]field{
		{key: "participant_id", label: "ID", value: participantID},
		{key: "participant_name", label: "Name", value: name},
	}, answerFields(c.survey.PreQuestions, pre)...)

	if err := requireAll(fields); err != nil {
		return nil, err
	}

	now := c.now()

	c.session.ParticipantID = strings.TrimSpace(participantID)
	c.session.ParticipantName = strings.TrimSpace(name)
	c.session.StartTime = &now
	c.session.EndTime = nil
	c.session.Stage = models.StageCollecting
	c.pre = normalize(c.survey.PreQuestions, pre)

	prompt, cmd, err := c.sched.Start()
	if err != nil {
		return nil, err
	}

	c.notifier.PromptIssued(*prompt)

	slog.Info(
		"collection started",
		slog.String("session", c.session.ID),
		slog.String("participant", c.session.ParticipantID),
	)

	return cmd, c.persist()
}

// Answer records ratings for the active prompt. An answer that arrives after
// the deadline is rejected with scheduler.ErrPromptTimeout and the prompt is
// dropped.
func (c *Controller) Answer(metrics models.Metrics) (tea.Cmd, error) {
	if err := c.requireStage("answer", models.StageCollecting); err != nil {
		return nil, err
	}

	resp, cmd, err := c.sched.Answer(metrics)
	if err != nil {
		if errors.Is(err, scheduler.ErrPromptTimeout) {
			return cmd, errors.Join(err, c.persist())
		}

		return nil, err
	}

	c.responses = append(c.responses, resp)

	return cmd, c.persist()
}

// HandleTick applies a timer tick. Ticks outside collection are ignored.
func (c *Controller) HandleTick(msg scheduler.TickMsg) (scheduler.Event, tea.Cmd) {
	if c.session.Stage != models.StageCollecting {
		return scheduler.EventNone, nil
	}

	ev, cmd := c.sched.Handle(msg)
	if ev == scheduler.EventNone {
		return ev, cmd
	}

	if ev == scheduler.EventIssued {
		if p := c.sched.Active(); p != nil {
			c.notifier.PromptIssued(*p)
		}
	}

	if err := c.persist(); err != nil {
		slog.Error("tick not persisted", slog.Any("error", err))
	}

	return ev, cmd
}

// Stop ends collection. The active prompt, if any, is dropped without a
// response.
func (c *Controller) Stop() error {
	if err := c.requireStage("stop", models.StageCollecting); err != nil {
		return err
	}

	c.sched.Cancel()

	now := c.now()

	c.session.EndTime = &now
	c.session.Stage = models.StagePostSurvey

	slog.Info(
		"collection stopped",
		slog.String("session", c.session.ID),
		slog.Int("responses", len(c.responses)),
	)

	return c.persist()
}

// Series reconstructs the per-minute series. While collecting, the series
// ends at the current minute.
func (c *Controller) Series() (models.Series, error) {
	end := c.session.EndTime
	if end == nil && c.session.StartTime != nil {
		now := c.now()
		end = &now
	}

	return series.Reconstruct(
		c.responses,
		c.session.StartTime,
		end,
		c.session.ParticipantID,
		c.metrics,
	)
}

// Payload builds the upload payload from the current state.
func (c *Controller) Payload() (models.Payload, error) {
	s, err := c.Series()
	if err != nil {
		slog.Warn("series reconstruction", slog.Any("error", err))
	}

	return upload.Build(upload.Record{
		Location:        c.loc,
		ParticipantID:   c.session.ParticipantID,
		ParticipantName: c.session.ParticipantName,
		Series:          s,
		Metrics:         c.metrics,
		PreQuestions:    c.survey.PreQuestions,
		PostQuestions:   c.survey.PostQuestions,
		Pre:             c.pre,
		Post:            c.post,
	})
}

// PreparePost validates the post-survey and returns the payload to deliver.
// The controller stays in the delivering state until CompletePost is called.
func (c *Controller) PreparePost(post models.Answers) (models.Payload, error) {
	if err := c.requireStage("submit", models.StagePostSurvey); err != nil {
		return models.Payload{}, err
	}

	if c.delivering {
		return models.Payload{}, ErrDeliveryPending
	}

	err := requireAll(answerFields(c.survey.PostQuestions, post))
	if err != nil {
		return models.Payload{}, err
	}

	c.post = normalize(c.survey.PostQuestions, post)

	p, err := c.Payload()
	if err != nil {
		return models.Payload{}, err
	}

	if err := c.persist(); err != nil {
		return models.Payload{}, err
	}

	c.delivering = true

	return p, nil
}

// Deliver sends p to the endpoint. It does not touch controller state and
// may run off the update loop.
func (c *Controller) Deliver(ctx context.Context, p models.Payload) (string, error) {
	return c.deliverer.Deliver(ctx, p)
}

// CompletePost applies the outcome of a delivery. On failure the payload is
// retained for manual backup and the stage is unchanged. On success the
// session is done and persisted state is cleared.
func (c *Controller) CompletePost(
	p models.Payload,
	ack string,
	deliveryErr error,
) (string, error) {
	c.delivering = false

	if deliveryErr != nil {
		if !errors.Is(deliveryErr, upload.ErrDelivery) {
			deliveryErr = upload.ErrDelivery.Fmt(p.Filename).Wrap(deliveryErr)
		}

		c.pending = &p

		slog.Warn(
			"delivery failed, payload retained for backup",
			slog.String("file", p.Filename),
			slog.Any("error", deliveryErr),
		)

		return "", errors.Join(deliveryErr, c.persist())
	}

	c.pending = nil
	c.session.Stage = models.StageDone

	if err := c.db.ClearAll(store.Key(c.prefix, "")); err != nil {
		return ack, errPersist.Wrap(err)
	}

	slog.Info("session complete", slog.String("file", p.Filename))

	if err := c.runCmd(); err != nil {
		slog.Warn("post-session command", slog.Any("error", err))
	}

	return ack, nil
}

// SubmitPost validates the post-survey and delivers the payload once.
// Retrying after a failure attempts a fresh delivery.
func (c *Controller) SubmitPost(
	ctx context.Context,
	post models.Answers,
) (string, error) {
	p, err := c.PreparePost(post)
	if err != nil {
		return "", err
	}

	ack, err := c.Deliver(ctx, p)

	return c.CompletePost(p, ack, err)
}

// Backup writes the retained payload, or one built from the current state,
// to dir.
func (c *Controller) Backup(dir string) (string, error) {
	p := c.Pending()
	if p == nil {
		built, err := c.Payload()
		if err != nil {
			return "", err
		}

		p = &built
	}

	return upload.WriteBackup(dir, *p)
}

// Reset cancels all timers, clears persisted state and starts over.
// Calling it repeatedly has the same effect as calling it once.
func (c *Controller) Reset() error {
	c.sched.Cancel()

	if err := c.db.ClearAll(store.Key(c.prefix, "")); err != nil {
		return errPersist.Wrap(err)
	}

	c.init()

	slog.Info("session reset")

	return nil
}

// Load restores the persisted session without resuming its timers or
// writing anything back. It reports whether a snapshot existed.
func (c *Controller) Load() (bool, error) {
	snap, err := c.db.LoadSnapshot(c.prefix)
	if err != nil || snap == nil {
		return false, err
	}

	c.restore(snap)

	return true, nil
}

func (c *Controller) restore(snap *models.Snapshot) {
	c.session = snap.Session
	c.responses = snap.Responses
	c.pre = snap.PreAnswers
	c.post = snap.PostAnswers
	c.pending = snap.Pending
	c.delivering = false

	if c.session.ID == "" {
		c.session.ID = uuid.NewString()
	}

	if c.session.Stage == "" {
		c.session.Stage = models.StagePreSurvey
	}
}

// Recover rehydrates state from the persisted snapshot before any timer is
// armed. The returned notice is non-nil when a prompt expired while
// moodtrack was not running.
func (c *Controller) Recover() (notice error, cmd tea.Cmd, err error) {
	snap, err := c.db.LoadSnapshot(c.prefix)
	if err != nil {
		return nil, nil, err
	}

	if snap == nil {
		return nil, nil, nil
	}

	c.restore(snap)

	slog.Info(
		"session recovered",
		slog.String("session", c.session.ID),
		slog.String("stage", string(c.session.Stage)),
	)

	if c.session.Stage != models.StageCollecting {
		return nil, nil, nil
	}

	cmd, notice = c.sched.Recover(snap.Prompt, snap.NextPromptAt)
	if notice != nil {
		slog.Warn("recovered stale prompt", slog.Any("notice", notice))
	}

	return notice, cmd, c.persist()
}

func (c *Controller) runCmd() error {
	if c.cmd == "" {
		return nil
	}

	args, err := shellquote.Split(c.cmd)
	if err != nil {
		return errSessionCmd.Wrap(err)
	}

	if len(args) == 0 {
		return nil
	}

	cmd := exec.Command(args[0], args[1:]...)

	if err := cmd.Start(); err != nil {
		return errSessionCmd.Wrap(err)
	}

	go func() {
		_ = cmd.Wait()
	}()

	return nil
}
