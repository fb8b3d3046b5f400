// Package models defines the session, prompt, and response types shared
// across moodtrack
package models

import (
	"bytes"
	"strconv"
	"time"
)

// Stage is the lifecycle stage of a session.
type Stage string

const (
	StagePreSurvey  Stage = "pre_survey"
	StageCollecting Stage = "collecting"
	StagePostSurvey Stage = "post_survey"
	StageDone       Stage = "done"
)

// Sentinel is the placeholder recorded for a minute without a response.
const Sentinel = "NA"

// Metric describes one rating collected with every prompt.
type Metric struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
}

// Neutral is the midpoint of the metric's scale.
func (m Metric) Neutral() int {
	return m.Min + (m.Max-m.Min)/2
}

// Question is one fixed field of the pre or post survey.
type Question struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Rating is either an integer score or the NA sentinel.
type Rating struct {
	value int
	valid bool
}

// NA is the rating recorded when no score is available.
var NA = Rating{}

// Score returns a rating holding n.
func Score(n int) Rating {
	return Rating{value: n, valid: true}
}

// Value returns the score and whether it is set.
func (r Rating) Value() (int, bool) {
	return r.value, r.valid
}

func (r Rating) IsNA() bool {
	return !r.valid
}

func (r Rating) String() string {
	if !r.valid {
		return Sentinel
	}

	return strconv.Itoa(r.value)
}

func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.valid {
		return []byte(strconv.Quote(Sentinel)), nil
	}

	return []byte(strconv.Itoa(r.value)), nil
}

func (r *Rating) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	if bytes.Equal(b, []byte("null")) ||
		bytes.Equal(b, []byte(strconv.Quote(Sentinel))) {
		*r = NA
		return nil
	}

	n, err := strconv.Atoi(string(b))
	if err != nil {
		return err
	}

	*r = Score(n)

	return nil
}

// Metrics maps a metric name to its rating.
type Metrics map[string]Rating

// Answers holds the text answers of a survey stage keyed by question.
type Answers map[string]string

// Session is the participant's activity window.
type Session struct {
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	ID              string     `json:"id"`
	ParticipantID   string     `json:"participant_id"`
	ParticipantName string     `json:"participant_name"`
	Stage           Stage      `json:"stage"`
}

// Prompt is one scheduled request for ratings.
type Prompt struct {
	IssuedAt time.Time `json:"issued_at"`
	Deadline time.Time `json:"deadline"`
	Answered bool      `json:"answered"`
}

// Expired reports whether the answer window has closed at now.
func (p *Prompt) Expired(now time.Time) bool {
	return !now.Before(p.Deadline)
}

// Remaining returns the time left to answer the prompt.
func (p *Prompt) Remaining(now time.Time) time.Duration {
	d := p.Deadline.Sub(now)
	if d < 0 {
		return 0
	}

	return d
}

// Response is an answered prompt.
type Response struct {
	PromptTime time.Time `json:"prompt_time"`
	Metrics    Metrics   `json:"metrics"`
}

// Slot is one minute of the reconstructed series.
type Slot struct {
	Minute        time.Time
	Metrics       Metrics
	ParticipantID string
}

// Series is a gap-free, minute-indexed sequence of slots.
type Series []Slot

// Payload is the dataset handed to the upload endpoint or written as a
// backup file.
type Payload struct {
	CSVContent string `json:"csvContent"`
	Filename   string `json:"filename"`
}

// Snapshot is the durable mirror of all session state.
type Snapshot struct {
	Prompt       *Prompt
	NextPromptAt *time.Time
	Pending      *Payload
	PreAnswers   Answers
	PostAnswers  Answers
	Session      Session
	Responses    []Response
}
