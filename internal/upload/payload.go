// Package upload serializes a reconstructed series with the survey answers,
// delivers it to the configured endpoint, and writes local backups
package upload

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/ayoisaiah/moodtrack/internal/models"
)

// timeLayout is ISO 8601 in UTC with millisecond precision.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Record is everything that goes into a payload.
type Record struct {
	Location        *time.Location
	Pre             models.Answers
	Post            models.Answers
	ParticipantID   string
	ParticipantName string
	Series          models.Series
	Metrics         []string
	PreQuestions    []models.Question
	PostQuestions   []models.Question
}

// Build renders r as CSV and derives the payload filename from the final
// minute of the series.
func Build(r Record) (models.Payload, error) {
	if len(r.Series) == 0 {
		return models.Payload{}, ErrNoData
	}

	var buf bytes.Buffer

	w := csv.NewWriter(&buf)

	header := append([]string{"ID", "Time"}, r.Metrics...)

	rows := [][]string{header}

	for _, slot := range r.Series {
		row := make([]string, 0, len(header))
		row = append(
			row,
			slot.ParticipantID,
			slot.Minute.UTC().Format(timeLayout),
		)

		for _, name := range r.Metrics {
			rating, ok := slot.Metrics[name]
			if !ok {
				rating = models.NA
			}

			row = append(row, rating.String())
		}

		rows = append(rows, row)
	}

	rows = append(rows, nil)
	rows = append(rows, []string{"Name", r.ParticipantName})
	rows = append(rows, answerRows(r.PreQuestions, r.Pre)...)
	rows = append(rows, nil)
	rows = append(rows, answerRows(r.PostQuestions, r.Post)...)

	if err := w.WriteAll(rows); err != nil {
		return models.Payload{}, err
	}

	last := r.Series[len(r.Series)-1].Minute

	return models.Payload{
		CSVContent: buf.String(),
		Filename:   Filename(r.ParticipantID, last, r.Location),
	}, nil
}

// fileSafe replaces path separators and parent references so an ID can
// only ever name a file inside the backup directory.
var fileSafe = strings.NewReplacer("/", "-", "\\", "-", "..", "-")

// Filename returns <participant>_<MMDD>_<hhmm>.csv for t in loc.
func Filename(participantID string, t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	return fmt.Sprintf(
		"%s_%s.csv",
		fileSafe.Replace(participantID),
		t.In(loc).Format("0102_1504"),
	)
}

func answerRows(questions []models.Question, answers models.Answers) [][]string {
	rows := make([][]string, 0, len(questions))

	for _, q := range questions {
		rows = append(rows, []string{q.Label, answers[q.Key]})
	}

	return rows
}
