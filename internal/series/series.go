// Package series rebuilds a gap-free, minute-by-minute rating series from the
// sparse log of answered prompts
package series

import (
	"time"

	"github.com/ayoisaiah/moodtrack/internal/apperr"
	"github.com/ayoisaiah/moodtrack/internal/models"
	"github.com/ayoisaiah/moodtrack/internal/timeutil"
)

// ErrClockAnomaly is returned alongside an empty series when the session ends
// before it starts.
var ErrClockAnomaly = &apperr.Error{
	Message: "session end (%s) is before its start (%s)",
}

// Reconstruct returns one slot per minute from start to end inclusive. Both
// bounds and every response time are truncated to the minute. When several
// responses fall in the same minute, the one that appears first in log wins.
// Minutes without a response, and configured metrics missing from a response,
// are filled with the NA sentinel.
//
// Reconstruct does not modify log.
func Reconstruct(
	log []models.Response,
	start, end *time.Time,
	participantID string,
	metrics []string,
) (models.Series, error) {
	if start == nil || end == nil {
		return models.Series{}, nil
	}

	first := timeutil.TruncateToMinute(*start)
	last := timeutil.TruncateToMinute(*end)

	if last.Before(first) {
		return models.Series{}, ErrClockAnomaly.Fmt(
			end.Format(time.RFC3339),
			start.Format(time.RFC3339),
		)
	}

	byMinute := make(map[int64]models.Response, len(log))

	for _, r := range log {
		k := timeutil.TruncateToMinute(r.PromptTime).Unix()
		if _, ok := byMinute[k]; ok {
			continue
		}

		byMinute[k] = r
	}

	out := make(models.Series, 0, timeutil.MinutesBetween(first, last))

	for m := first; !m.After(last); m = m.Add(time.Minute) {
		r, ok := byMinute[m.Unix()]

		slot := models.Slot{
			Minute:        m,
			ParticipantID: participantID,
			Metrics:       make(models.Metrics, len(metrics)),
		}

		for _, name := range metrics {
			rating := models.NA

			if ok {
				if v, found := r.Metrics[name]; found {
					rating = v
				}
			}

			slot.Metrics[name] = rating
		}

		out = append(out, slot)
	}

	return out, nil
}
