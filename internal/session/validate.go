package session

import (
	"strings"

	"github.com/gookit/validate"

	"github.com/ayoisaiah/moodtrack/internal/models"
)

type field struct {
	key   string
	label string
	value string
}

// requireAll validates every field as one unit and returns ErrValidation
// listing the labels of the empty ones.
func requireAll(fields []field) error {
	data := make(map[string]any, len(fields))
	for _, f := range fields {
		data[f.key] = strings.TrimSpace(f.value)
	}

	v := validate.Map(data)
	v.StopOnError = false

	for _, f := range fields {
		v.StringRule(f.key, "required")
	}

	if v.Validate() {
		return nil
	}

	var missing []string

	for _, f := range fields {
		if _, ok := v.Errors[f.key]; ok {
			missing = append(missing, f.label)
		}
	}

	return ErrValidation.Fmt(strings.Join(missing, ", "))
}

func answerFields(questions []models.Question, answers models.Answers) []field {
	fields := make([]field, 0, len(questions))

	for _, q := range questions {
		fields = append(fields, field{
			key:   q.Key,
			label: q.Label,
			value: answers[q.Key],
		})
	}

	return fields
}

// normalize keeps only the configured questions with trimmed answers.
func normalize(questions []models.Question, answers models.Answers) models.Answers {
	out := make(models.Answers, len(questions))

	for _, q := range questions {
		out[q.Key] = strings.TrimSpace(answers[q.Key])
	}

	return out
}
