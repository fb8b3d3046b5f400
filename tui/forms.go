package tui

import (
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/ayoisaiah/moodtrack/internal/models"
)

type formKind int

const (
	noForm formKind = iota
	preForm
	promptForm
	postForm
)

// newPreForm asks for the participant's identity and the pre-survey.
func (m *Model) newPreForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().Title("ID").Value(&m.participantID),
		huh.NewInput().Title("Name").Value(&m.participantName),
	}

	fields = append(fields, m.questionFields(m.survey.PreQuestions, m.pre)...)

	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true)
}

// newPromptForm asks for one rating per metric, preselecting the neutral
// midpoint of each scale.
func (m *Model) newPromptForm() *huh.Form {
	defaults := m.ctrl.Defaults()

	m.ratings = make(map[string]*int, len(m.survey.Metrics))

	fields := make([]huh.Field, 0, len(m.survey.Metrics))

	for _, metric := range m.survey.Metrics {
		v := metric.Neutral()
		if n, ok := defaults[metric.Name].Value(); ok {
			v = n
		}

		m.ratings[metric.Name] = &v

		opts := make([]huh.Option[int], 0, metric.Max-metric.Min+1)
		for i := metric.Min; i <= metric.Max; i++ {
			opts = append(opts, huh.NewOption(strconv.Itoa(i), i))
		}

		title := metric.Name
		if metric.Label != "" {
			title += ": " + metric.Label
		}

		fields = append(fields, huh.NewSelect[int]().
			Title(title).
			Options(opts...).
			Value(m.ratings[metric.Name]),
		)
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true)
}

func (m *Model) newPostForm() *huh.Form {
	fields := m.questionFields(m.survey.PostQuestions, m.post)

	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true)
}

func (m *Model) questionFields(
	questions []models.Question,
	values map[string]*string,
) []huh.Field {
	fields := make([]huh.Field, 0, len(questions))

	for _, q := range questions {
		v, ok := values[q.Key]
		if !ok {
			v = new(string)
			values[q.Key] = v
		}

		fields = append(fields, huh.NewInput().Title(q.Label).Value(v))
	}

	return fields
}

func collect(values map[string]*string) models.Answers {
	out := make(models.Answers, len(values))
	for k, v := range values {
		out[k] = *v
	}

	return out
}

func (m *Model) collectRatings() models.Metrics {
	out := make(models.Metrics, len(m.ratings))
	for k, v := range m.ratings {
		out[k] = models.Score(*v)
	}

	return out
}
