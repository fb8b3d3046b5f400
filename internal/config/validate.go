package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/ayoisaiah/moodtrack/internal/models"
)

var (
	minInterval = 10 * time.Second
	maxInterval = 60 * time.Minute

	minAnswerWindow = 10 * time.Second
	maxAnswerWindow = 60 * time.Minute

	minUploadTimeout = 1 * time.Second
	maxUploadTimeout = 5 * time.Minute
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateSurvey(); err != nil {
		return err
	}

	if err := c.validateMetrics(); err != nil {
		return err
	}

	if err := validateQuestions("pre-survey question", c.Survey.PreQuestions); err != nil {
		return err
	}

	if err := validateQuestions("post-survey question", c.Survey.PostQuestions); err != nil {
		return err
	}

	if err := c.validateUpload(); err != nil {
		return err
	}

	if strings.TrimSpace(c.Settings.StatePrefix) == "" {
		return errEmptyPrefix
	}

	return nil
}

// validateSurvey checks the prompt cadence.
func (c *Config) validateSurvey() error {
	s := c.Survey

	if s.Interval < minInterval || s.Interval > maxInterval {
		return errInvalidDuration.Fmt("interval", minInterval, maxInterval)
	}

	if s.AnswerWindow < minAnswerWindow || s.AnswerWindow > maxAnswerWindow {
		return errInvalidDuration.Fmt("answer window", minAnswerWindow, maxAnswerWindow)
	}

	if s.AnswerWindow < s.Interval {
		return errWindowTooShort.Fmt(s.AnswerWindow, s.Interval)
	}

	if s.Anchor != "issued" && s.Anchor != "answered" {
		return errInvalidAnchor.Fmt("issued", "answered", s.Anchor)
	}

	return nil
}

func (c *Config) validateMetrics() error {
	if len(c.Survey.Metrics) == 0 {
		return errNoMetrics
	}

	seen := make(map[string]bool, len(c.Survey.Metrics))

	for i, m := range c.Survey.Metrics {
		if strings.TrimSpace(m.Name) == "" {
			return errEmptyName.Fmt("metric", i+1, "name")
		}

		if seen[m.Name] {
			return errDuplicateName.Fmt("metric", m.Name)
		}

		seen[m.Name] = true

		if m.Min >= m.Max {
			return errInvalidScale.Fmt(m.Name, m.Min, m.Max)
		}
	}

	return nil
}

func validateQuestions(group string, questions []models.Question) error {
	seen := make(map[string]bool, len(questions))

	for i, q := range questions {
		if strings.TrimSpace(q.Key) == "" {
			return errEmptyName.Fmt(group, i+1, "key")
		}

		if strings.TrimSpace(q.Label) == "" {
			return errEmptyName.Fmt(group, i+1, "label")
		}

		if seen[q.Key] {
			return errDuplicateName.Fmt(group, q.Key)
		}

		seen[q.Key] = true
	}

	return nil
}

func (c *Config) validateUpload() error {
	if c.Upload.Timeout < minUploadTimeout || c.Upload.Timeout > maxUploadTimeout {
		return errInvalidDuration.Fmt("upload timeout", minUploadTimeout, maxUploadTimeout)
	}

	if c.Upload.Endpoint == "" {
		return nil
	}

	u, err := url.Parse(c.Upload.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errInvalidEndpoint.Fmt(c.Upload.Endpoint)
	}

	return nil
}
