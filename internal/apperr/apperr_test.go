package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/moodtrack/internal/apperr"
)

var errMissing = &apperr.Error{
	Message: "missing required fields: %s",
}

func TestErrorFmt(t *testing.T) {
	err := errMissing.Fmt("Age, Gender")

	assert.Equal(t, "missing required fields: Age, Gender", err.Error())
	assert.ErrorIs(t, err, errMissing)
}

func TestErrorWrap(t *testing.T) {
	cause := errors.New("connection refused")

	err := fmt.Errorf("upload: %w", errMissing.Fmt("x").Wrap(cause))

	assert.ErrorIs(t, err, errMissing)
	assert.ErrorIs(t, err, cause)
	assert.Equal(
		t,
		"upload: missing required fields: x: connection refused",
		err.Error(),
	)
}

func TestErrorIsDistinguishesTemplates(t *testing.T) {
	other := &apperr.Error{Message: "something else"}

	assert.NotErrorIs(t, errMissing.Fmt("a"), other)
}
