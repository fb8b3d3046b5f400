package scheduler

import "github.com/ayoisaiah/moodtrack/internal/apperr"

var (
	// ErrPromptActive means a prompt is already awaiting an answer.
	ErrPromptActive = &apperr.Error{
		Message: "a prompt is already active",
	}

	// ErrNoActivePrompt means there is nothing to answer.
	ErrNoActivePrompt = &apperr.Error{
		Message: "no prompt is awaiting an answer",
	}

	// ErrPromptTimeout is logged when a prompt closes without an answer.
	ErrPromptTimeout = &apperr.Error{
		Message: "prompt issued at %s was not answered in time",
	}

	// ErrTimedOutAway is the notice returned when a persisted prompt expired
	// while moodtrack was not running.
	ErrTimedOutAway = &apperr.Error{
		Message: "the prompt issued at %s timed out while you were away",
	}
)
