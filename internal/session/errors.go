package session

import "github.com/ayoisaiah/moodtrack/internal/apperr"

var (
	// ErrValidation means one or more required survey fields are empty.
	ErrValidation = &apperr.Error{
		Message: "please fill in: %s",
	}

	// ErrInvalidStage means the operation is not allowed in the current stage.
	ErrInvalidStage = &apperr.Error{
		Message: "cannot %s while the session is in the %s stage",
	}

	// ErrDeliveryPending means an upload is already in flight.
	ErrDeliveryPending = &apperr.Error{
		Message: "an upload is already in progress",
	}

	errPersist = &apperr.Error{
		Message: "unable to save session state",
	}

	errSessionCmd = &apperr.Error{
		Message: "unable to run the post-session command",
	}
)
