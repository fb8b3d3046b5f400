package upload

import "github.com/ayoisaiah/moodtrack/internal/apperr"

var (
	// ErrNoData means there is nothing to upload.
	ErrNoData = &apperr.Error{
		Message: "no data has been collected yet",
	}

	// ErrDelivery is returned when the payload did not reach the endpoint.
	// The payload should be exported as a backup and sent manually.
	ErrDelivery = &apperr.Error{
		Message: "upload of %s failed",
	}

	errNoEndpoint = &apperr.Error{
		Message: "no upload endpoint is configured",
	}

	errUnexpectedStatus = &apperr.Error{
		Message: "endpoint responded with %s: %s",
	}

	errWriteBackup = &apperr.Error{
		Message: "unable to write backup file %s",
	}
)
