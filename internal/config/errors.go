package config

import "github.com/ayoisaiah/moodtrack/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid %s duration",
	}

	errInvalidDuration = &apperr.Error{
		Message: "%s must be between %v and %v",
	}

	errWindowTooShort = &apperr.Error{
		Message: "answer window (%v) must not be shorter than the interval (%v)",
	}

	errInvalidAnchor = &apperr.Error{
		Message: "anchor must be %q or %q, got %q",
	}

	errNoMetrics = &apperr.Error{
		Message: "at least one metric must be configured",
	}

	errEmptyName = &apperr.Error{
		Message: "%s entry %d has an empty %s",
	}

	errDuplicateName = &apperr.Error{
		Message: "%s %q is defined more than once",
	}

	errInvalidScale = &apperr.Error{
		Message: "metric %q must have min less than max, got %d..%d",
	}

	errInvalidEndpoint = &apperr.Error{
		Message: "upload endpoint must be an http(s) URL, got %q",
	}

	errEmptyPrefix = &apperr.Error{
		Message: "state prefix cannot be empty",
	}
)
