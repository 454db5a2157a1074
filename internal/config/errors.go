package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrEmptyEndpoint is returned when one of the portal URLs is empty.
	ErrEmptyEndpoint = errors.New("invalid endpoint: portal URLs must not be empty")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidRetryDelay is returned when the retry delay is negative.
	ErrInvalidRetryDelay = errors.New("invalid retry delay: must be non-negative")

	// ErrInvalidRate is returned when the request rate is negative.
	// Use 0 to disable rate limiting.
	ErrInvalidRate = errors.New("invalid requests per second: must be non-negative")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidCacheMaxAge is returned when the cache age is negative.
	ErrInvalidCacheMaxAge = errors.New("invalid cache max age: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrConflictingReportFormats is returned when more than one of
	// --json, --markdown and --xlsx is given.
	ErrConflictingReportFormats = errors.New("conflicting report formats: use only one of --json, --markdown and --xlsx")

	// ErrXLSXNeedsFile is returned when --xlsx is given without --output.
	ErrXLSXNeedsFile = errors.New("xlsx report requires --output")

	// ErrInvalidEnv is returned when a NEOCC_* variable cannot be parsed.
	ErrInvalidEnv = errors.New("invalid environment override")
)
