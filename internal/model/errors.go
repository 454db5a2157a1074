package model

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by the parsers, the transport and the
// query layer wraps exactly one of these.
var (
	// ErrInvalidSelector is returned for an unknown list or tab name, or a
	// missing/invalid tab argument. The message enumerates valid choices.
	ErrInvalidSelector = errors.New("invalid selector")

	// ErrTransientServer is returned when the portal answers with a
	// degenerate payload, a 5xx status or the connection fails.
	// The query layer retries it once after a fixed delay.
	ErrTransientServer = errors.New("transient server error")

	// ErrDataUnavailable is returned when the document is well formed but
	// holds nothing for the object (no impacts, no observations, ...).
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrMalformedContent is returned when text does not match the layout
	// a parser requires. Retrying reproduces the same content.
	ErrMalformedContent = errors.New("malformed upstream content")
)

// InvalidSelector builds an ErrInvalidSelector naming the valid choices.
func InvalidSelector(what, got string, valid []string) error {
	return fmt.Errorf("%w: unknown %s %q (valid %ss are: %s)",
		ErrInvalidSelector, what, got, what, strings.Join(valid, ", "))
}

// MissingArgument builds an ErrInvalidSelector for a required tab
// argument that was not given.
func MissingArgument(tab Tab, arg string, valid []string) error {
	if len(valid) == 0 {
		return fmt.Errorf("%w: tab %q requires %s", ErrInvalidSelector, tab, arg)
	}
	return fmt.Errorf("%w: tab %q requires %s (one of: %s)",
		ErrInvalidSelector, tab, arg, strings.Join(valid, ", "))
}
