// Package parser converts raw provider payloads into primitive observations.
package parser

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument is returned when a payload parses cleanly but carries no
// usable data points. A zero-length series would silently break the economic
// simulation downstream, so it is surfaced here and the pipeline decides
// whether to skip-and-continue per source.
var ErrEmptyDocument = errors.New("empty or invalid document")

// APIError is a well-formed provider response carrying a provider-level
// error payload (an ENTSO-E Reason element) instead of data.
type APIError struct {
	Reason string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s", e.Reason)
}
