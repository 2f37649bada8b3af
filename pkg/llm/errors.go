package llm

import (
	"errors"
	"fmt"
)

// TransportError reports a non-success status or malformed body from the
// chat endpoint. It keeps the status code and raw body for diagnostics.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e TransportError) Error() string {
	return fmt.Sprintf("chat endpoint returned %d: %s", e.StatusCode, e.Body)
}

// IsTransport returns the TransportError inside err, if any.
func IsTransport(err error) (TransportError, bool) {
	var te TransportError
	ok := errors.As(err, &te)
	return te, ok
}

// ErrNoChoices is returned when the endpoint answers 2xx but the body
// carries no choices to consume.
var ErrNoChoices = errors.New("chat response contained no choices")
