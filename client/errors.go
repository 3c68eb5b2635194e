// SPDX-License-Identifier: EPL-2.0

package client

import (
	"errors"
	"fmt"
)

var (
	// ErrApplyInFlight is returned when an apply request is rejected
	// because another one has not finished yet. The rejected request never
	// reaches the network.
	ErrApplyInFlight = errors.New("apply request already in flight")

	// ErrStaleResponse is returned when a request was superseded by a newer
	// request of the same purpose before its result could be applied. It is
	// an expected outcome, not a failure.
	ErrStaleResponse = errors.New("response superseded by a newer request")
)

// APIError is a non-2xx backend response, carrying whatever message the
// backend put in its {"error": ...} body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}
