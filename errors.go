// SPDX-License-Identifier: EPL-2.0

package eqlab

import "errors"

var (
	// ErrUnknownFormat means no decoder is registered for the requested
	// format key.
	ErrUnknownFormat = errors.New("unknown audio format")
	// ErrNoSignal means the operation needs an input signal and none has
	// been loaded or generated yet.
	ErrNoSignal = errors.New("no input signal")
	// ErrNoOutput means the operation needs a processed signal and Apply
	// has not produced one yet.
	ErrNoOutput = errors.New("no processed output")
)
