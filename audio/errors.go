// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidChannelCount = errors.New("channel count must be at least 1")
	ErrInvalidSampleRate   = errors.New("sample rate must be positive")
)
