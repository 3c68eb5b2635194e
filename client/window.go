// SPDX-License-Identifier: EPL-2.0

package client

// maxSpectrogramWindow caps the analysis window regardless of signal length.
const maxSpectrogramWindow = 1024

// SpectrogramWindow picks the analysis window and hop for a signal of
// signalLen samples: the largest power of two not exceeding
// min(1024, signalLen), with a hop of a quarter window, floored at 1.
func SpectrogramWindow(signalLen int) (win, hop int) {
	limit := signalLen
	if limit > maxSpectrogramWindow {
		limit = maxSpectrogramWindow
	}
	if limit < 1 {
		return 1, 1
	}

	win = 1
	for win*2 <= limit {
		win *= 2
	}

	hop = win / 4
	if hop < 1 {
		hop = 1
	}

	return win, hop
}
