// SPDX-License-Identifier: EPL-2.0

// Package client implements the HTTP contract with the audio-processing
// backend and the request coordination the UI relies on.
//
// # Endpoints
//
// The backend exposes four data endpoints, all consumed here:
//
//	POST /api/spectrum     multipart "audio"              -> {sampleRate, N, magnitudes}
//	POST /api/spectrogram  multipart "audio", "win","hop" -> {sampleRate, N, hop, magnitudes}
//	POST /api/process      multipart "audio", "scheme"    -> WAV bytes
//	GET  /api/presets      ?mode=name                     -> {sliders: [...]}
//
// plus /api/modes and /api/health.
//
// # Coordination
//
// Raw Client calls are plain request/response. The Coordinator adds the
// policy that keeps overlapping calls from corrupting what the user sees:
//
//   - Each request purpose (input spectrum, output spectrum, spectrogram,
//     apply) owns at most one in-flight request.
//   - A new spectrum/spectrogram request cancels the previous one of the
//     same purpose. If the old response still arrives, it is dropped; the
//     update callback only ever runs for the newest request. Cancellation
//     is cooperative; the drop-if-stale check is the correctness backstop,
//     not the abort itself.
//   - A new apply while one is in flight is rejected with ErrApplyInFlight
//     rather than cancelled or queued.
//
// Superseded requests finish with ErrStaleResponse, which callers should
// treat as a non-event. Real failures come back as-is (wrapped transport
// errors or *APIError for non-2xx statuses) and never trigger a retry.
package client
