// SPDX-License-Identifier: EPL-2.0

// Package audio provides the signal plumbing for the equalizer client.
//
// The client deals in whole signals: it decodes a user file, folds it to
// mono, and POSTs the entire buffer to the processing backend as a WAV blob.
// This package supplies the pieces of that path:
//   - Source/Decoder interfaces plus a format Registry
//   - BufferSource for in-memory signals
//   - ReadAll, Downmix, Resample and CollectMono for buffer-based collection
//   - GenerateTones/ReferenceSignal for deterministic multi-tone test signals
//
// # Loading a file to a mono buffer
//
//	decoder, _ := registry.Get("wav")
//	src, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	mono, rate, err := audio.CollectMono(src, 0) // 0 keeps the native rate
//
// # Test signals
//
//	sig := audio.ReferenceSignal(44100, 5) // seven fixed tones, 5 seconds
//	sig = audio.GenerateTones(44100, 5, []float64{440, 880}, 0.45)
//
// Generated signals are peak-normalized to 1.0 unless effectively silent,
// and are bit-identical across calls with the same arguments.
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// Sources return io.EOF when no more data is available; other errors
// indicate problems with the underlying input.
package audio
