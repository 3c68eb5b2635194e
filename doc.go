// SPDX-License-Identifier: EPL-2.0

// Package eqlab is the client-side core of a graphic equalizer that keeps
// heavy signal processing on a remote backend.
//
// The local side owns the audio material and the equalizer state; the
// backend computes spectra, spectrograms, and the filtered signal. A
// Session ties the two together.
//
// # Quick Start
//
//	api := client.New("http://localhost:5000")
//	s := eqlab.NewSession(api)
//
//	// Load an audio file
//	f, _ := os.Open("voice.ogg")
//	defer f.Close()
//	_ = s.LoadReader("ogg", f)
//
//	// Cut everything below 1 kHz and apply
//	s.AddBand(eq.NewBand(0, 1000, 0))
//	_ = s.Apply(context.Background())
//
//	// The processed signal is now available
//	out, rate := s.Output()
//
// # Equalizer State
//
// Two representations of the equalizer coexist:
//
//   - a manual Scheme of free-form bands the user edits directly, and
//   - a preset GroupSet, where labeled sliders move several frequency
//     windows with one gain.
//
// When a preset is active its groups win; otherwise the manual bands are
// sent. eq.Resolve flattens either into the wire format.
//
// # Supported Formats
//
// The session decodes the following audio formats, all downmixed to mono:
//   - WAV (PCM 16-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 16-bit) via formats/aiff
//
// When there is no file at hand, GenerateTestSignal produces a reference
// tone mix locally, tuned to the active preset's windows when one is set.
//
// # Views
//
// Spectrum and spectrogram refreshes go through a request coordinator:
// rapid repeated refreshes cancel their predecessors, and only the newest
// response reaches the caller's update callback. See the client package
// for the exact policy.
package eqlab
