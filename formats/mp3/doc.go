// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files into an audio.Source, so users can load
// compressed audio straight into an equalizer session.
//
//	decoder := mp3.Decoder{}
//	src, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	mono, rate, err := audio.CollectMono(src, 0)
//
// Decoding is backed by github.com/hajimehoshi/go-mp3, which always emits
// a 16-bit stereo stream regardless of the source channel layout.
package mp3
