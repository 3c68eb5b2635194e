// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files into an audio.Source for loading
// into an equalizer session.
//
//	decoder := vorbis.Decoder{}
//	src, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	mono, rate, err := audio.CollectMono(src, 0)
//
// Decoding is backed by github.com/jfreymuth/oggvorbis, which already
// produces float32 samples in [-1,1], so no requantization happens here.
package vorbis
