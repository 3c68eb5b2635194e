// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files into an audio.Source for loading into an
// equalizer session.
//
//	decoder := aiff.Decoder{}
//	src, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
// This package uses github.com/go-audio/aiff under the hood and accepts
// 16-bit PCM only; other bit depths are rejected with
// ErrOnlyPCM16bitSupported.
package aiff
