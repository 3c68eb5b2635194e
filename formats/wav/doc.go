// SPDX-License-Identifier: EPL-2.0

// Package wav encodes and decodes the PCM 16-bit WAV blobs exchanged with
// the processing backend.
//
// # Encoding
//
// Encode produces the exact byte layout the backend contract pins down: a
// 44-byte RIFF/WAVE header (PCM, mono, 16-bit) followed by little-endian
// int16 samples. Quantization is asymmetric (negative values scale by
// 32768, non-negative by 32767) so -1.0 maps to -32768 and 1.0 to 32767:
//
//	blob := wav.Encode(44100, samples)
//
// WritePCM16 is the streaming form for writing to a file or network body.
//
// # Decoding
//
// The Decoder (an audio.Decoder) and DecodeMono read PCM 16-bit WAV data,
// such as the processed audio the backend returns:
//
//	rate, samples, err := wav.DecodeMono(body)
//	if err != nil {
//	    // Handle error
//	}
//
// Decoding uses github.com/go-audio/wav, so files with extra metadata
// chunks are handled; anything other than 16-bit PCM is rejected with
// ErrOnlyPCM16bitSupported.
package wav
