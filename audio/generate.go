// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// ReferenceTonesHz are the seven fixed tones of the default test signal,
// spread across the audible spectrum so every broad EQ band has something
// to bite on.
var ReferenceTonesHz = []float64{120, 440, 880, 1500, 3000, 6000, 10000}

// normalizeFloor is the peak below which a generated buffer is left alone.
// Silence stays silence instead of being blown up by normalization.
const normalizeFloor = 1e-6

// GenerateTones synthesizes duration seconds of summed sine components, one
// per entry in freqs, each at the given amplitude, then peak-normalizes the
// result. The output is deterministic for fixed inputs: no randomness, no
// phase offsets.
func GenerateTones(sampleRate int, duration float64, freqs []float64, amplitude float64) []float32 {
	n := int(float64(sampleRate) * duration)
	if n < 0 {
		n = 0
	}
	out := make([]float32, n)
	if n == 0 || len(freqs) == 0 {
		return out
	}

	for i := range out {
		t := float64(i) / float64(sampleRate)
		sum := 0.0
		for _, f := range freqs {
			sum += amplitude * math.Sin(2*math.Pi*f*t)
		}
		out[i] = float32(sum)
	}

	Normalize(out)
	return out
}

// ReferenceSignal is the default test signal: the seven reference tones at
// equal amplitude.
func ReferenceSignal(sampleRate int, duration float64) []float32 {
	amp := 1.0 / float64(len(ReferenceTonesHz))
	return GenerateTones(sampleRate, duration, ReferenceTonesHz, amp)
}

// Normalize scales samples in place so the peak magnitude is exactly 1.
// Buffers whose peak is at or below the silence floor are left untouched.
func Normalize(samples []float32) {
	peak := float32(0)
	for _, s := range samples {
		if s > peak {
			peak = s
		} else if -s > peak {
			peak = -s
		}
	}

	if peak <= normalizeFloor {
		return
	}

	for i := range samples {
		samples[i] /= peak
	}
}
