// SPDX-License-Identifier: EPL-2.0

package utils

// QuantizeSample converts a float sample in [-1,1] to signed 16-bit PCM.
// Values outside [-1,1] are clamped first.
//
// The mapping is asymmetric on purpose: negative values scale by 32768 and
// non-negative values by 32767, so -1.0 maps to -32768 and 1.0 to 32767.
// Both ends of the int16 range are reachable and the encoding is bit-stable
// across runs.
func QuantizeSample(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	if x < 0 {
		return int16(x * 32768.0)
	}
	return int16(x * 32767.0)
}
