// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/eqlab/utils"
)

// ReadAll drains a Source into a single interleaved buffer.
func ReadAll(src Source) ([]float32, error) {
	var out []float32
	buf := make([]float32, 4096)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	return out, nil
}

// Downmix folds interleaved multi-channel samples to mono by averaging the
// channels of each frame. Mono input is returned as-is. A trailing partial
// frame is dropped.
func Downmix(samples []float32, channels int) ([]float32, error) {
	if channels < 1 {
		return nil, ErrInvalidChannelCount
	}
	if channels == 1 {
		return samples, nil
	}

	frames := len(samples) / channels
	mono := make([]float32, frames)
	inv := float32(1.0) / float32(channels)

	for f := 0; f < frames; f++ {
		sum := float32(0)
		base := f * channels
		for c := 0; c < channels; c++ {
			sum += samples[base+c]
		}
		mono[f] = sum * inv
	}

	return mono, nil
}

// Resample converts a mono buffer from srcRate to dstRate using Catmull-Rom
// cubic interpolation over the four neighboring samples. Equal rates return
// the input unchanged.
func Resample(mono []float32, srcRate, dstRate int) ([]float32, error) {
	if srcRate <= 0 || dstRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if srcRate == dstRate || len(mono) == 0 {
		return mono, nil
	}

	ratio := float64(srcRate) / float64(dstRate)
	outLen := int(math.Floor(float64(len(mono)) / ratio))
	if outLen < 1 {
		outLen = 1
	}

	out := make([]float32, outLen)
	last := len(mono) - 1

	at := func(i int) float32 {
		if i < 0 {
			i = 0
		} else if i > last {
			i = last
		}
		return mono[i]
	}

	for i := range out {
		pos := float64(i) * ratio
		idx := int(pos)
		frac := float32(pos - float64(idx))

		out[i] = utils.CatmullRom(at(idx-1), at(idx), at(idx+1), at(idx+2), frac)
	}

	return out, nil
}

// CollectMono drains src, folds it to mono and, when targetRate is non-zero
// and differs from the native rate, resamples it. It returns the samples and
// the rate they ended up at.
func CollectMono(src Source, targetRate int) ([]float32, int, error) {
	interleaved, err := ReadAll(src)
	if err != nil {
		return nil, 0, fmt.Errorf("%w", err)
	}

	mono, err := Downmix(interleaved, src.Channels())
	if err != nil {
		return nil, 0, fmt.Errorf("%w", err)
	}

	rate := src.SampleRate()
	if targetRate == 0 || targetRate == rate {
		return mono, rate, nil
	}

	mono, err = Resample(mono, rate, targetRate)
	if err != nil {
		return nil, 0, fmt.Errorf("%w", err)
	}
	return mono, targetRate, nil
}
