// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/eqlab/audio"
)

// Decoder reads PCM 16-bit WAV files into an in-memory audio.Source. It is
// built on github.com/go-audio/wav, which copes with the chunk layouts real
// files show up with (LIST/INFO metadata, padding, and so on).
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := newDecoder(r)
	if err != nil {
		return nil, err
	}

	rate, channels, samples, err := readAllPCM(dec)
	if err != nil {
		return nil, err
	}

	return audio.NewBufferSource(rate, channels, samples), nil
}

// DecodeMono decodes a WAV blob to a mono float signal. Multichannel input
// keeps the first channel only, matching what the processing backend does
// with the files it receives.
func DecodeMono(data []byte) (sampleRate int, samples []float32, err error) {
	dec, err := newDecoder(bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}

	rate, channels, interleaved, err := readAllPCM(dec)
	if err != nil {
		return 0, nil, err
	}

	if channels == 1 {
		return rate, interleaved, nil
	}

	mono := make([]float32, len(interleaved)/channels)
	for i := range mono {
		mono[i] = interleaved[i*channels]
	}
	return rate, mono, nil
}

func newDecoder(r io.Reader) (*gowav.Decoder, error) {
	// go-audio needs an io.ReadSeeker to walk the chunk list.
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	return dec, nil
}

func readAllPCM(dec *gowav.Decoder) (rate, channels int, samples []float32, err error) {
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return 0, 0, nil, fmt.Errorf("%w", err)
	}

	if dec.BitDepth != 16 {
		return 0, 0, nil, ErrOnlyPCM16bitSupported
	}

	channels = int(dec.NumChans)
	if channels < 1 {
		channels = 1
	}

	samples = make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float32(v) / 32768.0
	}

	return int(dec.SampleRate), channels, samples, nil
}
