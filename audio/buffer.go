// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// BufferSource serves an in-memory block of interleaved samples as a Source.
// Decoded backend responses and generated test signals live in memory anyway,
// so this is the Source most of the client actually deals in.
type BufferSource struct {
	sampleRate int
	channels   int
	samples    []float32
	offset     int
}

// NewBufferSource wraps samples without copying them.
func NewBufferSource(sampleRate, channels int, samples []float32) *BufferSource {
	return &BufferSource{
		sampleRate: sampleRate,
		channels:   channels,
		samples:    samples,
	}
}

func (b *BufferSource) SampleRate() int { return b.sampleRate }
func (b *BufferSource) Channels() int   { return b.channels }
func (b *BufferSource) Close() error    { return nil }

// Len reports the remaining number of unread samples.
func (b *BufferSource) Len() int { return len(b.samples) - b.offset }

func (b *BufferSource) ReadSamples(dst []float32) (int, error) {
	if b.offset >= len(b.samples) {
		return 0, io.EOF
	}

	n := copy(dst, b.samples[b.offset:])
	b.offset += n

	if b.offset >= len(b.samples) {
		return n, io.EOF
	}
	return n, nil
}
