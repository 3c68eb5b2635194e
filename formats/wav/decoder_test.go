// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// createWAVFile builds a WAV blob by hand so decoder tests do not depend on
// the encoder under test.
func createWAVFile(sampleRate, channels, bitsPerSample int, samples []int16) []byte {
	buf := new(bytes.Buffer)

	numChannels := uint16(channels)
	bits := uint16(bitsPerSample)
	byteRate := uint32(sampleRate) * uint32(numChannels) * uint32(bits/8)
	blockAlign := uint16(numChannels) * uint16(bits/8)
	dataSize := uint32(len(samples) * 2)
	riffSize := 36 + dataSize

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, riffSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, numChannels)
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, bits)

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)

	for _, s := range samples {
		binary.Write(buf, binary.LittleEndian, s)
	}

	return buf.Bytes()
}

func TestDecoder_ValidWAVFile(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 100, 200, -100, -200, 0}
	wavData := createWAVFile(8000, 1, 16, samples)

	decoder := Decoder{}
	src, err := decoder.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}

	buf := make([]float32, len(samples))
	n, err := src.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error: %v", err)
	}
	if n != len(samples) {
		t.Fatalf("ReadSamples() = %d samples, want %d", n, len(samples))
	}

	for i, s := range samples {
		want := float32(s) / 32768.0
		if buf[i] != want {
			t.Errorf("sample %d = %v, want %v", i, buf[i], want)
		}
	}
}

func TestDecoder_NotAWavFile(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	_, err := decoder.Decode(bytes.NewReader([]byte("definitely not audio data")))
	if !errors.Is(err, ErrNotWavFile) {
		t.Errorf("Decode() error = %v, want ErrNotWavFile", err)
	}
}

func TestDecoder_PlainReaderWithoutSeek(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(8000, 1, 16, []int16{1, 2, 3})

	// io.Reader only; the decoder must buffer it internally.
	decoder := Decoder{}
	src, err := decoder.Decode(io.MultiReader(bytes.NewReader(wavData)))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
}

func TestDecodeMono_StereoKeepsFirstChannel(t *testing.T) {
	t.Parallel()

	// Interleaved stereo: left channel ascends, right channel is noise the
	// decoder must drop.
	samples := []int16{100, -9999, 200, -9999, 300, -9999}
	wavData := createWAVFile(44100, 2, 16, samples)

	rate, mono, err := DecodeMono(wavData)
	if err != nil {
		t.Fatalf("DecodeMono() error: %v", err)
	}

	if rate != 44100 {
		t.Errorf("rate = %d, want 44100", rate)
	}
	if len(mono) != 3 {
		t.Fatalf("len = %d, want 3 frames", len(mono))
	}

	want := []float32{100.0 / 32768.0, 200.0 / 32768.0, 300.0 / 32768.0}
	for i := range want {
		if mono[i] != want[i] {
			t.Errorf("mono[%d] = %v, want %v", i, mono[i], want[i])
		}
	}
}

func TestDecodeMono_Garbage(t *testing.T) {
	t.Parallel()

	if _, _, err := DecodeMono([]byte{0x00, 0x01, 0x02}); err == nil {
		t.Error("DecodeMono() accepted garbage input")
	}
}
