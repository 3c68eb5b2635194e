// SPDX-License-Identifier: EPL-2.0

package eq

import (
	"encoding/json"
	"fmt"
)

const (
	// MinGain and MaxGain bound every band gain. 1 is unity (no change),
	// 0 is full attenuation, 2 doubles the magnitude in the band.
	MinGain = 0.0
	MaxGain = 2.0

	// MinWidthHz keeps every band at least 1 Hz wide.
	MinWidthHz = 1.0
)

// Band is one frequency range with a gain multiplier. The JSON shape matches
// the backend wire format.
type Band struct {
	StartHz float64 `json:"startHz"`
	WidthHz float64 `json:"widthHz"`
	Gain    float64 `json:"gain"`
}

// NewBand builds a band with its fields normalized: StartHz floors at 0,
// WidthHz at MinWidthHz, Gain is clamped to [MinGain, MaxGain].
func NewBand(startHz, widthHz, gain float64) Band {
	if startHz < 0 {
		startHz = 0
	}
	if widthHz < MinWidthHz {
		widthHz = MinWidthHz
	}

	return Band{
		StartHz: startHz,
		WidthHz: widthHz,
		Gain:    clampGain(gain),
	}
}

// DefaultBand is the band appended when the user adds one without picking
// values: 100 Hz wide starting at 100 Hz, unity gain.
func DefaultBand() Band {
	return NewBand(100, 100, 1)
}

// EndHz is the upper edge of the band.
func (b Band) EndHz() float64 {
	return b.StartHz + b.WidthHz
}

// Scheme is an ordered, mutable collection of bands tied to a sample rate.
// Order is insertion order; ranges may overlap freely.
type Scheme struct {
	SampleRate int    `json:"sampleRate"`
	Bands      []Band `json:"bands"`
}

// NewScheme creates an empty scheme for the given sample rate.
func NewScheme(sampleRate int) *Scheme {
	return &Scheme{
		SampleRate: sampleRate,
		Bands:      []Band{},
	}
}

// Add appends a band, normalizing it first.
func (s *Scheme) Add(b Band) {
	s.Bands = append(s.Bands, NewBand(b.StartHz, b.WidthHz, b.Gain))
}

// Remove deletes the band at index i. An out-of-range index is a no-op;
// removal of a band that is already gone is not worth surfacing.
func (s *Scheme) Remove(i int) {
	if i < 0 || i >= len(s.Bands) {
		return
	}
	s.Bands = append(s.Bands[:i], s.Bands[i+1:]...)
}

// SetGain replaces the gain of the band at index i, clamped. Out-of-range
// indexes are ignored like Remove.
func (s *Scheme) SetGain(i int, gain float64) {
	if i < 0 || i >= len(s.Bands) {
		return
	}
	s.Bands[i].Gain = clampGain(gain)
}

// MarshalJSON emits the persisted scheme document {sampleRate, bands}.
func (s *Scheme) MarshalJSON() ([]byte, error) {
	bands := s.Bands
	if bands == nil {
		bands = []Band{}
	}

	doc := struct {
		SampleRate int    `json:"sampleRate"`
		Bands      []Band `json:"bands"`
	}{s.SampleRate, bands}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return data, nil
}

// ParseScheme reads a persisted scheme document. A document without a
// "bands" field yields an empty band list rather than an error; gains are
// clamped on the way in so a hand-edited file cannot smuggle one outside
// [MinGain, MaxGain].
func ParseScheme(data []byte) (*Scheme, error) {
	var doc struct {
		SampleRate int    `json:"sampleRate"`
		Bands      []Band `json:"bands"`
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s := NewScheme(doc.SampleRate)
	for _, b := range doc.Bands {
		s.Add(b)
	}
	return s, nil
}

func clampGain(g float64) float64 {
	if g < MinGain {
		return MinGain
	}
	if g > MaxGain {
		return MaxGain
	}
	return g
}
