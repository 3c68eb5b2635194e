// SPDX-License-Identifier: EPL-2.0

package eqlab

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/ik5/eqlab/audio"
	"github.com/ik5/eqlab/client"
	"github.com/ik5/eqlab/eq"
	"github.com/ik5/eqlab/formats/wav"
)

const (
	// DefaultSampleRate is used for generated signals when nothing has
	// been loaded yet.
	DefaultSampleRate = 44100
	// DefaultToneDuration is the length, in seconds, of a generated test
	// signal when the caller does not ask for one.
	DefaultToneDuration = 5.0
	// ModeManual is the preset mode in which the free-form band scheme
	// drives the equalizer instead of preset sliders.
	ModeManual = ""
)

// Session holds one user's equalizer state: the input signal, the
// equalizer settings, and the last processed output. All methods are safe
// for concurrent use; network calls run without the session lock held.
type Session struct {
	api      *client.Client
	coord    *client.Coordinator
	log      *zap.Logger
	registry *audio.Registry

	mu         sync.Mutex
	sampleRate int
	signal     []float32
	output     []float32
	outputRate int
	scheme     *eq.Scheme
	groups     eq.GroupSet
	mode       string
}

type SessionOption func(*Session)

// WithSessionLogger attaches a structured logger to the session and its
// request coordinator. The default discards everything.
func WithSessionLogger(l *zap.Logger) SessionOption {
	return func(s *Session) { s.log = l }
}

// WithRegistry substitutes the decoder registry, e.g. to add a format.
func WithRegistry(r *audio.Registry) SessionOption {
	return func(s *Session) { s.registry = r }
}

// NewSession creates a session talking to the given backend client.
func NewSession(api *client.Client, opts ...SessionOption) *Session {
	s := &Session{
		api:        api,
		log:        zap.NewNop(),
		registry:   DefaultRegistry(),
		sampleRate: DefaultSampleRate,
		scheme:     eq.NewScheme(DefaultSampleRate),
		mode:       ModeManual,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.coord = client.NewCoordinator(api, client.WithCoordinatorLogger(s.log))
	return s
}

// LoadSignal installs mono samples as the new input. The band scheme is
// reset to match the new sample rate and any previous output is dropped.
func (s *Session) LoadSignal(sampleRate int, samples []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.installSignal(sampleRate, samples)
	s.scheme = eq.NewScheme(sampleRate)
}

// LoadReader decodes audio from r using the registered decoder for format
// (e.g. "wav", "mp3", "ogg", "aiff"), downmixes it to mono at its native
// rate, and installs it as the new input.
func (s *Session) LoadReader(format string, r io.Reader) error {
	dec, ok := s.registry.Get(format)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	src, err := dec.Decode(r)
	if err != nil {
		return fmt.Errorf("decoding %s input: %w", format, err)
	}
	defer src.Close()

	samples, rate, err := audio.CollectMono(src, 0)
	if err != nil {
		return fmt.Errorf("collecting %s input: %w", format, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.installSignal(rate, samples)
	s.scheme = eq.NewScheme(rate)

	s.log.Info("signal loaded",
		zap.String("format", format),
		zap.Int("sampleRate", rate),
		zap.Int("samples", len(samples)))
	return nil
}

// GenerateTestSignal replaces the input with a locally synthesized tone
// mix of the given duration in seconds (non-positive picks the default).
// With an active preset the tones sit at the preset windows' center
// frequencies; otherwise a fixed reference set covers the audible range.
// The equalizer settings are kept.
func (s *Session) GenerateTestSignal(duration float64) {
	if duration <= 0 {
		duration = DefaultToneDuration
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rate := s.sampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}

	var samples []float32
	if s.mode != ModeManual && len(s.groups) > 0 {
		centers := s.groups.ToneCenters()
		samples = audio.GenerateTones(rate, duration, centers, 0.9/float64(len(centers)))
	} else {
		samples = audio.ReferenceSignal(rate, duration)
	}

	s.installSignal(rate, samples)
}

// installSignal swaps in a new input and invalidates the stale output.
// Callers hold s.mu.
func (s *Session) installSignal(sampleRate int, samples []float32) {
	s.sampleRate = sampleRate
	s.signal = samples
	s.output = nil
	s.outputRate = 0
}

// SetMode switches the preset mode. ModeManual drops the preset groups and
// returns control to the band scheme; any other mode fetches its slider
// catalog from the backend and discards the manual scheme, since only one
// representation governs the output at a time. On error the session is
// left unchanged.
func (s *Session) SetMode(ctx context.Context, mode string) error {
	if mode == ModeManual {
		s.mu.Lock()
		s.mode = ModeManual
		s.groups = nil
		s.mu.Unlock()
		return nil
	}

	groups, err := s.api.Presets(ctx, mode)
	if err != nil {
		return fmt.Errorf("fetching %q presets: %w", mode, err)
	}

	s.mu.Lock()
	s.mode = mode
	s.groups = groups
	s.scheme = eq.NewScheme(s.sampleRate)
	s.mu.Unlock()

	s.log.Info("preset mode set",
		zap.String("mode", mode),
		zap.Int("groups", len(groups)))
	return nil
}

// LoadPresetGroups installs preset sliders from a raw catalog document, as
// served by the backend or stored in a file.
func (s *Session) LoadPresetGroups(data []byte) error {
	groups, err := eq.ParseGroups(data)
	if err != nil {
		return fmt.Errorf("parsing preset groups: %w", err)
	}

	s.mu.Lock()
	s.groups = groups
	if len(groups) > 0 && s.mode == ModeManual {
		s.mode = "custom"
	}
	s.mu.Unlock()
	return nil
}

// Mode returns the active preset mode, ModeManual when none.
func (s *Session) Mode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Groups returns the active preset sliders.
func (s *Session) Groups() eq.GroupSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.groups
}

// AddBand appends a band to the manual scheme.
func (s *Session) AddBand(b eq.Band) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheme.Add(b)
}

// RemoveBand removes the i-th manual band. Out-of-range indexes are ignored.
func (s *Session) RemoveBand(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheme.Remove(i)
}

// SetBandGain updates the i-th manual band's gain, clamped to the valid
// range. Out-of-range indexes are ignored.
func (s *Session) SetBandGain(i int, gain float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheme.SetGain(i, gain)
}

// SetGroupGain updates a preset slider's gain, clamped to the valid range.
// Out-of-range indexes are ignored.
func (s *Session) SetGroupGain(i int, gain float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.groups) {
		return
	}
	s.groups[i].Gain = min(max(gain, eq.MinGain), eq.MaxGain)
}

// Bands returns a copy of the manual band scheme's bands.
func (s *Session) Bands() []eq.Band {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]eq.Band, len(s.scheme.Bands))
	copy(out, s.scheme.Bands)
	return out
}

// ResolvedBands flattens the active equalizer state, preset sliders or
// manual bands, into the band list the backend consumes.
func (s *Session) ResolvedBands() []eq.Band {
	s.mu.Lock()
	defer s.mu.Unlock()
	return eq.Resolve(s.scheme, s.groups)
}

// Signal returns the input samples and their sample rate.
func (s *Session) Signal() ([]float32, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signal, s.sampleRate
}

// Output returns the last processed samples and their sample rate, or nil
// when Apply has not run yet.
func (s *Session) Output() ([]float32, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.output, s.outputRate
}

// InputWAV encodes the input signal as a PCM16 WAV blob, the shape every
// backend endpoint expects.
func (s *Session) InputWAV() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.signal) == 0 {
		return nil, ErrNoSignal
	}
	return wav.Encode(s.sampleRate, s.signal), nil
}

// RefreshInputSpectrum fetches the input signal's spectrum and hands it to
// update. Superseded refreshes return client.ErrStaleResponse and never
// reach update.
func (s *Session) RefreshInputSpectrum(ctx context.Context, update func(*client.SpectrumResult)) error {
	blob, err := s.InputWAV()
	if err != nil {
		return err
	}
	return s.coord.Spectrum(ctx, client.PurposeSpectrumInput, blob, update)
}

// RefreshOutputSpectrum fetches the processed signal's spectrum.
func (s *Session) RefreshOutputSpectrum(ctx context.Context, update func(*client.SpectrumResult)) error {
	s.mu.Lock()
	if len(s.output) == 0 {
		s.mu.Unlock()
		return ErrNoOutput
	}
	blob := wav.Encode(s.outputRate, s.output)
	s.mu.Unlock()

	return s.coord.Spectrum(ctx, client.PurposeSpectrumOutput, blob, update)
}

// RefreshSpectrogram fetches the input signal's spectrogram, sizing the
// analysis window to the signal length.
func (s *Session) RefreshSpectrogram(ctx context.Context, update func(*client.SpectrogramResult)) error {
	s.mu.Lock()
	if len(s.signal) == 0 {
		s.mu.Unlock()
		return ErrNoSignal
	}
	blob := wav.Encode(s.sampleRate, s.signal)
	win, hop := client.SpectrogramWindow(len(s.signal))
	s.mu.Unlock()

	return s.coord.Spectrogram(ctx, blob, win, hop, update)
}

// Apply sends the input signal and the resolved bands to the backend
// filter and installs the processed audio as the session output. A second
// Apply while one is in flight is rejected with client.ErrApplyInFlight;
// on any error the previous output is kept.
func (s *Session) Apply(ctx context.Context) error {
	s.mu.Lock()
	if len(s.signal) == 0 {
		s.mu.Unlock()
		return ErrNoSignal
	}
	blob := wav.Encode(s.sampleRate, s.signal)
	rate := s.sampleRate
	bands := eq.Resolve(s.scheme, s.groups)
	s.mu.Unlock()

	var decodeErr error
	err := s.coord.Apply(ctx, blob, rate, bands, func(processed []byte) {
		outRate, samples, err := wav.DecodeMono(processed)
		if err != nil {
			decodeErr = fmt.Errorf("decoding processed audio: %w", err)
			return
		}

		s.mu.Lock()
		s.output = samples
		s.outputRate = outRate
		s.mu.Unlock()
	})
	if err != nil {
		return err
	}
	if decodeErr != nil {
		return decodeErr
	}

	s.log.Info("apply finished", zap.Int("bands", len(bands)))
	return nil
}

// Health probes the backend.
func (s *Session) Health(ctx context.Context) error {
	return s.api.Health(ctx)
}

// Modes lists the preset modes the backend offers.
func (s *Session) Modes(ctx context.Context) ([]string, error) {
	return s.api.Modes(ctx)
}
