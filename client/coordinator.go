// SPDX-License-Identifier: EPL-2.0

package client

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/ik5/eqlab/eq"
)

// Purpose names one kind of backend request. Each purpose owns at most one
// in-flight request at a time.
type Purpose int

const (
	PurposeSpectrumInput Purpose = iota
	PurposeSpectrumOutput
	PurposeSpectrogram
	PurposeApply
)

func (p Purpose) String() string {
	switch p {
	case PurposeSpectrumInput:
		return "spectrum-for-input"
	case PurposeSpectrumOutput:
		return "spectrum-for-output"
	case PurposeSpectrogram:
		return "spectrogram-batch"
	case PurposeApply:
		return "apply"
	}
	return "unknown"
}

// requestToken is the cancellation handle for one in-flight request. A
// token that is no longer the current one for its purpose has been
// superseded; its result must be discarded.
type requestToken struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// Coordinator serializes backend traffic per purpose. Spectrum and
// spectrogram views use cancel-and-replace: a newer request cancels the
// older one, and a response whose token is no longer current is dropped
// even if the network beat the cancellation. Apply is stricter: a second
// apply while one runs is rejected outright, because a stale processed
// signal would corrupt the user-visible output rather than just repaint a
// view.
type Coordinator struct {
	api *Client
	log *zap.Logger

	mu        sync.Mutex
	current   map[Purpose]*requestToken
	applyBusy bool
}

type CoordinatorOption func(*Coordinator)

// WithCoordinatorLogger attaches a structured logger. The default discards
// everything.
func WithCoordinatorLogger(l *zap.Logger) CoordinatorOption {
	return func(c *Coordinator) { c.log = l }
}

func NewCoordinator(api *Client, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		api:     api,
		log:     zap.NewNop(),
		current: make(map[Purpose]*requestToken),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Spectrum fetches a spectrum for the given view (input or output) and
// hands the result to update, unless the request was superseded first.
func (c *Coordinator) Spectrum(ctx context.Context, p Purpose, wavBlob []byte, update func(*SpectrumResult)) error {
	tok := c.begin(ctx, p)

	res, err := c.api.Spectrum(tok.ctx, wavBlob)
	if err != nil {
		return c.fail(p, tok, err)
	}

	return c.complete(p, tok, func() { update(res) })
}

// Spectrogram fetches the time-frequency matrix with the given window and
// hop sizes, usually from SpectrogramWindow.
func (c *Coordinator) Spectrogram(ctx context.Context, wavBlob []byte, win, hop int, update func(*SpectrogramResult)) error {
	tok := c.begin(ctx, PurposeSpectrogram)

	res, err := c.api.Spectrogram(tok.ctx, wavBlob, win, hop)
	if err != nil {
		return c.fail(PurposeSpectrogram, tok, err)
	}

	return c.complete(PurposeSpectrogram, tok, func() { update(res) })
}

// Apply runs the signal through the backend filter. At most one apply may
// be in flight: a second call is rejected with ErrApplyInFlight without
// touching the network, and the first call finishes undisturbed.
func (c *Coordinator) Apply(ctx context.Context, wavBlob []byte, sampleRate int, bands []eq.Band, update func(processed []byte)) error {
	c.mu.Lock()
	if c.applyBusy {
		c.mu.Unlock()
		c.log.Warn("apply request ignored", zap.String("reason", "one already in flight"))
		return ErrApplyInFlight
	}
	c.applyBusy = true
	tok := c.beginLocked(ctx, PurposeApply)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.applyBusy = false
		c.mu.Unlock()
	}()

	out, err := c.api.Process(tok.ctx, wavBlob, sampleRate, bands)
	if err != nil {
		return c.fail(PurposeApply, tok, err)
	}

	return c.complete(PurposeApply, tok, func() { update(out) })
}

func (c *Coordinator) begin(ctx context.Context, p Purpose) *requestToken {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.beginLocked(ctx, p)
}

// beginLocked cancels the purpose's previous token, if any, and installs a
// fresh one. Callers hold c.mu.
func (c *Coordinator) beginLocked(ctx context.Context, p Purpose) *requestToken {
	if prev := c.current[p]; prev != nil {
		prev.cancel()
		c.log.Debug("superseding in-flight request", zap.Stringer("purpose", p))
	}

	tokCtx, cancel := context.WithCancel(ctx)
	tok := &requestToken{ctx: tokCtx, cancel: cancel}
	c.current[p] = tok
	return tok
}

// settle retires tok if it is still current for p, running apply while the
// lock is held so no newer request can slip in between the staleness check
// and the presentation update. It reports whether tok was still current.
func (c *Coordinator) settle(p Purpose, tok *requestToken, apply func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current[p] != tok {
		return false
	}

	delete(c.current, p)
	tok.cancel()

	if apply != nil {
		apply()
	}
	return true
}

func (c *Coordinator) complete(p Purpose, tok *requestToken, apply func()) error {
	if !c.settle(p, tok, apply) {
		c.log.Debug("stale response dropped", zap.Stringer("purpose", p))
		return ErrStaleResponse
	}

	c.log.Debug("request completed", zap.Stringer("purpose", p))
	return nil
}

// fail maps an in-flight error to its outcome: cancellation (or having
// been superseded while failing) is a silent, expected end; anything else
// is a real failure that leaves the view untouched.
func (c *Coordinator) fail(p Purpose, tok *requestToken, err error) error {
	stillCurrent := c.settle(p, tok, nil)

	if !stillCurrent || errors.Is(err, context.Canceled) {
		c.log.Debug("request cancelled", zap.Stringer("purpose", p))
		return ErrStaleResponse
	}

	c.log.Warn("request failed", zap.Stringer("purpose", p), zap.Error(err))
	return err
}
