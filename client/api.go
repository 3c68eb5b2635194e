// SPDX-License-Identifier: EPL-2.0

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/ik5/eqlab/eq"
)

// SpectrumResult is the backend's single-frame frequency view of a signal:
// magnitudes for the first N/2 FFT bins.
type SpectrumResult struct {
	SampleRate int       `json:"sampleRate"`
	N          int       `json:"N"`
	Magnitudes []float64 `json:"magnitudes"`
}

// SpectrogramResult is a time-by-frequency magnitude matrix, one row per
// analysis window.
type SpectrogramResult struct {
	SampleRate int         `json:"sampleRate"`
	N          int         `json:"N"`
	Hop        int         `json:"hop"`
	Magnitudes [][]float64 `json:"magnitudes"`
}

// Spectrum posts a WAV blob to /api/spectrum and returns the magnitude view.
func (c *Client) Spectrum(ctx context.Context, wavBlob []byte) (*SpectrumResult, error) {
	resp, err := c.postAudio(ctx, "/api/spectrum", wavBlob, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var res SpectrumResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decoding spectrum response: %w", err)
	}
	return &res, nil
}

// Spectrogram posts a WAV blob with window and hop sizes to /api/spectrogram.
func (c *Client) Spectrogram(ctx context.Context, wavBlob []byte, win, hop int) (*SpectrogramResult, error) {
	fields := map[string]string{
		"win": strconv.Itoa(win),
		"hop": strconv.Itoa(hop),
	}

	resp, err := c.postAudio(ctx, "/api/spectrogram", wavBlob, fields)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var res SpectrogramResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decoding spectrogram response: %w", err)
	}
	return &res, nil
}

// Process posts a WAV blob plus the flat band list to /api/process and
// returns the filtered audio, itself a WAV blob. The bands travel verbatim
// as the "bands" field of the scheme JSON.
func (c *Client) Process(ctx context.Context, wavBlob []byte, sampleRate int, bands []eq.Band) ([]byte, error) {
	scheme := &eq.Scheme{SampleRate: sampleRate, Bands: bands}
	schemeJSON, err := json.Marshal(scheme)
	if err != nil {
		return nil, fmt.Errorf("encoding scheme: %w", err)
	}

	resp, err := c.postAudio(ctx, "/api/process", wavBlob, map[string]string{
		"scheme": string(schemeJSON),
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading processed audio: %w", err)
	}

	c.log.Debug("processed audio received",
		zap.Int("bands", len(bands)),
		zap.Int("bytes", len(out)))
	return out, nil
}

// Presets fetches the named preset catalog entry from /api/presets.
func (c *Client) Presets(ctx context.Context, mode string) (eq.GroupSet, error) {
	q := url.Values{"mode": {mode}}
	body, err := c.get(ctx, "/api/presets?"+q.Encode())
	if err != nil {
		return nil, err
	}

	groups, err := eq.ParseGroups(body)
	if err != nil {
		return nil, fmt.Errorf("decoding preset catalog: %w", err)
	}
	return groups, nil
}

// Modes lists the preset modes the backend knows about.
func (c *Client) Modes(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/api/modes")
	if err != nil {
		return nil, err
	}

	var doc struct {
		Modes []string `json:"modes"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decoding modes response: %w", err)
	}
	return doc.Modes, nil
}

// Health probes /api/health. A nil error means the backend answered.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.get(ctx, "/api/health")
	return err
}

// postAudio sends a multipart form with the WAV blob in the "audio" file
// field plus any extra plain fields, and fails non-2xx statuses.
func (c *Client) postAudio(ctx context.Context, path string, wavBlob []byte, fields map[string]string) (*http.Response, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("audio", "signal.wav")
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if _, err := fw.Write(wavBlob); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if resp.StatusCode/100 != 2 {
		defer resp.Body.Close()
		return nil, c.statusError(resp)
	}

	return resp, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, c.statusError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return body, nil
}

// statusError turns a non-2xx response into an *APIError, salvaging the
// backend's error message when the body carries one.
func (c *Client) statusError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var doc struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &doc) == nil {
			apiErr.Message = doc.Error
		}
	}

	return apiErr
}
