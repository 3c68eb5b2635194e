// SPDX-License-Identifier: EPL-2.0

package client_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ik5/eqlab/client"
	"github.com/ik5/eqlab/eq"
)

const spectrumBody = `{"sampleRate":44100,"N":8,"magnitudes":[1,2,3,4]}`

func TestCoordinator_SpectrumDelivers(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, spectrumBody)
	}))
	defer srv.Close()

	coord := client.NewCoordinator(client.New(srv.URL))

	var got *client.SpectrumResult
	err := coord.Spectrum(context.Background(), client.PurposeSpectrumInput, []byte("wav"),
		func(res *client.SpectrumResult) { got = res })
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}
	if got == nil || got.SampleRate != 44100 {
		t.Errorf("update got %+v", got)
	}
}

func TestCoordinator_SupersededSpectrumIsDropped(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	firstStarted := make(chan struct{})
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			close(firstStarted)
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}
		io.WriteString(w, spectrumBody)
	}))
	defer srv.Close()

	coord := client.NewCoordinator(client.New(srv.URL))

	var staleUpdates atomic.Int32
	firstDone := make(chan error, 1)
	go func() {
		firstDone <- coord.Spectrum(context.Background(), client.PurposeSpectrumInput,
			[]byte("old"), func(*client.SpectrumResult) { staleUpdates.Add(1) })
	}()

	<-firstStarted

	var fresh *client.SpectrumResult
	err := coord.Spectrum(context.Background(), client.PurposeSpectrumInput,
		[]byte("new"), func(res *client.SpectrumResult) { fresh = res })
	if err != nil {
		t.Fatalf("second Spectrum: %v", err)
	}
	if fresh == nil {
		t.Fatal("newest request did not reach its update callback")
	}

	close(release)

	if err := <-firstDone; !errors.Is(err, client.ErrStaleResponse) {
		t.Errorf("superseded request returned %v, want ErrStaleResponse", err)
	}
	if n := staleUpdates.Load(); n != 0 {
		t.Errorf("stale update callback fired %d times", n)
	}
}

func TestCoordinator_IndependentPurposesDoNotInterfere(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, spectrumBody)
	}))
	defer srv.Close()

	coord := client.NewCoordinator(client.New(srv.URL))

	var inputSeen, outputSeen bool
	if err := coord.Spectrum(context.Background(), client.PurposeSpectrumInput, []byte("a"),
		func(*client.SpectrumResult) { inputSeen = true }); err != nil {
		t.Fatalf("input spectrum: %v", err)
	}
	if err := coord.Spectrum(context.Background(), client.PurposeSpectrumOutput, []byte("b"),
		func(*client.SpectrumResult) { outputSeen = true }); err != nil {
		t.Fatalf("output spectrum: %v", err)
	}

	if !inputSeen || !outputSeen {
		t.Errorf("updates fired: input=%v output=%v, want both", inputSeen, outputSeen)
	}
}

func TestCoordinator_SpectrogramDelivers(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"sampleRate":8000,"N":256,"hop":64,"magnitudes":[[1],[2]]}`)
	}))
	defer srv.Close()

	coord := client.NewCoordinator(client.New(srv.URL))

	var got *client.SpectrogramResult
	err := coord.Spectrogram(context.Background(), []byte("wav"), 256, 64,
		func(res *client.SpectrogramResult) { got = res })
	if err != nil {
		t.Fatalf("Spectrogram: %v", err)
	}
	if got == nil || got.Hop != 64 {
		t.Errorf("update got %+v", got)
	}
}

func TestCoordinator_ApplyRejectsWhileBusy(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	firstStarted := make(chan struct{})
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		close(firstStarted)
		<-release
		w.Write([]byte("processed"))
	}))
	defer srv.Close()

	coord := client.NewCoordinator(client.New(srv.URL))
	bands := []eq.Band{{StartHz: 100, WidthHz: 200, Gain: 1.5}}

	var firstOut []byte
	firstDone := make(chan error, 1)
	go func() {
		firstDone <- coord.Apply(context.Background(), []byte("wav"), 44100, bands,
			func(out []byte) { firstOut = out })
	}()

	<-firstStarted

	err := coord.Apply(context.Background(), []byte("wav"), 44100, bands,
		func([]byte) { t.Error("rejected apply must not reach its update callback") })
	if !errors.Is(err, client.ErrApplyInFlight) {
		t.Errorf("second Apply returned %v, want ErrApplyInFlight", err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server saw %d requests before release, want 1", n)
	}

	close(release)

	if err := <-firstDone; err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	if string(firstOut) != "processed" {
		t.Errorf("first Apply delivered %q", firstOut)
	}
}

func TestCoordinator_ApplyBusyClearsAfterCompletion(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("processed"))
	}))
	defer srv.Close()

	coord := client.NewCoordinator(client.New(srv.URL))

	for i := 0; i < 3; i++ {
		err := coord.Apply(context.Background(), []byte("wav"), 44100, nil, func([]byte) {})
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
	}
}

func TestCoordinator_CancelledRequestIsSilent(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	coord := client.NewCoordinator(client.New(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- coord.Spectrum(ctx, client.PurposeSpectrumInput, []byte("wav"),
			func(*client.SpectrumResult) { t.Error("cancelled request must not update the view") })
	}()

	<-started
	cancel()

	if err := <-done; !errors.Is(err, client.ErrStaleResponse) {
		t.Errorf("cancelled request returned %v, want ErrStaleResponse", err)
	}
}

func TestCoordinator_FailureIsReported(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"no audio"}`)
	}))
	defer srv.Close()

	coord := client.NewCoordinator(client.New(srv.URL))

	err := coord.Spectrum(context.Background(), client.PurposeSpectrumInput, []byte("wav"),
		func(*client.SpectrumResult) { t.Error("failed request must not update the view") })

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %v is not an *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
}
