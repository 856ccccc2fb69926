package stt

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"geminigram/internal/domain"
)

// copyTranscoder stands in for ffmpeg: it just copies the source file.
type copyTranscoder struct{}

func (copyTranscoder) ToWAV(_ context.Context, src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o600)
}

// failTranscoder simulates a broken decode.
type failTranscoder struct{}

func (failTranscoder) ToWAV(context.Context, string, string) error {
	return errors.New("decode blew up")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestTranscriber(t *testing.T, endpoint string, tc Transcoder) (*Transcriber, string) {
	t.Helper()
	dir := t.TempDir()
	tr := New(Config{
		APIKey:     "test-key",
		Language:   "ar-SA",
		SampleRate: 16000,
		Endpoint:   endpoint,
		TempDir:    dir,
		Transcoder: tc,
		Logger:     testLogger(),
	})
	return tr, dir
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected zero temp files after transcribe, found %d", len(entries))
	}
}

func TestTranscribe_RecognizedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"results":[{"alternatives":[{"transcript":"مرحبا كيف الحال","confidence":0.92}]}]}`)
	}))
	defer srv.Close()

	tr, dir := newTestTranscriber(t, srv.URL, copyTranscoder{})

	got, err := tr.Transcribe(context.Background(), []byte("fake-ogg-bytes"))
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if got.Status != domain.Recognized {
		t.Fatalf("status = %v, want Recognized", got.Status)
	}
	if got.Text != "مرحبا كيف الحال" {
		t.Fatalf("text = %q, want the backend transcript verbatim", got.Text)
	}
	assertNoTempFiles(t, dir)
}

func TestTranscribe_EmptyResultsUnintelligible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	tr, dir := newTestTranscriber(t, srv.URL, copyTranscoder{})

	got, err := tr.Transcribe(context.Background(), []byte("mumble"))
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if got.Status != domain.Unintelligible {
		t.Fatalf("status = %v, want Unintelligible", got.Status)
	}
	assertNoTempFiles(t, dir)
}

func TestTranscribe_BackendErrorUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, `{"error":{"code":503,"message":"backend down"}}`)
	}))
	defer srv.Close()

	tr, dir := newTestTranscriber(t, srv.URL, copyTranscoder{})

	got, err := tr.Transcribe(context.Background(), []byte("audio"))
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if got.Status != domain.BackendUnavailable {
		t.Fatalf("status = %v, want BackendUnavailable", got.Status)
	}
	assertNoTempFiles(t, dir)
}

func TestTranscribe_UnreachableBackendUnavailable(t *testing.T) {
	// Server closed before the call: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	tr, dir := newTestTranscriber(t, url, copyTranscoder{})

	got, err := tr.Transcribe(context.Background(), []byte("audio"))
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if got.Status != domain.BackendUnavailable {
		t.Fatalf("status = %v, want BackendUnavailable", got.Status)
	}
	assertNoTempFiles(t, dir)
}

func TestTranscribe_DecodeFailureCleansUp(t *testing.T) {
	tr, dir := newTestTranscriber(t, "http://127.0.0.1:0", failTranscoder{})

	_, err := tr.Transcribe(context.Background(), []byte("audio"))
	if err == nil {
		t.Fatal("expected decode error")
	}
	assertNoTempFiles(t, dir)
}

func TestTranscribe_MultipleResultsJoined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"results":[
			{"alternatives":[{"transcript":"first part"}]},
			{"alternatives":[{"transcript":"second part"}]}
		]}`)
	}))
	defer srv.Close()

	tr, dir := newTestTranscriber(t, srv.URL, copyTranscoder{})

	got, err := tr.Transcribe(context.Background(), []byte("audio"))
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if got.Text != "first part second part" {
		t.Fatalf("text = %q", got.Text)
	}
	assertNoTempFiles(t, dir)
}
