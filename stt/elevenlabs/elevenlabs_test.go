package elevenlabs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/skillsenselab/callsight/stt"
)

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "call.mp3")
	if err := os.WriteFile(path, []byte("ID3 fake audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/speech-to-text" {
			t.Errorf("path = %q, want /v1/speech-to-text", r.URL.Path)
		}
		if got := r.Header.Get("xi-api-key"); got != "test-key" {
			t.Errorf("xi-api-key = %q, want test-key", got)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("model_id"); got != "scribe_v1" {
			t.Errorf("model_id = %q, want scribe_v1", got)
		}
		if got := r.FormValue("diarize"); got != "true" {
			t.Errorf("diarize = %q, want true", got)
		}
		if got := r.FormValue("num_speakers"); got != "2" {
			t.Errorf("num_speakers = %q, want 2", got)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file part: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"text": "Hello, thanks for calling.",
			"language_code": "en",
			"words": [
				{"speaker_id": "speaker_0", "start": 0.0, "end": 0.4, "text": "Hello,"},
				{"speaker_id": "speaker_0", "start": 0.5, "end": 0.9, "text": "thanks"}
			]
		}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{APIKey: "test-key", BaseURL: srv.URL})
	resp, err := p.Transcribe(context.Background(), stt.Request{
		AudioPath:   writeTempAudio(t),
		Filename:    "call.mp3",
		NumSpeakers: 2,
	})
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if resp.Text != "Hello, thanks for calling." {
		t.Errorf("Text = %q", resp.Text)
	}
	if len(resp.Words) != 2 {
		t.Fatalf("len(Words) = %d, want 2", len(resp.Words))
	}
	if resp.Words[0].SpeakerID != "speaker_0" {
		t.Errorf("Words[0].SpeakerID = %q", resp.Words[0].SpeakerID)
	}
	if resp.Language != "en" {
		t.Errorf("Language = %q, want en", resp.Language)
	}
}

func TestTranscribeMissingKey(t *testing.T) {
	p := NewProvider(Config{})
	_, err := p.Transcribe(context.Background(), stt.Request{AudioPath: "ignored.wav"})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("error = %v, want ErrMissingAPIKey", err)
	}
	if !errors.Is(err, stt.ErrNotConfigured) {
		t.Error("expected error to wrap stt.ErrNotConfigured")
	}
}

func TestTranscribeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"invalid audio"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	p := NewProvider(Config{APIKey: "test-key", BaseURL: srv.URL})
	if _, err := p.Transcribe(context.Background(), stt.Request{AudioPath: writeTempAudio(t)}); err == nil {
		t.Fatal("expected error for API 422")
	}
}

func TestIsAvailable(t *testing.T) {
	if NewProvider(Config{}).IsAvailable(context.Background()) {
		t.Error("expected unavailable without API key")
	}
	if !NewProvider(Config{APIKey: "k"}).IsAvailable(context.Background()) {
		t.Error("expected available with API key")
	}
}
