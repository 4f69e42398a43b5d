// Package stt defines the speech-to-text provider interface and common
// types for transcription backends, with or without speaker diarization.
package stt

import (
	"context"
	"errors"

	"github.com/skillsenselab/callsight/provider"
	"github.com/skillsenselab/callsight/transcript"
)

// ErrNotConfigured is wrapped by backends when a transcription is
// attempted without required configuration (e.g. a missing credential).
// Callers use it to distinguish configuration errors from upstream
// failures.
var ErrNotConfigured = errors.New("stt: provider not configured")

// Provider is the interface that speech-to-text backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Transcribe sends audio for transcription and returns the result.
	Transcribe(ctx context.Context, req Request) (*Response, error)
}

// Request holds parameters for a transcription call.
type Request struct {
	// AudioPath is the path to the audio file to transcribe.
	AudioPath string `json:"audio_path"`
	// Filename is the original upload filename, used for MIME hints.
	Filename string `json:"filename,omitempty"`
	// ContentType is the MIME type of the audio, if known.
	ContentType string `json:"content_type,omitempty"`
	// Language is the expected language of the audio (empty = auto-detect).
	Language string `json:"language,omitempty"`
	// NumSpeakers is the expected speaker count (0 = auto-detect).
	NumSpeakers int `json:"num_speakers,omitempty"`
}

// Response holds the result of a transcription call.
type Response struct {
	// Text is the full transcription text.
	Text string `json:"text"`
	// Words contains word-level timestamped events when the backend
	// supports them; empty otherwise.
	Words []transcript.Word `json:"words,omitempty"`
	// Language is the detected or specified language.
	Language string `json:"language,omitempty"`
}

// NewRegistry creates a provider registry for speech-to-text backends.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}
