package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad input", http.StatusBadRequest)
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidInput, err.Code)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("INVALID_INPUT should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeTimeout, "timed out", http.StatusGatewayTimeout)
	if !err.Retryable {
		t.Error("TIMEOUT should be retryable")
	}
}

func TestAppError_UnsupportedFormat(t *testing.T) {
	err := UnsupportedFormat(".txt", []string{".wav", ".mp3"})
	if err.Code != ErrCodeUnsupportedFormat {
		t.Errorf("expected UNSUPPORTED_FORMAT, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.HTTPStatus)
	}
	if err.Details["received"] != ".txt" {
		t.Errorf("expected received=.txt, got %v", err.Details["received"])
	}
}

func TestAppError_MissingCredential(t *testing.T) {
	err := MissingCredential("OpenAI", "OPENAI_API_KEY")
	if err.Code != ErrCodeMissingCredential {
		t.Errorf("expected MISSING_CREDENTIAL, got %s", err.Code)
	}
	if err.Retryable {
		t.Error("MISSING_CREDENTIAL should not be retryable")
	}
	if err.Details["env_var"] != "OPENAI_API_KEY" {
		t.Errorf("expected env_var detail, got %v", err.Details)
	}
}

func TestAppError_ExternalServiceError(t *testing.T) {
	cause := fmt.Errorf("status 502")
	err := ExternalServiceError("transcription", cause)
	if err.HTTPStatus != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", err.HTTPStatus)
	}
	if !err.Retryable {
		t.Error("EXTERNAL_SERVICE_ERROR should be retryable")
	}
	if !stderrors.Is(err, cause) {
		t.Error("cause should be reachable via errors.Is")
	}
}

func TestAppError_WrappingThroughFmt(t *testing.T) {
	appErr := InvalidInput("file", "no audio file provided")
	wrapped := fmt.Errorf("handler: %w", appErr)

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("AsAppError should find the wrapped AppError")
	}
	if got.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", got.Code)
	}
	if !IsAppError(wrapped) {
		t.Error("IsAppError should be true for wrapped AppError")
	}
}

func TestAppError_ToResponse(t *testing.T) {
	err := MissingField("audio")
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeMissingField {
		t.Errorf("expected MISSING_FIELD, got %s", resp.Error.Code)
	}
	if resp.Error.Details["field"] != "audio" {
		t.Errorf("expected field=audio, got %v", resp.Error.Details)
	}
}
