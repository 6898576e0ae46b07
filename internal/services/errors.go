package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFetch marks failures downloading remote audio.
	ErrFetch = errors.New("fetch error")
	// ErrNotFound marks missing local inputs.
	ErrNotFound = errors.New("not found")
	// ErrModelLoad marks unavailable or incomplete model weights.
	ErrModelLoad = errors.New("model load error")
	// ErrTranscription marks failures in the speech-to-text invocation.
	ErrTranscription = errors.New("transcription error")
	// ErrSearch marks podcast directory failures.
	ErrSearch = errors.New("search error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrExternalTool marks failed subprocess invocations.
	ErrExternalTool = errors.New("external tool error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps an error to the process exit status documented for the CLI.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrFetch):
		return 2
	case errors.Is(err, ErrNotFound):
		return 3
	case errors.Is(err, ErrModelLoad):
		return 4
	case errors.Is(err, ErrTranscription), errors.Is(err, ErrExternalTool):
		return 5
	case errors.Is(err, ErrSearch):
		return 6
	case errors.Is(err, ErrConfiguration):
		return 7
	default:
		return 1
	}
}

// Kind returns a short classification token for logging.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFetch):
		return "fetch"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrModelLoad):
		return "model_load"
	case errors.Is(err, ErrTranscription):
		return "transcription"
	case errors.Is(err, ErrSearch):
		return "search"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrExternalTool):
		return "external_tool"
	default:
		return "unknown"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
