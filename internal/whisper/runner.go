package whisper

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"podscribe/internal/services"
)

// CommandRunner executes an external tool. Exposed for tests.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// NewToolRunner returns a runner that discards stdout and captures stderr
// into a timestamped file under logDir/tool on failure, so the full tool
// output survives for diagnosis without flooding the terminal.
func NewToolRunner(logDir string) CommandRunner {
	return func(ctx context.Context, name string, args ...string) error {
		cmd := exec.CommandContext(ctx, name, args...)
		var stderr strings.Builder
		cmd.Stdout = io.Discard
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			raw := strings.TrimSpace(stderr.String())
			detail := fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
			if path := writeToolLog(logDir, name, args, raw); path != "" {
				detail = fmt.Errorf("%w (stderr saved to %s)", detail, path)
			} else if raw != "" {
				detail = fmt.Errorf("%w: %s", detail, raw)
			}
			return services.Wrap(services.ErrExternalTool, "tool", filepath.Base(name), "command failed", detail)
		}
		return nil
	}
}

func writeToolLog(logDir, name string, args []string, stderr string) string {
	logDir = strings.TrimSpace(logDir)
	if logDir == "" {
		return ""
	}
	toolDir := filepath.Join(logDir, "tool")
	if err := os.MkdirAll(toolDir, 0o755); err != nil {
		return ""
	}
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	path := filepath.Join(toolDir, fmt.Sprintf("%s-%s.log", timestamp, sanitizeToolName(name)))

	command := strings.TrimSpace(strings.Join(append([]string{name}, args...), " "))
	payload := strings.Builder{}
	payload.Grow(len(command) + len(stderr) + 64)
	payload.WriteString("command: ")
	payload.WriteString(command)
	payload.WriteByte('\n')
	payload.WriteString("stderr:\n")
	payload.WriteString(stderr)
	payload.WriteByte('\n')

	if err := os.WriteFile(path, []byte(payload.String()), 0o644); err != nil {
		return ""
	}
	return path
}

func sanitizeToolName(value string) string {
	value = strings.TrimSpace(filepath.Base(value))
	if value == "" {
		return "tool"
	}
	value = strings.ToLower(value)
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-", " ", "-")
	out := strings.Trim(replacer.Replace(value), "-")
	if out == "" {
		return "tool"
	}
	return out
}
