package action

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// SetOutput publishes a step output. When outputPath (GITHUB_OUTPUT) is set
// the pair is appended to that file; otherwise the legacy set-output workflow
// command is written to w.
func SetOutput(w io.Writer, outputPath, name, value string) error {
	if outputPath == "" {
		_, err := fmt.Fprintf(w, "::set-output name=%s::%s\n", name, escapeData(value))
		return err
	}

	f, err := os.OpenFile(outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%s=%s\n", name, value); err != nil {
		f.Close()
		return fmt.Errorf("writing output %s: %w", name, err)
	}
	return f.Close()
}

// SetFailed writes an error workflow command for err, which marks the step as
// failed in the run log. The caller still exits non-zero.
func SetFailed(w io.Writer, err error) {
	fmt.Fprintf(w, "::error::%s\n", escapeData(err.Error()))
}

// escapeData escapes a workflow command message so that multi-line values
// stay one command.
func escapeData(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}
