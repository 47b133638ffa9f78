// Package output writes processing results back to disk: the rewritten
// G-code file next to its source, and an optional JSON export of the
// snapshot points for external preview tooling.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zxo1/PrintPath/internal/mode"
)

// Path derives the output filename from the input: the stem gains a mode
// suffix, the extension is kept. "benchy.gcode" run through orbit becomes
// "benchy_orbit.gcode".
func Path(input, modeName string) string {
	dir := filepath.Dir(input)
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", stem, modeName, ext))
}

// WriteLines writes the rewritten file. Lines that already carry their own
// newline are written as is; bare lines gain one.
func WriteLines(path string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			b.WriteString("\n")
		}
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing output file %s: %w", path, err)
	}
	return nil
}

// WritePoints exports the snapshot points as a JSON array.
func WritePoints(path string, points []mode.SnapshotPoint) error {
	if points == nil {
		points = []mode.SnapshotPoint{}
	}
	data, err := json.MarshalIndent(points, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot points: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing points file %s: %w", path, err)
	}
	return nil
}
