package export

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// writeFile replaces path with data in one step. The temp file lives next to
// the destination so a failed export never leaves a partial file behind.
func writeFile(path string, data []byte) error {
	_, statErr := os.Stat(path)

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return err
	}

	// New files come out of the temp file as 0600.
	if os.IsNotExist(statErr) {
		if err := os.Chmod(path, 0o644); err != nil {
			return fmt.Errorf("chmod %s: %w", path, err)
		}
	}
	return nil
}
