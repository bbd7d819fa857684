package common

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// GetStreamcoreStateHome returns a directory path for storing user-specific
// streamcore state data (logs, traces, etc). If needed, it also creates the
// necessary directories for storing state data according to the XDG spec.
// Can be overridden by setting the STREAMCORE_STATE_HOME environment variable.
func GetStreamcoreStateHome() (string, error) {
	streamcoreStateDir := os.Getenv("STREAMCORE_STATE_HOME")
	if streamcoreStateDir != "" {
		err := os.MkdirAll(streamcoreStateDir, 0755)
		if err != nil {
			return "", fmt.Errorf("failed to create streamcore state directory from STREAMCORE_STATE_HOME: %w", err)
		}
		return streamcoreStateDir, nil
	}

	streamcoreStateDir = filepath.Join(xdg.StateHome, "streamcore")
	err := os.MkdirAll(streamcoreStateDir, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create streamcore state directory: %w", err)
	}
	return streamcoreStateDir, nil
}
