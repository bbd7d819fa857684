package common

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// GetStreamcoreCacheHome returns a directory path for storing user-specific
// streamcore cache data. If needed, it also creates the necessary directories for
// storing user-specific cache data according to the XDG spec. Can be overridden by
// setting the STREAMCORE_CACHE_HOME environment variable.
func GetStreamcoreCacheHome() (string, error) {
	streamcoreCacheDir := os.Getenv("STREAMCORE_CACHE_HOME")
	if streamcoreCacheDir != "" {
		// If the override is set, ensure this specific directory exists.
		err := os.MkdirAll(streamcoreCacheDir, 0755)
		if err != nil {
			return "", fmt.Errorf("failed to create streamcore cache directory from STREAMCORE_CACHE_HOME: %w", err)
		}
		return streamcoreCacheDir, nil
	}

	// Default to XDG cache directory + /streamcore
	streamcoreCacheDir = filepath.Join(xdg.CacheHome, "streamcore")
	err := os.MkdirAll(streamcoreCacheDir, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create streamcore cache directory: %w", err)
	}
	return streamcoreCacheDir, nil
}
