//go:build !windows

package config

import (
	"os"

	"github.com/google/renameio"
)

// writeFile replaces path atomically (temp file + rename).
func writeFile(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm)
}
