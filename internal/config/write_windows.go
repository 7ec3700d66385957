//go:build windows

package config

import "os"

// renameio does not support Windows; the rewrite is not atomic there.
func writeFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}
