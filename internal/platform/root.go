package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// SystemDir is the hidden directory holding the fs adapter's data.
const SystemDir = ".scribble"

// ConfigFileNames lists the config files looked up in a root, in order.
var ConfigFileNames = []string{"scribble.yaml", "scribble.yml", "scribble.toml"}

// FindRoot recursively looks upwards for a scribble root indicator.
// Indicators are: the .scribble directory or a scribble config file.
// If found, returns the absolute path to the root.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, SystemDir) {
			return dir, nil
		}
		for _, name := range ConfigFileNames {
			if hasFile(dir, name) {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

// FindConfigFile returns the first config file present in dir, or "".
func FindConfigFile(dir string) string {
	for _, name := range ConfigFileNames {
		if hasFile(dir, name) {
			return filepath.Join(dir, name)
		}
	}
	return ""
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	_, err := os.Stat(path)
	return err == nil
}
