package schemaio

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultSchemaFileNames are the candidate filenames DiscoverSchema looks
// for in a directory, tried in order.
var DefaultSchemaFileNames = []string{
	"datagen.schema.json",
	"datagen.schema.yaml",
	"datagen.schema.yml",
}

// DiscoverSchema returns a usable schema file path: startPath itself if
// it names an existing file, otherwise the first default candidate found
// by walking up from startPath's directory (or the current directory) to
// the filesystem root.
func DiscoverSchema(startPath string) (string, error) {
	if startPath != "" && fileExists(startPath) {
		return startPath, nil
	}

	dir := "."
	if startPath != "" {
		dir = filepath.Dir(startPath)
	}

	for {
		for _, name := range DefaultSchemaFileNames {
			candidate := filepath.Join(dir, name)
			if fileExists(candidate) {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("schemaio: no schema file found starting from %q", startPath)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
