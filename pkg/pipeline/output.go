package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// OutputDir is the directory, relative to the output root, that artifacts
// are written to.
const OutputDir = "rvc"

// OutputPath returns where an artifact of decoder name is written under
// root: rvc/rvc_<name>.<format>.
func OutputPath(root, name, format string) string {
	return filepath.Join(root, OutputDir, fmt.Sprintf("rvc_%s.%s", name, format))
}

// WriteArtifacts writes every artifact of res under root and returns the
// paths written, sorted.
func WriteArtifacts(root string, res *Result) ([]string, error) {
	if err := os.MkdirAll(filepath.Join(root, OutputDir), 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	paths := make([]string, 0, len(res.Artifacts))
	for format, data := range res.Artifacts {
		path := OutputPath(root, res.Decoder, format)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}
