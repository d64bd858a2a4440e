package preconditions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/meshcombine/internal/models"
)

// Check verifies every precondition of a combine job
func Check(job *models.JobConfig) error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"scene", func() error { return ValidateSceneFile(job.Scene) }},
		{"asset root", func() error { return ValidateAssetRoot(job.AssetRoot) }},
		{"scene output", func() error { return ValidateOutputPath(job.SceneOutput) }},
	}

	for _, check := range checks {
		if err := check.fn(); err != nil {
			return fmt.Errorf("%s: %w", check.name, err)
		}
	}

	return nil
}

// ValidateSceneFile checks that path is a readable glTF or GLB file
func ValidateSceneFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access file %s: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	if !isSceneFile(path) {
		return fmt.Errorf("%s is not a glTF file (must end in .gltf or .glb)", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot read file %s: %w", path, err)
	}
	file.Close()

	return nil
}

func isSceneFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return true
	}
	return false
}

// ValidateAssetRoot checks that the asset root is an existing directory. The
// output directory below it is checked by the combiner itself.
func ValidateAssetRoot(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("asset root %s does not exist", dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("asset root %s is not a directory", dir)
	}
	return nil
}

// ValidateOutputPath checks that a file can be created at path. An empty path
// means no output and always passes.
func ValidateOutputPath(path string) error {
	if path == "" {
		return nil
	}
	if !isSceneFile(path) {
		return fmt.Errorf("%s is not a glTF file name (must end in .gltf or .glb)", path)
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("output directory %s does not exist", dir)
	}
	if info.Mode()&0200 == 0 {
		return fmt.Errorf("output directory %s is not writable", dir)
	}
	return nil
}
