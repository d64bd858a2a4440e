package preconditions

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/meshcombine/internal/models"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestValidateSceneFile(t *testing.T) {
	dir := t.TempDir()
	glb := filepath.Join(dir, "street.GLB")
	obj := filepath.Join(dir, "street.obj")
	touch(t, glb)
	touch(t, obj)

	if err := ValidateSceneFile(glb); err != nil {
		t.Errorf("ValidateSceneFile(glb) error = %v", err)
	}
	if err := ValidateSceneFile(obj); err == nil || !strings.Contains(err.Error(), "not a glTF file") {
		t.Errorf("ValidateSceneFile(obj) error = %v", err)
	}
	if err := ValidateSceneFile(dir); err == nil {
		t.Error("directory should be rejected")
	}
	if err := ValidateSceneFile(filepath.Join(dir, "missing.glb")); err == nil {
		t.Error("missing file should be rejected")
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	sceneFile := filepath.Join(dir, "street.gltf")
	touch(t, sceneFile)

	job := &models.JobConfig{Scene: sceneFile, AssetRoot: dir}
	if err := Check(job); err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	job.SceneOutput = filepath.Join(dir, "missing", "out.glb")
	if err := Check(job); err == nil || !strings.HasPrefix(err.Error(), "scene output:") {
		t.Errorf("Check() error = %v, want scene output failure", err)
	}

	job.SceneOutput = ""
	job.AssetRoot = filepath.Join(dir, "Assets")
	if err := Check(job); err == nil || !strings.HasPrefix(err.Error(), "asset root:") {
		t.Errorf("Check() error = %v, want asset root failure", err)
	}
}
