package config

import (
	"path/filepath"
	"testing"
)

// TestAllExamplesLoadSuccessfully tests that all example job files can be loaded and validated
func TestAllExamplesLoadSuccessfully(t *testing.T) {
	examples := []struct {
		name string
		file string
	}{
		{"simple job", "../../example/simple-job.yaml"},
		{"lightmap job", "../../example/lightmap-job.yaml"},
	}

	loader := NewLoader()

	for _, tt := range examples {
		t.Run(tt.name, func(t *testing.T) {
			absPath, err := filepath.Abs(tt.file)
			if err != nil {
				t.Fatalf("Failed to get absolute path: %v", err)
			}

			config, err := loader.Load(absPath, Overrides{})
			if err != nil {
				t.Fatalf("Failed to load %s: %v", tt.name, err)
			}

			if filepath.Base(config.Scene) != "street.gltf" {
				t.Errorf("Unexpected scene %q in %s", config.Scene, tt.name)
			}
			if config.Root != "House" {
				t.Errorf("Unexpected root %q in %s", config.Root, tt.name)
			}
		})
	}
}
