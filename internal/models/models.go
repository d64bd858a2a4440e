package models

// JobConfig is a combine job as read from YAML and the command line.
type JobConfig struct {
	// Scene is the glTF/GLB file holding the source hierarchy.
	Scene string `yaml:"scene"`
	// Root names the object whose descendants are combined. Empty selects
	// the scene's only top level object.
	Root string `yaml:"root,omitempty"`
	// AssetRoot is the conventional asset root all output paths are relative to.
	AssetRoot string `yaml:"asset_root"`
	// OutputDir is relative to AssetRoot and must already exist.
	OutputDir string `yaml:"output_dir"`
	// IndexFormat is "16" or "32".
	IndexFormat  string `yaml:"index_format"`
	SecondaryUVs bool   `yaml:"secondary_uvs"`
	// SceneOutput optionally receives the source scene with the result added.
	SceneOutput string        `yaml:"scene_output,omitempty"`
	Logging     LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// Manifest describes the assets written by one run.
type Manifest struct {
	Source      string         `yaml:"source"`
	Root        string         `yaml:"root"`
	Result      string         `yaml:"result"`
	Prefab      string         `yaml:"prefab"`
	IndexFormat string         `yaml:"index_format"`
	Nodes       []ManifestNode `yaml:"nodes"`
	Warnings    []string       `yaml:"warnings,omitempty"`
}

// ManifestNode is one merged mesh of a run.
type ManifestNode struct {
	Name      string `yaml:"name"`
	Material  string `yaml:"material"`
	Mesh      string `yaml:"mesh"`
	Sources   int    `yaml:"sources"`
	Vertices  int    `yaml:"vertices"`
	Triangles int    `yaml:"triangles"`
	// IndexRangeValid is false when the mesh has more vertices than its
	// index format can address.
	IndexRangeValid bool `yaml:"index_range_valid"`
	SecondaryUVs    bool `yaml:"secondary_uvs"`
}
