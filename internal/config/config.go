package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/meshcombine/internal/logger"
	"github.com/philipparndt/meshcombine/internal/models"
	"github.com/philipparndt/meshcombine/internal/scene"
)

const (
	DefaultAssetRoot = "Assets"
	DefaultOutputDir = "Combined"
)

// Loader handles loading and validating YAML job files
type Loader struct{}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{}
}

// Default returns a job config with every default applied.
func Default() *models.JobConfig {
	return &models.JobConfig{
		AssetRoot:   DefaultAssetRoot,
		OutputDir:   DefaultOutputDir,
		IndexFormat: "32",
		Logging: models.LoggingConfig{
			Level: "info",
		},
	}
}

// Overrides are command line values. Empty fields and nil pointers leave the
// loaded value alone.
type Overrides struct {
	Scene        string
	Root         string
	AssetRoot    string
	OutputDir    string
	IndexFormat  string
	SecondaryUVs *bool
	SceneOutput  string
	LogLevel     string
	LogFile      string
}

// Load builds a job config with priority defaults < file < overrides and
// validates the result. An empty configPath skips the file layer.
func (l *Loader) Load(configPath string, overrides Overrides) (*models.JobConfig, error) {
	config := Default()

	if configPath != "" {
		if err := l.loadFile(config, configPath); err != nil {
			return nil, err
		}
	}

	ApplyOverrides(config, overrides)

	if err := l.Validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// loadFile merges a YAML file into config. Relative paths in the file are
// resolved against the file's directory.
func (l *Loader) loadFile(config *models.JobConfig, configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fromFile models.JobConfig
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	absConfigDir, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return fmt.Errorf("failed to get absolute path of config directory: %w", err)
	}
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(absConfigDir, p)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	config.Scene = resolve(fromFile.Scene)
	config.SceneOutput = resolve(fromFile.SceneOutput)
	config.Logging.File = resolve(fromFile.Logging.File)
	if fromFile.AssetRoot != "" {
		config.AssetRoot = resolve(fromFile.AssetRoot)
	}
	return nil
}

// ApplyOverrides copies every set override onto config.
func ApplyOverrides(config *models.JobConfig, o Overrides) {
	if o.Scene != "" {
		config.Scene = o.Scene
	}
	if o.Root != "" {
		config.Root = o.Root
	}
	if o.AssetRoot != "" {
		config.AssetRoot = o.AssetRoot
	}
	if o.OutputDir != "" {
		config.OutputDir = o.OutputDir
	}
	if o.IndexFormat != "" {
		config.IndexFormat = o.IndexFormat
	}
	if o.SecondaryUVs != nil {
		config.SecondaryUVs = *o.SecondaryUVs
	}
	if o.SceneOutput != "" {
		config.SceneOutput = o.SceneOutput
	}
	if o.LogLevel != "" {
		config.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		config.Logging.File = o.LogFile
	}
}

// Validate checks if the configuration is valid. File existence is checked
// separately by the preconditions.
func (l *Loader) Validate(config *models.JobConfig) error {
	if config.Scene == "" {
		return fmt.Errorf("scene file must be specified")
	}
	if config.AssetRoot == "" {
		return fmt.Errorf("asset root must be specified")
	}
	if config.OutputDir == "" {
		return fmt.Errorf("output directory must be specified")
	}
	if filepath.IsAbs(config.OutputDir) {
		return fmt.Errorf("output directory %q must be relative to the asset root", config.OutputDir)
	}
	if _, err := scene.ParseIndexFormat(config.IndexFormat); err != nil {
		return err
	}
	if !logger.ValidLevel(config.Logging.Level) {
		return fmt.Errorf("unknown log level %q (expected debug, info, warn or error)", config.Logging.Level)
	}
	return nil
}

// Marshal renders config as YAML.
func Marshal(config *models.JobConfig) ([]byte, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}
	return data, nil
}
