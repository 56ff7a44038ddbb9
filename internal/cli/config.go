package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// QuillConfig represents the quill.yaml configuration structure.
type QuillConfig struct {
	Version string `yaml:"version"`
	Project string `yaml:"project"`

	Models struct {
		Package string `yaml:"package"`
		Output  string `yaml:"output"`
	} `yaml:"models"`

	Logging struct {
		Debug   bool `yaml:"debug"`
		Verbose bool `yaml:"verbose"`
	} `yaml:"logging"`
}

var configLocations = []string{"quill.yaml", "quill.yml", ".quill.yaml", ".quill.yml"}

// LoadQuillConfig reads the config file at path. Callers resolve an empty
// --config flag through GetConfigPath first; no resolved config is not an
// error.
func LoadQuillConfig(path string) (*QuillConfig, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config QuillConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Models.Package == "" {
		config.Models.Package = "./models"
	}
	if config.Models.Output == "" {
		config.Models.Output = config.Models.Package
	}

	return &config, nil
}

// GetConfigPath resolves the config file path, honoring QUILL_CONFIG.
func GetConfigPath() string {
	if path := os.Getenv("QUILL_CONFIG"); path != "" {
		return path
	}
	for _, loc := range configLocations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}
