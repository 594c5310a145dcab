package tscat

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// LoadConfig reads a Config from a YAML file. Fields without a yaml tag
// (ResourceFS, Observer, Logger, NowFn) are left for the caller to set.
//
//	resource_path: ./resources/translations
//	default_language: id
//	fallback_languages: [en]
//	reload_retry_delay: 100ms
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
	}
	return cfg, nil
}
