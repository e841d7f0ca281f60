package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	cberrors "github.com/MedMaalej/copybara/internal/errors"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "copybara.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "copybara.yml"

// EnvPrefix prefixes environment variables that override configuration
const EnvPrefix = "COPYBARA_"

// FindConfigFile returns the config file in dir, or "" when there is none
func FindConfigFile(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads the configuration at path and applies environment overrides.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	// COPYBARA_LOG__DEBUG -> log.debug. Variables without a nested key are
	// not configuration (COPYBARA_LOG_MAX_SIZE is read by the logger).
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		},
	})
	if err != nil {
		return nil, cberrors.NewConfigValidationError(path, "unable to decode config: %v", err)
	}

	cfg.path = path
	return &cfg, nil
}

func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	if !strings.Contains(key, "__") {
		return ""
	}
	return strings.ReplaceAll(key, "__", ".")
}
