package config

import "github.com/MedMaalej/copybara/internal/output"

// Config is the root of a configuration file
type Config struct {
	Log             LogConfig              `koanf:"log"`
	Transformations []TransformationConfig `koanf:"transformations"`

	// path is the file the configuration was read from
	path string
}

// LogConfig configures the logger
type LogConfig struct {
	File       string `koanf:"file"`
	Debug      bool   `koanf:"debug"`
	MaxSize    int    `koanf:"max_size"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAge     int    `koanf:"max_age"`
}

// TransformationConfig is one entry of a transformations list. Exactly one
// field must be set.
type TransformationConfig struct {
	MapReferences  *MapReferencesConfig   `koanf:"map_references"`
	ReplaceMessage *ReplaceMessageConfig  `koanf:"replace_message"`
	ScrubMessage   *ScrubMessageConfig    `koanf:"scrub_message"`
	MapAuthor      *MapAuthorConfig       `koanf:"map_author"`
	Reverse        []TransformationConfig `koanf:"reverse"`
}

// MapReferencesConfig configures a reference migrator
type MapReferencesConfig struct {
	Before                 string            `koanf:"before"`
	After                  string            `koanf:"after"`
	RegexGroups            map[string]string `koanf:"regex_groups"`
	AdditionalImportLabels []string          `koanf:"additional_import_labels"`
}

// ReplaceMessageConfig configures a literal message replacement
type ReplaceMessageConfig struct {
	Before string `koanf:"before"`
	After  string `koanf:"after"`
}

// ScrubMessageConfig configures a regex based message scrubber
type ScrubMessageConfig struct {
	Regex       string `koanf:"regex"`
	Replacement string `koanf:"replacement"`
}

// MapAuthorConfig maps origin authors to destination authors
type MapAuthorConfig struct {
	Authors map[string]string `koanf:"authors"`
}

// Path returns the file the configuration was loaded from
func (c *Config) Path() string {
	return c.path
}

// SplogOptions converts the log section into logger options
func (c *Config) SplogOptions() output.Options {
	return output.Options{
		Debug:      c.Log.Debug,
		LogFile:    c.Log.File,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
	}
}
