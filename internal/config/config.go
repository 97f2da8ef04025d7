package config

import "runtime"

// Config represents the complete scrub configuration.
// It can be loaded from .scrub/config.yml with environment variable overrides.
type Config struct {
	Annotations AnnotationsConfig `yaml:"annotations" mapstructure:"annotations"`
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Workers     int               `yaml:"workers" mapstructure:"workers"` // files transformed concurrently
}

// AnnotationsConfig names the annotations that drive stripping. Names are
// matched against the annotation exactly as written in source.
type AnnotationsConfig struct {
	Strip   []string `yaml:"strip" mapstructure:"strip"`     // declarations carrying these are removed
	Include []string `yaml:"include" mapstructure:"include"` // non-empty switches on whitelist mode
}

// PathsConfig defines which files to transform and which to ignore.
type PathsConfig struct {
	Sources []string `yaml:"sources" mapstructure:"sources"` // glob patterns for Java sources
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to ignore
}

// OutputConfig defines where transformed files are written.
type OutputConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`           // mirror of the input tree
	InPlace bool   `yaml:"in_place" mapstructure:"in_place"` // overwrite inputs instead
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Annotations: AnnotationsConfig{
			Strip:   []string{"GwtIncompatible"},
			Include: []string{},
		},
		Paths: PathsConfig{
			Sources: []string{"**/*.java"},
			Ignore: []string{
				".git/**",
				"build/**",
				"target/**",
				"out/**",
			},
		},
		Output: OutputConfig{
			Dir:     "scrubbed",
			InPlace: false,
		},
		Workers: runtime.NumCPU(),
	}
}
