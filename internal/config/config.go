// Package config handles setool configuration loading and management.
package config

import "github.com/Faultbox/setools/pkg/formats"

// Config holds all tool settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
	Anim    AnimConfig    `yaml:"anim"`
	Model   ModelConfig   `yaml:"model"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// OutputConfig controls how decoded documents are printed.
type OutputConfig struct {
	JSONIndent string `yaml:"json_indent"` // Empty for compact JSON
}

// AnimConfig holds SEAnim rewrite settings.
type AnimConfig struct {
	HighPrecision *bool `yaml:"high_precision"` // nil keeps the source precision
}

// ModelConfig holds SEModel rewrite settings.
type ModelConfig struct {
	BoneMode string `yaml:"bone_mode"` // "locals", "globals", "both" or empty to keep
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Output: OutputConfig{
			JSONIndent: "  ",
		},
	}
}

// ParseBoneMode converts a config bone mode string.
// The second result is false for an empty or unknown string.
func ParseBoneMode(s string) (formats.SEModelBoneMode, bool) {
	switch s {
	case "locals":
		return formats.SEModelBoneLocals, true
	case "globals":
		return formats.SEModelBoneGlobals, true
	case "both":
		return formats.SEModelBoneBoth, true
	default:
		return formats.SEModelBoneLocals, false
	}
}
