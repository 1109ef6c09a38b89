package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// varPattern matches ${VAR} and ${VAR:-default} references in the raw file.
var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// Load reads the YAML file at path and returns the parsed configuration.
// Environment references are expanded before parsing, so a value like
// "${STRATRUN_AGENT:-/usr/local/bin/agent}" works in any field.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// parse expands environment references and unmarshals the result. A reference
// without a default that names an unset variable is an error; all such
// references are reported together.
func parse(raw []byte) (*Config, error) {
	var unresolved []error

	expanded := varPattern.ReplaceAllFunc(raw, func(ref []byte) []byte {
		groups := varPattern.FindSubmatch(ref)
		if v, ok := os.LookupEnv(string(groups[1])); ok {
			return []byte(v)
		}
		// groups[2] is the :-default, nil when the reference has none.
		if groups[2] != nil {
			return groups[2]
		}
		unresolved = append(unresolved, fmt.Errorf("unresolved variable: %s", groups[1]))
		return ref
	})
	if err := errors.Join(unresolved...); err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(expanded, &cfg); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	return &cfg, nil
}
