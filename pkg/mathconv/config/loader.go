package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Load reads settings from path on fs, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
func Load(fs afero.Fs, path string) (Settings, error) {
	m, err := readMap(fs, path)
	if err != nil {
		return Settings{}, err
	}
	return FromMap(m)
}

// FromYAML parses YAML data into Settings.
func FromYAML(data []byte) (Settings, error) {
	m, err := parseYAML(data)
	if err != nil {
		return Settings{}, err
	}
	return FromMap(m)
}

// FromJSON parses JSON data into Settings.
func FromJSON(data []byte) (Settings, error) {
	m, err := parseJSON(data)
	if err != nil {
		return Settings{}, err
	}
	return FromMap(m)
}

// FromMap decodes a generic map into Settings, applies defaults and
// validates the result. Scalars are weakly typed: "512" decodes into an
// int field and "true" into a bool field.
func FromMap(m map[string]any) (Settings, error) {
	var s Settings
	if err := decode(m, &s); err != nil {
		return Settings{}, err
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func decode(input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           output,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	return nil
}

func readMap(fs afero.Fs, path string) (map[string]any, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return parseYAML(data)
	case ".json":
		return parseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported config file extension: %s", ext)
	}
}

func parseYAML(data []byte) (map[string]any, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return m, nil
}

func parseJSON(data []byte) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return m, nil
}
