package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type decoder struct {
	format    string
	unmarshal func([]byte, any) error
}

// decoders maps a lower-case file extension to its document decoder.
var decoders = map[string]decoder{
	".yaml": {"yaml", yaml.Unmarshal},
	".yml":  {"yaml", yaml.Unmarshal},
	".json": {"json", json.Unmarshal},
}

// DecodeFile decodes the document at path into out, choosing the decoder by
// extension. out may be a map or a tagged struct.
// Supported extensions: .yaml, .yml, .json
func DecodeFile(path string, out any) error {
	ext := strings.ToLower(filepath.Ext(path))
	dec, ok := decoders[ext]
	if !ok {
		return fmt.Errorf("unsupported config file extension: %s", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := dec.unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", dec.format, err)
	}
	return nil
}

// FromFile loads a Config from path. See DecodeFile for the formats.
func FromFile(path string) (Config, error) {
	var m map[string]any
	if err := DecodeFile(path, &m); err != nil {
		return Config{}, err
	}
	return New(m), nil
}

// FromYAML decodes a YAML document into a Config. An empty document yields
// an empty Config.
func FromYAML(data []byte) (Config, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return New(m), nil
}

// FromJSON decodes a JSON object into a Config.
func FromJSON(data []byte) (Config, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse json: %w", err)
	}
	return New(m), nil
}
