// Package yaml loads and saves clipping configuration as YAML.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/fwojciec/tanaclip"
	"gopkg.in/yaml.v3"
)

// file mirrors tanaclip.Config with optional fields so absent keys keep
// their defaults.
type file struct {
	Tag            *string                `yaml:"tag"`
	Fields         tanaclip.FieldMappings `yaml:"fields"`
	TargetNodeID   *string                `yaml:"targetNodeId"`
	MaxChunkLength *int                   `yaml:"maxChunkLength"`
}

// LoadConfig reads the configuration at path and applies it over
// tanaclip.DefaultConfig. An empty path returns the defaults. A "fields"
// section replaces the default mappings as a whole.
func LoadConfig(path string) (*tanaclip.Config, error) {
	if path == "" {
		return tanaclip.DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, tanaclip.Errorf(tanaclip.ENOTFOUND, "config file not found: %s", path)
	} else if err != nil {
		return nil, err
	}
	return DecodeConfig(bytes.NewReader(data))
}

// DecodeConfig decodes a YAML configuration from r over the defaults and
// validates the result. Unknown keys are rejected.
func DecodeConfig(r io.Reader) (*tanaclip.Config, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, tanaclip.Errorf(tanaclip.EINVALID, "invalid config: %v", err)
	}

	cfg := tanaclip.DefaultConfig()
	if f.Tag != nil {
		cfg.Tag = *f.Tag
	}
	if f.Fields != nil {
		cfg.Fields = f.Fields
	}
	if f.TargetNodeID != nil {
		cfg.TargetNodeID = *f.TargetNodeID
	}
	if f.MaxChunkLength != nil {
		cfg.MaxChunkLength = *f.MaxChunkLength
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EncodeConfig writes cfg to w as YAML.
func EncodeConfig(w io.Writer, cfg *tanaclip.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
