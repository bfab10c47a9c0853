// Package config defines the closed configuration surface spec.md §3.3 /
// §6.3 lists, and loads it from an optional .vhdlfmt.yaml using
// github.com/goccy/go-yaml, validated against a JSON Schema built with
// github.com/google/jsonschema-go (both carried from MacroPower-x's
// config-loading stack — see SPEC_FULL.md DOMAIN STACK and DESIGN.md).
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"
)

// KeywordCase selects the case transform the layout engine applies to
// Keyword Docs at emission (spec.md §3.3).
type KeywordCase string

const (
	KeywordLower    KeywordCase = "lower"
	KeywordUpper    KeywordCase = "upper"
	KeywordPreserve KeywordCase = "preserve"
)

// AlignSignals is the per-clause-family alignment toggle spec.md §6.3
// lists as three independent options.
type AlignSignals struct {
	Generic bool `yaml:"generic" json:"generic"`
	Port    bool `yaml:"port" json:"port"`
	Signal  bool `yaml:"signal" json:"signal"`
}

// ClauseIndent holds the per-clause width/indent tweaks spec.md §3.3's
// table mentions generically ("Per-clause width/indent tweaks (generic,
// port, etc.)"). A zero value means "use Config.Indent".
type ClauseIndent struct {
	Generic int `yaml:"generic" json:"generic"`
	Port    int `yaml:"port" json:"port"`
}

// Config is the recognised option set (spec.md §6.3, a closed set — any
// other configuration is external and outside the core per spec.md §3.3).
type Config struct {
	LineLength      int          `yaml:"line_length" json:"line_length"`
	Indent          int          `yaml:"indent" json:"indent"`
	KeywordCase     KeywordCase  `yaml:"keyword_case" json:"keyword_case"`
	TrailingNewline bool         `yaml:"trailing_newline" json:"trailing_newline"`
	AlignSignals    AlignSignals `yaml:"align_signals" json:"align_signals"`
	ClauseIndent    ClauseIndent `yaml:"clause_indent" json:"clause_indent"`
}

// Default returns the configuration the core uses absent any external
// file: an 80-column budget, two-space indentation, lowercase keywords,
// one trailing newline, no alignment.
func Default() Config {
	return Config{
		LineLength:      80,
		Indent:          2,
		KeywordCase:     KeywordLower,
		TrailingNewline: true,
	}
}

// schema is built once and reused by every Load/Validate call. Built by
// hand, field by field, the way MacroPower-x's magicschema generator
// assembles a *jsonschema.Schema from Properties/Type rather than relying
// on struct-tag reflection for every nested type.
var schema = buildSchema()

func buildSchema() *jsonschema.Schema {
	integer := &jsonschema.Schema{Type: "integer"}
	boolean := &jsonschema.Schema{Type: "boolean"}

	alignSignals := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"generic": boolean,
			"port":    boolean,
			"signal":  boolean,
		},
	}
	clauseIndent := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"generic": integer,
			"port":    integer,
		},
	}

	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"line_length": integer,
			"indent":      integer,
			"keyword_case": {
				Type: "string",
				Enum: []any{"lower", "upper", "preserve"},
			},
			"trailing_newline": boolean,
			"align_signals":    alignSignals,
			"clause_indent":    clauseIndent,
		},
		AdditionalProperties: &jsonschema.Schema{}, // unrecognised keys pass through, spec.md §6.3
	}
}

// Load reads and decodes a .vhdlfmt.yaml file, starting from Default()
// and overlaying any keys the file sets. Unrecognised keys are accepted
// and ignored (spec.md §6.3 "The core ignores unrecognised options"):
// go-yaml's default decode mode already does this, and Validate below
// only rejects type mismatches on keys the schema recognises, never the
// presence of an extra key.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	// Decode into a generic map first so jsonschema can validate the raw
	// document shape (catching e.g. keyword_case: 7) before it is coerced
	// into the typed Config, matching the two-step decode-then-validate
	// pattern MacroPower-x's magicschema package uses.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := Validate(raw); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks a decoded YAML document against the Config JSON Schema.
func Validate(raw map[string]any) error {
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return fmt.Errorf("resolving schema: %w", err)
	}
	if err := resolved.Validate(raw); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IndentFor returns the nesting delta to use for a clause family,
// defaulting to Config.Indent when no per-clause override is set.
func (c Config) IndentFor(clause string) int {
	switch clause {
	case "generic":
		if c.ClauseIndent.Generic != 0 {
			return c.ClauseIndent.Generic
		}
	case "port":
		if c.ClauseIndent.Port != 0 {
			return c.ClauseIndent.Port
		}
	}
	return c.Indent
}
