package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Literal rule modes.
const (
	// LiteralRaw emits the source value verbatim.
	LiteralRaw = "raw"

	// LiteralSafe emits the normalized slug of the source value. Any mode
	// string other than "raw" behaves this way.
	LiteralSafe = "safe"
)

// ClassList holds rdf:type CURIEs. The document may provide either a list or
// a single |-separated string.
type ClassList []string

// UnmarshalJSON accepts ["a","b"] or "a|b".
func (c *ClassList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*c = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("classes must be a list or a |-separated string")
	}
	*c = splitClasses(s)
	return nil
}

// UnmarshalYAML accepts a sequence or a |-separated scalar.
func (c *ClassList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*c = splitClasses(s)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*c = list
		return nil
	}
	return fmt.Errorf("classes must be a list or a |-separated string")
}

func splitClasses(s string) ClassList {
	parts := strings.Split(s, "|")
	out := make(ClassList, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// LiteralRule decides what value a template literal carries: a mode string
// ("raw" or "safe") applied to the source value, or a cross-column rule
// reading from another column.
type LiteralRule struct {
	// Mode applies to the template's own source value. Empty when
	// FromColumn is set.
	Mode string

	// FromColumn reads the value from another column instead.
	FromColumn string

	// MatchByIndex pairs the Nth split value of FromColumn with the Nth
	// child; false hands every child the whole trimmed cell.
	MatchByIndex bool
}

// IsCrossColumn reports whether the rule reads from another column.
func (r LiteralRule) IsCrossColumn() bool {
	return r.FromColumn != ""
}

type crossColumnRule struct {
	FromColumn   string `json:"from_column" yaml:"from_column"`
	MatchByIndex bool   `json:"match_by_index,omitempty" yaml:"match_by_index,omitempty"`
}

// UnmarshalJSON accepts "raw", "safe", or {"from_column": …,
// "match_by_index": …}.
func (r *LiteralRule) UnmarshalJSON(data []byte) error {
	var mode string
	if err := json.Unmarshal(data, &mode); err == nil {
		*r = LiteralRule{Mode: mode}
		return nil
	}
	var cross crossColumnRule
	if err := json.Unmarshal(data, &cross); err != nil {
		return fmt.Errorf("literal rule must be a mode string or a from_column object")
	}
	if cross.FromColumn == "" {
		return fmt.Errorf("literal rule object needs from_column")
	}
	*r = LiteralRule{FromColumn: cross.FromColumn, MatchByIndex: cross.MatchByIndex}
	return nil
}

// MarshalJSON writes the same shapes UnmarshalJSON reads.
func (r LiteralRule) MarshalJSON() ([]byte, error) {
	if r.IsCrossColumn() {
		return json.Marshal(crossColumnRule{FromColumn: r.FromColumn, MatchByIndex: r.MatchByIndex})
	}
	return json.Marshal(r.Mode)
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents.
func (r *LiteralRule) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var mode string
		if err := value.Decode(&mode); err != nil {
			return err
		}
		*r = LiteralRule{Mode: mode}
		return nil
	case yaml.MappingNode:
		var cross crossColumnRule
		if err := value.Decode(&cross); err != nil {
			return err
		}
		if cross.FromColumn == "" {
			return fmt.Errorf("literal rule object needs from_column")
		}
		*r = LiteralRule{FromColumn: cross.FromColumn, MatchByIndex: cross.MatchByIndex}
		return nil
	}
	return fmt.Errorf("literal rule must be a mode string or a from_column object")
}

// MarshalYAML mirrors MarshalJSON.
func (r LiteralRule) MarshalYAML() (any, error) {
	if r.IsCrossColumn() {
		return crossColumnRule{FromColumn: r.FromColumn, MatchByIndex: r.MatchByIndex}, nil
	}
	return r.Mode, nil
}
