package params

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Values holds the value(s) of one keyed entry. When decoded from YAML or
// JSON a scalar is promoted to a single-element slice.
type Values []float64

// UnmarshalYAML accepts a scalar or a sequence of numbers.
func (v *Values) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var f float64
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrInvalidParameters, node.Line, err)
		}
		*v = Values{f}
	case yaml.SequenceNode:
		var fs []float64
		if err := node.Decode(&fs); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrInvalidParameters, node.Line, err)
		}
		*v = fs
	default:
		return fmt.Errorf("%w: line %d: expected a number or a list of numbers",
			ErrInvalidParameters, node.Line)
	}
	return nil
}

// UnmarshalJSON accepts a number or an array of numbers.
func (v *Values) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var fs []float64
		if err := json.Unmarshal(data, &fs); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
		}
		*v = fs
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	*v = Values{f}
	return nil
}

// LoadYAML decodes a keyed parameter document, for example
//
//	rho0: 100
//	m: [0.1, 0.2]
//	tau: [0.04, 0.0001]
//	c: [0.4, 0.8]
//
// The result is not resolved; missing keys surface on [Resolve].
func LoadYAML(r io.Reader) (Keyed, error) {
	var kv Keyed
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&kv); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty parameter document", ErrInvalidParameters)
		}
		return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalidParameters, err)
	}
	return kv, nil
}
