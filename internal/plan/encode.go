// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package plan

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalJSON writes the plan as an object whose keys follow lifecycle order.
func (p *Plan) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ph := range p.Phases() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(ph.String())
		buf.Write(key)
		buf.WriteByte(':')

		records, err := p.Records(ph)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("phase %q: %w", ph, err)
		}
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler, keeping the phase keys in lifecycle
// order.
func (p *Plan) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, ph := range p.Phases() {
		records, err := p.Records(ph)
		if err != nil {
			return nil, err
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, rec := range records {
			var item yaml.Node
			if err := item.Encode(rec); err != nil {
				return nil, fmt.Errorf("phase %q: %w", ph, err)
			}
			seq.Content = append(seq.Content, &item)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ph.String()},
			seq,
		)
	}
	return root, nil
}

// EncodeJSON renders the plan as indented JSON followed by a newline.
func EncodeJSON(p *Plan) ([]byte, error) {
	raw, err := p.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// EncodeYAML renders the plan as a YAML document.
func EncodeYAML(p *Plan) ([]byte, error) {
	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
