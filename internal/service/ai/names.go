package ai

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// UnknownClass is reported for class ids the table cannot resolve.
const UnknownClass = "unknown"

// ClassNames maps model class ids to human-readable labels. Read-only after load.
type ClassNames map[int]string

// Lookup returns the label for classID, or UnknownClass when the table is
// empty or has no entry for it.
func (c ClassNames) Lookup(classID int) string {
	if label, exists := c[classID]; exists {
		return label
	}
	return UnknownClass
}

// LoadClassNames reads a class table from a YAML file. A missing file yields an
// empty table and os.ErrNotExist so the caller can decide whether to warn.
func LoadClassNames(path string) (ClassNames, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ClassNames{}, err
		}
		return nil, fmt.Errorf("failed to read class names %s: %w", path, err)
	}
	return ParseClassNames(data)
}

// ParseClassNames accepts the ultralytics data.yaml layout (a "names" key holding
// either a list or an id->name mapping) or a bare list or mapping.
func ParseClassNames(data []byte) (ClassNames, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse class names: %w", err)
	}
	if len(doc.Content) == 0 {
		return ClassNames{}, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value == "names" {
				return decodeNames(root.Content[i+1])
			}
		}
	}
	return decodeNames(root)
}

func decodeNames(node *yaml.Node) (ClassNames, error) {
	names := ClassNames{}

	switch node.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return nil, fmt.Errorf("failed to decode class list: %w", err)
		}
		for id, label := range list {
			names[id] = label
		}
	case yaml.MappingNode:
		var mapping map[int]string
		if err := node.Decode(&mapping); err != nil {
			return nil, fmt.Errorf("failed to decode class mapping: %w", err)
		}
		for id, label := range mapping {
			if id < 0 {
				return nil, fmt.Errorf("negative class id %d", id)
			}
			names[id] = label
		}
	default:
		return nil, fmt.Errorf("unsupported class names layout at line %d", node.Line)
	}

	return names, nil
}
