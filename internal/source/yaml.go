package source

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/gridline/internal/tableengine"
)

// LoadYAML reads a sequence of mappings. Column order follows the keys of
// the first mapping; keys first seen in later mappings are appended.
func LoadYAML(r io.Reader) (Dataset, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Dataset{}, nil
		}
		return Dataset{}, fmt.Errorf("parsing yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return Dataset{}, nil
	}
	seq := doc.Content[0]
	if seq.Kind != yaml.SequenceNode {
		return Dataset{}, fmt.Errorf("parsing yaml: expected a list of rows, got %s", kindName(seq.Kind))
	}

	var ids []string
	known := make(map[string]bool)
	records := make([]tableengine.Record, 0, len(seq.Content))
	for i, item := range seq.Content {
		if item.Kind != yaml.MappingNode {
			return Dataset{}, fmt.Errorf("row %d: expected a mapping, got %s", i+1, kindName(item.Kind))
		}
		values := make(map[string]any, len(item.Content)/2)
		for j := 0; j+1 < len(item.Content); j += 2 {
			key := item.Content[j].Value
			if !known[key] {
				known[key] = true
				ids = append(ids, key)
			}
			v, err := scalarValue(item.Content[j+1])
			if err != nil {
				return Dataset{}, fmt.Errorf("row %d, key %q: %w", i+1, key, err)
			}
			values[key] = v
		}
		records = append(records, tableengine.NewRecord(values))
	}

	cols := inferColumns(ids, records)
	normalizeNumbers(cols, records)
	return Dataset{Columns: cols, Records: records}, nil
}

func scalarValue(n *yaml.Node) (any, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("expected a scalar, got %s", kindName(n.Kind))
	}
	switch n.Tag {
	case "!!null":
		return nil, nil
	case "!!int", "!!float":
		if v, err := tableengine.ParseNumber(n.Value); err == nil {
			return v, nil
		}
		return n.Value, nil
	default:
		return n.Value, nil
	}
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "list"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
