package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveHiddenColumns records which columns are hidden in the config file.
// Existing column entries keep their other settings; columns without an
// entry get one. Comments elsewhere in the file are preserved.
func SaveHiddenColumns(configPath string, hidden []string) error {
	doc, err := readDocument(configPath)
	if err != nil {
		return err
	}
	root := doc.Content[0]

	columns := mappingValue(root, "columns")
	if columns == nil || columns.Kind != yaml.SequenceNode {
		columns = &yaml.Node{Kind: yaml.SequenceNode}
		setMappingValue(root, "columns", columns)
	}

	want := make(map[string]bool, len(hidden))
	for _, id := range hidden {
		want[id] = true
	}

	seen := make(map[string]bool)
	for _, entry := range columns.Content {
		if entry.Kind != yaml.MappingNode {
			continue
		}
		idNode := mappingValue(entry, "id")
		if idNode == nil {
			continue
		}
		id := idNode.Value
		seen[id] = true
		if want[id] {
			setMappingValue(entry, "hidden", scalar("true", "!!bool"))
		} else {
			deleteMappingKey(entry, "hidden")
		}
	}

	for _, id := range hidden {
		if seen[id] {
			continue
		}
		columns.Content = append(columns.Content, &yaml.Node{
			Kind: yaml.MappingNode,
			Content: []*yaml.Node{
				scalar("id", "!!str"), scalar(id, "!!str"),
				scalar("hidden", "!!str"), scalar("true", "!!bool"),
			},
		})
	}

	return writeDocument(configPath, doc)
}

func readDocument(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: config path comes from the user
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	if doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing config: top level must be a mapping")
	}
	return &doc, nil
}

func writeDocument(path string, doc *yaml.Node) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = enc.Close()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".gridline.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func scalar(value, tag string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func setMappingValue(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content, scalar(key, "!!str"), value)
}

func deleteMappingKey(m *yaml.Node, key string) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content = append(m.Content[:i], m.Content[i+2:]...)
			return
		}
	}
}
