package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	adsignal "github.com/goliatone/go-adsignal"
)

var errNoRecord = errors.New("record file is required")

// readRecord parses a YAML or JSON record file; "-" reads from in.
func readRecord(path string, in io.Reader) (map[string]any, error) {
	if path == "" {
		return nil, errNoRecord
	}
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(in)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	var nodes map[string]yaml.Node
	if err := yaml.Unmarshal(raw, &nodes); err != nil {
		return nil, fmt.Errorf("parse record %s: %w", path, err)
	}
	record := make(map[string]any, len(nodes))
	for key, node := range nodes {
		node := node
		value, err := scalarText(&node)
		if err != nil {
			return nil, fmt.Errorf("parse record %s: %s: %w", path, key, err)
		}
		record[key] = value
	}
	return record, nil
}

// scalarText keeps scalars as their source text, so `zip: 02134` stays
// "02134" and long IDs keep every digit. Sequences become []any of the same.
// Mappings are decoded as-is and rejected later by field decoding.
func scalarText(node *yaml.Node) (any, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return nil, nil
		}
		return node.Value, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := scalarText(child)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	default:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, err
		}
		return value, nil
	}
}

func (a *app) loadUserData(path string, in io.Reader) (*adsignal.UserData, error) {
	record, err := readRecord(path, in)
	if err != nil {
		return nil, err
	}
	return adsignal.FromPayload(record, a.userDataOptions(path)...)
}

func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
