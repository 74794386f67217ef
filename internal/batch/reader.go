package batch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rshade/planetprint/internal/profile"
)

// ReadProfiles reads a cohort of profile documents. It accepts a JSON
// array, JSON Lines (one document per line), a YAML sequence or a
// multi-document YAML stream. Every document is validated like a single
// profile file.
func ReadProfiles(r io.Reader) ([]profile.Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading profiles: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyItems
	}

	var profiles []profile.Profile
	switch trimmed[0] {
	case '[':
		profiles, err = readJSONArray(trimmed)
	case '{':
		profiles, err = readJSONLines(trimmed)
	default:
		profiles, err = readYAML(trimmed)
	}
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, ErrEmptyItems
	}
	return profiles, nil
}

func readJSONArray(data []byte) ([]profile.Profile, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding profile array: %w", err)
	}
	out := make([]profile.Profile, 0, len(raw))
	for i, doc := range raw {
		p, err := profile.LoadBytes(doc, profile.FormatJSON)
		if err != nil {
			return nil, fmt.Errorf("profile %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func readJSONLines(data []byte) ([]profile.Profile, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var out []profile.Profile
	for i := 0; ; i++ {
		var doc json.RawMessage
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("decoding profile %d: %w", i, err)
		}
		p, err := profile.LoadBytes(doc, profile.FormatJSON)
		if err != nil {
			return nil, fmt.Errorf("profile %d: %w", i, err)
		}
		out = append(out, p)
	}
}

func readYAML(data []byte) ([]profile.Profile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []profile.Profile
	for {
		var node yaml.Node
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("decoding profile YAML: %w", err)
		}
		docs := []*yaml.Node{&node}
		if len(node.Content) == 1 && node.Content[0].Kind == yaml.SequenceNode {
			docs = node.Content[0].Content
		}
		for _, doc := range docs {
			p, err := loadYAMLNode(doc)
			if err != nil {
				return nil, fmt.Errorf("profile %d: %w", len(out), err)
			}
			out = append(out, p)
		}
	}
}

// loadYAMLNode re-encodes one node so it goes through profile.Load and
// its strict field checks.
func loadYAMLNode(node *yaml.Node) (profile.Profile, error) {
	raw, err := yaml.Marshal(node)
	if err != nil {
		return profile.Profile{}, err
	}
	return profile.LoadBytes(raw, profile.FormatYAML)
}
