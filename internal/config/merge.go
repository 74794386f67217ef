package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyOutput   = "output"
	keyLogging  = "logging"
	keyServer   = "server"
	keySessions = "sessions"
	keyGreenOps = "greenops"
	keyDemo     = "demo"
)

// knownTopLevelKeys lists the YAML keys that correspond to exported Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyOutput:   true,
	keyLogging:  true,
	keyServer:   true,
	keySessions: true,
	keyGreenOps: true,
	keyDemo:     true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. Keys present in the overlay replace entire sections
// in the target. Keys absent in the overlay are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}
		if err = unmarshalSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection decodes one overlay section into a fresh value and
// replaces the matching field of target with it, so that keys missing from
// the overlay section fall back to zero values rather than to target's.
func unmarshalSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyOutput:
		return replaceSection(node, &target.Output)
	case keyLogging:
		return replaceSection(node, &target.Logging)
	case keyServer:
		return replaceSection(node, &target.Server)
	case keySessions:
		return replaceSection(node, &target.Sessions)
	case keyGreenOps:
		return replaceSection(node, &target.GreenOps)
	case keyDemo:
		return replaceSection(node, &target.Demo)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}

func replaceSection[T any](node *yaml.Node, field *T) error {
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	*field = v
	return nil
}
