package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/planetprint/internal/config"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// tabPadding is the column gap of tabwriter tables.
const tabPadding = 2

// ErrUnsupportedFormat is returned for an unknown --output value.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// resolveFormat returns flagValue, or the configured default when the
// flag is empty.
func resolveFormat(flagValue string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flagValue))
	if format == "" {
		format = config.GetDefaultOutputFormat()
	}
	if !slices.Contains(config.ValidFormats(), format) {
		return "", fmt.Errorf("%w: %q (want %s)", ErrUnsupportedFormat, flagValue,
			strings.Join(config.ValidFormats(), ", "))
	}
	return format, nil
}

// renderStructured writes v as indented JSON or as YAML.
func renderStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// formatFloat renders f with the configured precision.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.*f", config.GetOutputPrecision(), f)
}
