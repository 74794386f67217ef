package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the profile document version written by Encode.
const SchemaVersion = "1.0.0"

// schemaConstraint accepts every document this release can read.
const schemaConstraint = "^1.0.0"

// Format selects the profile document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath guesses the document format from a file extension.
// Anything other than .json is read as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Document is the on-disk form of a profile.
type Document struct {
	SchemaVersion string `json:"schemaVersion,omitempty" yaml:"schemaVersion,omitempty"`
	Profile       `yaml:",inline"`
}

// Load decodes and validates one profile document. Unknown keys, unknown
// enum values and incompatible schema versions are rejected.
func Load(r io.Reader, format Format) (Profile, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return Profile{}, fmt.Errorf("decoding profile JSON: %w", err)
		}
	case FormatYAML, "":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return Profile{}, fmt.Errorf("decoding profile YAML: %w", err)
		}
	default:
		return Profile{}, fmt.Errorf("unsupported profile format %q", format)
	}
	return doc.resolve()
}

// LoadBytes is Load over an in-memory document.
func LoadBytes(data []byte, format Format) (Profile, error) {
	return Load(bytes.NewReader(data), format)
}

// LoadFile reads a profile document, picking the format from the extension.
func LoadFile(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return Profile{}, fmt.Errorf("opening profile %s: %w", path, err)
	}
	defer f.Close()

	p, err := Load(f, FormatForPath(path))
	if err != nil {
		return Profile{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Encode writes p as a versioned document.
func Encode(w io.Writer, p Profile, format Format) error {
	doc := Document{SchemaVersion: SchemaVersion, Profile: p}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported profile format %q", format)
	}
}

// resolve checks the schema version and the profile contents.
func (d Document) resolve() (Profile, error) {
	if err := CheckSchemaVersion(d.SchemaVersion); err != nil {
		return Profile{}, err
	}
	if err := d.Profile.Validate(); err != nil {
		return Profile{}, fmt.Errorf("invalid profile: %w", err)
	}
	return d.Profile, nil
}

// CheckSchemaVersion reports whether a document version can be read.
// An empty version is treated as SchemaVersion.
func CheckSchemaVersion(version string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q is not a semantic version: %w", ErrIncompatibleSchema, version, err)
	}
	c, err := semver.NewConstraint(schemaConstraint)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrIncompatibleSchema, version, schemaConstraint)
	}
	return nil
}
