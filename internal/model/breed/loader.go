package breed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the catalog decoder.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

type catalogDocument struct {
	Breeds []Profile `json:"breeds" yaml:"breeds"`
}

// Decode parses a catalog either as a bare list of profiles or as a
// document with a top-level "breeds" list, then validates it.
func Decode(data []byte, format Format) ([]Profile, error) {
	var (
		doc  catalogDocument
		list []Profile
		err  error
	)

	switch format {
	case FormatJSON:
		if err = json.Unmarshal(data, &doc); err != nil || doc.Breeds == nil {
			doc.Breeds = nil
			err = json.Unmarshal(data, &list)
		}
	case FormatYAML:
		if err = yaml.Unmarshal(data, &doc); err != nil || doc.Breeds == nil {
			doc.Breeds = nil
			err = yaml.Unmarshal(data, &list)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s catalog: %w", format, err)
	}

	profiles := doc.Breeds
	if profiles == nil {
		profiles = list
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrInvalidProfile)
	}
	if err := Validate(profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// LoadFile reads a catalog file; the extension picks the format.
func LoadFile(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}
	return Decode(data, format)
}
