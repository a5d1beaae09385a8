// Package zonefile reads zone definition files and detector class lists.
package zonefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"slotwatch-worker-go/internal/occupancy"
)

// ErrUnitRequired is returned for a zone file that does not say which coordinate unit it uses.
var ErrUnitRequired = errors.New("zone file does not declare a coordinate unit")

// File is the on-disk zone definition format.
type File struct {
	Unit  occupancy.Unit             `json:"unit"`
	Zones []occupancy.ZoneDefinition `json:"zones"`
}

// Parse decodes a zone file. The legacy form, a bare array of zones as written
// by the annotation tool, carries no unit and is accepted only when fallback
// names one.
func Parse(data []byte, fallback occupancy.Unit) (*File, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty zone file", occupancy.ErrMalformedZoneData)
	}

	var f File
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &f.Zones); err != nil {
			return nil, fmt.Errorf("%w: %v", occupancy.ErrMalformedZoneData, err)
		}
		f.Unit = fallback
	} else {
		if err := json.Unmarshal(trimmed, &f); err != nil {
			return nil, fmt.Errorf("%w: %v", occupancy.ErrMalformedZoneData, err)
		}
	}

	if f.Unit == "" {
		return nil, ErrUnitRequired
	}
	if _, err := occupancy.ParseUnit(string(f.Unit)); err != nil {
		return nil, err
	}
	return &f, nil
}

// Registry loads the zones of the file into a frozen registry.
func (f *File) Registry() (*occupancy.Registry, error) {
	return occupancy.LoadRegistry(f.Unit, f.Zones)
}

// LoadRegistry reads and validates the zone file at path.
func LoadRegistry(path string, fallback occupancy.Unit) (*occupancy.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read zone file: %w", err)
	}

	f, err := Parse(data, fallback)
	if err != nil {
		return nil, fmt.Errorf("zone file %s: %w", path, err)
	}

	reg, err := f.Registry()
	if err != nil {
		return nil, fmt.Errorf("zone file %s: %w", path, err)
	}
	return reg, nil
}

// Save writes zones in the unit-tagged format.
func Save(path string, f *File) error {
	data, err := json.MarshalIndent(f, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

type classFile struct {
	Names yaml.Node `yaml:"names"`
}

// ParseClasses decodes the names entry of a dataset YAML file. Both the list
// form and the id-keyed mapping form are accepted.
func ParseClasses(data []byte) (occupancy.ClassList, error) {
	var cf classFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse class list: %w", err)
	}

	switch cf.Names.Kind {
	case yaml.SequenceNode:
		var names []string
		if err := cf.Names.Decode(&names); err != nil {
			return nil, fmt.Errorf("failed to decode class names: %w", err)
		}
		return occupancy.ClassList(names), nil

	case yaml.MappingNode:
		var byID map[int]string
		if err := cf.Names.Decode(&byID); err != nil {
			return nil, fmt.Errorf("failed to decode class names: %w", err)
		}
		names := make([]string, len(byID))
		for id, name := range byID {
			if id < 0 || id >= len(byID) {
				return nil, fmt.Errorf("class ids must be contiguous from 0, got %d", id)
			}
			names[id] = name
		}
		return occupancy.ClassList(names), nil

	case 0:
		return nil, errors.New("class list has no names entry")

	default:
		return nil, fmt.Errorf("unsupported names entry at line %d", cf.Names.Line)
	}
}

// LoadClasses reads the class list at path.
func LoadClasses(path string) (occupancy.ClassList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class list: %w", err)
	}
	return ParseClasses(data)
}
