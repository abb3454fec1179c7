// Package ontology defines the read-only data model consumed by the layout
// engine: classes and object properties loaded from an ontology source, plus
// project-authored properties and concept schemes.
//
// All types are plain data with JSON and BSON tags. The package performs no
// network or database I/O of its own - snapshots arrive from the CRUD layer,
// from uploaded JSON files, or from a store implementation.
package ontology

import (
	"encoding/json"
	"fmt"
	"os"
)

// Cardinality values for project properties.
const (
	CardinalitySingle   = "single"
	CardinalityMultiple = "multiple"
)

// ValidCardinality reports whether s is a known cardinality value.
func ValidCardinality(s string) bool {
	return s == CardinalitySingle || s == CardinalityMultiple
}

// Class is a named vertex in the domain model. Classes are immutable once
// loaded and owned by the ontology source.
type Class struct {
	URI     string `json:"uri" bson:"uri"`
	Label   string `json:"label" bson:"label"`
	Comment string `json:"comment,omitempty" bson:"comment,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the URI.
func (c Class) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return c.URI
}

// ObjectProperty declares that one or more domain classes relate to one or
// more range classes. A property may co-exist with an inverse property
// describing the same conceptual link in the opposite direction.
type ObjectProperty struct {
	URI    string  `json:"uri" bson:"uri"`
	Label  string  `json:"label" bson:"label"`
	Domain []Class `json:"domain,omitempty" bson:"domain,omitempty"`
	Range  []Class `json:"range,omitempty" bson:"range,omitempty"`
}

// ProjectProperty is a project-authored edge from a domain class to either a
// concept scheme or a primitive datatype. Exactly one of RangeSchemeID and
// RangeDatatype is normally set.
type ProjectProperty struct {
	ID            string `json:"id" bson:"id"`
	Label         string `json:"label" bson:"label"`
	DomainClass   string `json:"domain_class" bson:"domain_class"`
	RangeSchemeID string `json:"range_scheme_id,omitempty" bson:"range_scheme_id,omitempty"`
	RangeDatatype string `json:"range_datatype,omitempty" bson:"range_datatype,omitempty"`
	Cardinality   string `json:"cardinality,omitempty" bson:"cardinality,omitempty"`
	Required      bool   `json:"required,omitempty" bson:"required,omitempty"`
	Description   string `json:"description,omitempty" bson:"description,omitempty"`
}

// IsSchemeValued reports whether the property points at a concept scheme.
func (p ProjectProperty) IsSchemeValued() bool { return p.RangeSchemeID != "" }

// Scheme is a concept scheme a project property can point at.
type Scheme struct {
	ID          string `json:"id" bson:"id"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Snapshot bundles everything the layout engine reads for one project:
// the ontology (classes + object properties) and the project data
// (project properties + schemes).
type Snapshot struct {
	Project           string            `json:"project,omitempty" bson:"project,omitempty"`
	Classes           []Class           `json:"classes" bson:"classes"`
	Properties        []ObjectProperty  `json:"properties,omitempty" bson:"properties,omitempty"`
	ProjectProperties []ProjectProperty `json:"project_properties,omitempty" bson:"project_properties,omitempty"`
	Schemes           []Scheme          `json:"schemes,omitempty" bson:"schemes,omitempty"`
}

// ClassSet returns the set of known class URIs.
func (s *Snapshot) ClassSet() map[string]bool {
	set := make(map[string]bool, len(s.Classes))
	for _, c := range s.Classes {
		set[c.URI] = true
	}
	return set
}

// Class returns the class with the given URI and true, or a zero Class and
// false if the URI is unknown.
func (s *Snapshot) Class(uri string) (Class, bool) {
	for _, c := range s.Classes {
		if c.URI == uri {
			return c, true
		}
	}
	return Class{}, false
}

// Scheme returns the scheme with the given ID and true, or a zero Scheme and
// false if the ID is unknown.
func (s *Snapshot) Scheme(id string) (Scheme, bool) {
	for _, sc := range s.Schemes {
		if sc.ID == id {
			return sc, true
		}
	}
	return Scheme{}, false
}

// Validate returns a list of human-readable warnings about the snapshot:
// duplicate class URIs, project properties whose domain class is unknown,
// and scheme-valued properties pointing at unknown schemes.
//
// Warnings never block layout computation - the engine silently skips the
// offending entries - but they are useful to surface in the CLI and API.
func (s *Snapshot) Validate() []string {
	var warnings []string

	seen := make(map[string]bool, len(s.Classes))
	for _, c := range s.Classes {
		if c.URI == "" {
			warnings = append(warnings, "class with empty URI")
			continue
		}
		if seen[c.URI] {
			warnings = append(warnings, fmt.Sprintf("duplicate class URI %q", c.URI))
		}
		seen[c.URI] = true
	}

	schemes := make(map[string]bool, len(s.Schemes))
	for _, sc := range s.Schemes {
		schemes[sc.ID] = true
	}

	for _, p := range s.ProjectProperties {
		if p.DomainClass != "" && !seen[p.DomainClass] {
			warnings = append(warnings, fmt.Sprintf("project property %q references unknown domain class %q", p.Label, p.DomainClass))
		}
		if p.RangeSchemeID != "" && !schemes[p.RangeSchemeID] {
			warnings = append(warnings, fmt.Sprintf("project property %q references unknown scheme %q", p.Label, p.RangeSchemeID))
		}
		if p.Cardinality != "" && !ValidCardinality(p.Cardinality) {
			warnings = append(warnings, fmt.Sprintf("project property %q has invalid cardinality %q", p.Label, p.Cardinality))
		}
	}

	return warnings
}

// MarshalSnapshot serializes a snapshot to pretty-printed JSON bytes.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalSnapshot deserializes JSON bytes into a snapshot.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return s, nil
}

// WriteSnapshotFile writes a snapshot to a JSON file.
func WriteSnapshotFile(s Snapshot, path string) error {
	data, err := MarshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadSnapshotFile reads a snapshot from a JSON file.
func ReadSnapshotFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalSnapshot(data)
}
