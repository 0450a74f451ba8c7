package store

import (
	"bytes"
	"context"
	_ "embed"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/comps-engine/internal/model"
)

//go:embed fixtures/companies.yaml
var fixtureYAML []byte

// FixtureSource serves the built-in index snapshot compiled into the binary.
type FixtureSource struct{}

// Load parses the embedded fixture.
func (FixtureSource) Load(_ context.Context) ([]model.Company, error) {
	companies, err := ParseYAML(fixtureYAML)
	if err != nil {
		return nil, eris.Wrap(err, "fixture")
	}
	return companies, nil
}

// YAMLSource reads a snapshot from a YAML file with the same layout as the
// embedded fixture.
type YAMLSource struct {
	Path string
}

// Load reads and parses the file at Path.
func (s YAMLSource) Load(_ context.Context) ([]model.Company, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, eris.Wrapf(err, "yaml: read %s", s.Path)
	}
	return ParseYAML(data)
}

// ParseYAML decodes a snapshot document. The document has a top-level
// "companies" list; unknown keys are rejected so typos in metric names do not
// silently become zeros.
func ParseYAML(data []byte) ([]model.Company, error) {
	var doc struct {
		Companies []model.Company `yaml:"companies"`
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, eris.Wrap(err, "yaml: parse snapshot")
	}
	return doc.Companies, nil
}
