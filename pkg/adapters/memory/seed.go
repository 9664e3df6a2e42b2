package memory

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"github.com/goganux/texas-career-path-explorer/pkg/domain"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// Seed is the document shape accepted by LoadSeed.
type Seed struct {
	Interests       []domain.Interest       `yaml:"interests"`
	Students        []domain.Student        `yaml:"students"`
	Pathways        []domain.PathwayNode    `yaml:"pathways"`
	Progress        []domain.Progress       `yaml:"progress"`
	SimilarPathways []domain.SimilarPathway `yaml:"similarPathways"`
}

// DecodeSeed parses a YAML seed document. Unknown keys are rejected.
func DecodeSeed(r io.Reader) (Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		return Seed{}, fmt.Errorf("failed to decode seed: %w", err)
	}
	return seed, nil
}

// DefaultSeed returns the bundled demo catalog: five Texas career interests,
// the pathway graphs of the first three and one demo student.
func DefaultSeed() (Seed, error) {
	return DecodeSeed(bytes.NewReader(seedYAML))
}
