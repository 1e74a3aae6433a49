package manifest

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/stackup-dev/stackup/internal/fsprobe"
	"go.yaml.in/yaml/v3"
)

// New returns a record with a fresh ID and the current UTC time.
func New(name, template, generator string) *Project {
	return &Project{
		ID:        uuid.NewString(),
		Name:      name,
		Template:  template,
		Generator: generator,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Parse reads a project record from path.
func Parse(path string) (*Project, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project record %s: %w", path, err)
	}
	return &p, nil
}

// Write serializes p to path through the prober.
func Write(fs *fsprobe.Prober, path string, p *Project) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding project record: %w", err)
	}
	return fs.WriteText(path, string(data))
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
