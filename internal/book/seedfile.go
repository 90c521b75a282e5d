package book

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Books []Input `yaml:"books"`
}

// LoadSeedFile reads a YAML catalog of the form `books: [{title, author, description, count}]`.
func LoadSeedFile(path string) ([]Input, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return f.Books, nil
}
