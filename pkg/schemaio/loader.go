// Package schemaio loads a schema document from disk: picking a loader by
// file extension, expanding environment variable references in the raw
// text, and handing the result to schema.ParseDocument. It mirrors the
// extension-dispatched Loader/LoaderRegistry shape the project's config
// loading already uses, generalized from YAML-only to JSON too since a
// generator schema is just as naturally written as either.
package schemaio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/datagen-go/datagen/pkg/schema"
)

// Loader reads one schema file format from disk.
type Loader interface {
	CanLoad(path string) bool
	Load(path string) (*schema.Document, error)
}

// LoaderRegistry dispatches Load to the first registered Loader that
// claims a given path.
type LoaderRegistry struct {
	loaders []Loader
}

// NewLoaderRegistry builds the default registry: JSON and YAML, in that
// order.
func NewLoaderRegistry() *LoaderRegistry {
	return &LoaderRegistry{loaders: []Loader{JSONLoader{}, YAMLLoader{}}}
}

func (r *LoaderRegistry) Load(path string) (*schema.Document, error) {
	for _, loader := range r.loaders {
		if loader.CanLoad(path) {
			doc, err := loader.Load(path)
			if err != nil {
				return nil, fmt.Errorf("schemaio: loading %q with %T: %w", path, loader, err)
			}
			return doc, nil
		}
	}
	return nil, fmt.Errorf("schemaio: no loader registered for file: %s", path)
}

func extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// JSONLoader loads ".json" schema files.
type JSONLoader struct{}

func (JSONLoader) CanLoad(path string) bool { return extension(path) == ".json" }

func (JSONLoader) Load(path string) (*schema.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	expanded := []byte(ExpandEnvVars(string(raw)))
	return schema.ParseDocument(expanded)
}

// YAMLLoader loads ".yaml"/".yml" schema files, re-rendering them as JSON
// (preserving key order) before handing them to schema.ParseDocument.
type YAMLLoader struct{}

func (YAMLLoader) CanLoad(path string) bool {
	ext := extension(path)
	return ext == ".yaml" || ext == ".yml"
}

func (YAMLLoader) Load(path string) (*schema.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	expanded := []byte(ExpandEnvVars(string(raw)))
	jsonRaw, err := yamlToJSON(expanded)
	if err != nil {
		return nil, err
	}
	return schema.ParseDocument(jsonRaw)
}
