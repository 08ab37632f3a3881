// Package prompt holds the fixed, versioned instruction templates sent to the
// generation service and renders them with named slots.
package prompt

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

const (
	SemanticSearch = "semantic_search"
	GenerateAnswer = "generate_answer"
)

//go:embed templates.yaml
var templatesYAML []byte

type definition struct {
	ID      string   `yaml:"id"`
	Version int      `yaml:"version"`
	Slots   []string `yaml:"slots"`
	Text    string   `yaml:"text"`
}

type registryFile struct {
	Templates []definition `yaml:"templates"`
}

// Template is a parsed registry entry
type Template struct {
	ID      string
	Version int
	Slots   []string
	tmpl    *template.Template
}

// Ref identifies the exact template revision, e.g. "semantic_search@v1"
func (t *Template) Ref() string {
	return fmt.Sprintf("%s@v%d", t.ID, t.Version)
}

// Registry is immutable after construction and safe for concurrent use
type Registry struct {
	templates map[string]*Template
}

var defaultRegistry = mustLoad(templatesYAML)

// Default returns the registry built from the embedded templates
func Default() *Registry {
	return defaultRegistry
}

func mustLoad(data []byte) *Registry {
	r, err := Load(data)
	if err != nil {
		panic(fmt.Sprintf("prompt: load embedded templates: %v", err))
	}
	return r
}

// Load parses a YAML template registry
func Load(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := &Registry{templates: make(map[string]*Template, len(file.Templates))}
	for _, def := range file.Templates {
		if def.ID == "" || def.Version < 1 {
			return nil, fmt.Errorf("template %q: id and positive version are required", def.ID)
		}
		if _, exists := r.templates[def.ID]; exists {
			return nil, fmt.Errorf("template %q: defined more than once", def.ID)
		}

		tmpl, err := template.New(def.ID).Option("missingkey=error").Parse(def.Text)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", def.ID, err)
		}

		r.templates[def.ID] = &Template{
			ID:      def.ID,
			Version: def.Version,
			Slots:   def.Slots,
			tmpl:    tmpl,
		}
	}

	return r, nil
}

// Get returns the template registered under id
func (r *Registry) Get(id string) (*Template, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, fmt.Errorf("unknown template %q", id)
	}
	return t, nil
}

// IDs lists registered template ids in sorted order
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Render substitutes vars into the template registered under id.
// Every declared slot must be supplied; values are inserted literally.
func (r *Registry) Render(id string, vars map[string]string) (string, error) {
	t, err := r.Get(id)
	if err != nil {
		return "", err
	}

	var missing []string
	for _, slot := range t.Slots {
		if _, ok := vars[slot]; !ok {
			missing = append(missing, slot)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("template %q: missing slots: %s", id, strings.Join(missing, ", "))
	}

	var sb strings.Builder
	if err := t.tmpl.Execute(&sb, vars); err != nil {
		return "", fmt.Errorf("render template %q: %w", id, err)
	}

	return sb.String(), nil
}

// Render renders a template from the default registry
func Render(id string, vars map[string]string) (string, error) {
	return defaultRegistry.Render(id, vars)
}
