// Package catalog holds the question text shown on the wheel. A Catalog is
// immutable after construction and safe for concurrent readers.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"
)

var ErrLookup = errors.New("question lookup failed")

//go:embed questions.yaml
var defaultQuestions []byte

// Question is a single catalog record.
type Question struct {
	Key      string `yaml:"key"`
	Question string `yaml:"question"`
}

// Category groups the questions of one wheel segment.
type Category struct {
	Name      string
	Questions []Question
}

type Catalog struct {
	order       []string
	questions   map[string][]Question
	fingerprint uint64
}

// New builds a catalog from categories in the given order. Slices are copied.
func New(categories ...Category) *Catalog {
	c := &Catalog{
		order:     make([]string, 0, len(categories)),
		questions: make(map[string][]Question, len(categories)),
	}
	for _, cat := range categories {
		if _, ok := c.questions[cat.Name]; !ok {
			c.order = append(c.order, cat.Name)
		}
		c.questions[cat.Name] = append(c.questions[cat.Name], cat.Questions...)
	}
	c.fingerprint = c.digest()
	return c
}

// digest hashes the catalog contents in order. Fields are NUL separated so
// adjacent values cannot run together.
func (c *Catalog) digest() uint64 {
	h := xxhash.New()
	for _, name := range c.order {
		h.WriteString(name)
		h.WriteString("\x00")
		for _, q := range c.questions[name] {
			h.WriteString(q.Key)
			h.WriteString("\x00")
			h.WriteString(q.Question)
			h.WriteString("\x00")
		}
		h.WriteString("\x01")
	}
	return h.Sum64()
}

// Parse decodes a YAML catalog: a mapping of category name to a list of
// {key, question} records. Category order follows the document.
func Parse(data []byte) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, errors.New("parse catalog: empty document")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse catalog: line %d: expected a mapping of categories", root.Line)
	}

	categories := make([]Category, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		var questions []Question
		if err := root.Content[i+1].Decode(&questions); err != nil {
			return nil, fmt.Errorf("parse catalog: category %q: %w", name, err)
		}
		for j, q := range questions {
			if q.Key == "" {
				return nil, fmt.Errorf("parse catalog: category %q: question %d has no key", name, j+1)
			}
		}
		categories = append(categories, Category{Name: name, Questions: questions})
	}
	return New(categories...), nil
}

// Load reads a YAML catalog from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. It is parsed once per process.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultQuestions)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Lookup resolves the question text for (category, key). Exactly one record
// must match.
func (c *Catalog) Lookup(category, key string) (string, error) {
	questions, ok := c.questions[category]
	if !ok {
		return "", fmt.Errorf("%w: category %q is not in the catalog", ErrLookup, category)
	}

	var (
		text    string
		matches int
	)
	for _, q := range questions {
		if q.Key == key {
			text = q.Question
			matches++
		}
	}

	switch matches {
	case 1:
		return text, nil
	case 0:
		return "", fmt.Errorf("%w: no question %q in category %q", ErrLookup, key, category)
	default:
		return "", fmt.Errorf("%w: %d questions share key %q in category %q", ErrLookup, matches, key, category)
	}
}

// Categories returns category names in catalog order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Questions returns a copy of the questions of a category.
func (c *Catalog) Questions(category string) []Question {
	qs := c.questions[category]
	out := make([]Question, len(qs))
	copy(out, qs)
	return out
}

// Fingerprint identifies the catalog contents. Two catalogs with the same
// categories, keys and question text in the same order share a fingerprint.
func (c *Catalog) Fingerprint() uint64 {
	return c.fingerprint
}

func (c *Catalog) Len() int {
	return len(c.order)
}
