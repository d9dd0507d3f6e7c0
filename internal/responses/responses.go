package responses

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrMissingInputFile = errors.New("input file not found")
	ErrInvalidDocument  = errors.New("invalid response document")
)

// Format identifies the encoding of a response document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFor picks the decoder from the file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Answer is one scored question inside a category.
type Answer struct {
	Key   string
	Score float64
}

// Category holds the answers of one category in document order.
type Category struct {
	Name    string
	Answers []Answer
}

// Stats returns the mean, minimum and maximum score of the category.
func (c Category) Stats() (mean, lo, hi float64) {
	if len(c.Answers) == 0 {
		return 0, 0, 0
	}
	lo, hi = c.Answers[0].Score, c.Answers[0].Score
	var sum float64
	for _, a := range c.Answers {
		sum += a.Score
		if a.Score < lo {
			lo = a.Score
		}
		if a.Score > hi {
			hi = a.Score
		}
	}
	return sum / float64(len(c.Answers)), lo, hi
}

// Set is an ordered category -> question -> score mapping. Order follows the
// source document.
type Set struct {
	Categories []Category
}

func (s Set) Len() int {
	return len(s.Categories)
}

// Category returns the category with the given name.
func (s Set) Category(name string) (Category, bool) {
	for _, c := range s.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// CheckExists reports ErrMissingInputFile when path does not exist.
func CheckExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingInputFile, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return nil
}

// Load reads a response document from disk. A missing file is reported
// before any decoding takes place.
func Load(path string) (Set, error) {
	if err := CheckExists(path); err != nil {
		return Set{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("read %s: %w", path, err)
	}
	set, err := Parse(data, FormatFor(path))
	if err != nil {
		return Set{}, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Parse decodes an in-memory response document.
func Parse(data []byte, format Format) (Set, error) {
	if format == FormatYAML {
		return parseYAML(data)
	}
	return parseJSON(data)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDocument, fmt.Sprintf(format, args...))
}
