package catalog

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	c := New(
		Category{Name: "Health", Questions: []Question{
			{Key: "q1", Question: "Sleep"},
			{Key: "q2", Question: "Food"},
		}},
		Category{Name: "Career", Questions: []Question{
			{Key: "q1", Question: "Growth"},
			{Key: "q1", Question: "Growth again"},
		}},
	)

	t.Run("unique match", func(t *testing.T) {
		text, err := c.Lookup("Health", "q2")

		assert.NoError(t, err)
		assert.Equal(t, "Food", text)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := c.Lookup("Health", "q9")

		assert.ErrorIs(t, err, ErrLookup)
		assert.Contains(t, err.Error(), `no question "q9"`)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := c.Lookup("Finances", "q1")

		assert.ErrorIs(t, err, ErrLookup)
		assert.Contains(t, err.Error(), `"Finances"`)
	})

	t.Run("ambiguous key", func(t *testing.T) {
		_, err := c.Lookup("Career", "q1")

		assert.ErrorIs(t, err, ErrLookup)
		assert.Contains(t, err.Error(), "2 questions share key")
	})
}

func TestParse(t *testing.T) {
	t.Run("keeps category order", func(t *testing.T) {
		doc := `
Zeta:
  - key: a
    question: First
Alpha:
  - key: b
    question: Second
`
		c, err := Parse([]byte(doc))

		require.NoError(t, err)
		assert.Equal(t, []string{"Zeta", "Alpha"}, c.Categories())
		assert.Equal(t, []Question{{Key: "b", Question: "Second"}}, c.Questions("Alpha"))
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := Parse([]byte("Health:\n  - question: Sleep\n"))
		assert.Error(t, err)
	})

	t.Run("not a mapping", func(t *testing.T) {
		_, err := Parse([]byte("- Health\n"))
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Parse([]byte(""))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Health:\n  - key: q1\n    question: Sleep\n"), 0o644))

	c, err := Load(path)

	require.NoError(t, err)
	text, err := c.Lookup("Health", "q1")
	require.NoError(t, err)
	assert.Equal(t, "Sleep", text)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	c := Default()

	require.NotNil(t, c)
	assert.Same(t, c, Default())
	assert.Equal(t, 8, c.Len())

	for _, name := range c.Categories() {
		questions := c.Questions(name)
		assert.Len(t, questions, 5, name)
		for _, q := range questions {
			text, err := c.Lookup(name, q.Key)
			assert.NoError(t, err, "%s/%s", name, q.Key)
			assert.NotEmpty(t, text)
		}
	}
}

func TestDefaultConcurrentReads(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Default().Lookup("Health", "q1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := New(Category{Name: "Health", Questions: []Question{{Key: "q1", Question: "Sleep"}}})

	qs := c.Questions("Health")
	qs[0].Question = "changed"
	names := c.Categories()
	names[0] = "changed"

	text, err := c.Lookup("Health", "q1")
	require.NoError(t, err)
	assert.Equal(t, "Sleep", text)
	assert.Equal(t, []string{"Health"}, c.Categories())
}

func TestFingerprint(t *testing.T) {
	base := func() *Catalog {
		return New(
			Category{Name: "Health", Questions: []Question{{Key: "q1", Question: "Sleep?"}}},
			Category{Name: "Career", Questions: []Question{{Key: "q1", Question: "Work?"}}},
		)
	}

	assert.Equal(t, base().Fingerprint(), base().Fingerprint())
	assert.Equal(t, Default().Fingerprint(), Default().Fingerprint())

	tests := map[string]*Catalog{
		"question text": New(
			Category{Name: "Health", Questions: []Question{{Key: "q1", Question: "Diet?"}}},
			Category{Name: "Career", Questions: []Question{{Key: "q1", Question: "Work?"}}},
		),
		"category order": New(
			Category{Name: "Career", Questions: []Question{{Key: "q1", Question: "Work?"}}},
			Category{Name: "Health", Questions: []Question{{Key: "q1", Question: "Sleep?"}}},
		),
		"field boundaries": New(
			Category{Name: "Health", Questions: []Question{{Key: "q1S", Question: "leep?"}}},
			Category{Name: "Career", Questions: []Question{{Key: "q1", Question: "Work?"}}},
		),
	}
	for name, other := range tests {
		t.Run(name, func(t *testing.T) {
			assert.NotEqual(t, base().Fingerprint(), other.Fingerprint())
		})
	}
}
