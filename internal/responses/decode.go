package responses

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

func parseJSON(data []byte) (Set, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return Set{}, err
	}

	var set Set
	seen := make(map[string]struct{})
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return Set{}, err
		}
		if _, dup := seen[name]; dup {
			return Set{}, invalid("duplicate category %q", name)
		}
		seen[name] = struct{}{}

		answers, err := readAnswers(dec, name)
		if err != nil {
			return Set{}, err
		}
		set.Categories = append(set.Categories, Category{Name: name, Answers: answers})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return Set{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Set{}, invalid("trailing data after top-level object")
	}
	return set, nil
}

func readAnswers(dec *json.Decoder, category string) ([]Answer, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, invalid("category %q: expected an object of scores", category)
	}

	answers := make([]Answer, 0)
	seen := make(map[string]struct{})
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[key]; dup {
			return nil, invalid("category %q: duplicate question %q", category, key)
		}
		seen[key] = struct{}{}

		tok, err := dec.Token()
		if err != nil {
			return nil, invalid("category %q question %q: %v", category, key, err)
		}
		num, ok := tok.(json.Number)
		if !ok {
			return nil, invalid("category %q question %q: score must be a number", category, key)
		}
		score, err := num.Float64()
		if err != nil {
			return nil, invalid("category %q question %q: %v", category, key, err)
		}
		answers = append(answers, Answer{Key: key, Score: score})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return answers, nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", invalid("%v", err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", invalid("expected object key, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return invalid("%v", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return invalid("expected %q, got %v", want, tok)
	}
	return nil
}

func parseYAML(data []byte) (Set, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Set{}, invalid("%v", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return Set{}, nil
	}

	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return Set{}, invalid("line %d: top level must be a mapping", root.Line)
	}
	pairs, err := mappingPairs(root)
	if err != nil {
		return Set{}, err
	}

	var set Set
	seen := make(map[string]struct{})
	for _, p := range pairs {
		name := resolve(p.key).Value
		if _, dup := seen[name]; dup {
			return Set{}, invalid("duplicate category %q", name)
		}
		seen[name] = struct{}{}

		answers, err := yamlAnswers(name, p.value)
		if err != nil {
			return Set{}, err
		}
		set.Categories = append(set.Categories, Category{Name: name, Answers: answers})
	}
	return set, nil
}

func yamlAnswers(category string, node *yaml.Node) ([]Answer, error) {
	node = resolve(node)
	if node.Kind != yaml.MappingNode {
		return nil, invalid("line %d: category %q: expected a mapping of scores", node.Line, category)
	}
	pairs, err := mappingPairs(node)
	if err != nil {
		return nil, err
	}

	answers := make([]Answer, 0, len(pairs))
	seen := make(map[string]struct{})
	for _, p := range pairs {
		key := resolve(p.key).Value
		if _, dup := seen[key]; dup {
			return nil, invalid("category %q: duplicate question %q", category, key)
		}
		seen[key] = struct{}{}

		val := resolve(p.value)
		if val.Kind != yaml.ScalarNode || (val.Tag != "!!int" && val.Tag != "!!float") {
			return nil, invalid("line %d: category %q question %q: score must be a number", val.Line, category, key)
		}
		var score float64
		if err := val.Decode(&score); err != nil {
			return nil, invalid("line %d: category %q question %q: %v", val.Line, category, key, err)
		}
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return nil, invalid("line %d: category %q question %q: score must be finite", val.Line, category, key)
		}
		answers = append(answers, Answer{Key: key, Score: score})
	}
	return answers, nil
}

type yamlPair struct {
	key   *yaml.Node
	value *yaml.Node
}

// mappingPairs flattens a mapping node, expanding "<<" merge keys in place.
// Keys written in the mapping itself win over merged ones; among merged
// sources the first one listed wins.
func mappingPairs(node *yaml.Node) ([]yamlPair, error) {
	explicit := make(map[string]struct{})
	for i := 0; i+1 < len(node.Content); i += 2 {
		if k := node.Content[i]; !isMergeKey(k) {
			explicit[resolve(k).Value] = struct{}{}
		}
	}

	pairs := make([]yamlPair, 0, len(node.Content)/2)
	merged := make(map[string]struct{})
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if !isMergeKey(k) {
			pairs = append(pairs, yamlPair{key: k, value: v})
			continue
		}

		sources, err := mergeSources(k.Line, v)
		if err != nil {
			return nil, err
		}
		for _, src := range sources {
			sub, err := mappingPairs(src)
			if err != nil {
				return nil, err
			}
			for _, p := range sub {
				name := resolve(p.key).Value
				if _, ok := explicit[name]; ok {
					continue
				}
				if _, ok := merged[name]; ok {
					continue
				}
				merged[name] = struct{}{}
				pairs = append(pairs, p)
			}
		}
	}
	return pairs, nil
}

func mergeSources(line int, v *yaml.Node) ([]*yaml.Node, error) {
	v = resolve(v)
	switch v.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{v}, nil
	case yaml.SequenceNode:
		out := make([]*yaml.Node, 0, len(v.Content))
		for _, item := range v.Content {
			item = resolve(item)
			if item.Kind != yaml.MappingNode {
				return nil, invalid("line %d: merge value must be a mapping or a list of mappings", line)
			}
			out = append(out, item)
		}
		return out, nil
	default:
		return nil, invalid("line %d: merge value must be a mapping or a list of mappings", line)
	}
}

// resolve follows alias nodes to the node they name.
func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!merge"
}
