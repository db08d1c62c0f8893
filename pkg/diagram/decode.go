package diagram

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/deckdraw/pkg/boxtree"
	"github.com/matzehuels/deckdraw/pkg/errors"
	"github.com/matzehuels/deckdraw/pkg/geom"
)

// Load reads and parses a deck description file.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read deck %s", path)
	}
	return Parse(data)
}

// Parse decodes a YAML deck description, normalizing lenient roots:
//
//   - a mapping with "slides" is a full deck
//   - a mapping with only "components" becomes a single-slide deck
//   - a sequence of mappings carrying "tool" becomes the component list
//     of a single auto slide
//   - any other sequence is treated as a slide list
func Parse(data []byte) (*Deck, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDeck, err, "decode deck")
	}
	if len(doc.Content) == 0 {
		return &Deck{Version: 1}, nil
	}
	root := doc.Content[0]

	deck := &Deck{Version: 1}
	switch root.Kind {
	case yaml.SequenceNode:
		if err := decodeSequenceRoot(root, deck); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		if err := decodeMappingRoot(root, deck); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidDeck, "deck root must be a mapping or sequence")
	}

	applySlideDefaults(deck)
	return deck, nil
}

func decodeSequenceRoot(root *yaml.Node, deck *Deck) error {
	if firstHasKey(root, "tool") {
		var comps []Component
		if err := root.Decode(&comps); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDeck, err, "decode component list")
		}
		deck.Slides = []Slide{{Components: comps}}
		return nil
	}
	var slides []Slide
	if err := root.Decode(&slides); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDeck, err, "decode slide list")
	}
	deck.Slides = slides
	return nil
}

func decodeMappingRoot(root *yaml.Node, deck *Deck) error {
	if hasKey(root, "slides") || !hasKey(root, "components") {
		if err := root.Decode(deck); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDeck, err, "decode deck")
		}
		return nil
	}
	// Mapping with components but no slides: wrap into one slide.
	var slide Slide
	if err := root.Decode(&slide); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDeck, err, "decode slide")
	}
	deck.Slides = []Slide{slide}
	return nil
}

func applySlideDefaults(deck *Deck) {
	if deck.Version == 0 {
		deck.Version = 1
	}
	for i := range deck.Slides {
		s := &deck.Slides[i]
		if s.ID == "" {
			s.ID = fmt.Sprintf("auto_%d", i+1)
		}
		if s.Background == "" {
			s.Background = "#FFFFFF"
		}
	}
}

// hasKey reports whether the mapping node carries the given top-level key.
func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}

// firstHasKey reports whether the first element of a sequence is a
// mapping carrying the given key.
func firstHasKey(seq *yaml.Node, key string) bool {
	if len(seq.Content) == 0 {
		return false
	}
	first := seq.Content[0]
	return first.Kind == yaml.MappingNode && hasKey(first, key)
}

// rawComponent mirrors the IR component shape: a tool name plus an
// untyped data payload, decoded into the matching typed payload below.
type rawComponent struct {
	Tool   string        `yaml:"tool"`
	ID     string        `yaml:"id"`
	Pos    *geom.RelRect `yaml:"pos"`
	ZIndex int           `yaml:"z_index"`
	Data   yaml.Node     `yaml:"data"`
}

// UnmarshalYAML decodes a component and its kind-specific payload.
func (c *Component) UnmarshalYAML(value *yaml.Node) error {
	var raw rawComponent
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Tool == "" {
		return errors.New(errors.ErrCodeInvalidDeck, "component is missing 'tool'")
	}

	c.Kind = raw.Tool
	c.ID = raw.ID
	c.Pos = raw.Pos
	c.ZIndex = raw.ZIndex

	hasData := raw.Data.Kind != 0
	switch raw.Tool {
	case KindSlideTitle:
		c.Title = &TitleSpec{}
		if hasData {
			return raw.Data.Decode(c.Title)
		}
	case KindPlainBox:
		c.Box = &BoxSpec{}
		if hasData {
			return raw.Data.Decode(c.Box)
		}
	case KindDiagram:
		c.Diagram = &GraphSpec{}
		if hasData {
			return raw.Data.Decode(c.Diagram)
		}
	case KindDecomposeTree:
		c.Tree = &TreeSpec{}
		if hasData {
			return raw.Data.Decode(c.Tree)
		}
	default:
		// Unknown kinds survive decoding; the composer skips them.
	}
	return nil
}

// rawBoxNode decodes one box tree node. Weight is a pointer so a missing
// weight can default to 1 while an explicit zero stays zero.
type rawBoxNode struct {
	Name     string       `yaml:"name"`
	Weight   *float64     `yaml:"weight"`
	Children []rawBoxNode `yaml:"children"`
}

func (r rawBoxNode) toNode() boxtree.Node {
	n := boxtree.Node{Name: r.Name, Weight: 1}
	if r.Weight != nil {
		n.Weight = *r.Weight
	}
	for _, ch := range r.Children {
		n.Children = append(n.Children, ch.toNode())
	}
	return n
}

// UnmarshalYAML decodes a decompose_boxes payload. The root may be a
// single node mapping or a sequence of top-level nodes (a forest).
func (t *TreeSpec) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Root    yaml.Node `yaml:"root"`
		Headers []string  `yaml:"column_headers"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	t.Headers = raw.Headers

	switch raw.Root.Kind {
	case yaml.SequenceNode:
		var nodes []rawBoxNode
		if err := raw.Root.Decode(&nodes); err != nil {
			return err
		}
		forest := make([]boxtree.Node, len(nodes))
		for i, n := range nodes {
			forest[i] = n.toNode()
		}
		t.Root = boxtree.Forest(forest...)
	case yaml.MappingNode:
		var node rawBoxNode
		if err := raw.Root.Decode(&node); err != nil {
			return err
		}
		t.Root = boxtree.Single(node.toNode())
	default:
		return errors.New(errors.ErrCodeInvalidDeck, "decompose_boxes root must be a node or a list of nodes")
	}
	return nil
}
