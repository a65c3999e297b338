package ntree

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

const nullLiteral = "null"

// Parse decodes a literal encoding such as "[1,null,3,2,4,null,5,6]".
// Markers may be written null, ~, None or nil. Block sequences are accepted
// too, so an encoding can be kept as a YAML list.
func Parse(text string) ([]*int, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, errors.Wrap(err, "decode sequence")
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return []*int{}, nil
	}

	return ParseNode(doc.Content[0])
}

// ParseNode decodes an encoding from an already parsed YAML sequence node.
func ParseNode(seq *yaml.Node) ([]*int, error) {
	if seq.Kind != yaml.SequenceNode {
		return nil, errors.Wrapf(ErrNotSequence, "line %d: found %s", seq.Line, seq.ShortTag())
	}

	out := make([]*int, 0, len(seq.Content))
	for i, item := range seq.Content {
		v, err := parseElement(item)
		if err != nil {
			return nil, errors.WithMessagef(err, "element %d (line %d, column %d)", i, item.Line, item.Column)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseElement(item *yaml.Node) (*int, error) {
	switch item.Kind {
	case yaml.ScalarNode:
	case yaml.AliasNode:
		if item.Alias == nil {
			return nil, errors.Wrap(ErrInvalidElement, "unresolved alias")
		}
		return parseElement(item.Alias)
	case yaml.SequenceNode, yaml.MappingNode:
		return nil, errors.Wrapf(ErrInvalidElement, "nested %s", item.ShortTag())
	default:
		return nil, errors.Wrapf(ErrInvalidElement, "node kind %d", item.Kind)
	}

	switch item.ShortTag() {
	case "!!null":
		return Marker, nil
	case "!!int":
		var v int
		if err := item.Decode(&v); err != nil {
			return nil, errors.Wrapf(ErrInvalidElement, "%q: %v", item.Value, err)
		}
		return &v, nil
	case "!!str":
		if item.Style == 0 && (item.Value == "None" || item.Value == "nil") {
			return Marker, nil
		}
	}
	return nil, errors.Wrapf(ErrInvalidElement, "%q", item.Value)
}

// Format renders an encoding in the literal form Parse reads.
func Format(seq []*int) string {
	return "[" + strings.Join(lo.Map(seq, func(v *int, _ int) string {
		if v == nil {
			return nullLiteral
		}
		return strconv.Itoa(*v)
	}), ",") + "]"
}

// FormatValues renders a traversal result, e.g. "[5,6,3,2,4,1]".
func FormatValues(values []int) string {
	return "[" + strings.Join(lo.Map(values, func(v int, _ int) string {
		return strconv.Itoa(v)
	}), ",") + "]"
}

// CountValues counts the non-marker elements of an encoding.
func CountValues(seq []*int) int {
	return lo.CountBy(seq, func(v *int) bool {
		return v != nil
	})
}
