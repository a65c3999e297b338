package ntree

import (
	"errors"
)

// Marker closes the children list of the current parent. Encodings hold it
// as a nil element.
var Marker *int

const (
	traverseStop traverseAction = iota
	traverseContinue
)

const (
	// position of the first child element; input[1] separates the root
	// from its children list
	firstChildIdx = 2

	nullIdx = -1
)

var (
	ErrNoMoreNodes      = errors.New("There are no more nodes in the tree")
	ErrTrailingInput    = errors.New("input left after the last parent")
	ErrMissingRoot      = errors.New("first element is a marker")
	ErrMissingSeparator = errors.New("root is not followed by a marker")
	ErrNotSequence      = errors.New("input is not a sequence")
	ErrInvalidElement   = errors.New("element is neither an integer nor a marker")
)

type (
	tree struct {
		size  int
		root  *node
		stats BuildStats
	}

	node struct {
		value    int
		children []*node
	}

	// BuildStats describes how an encoding was consumed.
	BuildStats struct {
		Values  int
		Markers int
		// elements never scanned because the parent queue ran dry
		Ignored int
		// index of the first ignored element, nullIdx if none
		StopIdx int
	}

	Callback func(n Node) bool

	depthCallback func(n Node, depth int) bool

	walkFrame struct {
		node     Node
		children []Node
		childIdx int
	}

	traverseAction int

	iteratorLevel struct {
		node     *node
		childIdx int
	}

	iterator struct {
		tree       *tree
		nextNode   *node
		depthLevel int
		depth      []*iteratorLevel
	}
)

func newNode(v int) *node {
	return &node{value: v}
}

// Truncated reports whether the scan stopped before the end of the input.
func (s BuildStats) Truncated() bool {
	return s.StopIdx != nullIdx
}
