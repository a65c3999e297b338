package ntree

// Tree is built once from an encoding and never changes afterwards.
type Tree interface {
	Empty() bool
	Size() int
	// Values lists the node values in postorder.
	Values() []interface{}
	String() string

	Root() Node
	Height() int
	Postorder() []int
	Iterator() Iterator
	Stats() BuildStats
}

type Iterator interface {
	HasNext() bool
	Next() (Node, error)
}

type Node interface {
	Value() int
	Children() []Node
	IsLeaf() bool
}

// Build reconstructs a tree from its level-order encoding. Irregular input
// never fails: scanning stops once no parent is left to receive children.
func Build(input []*int) Tree {
	return build(input)
}

// BuildStrict builds the same tree as Build but also reports input that
// does not follow the canonical encoding. Every problem found is joined into
// the returned error, so ErrMissingSeparator and ErrTrailingInput can both
// match. A missing root hides the others. The returned tree is always usable.
func BuildStrict(input []*int) (Tree, error) {
	t := build(input)
	return t, t.check(input)
}

// V returns a pointer to v, for writing encodings inline.
func V(v int) *int {
	return &v
}
