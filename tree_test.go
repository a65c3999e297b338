package ntree

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openacid/testkeys"
)

func seq(elems ...interface{}) []*int {
	out := make([]*int, 0, len(elems))
	for _, e := range elems {
		if e == nil {
			out = append(out, Marker)
			continue
		}
		out = append(out, V(e.(int)))
	}
	return out
}

func TestBuildPostorder(t *testing.T) {
	dataSet := []struct {
		name     string
		input    []*int
		expected []int
	}{
		{
			"empty",
			seq(),
			[]int{},
		},
		{
			"root only",
			seq(9, nil),
			[]int{9},
		},
		{
			"root without separator",
			seq(9),
			[]int{9},
		},
		{
			"two levels",
			seq(1, nil, 3, 2, 4, nil, 5, 6),
			[]int{5, 6, 3, 2, 4, 1},
		},
		{
			"leaves closed explicitly",
			seq(1, nil, 2, 3, 4, nil, nil, nil, nil),
			[]int{2, 3, 4, 1},
		},
		{
			"five levels",
			seq(1, nil, 2, 3, 4, 5, nil, nil, 6, 7, nil, 8, nil, 9, 10, nil, nil, 11, nil, 12, nil, 13, nil, nil, 14),
			[]int{2, 6, 14, 11, 7, 3, 12, 8, 4, 13, 9, 10, 5, 1},
		},
		{
			"consecutive markers skip parents",
			seq(7, nil, 1, 2, nil, nil, 3, nil, 4),
			[]int{1, 4, 3, 2, 7},
		},
		{
			"wide and deep",
			seq(1, nil, 2, 3, nil, 4, nil, 5, nil, nil, 6, 7, 8),
			[]int{4, 2, 6, 7, 8, 5, 3, 1},
		},
		{
			"extra marker after last parent",
			seq(1, nil, 2, nil, nil),
			[]int{2, 1},
		},
		{
			"values after last parent are ignored",
			seq(1, nil, 2, nil, nil, 3, 4),
			[]int{2, 1},
		},
		{
			"root marker list never opened",
			seq(1, nil, nil, nil, 2),
			[]int{1},
		},
		{
			"second element is skipped",
			seq(1, 2, 3),
			[]int{3, 1},
		},
		{
			"negative values",
			seq(-1, nil, 0, -5),
			[]int{0, -5, -1},
		},
		{
			"marker in root position",
			seq(nil, 1, 2, 3),
			[]int{},
		},
	}

	for _, d := range dataSet {
		tree := Build(d.input)
		actual := tree.Postorder()

		assert.Equal(t, d.expected, actual, d.name)
		assert.Equal(t, len(actual), tree.Size(), d.name)
		assert.Equal(t, d.expected, Postorder(tree.Root()), d.name)
	}
}

func TestPostorderProperties(t *testing.T) {
	inputs := [][]*int{
		seq(1, nil, 3, 2, 4, nil, 5, 6),
		seq(1, nil, 2, 3, 4, nil, nil, nil, nil),
		seq(1, nil, 2, 3, 4, 5, nil, nil, 6, 7, nil, 8, nil, 9, 10, nil, nil, 11, nil, 12, nil, 13, nil, nil, 14),
		seq(42, nil),
	}

	for _, in := range inputs {
		tree := Build(in)
		first := tree.Postorder()

		assert.Len(t, first, CountValues(in))
		assert.Equal(t, *in[0], first[len(first)-1], "root is emitted last")
		assert.Equal(t, first, tree.Postorder(), "traversal does not mutate the tree")
	}
}

func TestBuildEmpty(t *testing.T) {
	tree := Build(nil)

	assert.Nil(t, tree.Root())
	assert.True(t, tree.Empty())
	assert.Equal(t, 0, tree.Size())
	assert.Equal(t, 0, tree.Height())
	assert.NotNil(t, Postorder(nil))
	assert.Empty(t, Postorder(nil))
	assert.False(t, tree.Stats().Truncated())
}

func TestBuildShape(t *testing.T) {
	tree := Build(seq(1, nil, 3, 2, 4, nil, 5, 6))

	root := tree.Root()
	require.NotNil(t, root)
	assert.Equal(t, 1, root.Value())

	children := root.Children()
	require.Len(t, children, 3)
	assert.Equal(t, 3, children[0].Value())
	assert.Equal(t, 2, children[1].Value())
	assert.Equal(t, 4, children[2].Value())
	assert.False(t, children[0].IsLeaf())
	assert.True(t, children[1].IsLeaf())
	assert.True(t, children[2].IsLeaf())

	grandChildren := children[0].Children()
	require.Len(t, grandChildren, 2)
	assert.Equal(t, 5, grandChildren[0].Value())
	assert.Equal(t, 6, grandChildren[1].Value())

	assert.Equal(t, 6, tree.Size())
	assert.Equal(t, 3, tree.Height())
}

func TestBuildStats(t *testing.T) {
	dataSet := []struct {
		input     []*int
		values    int
		markers   int
		ignored   int
		stopIdx   int
		truncated bool
	}{
		{seq(1, nil, 3, 2, 4, nil, 5, 6), 6, 2, 0, nullIdx, false},
		{seq(1, nil, 2, 3, 4, nil, nil, nil, nil), 4, 5, 0, nullIdx, false},
		{seq(1, nil, 2, nil, nil), 2, 3, 0, nullIdx, false},
		{seq(1, nil, 2, nil, nil, 3, 4), 2, 3, 2, 5, true},
		{seq(1, nil, nil, nil, 2), 1, 2, 2, 3, true},
		{seq(), 0, 0, 0, nullIdx, false},
	}

	for _, d := range dataSet {
		name := Format(d.input)
		stats := Build(d.input).Stats()

		assert.Equal(t, d.values, stats.Values, name)
		assert.Equal(t, d.markers, stats.Markers, name)
		assert.Equal(t, d.ignored, stats.Ignored, name)
		assert.Equal(t, d.stopIdx, stats.StopIdx, name)
		assert.Equal(t, d.truncated, stats.Truncated(), name)
	}
}

func TestBuildStrict(t *testing.T) {
	dataSet := []struct {
		input    []*int
		expected []int
		errs     []error
	}{
		{seq(1, nil, 3, 2, 4, nil, 5, 6), []int{5, 6, 3, 2, 4, 1}, nil},
		{seq(1, nil, 2, nil, nil), []int{2, 1}, nil},
		{seq(), []int{}, nil},
		{seq(1, nil, 2, nil, nil, 3, 4), []int{2, 1}, []error{ErrTrailingInput}},
		{seq(1, 2, 3), []int{3, 1}, []error{ErrMissingSeparator}},
		{seq(nil, 1, 2), []int{}, []error{ErrMissingRoot}},
		{seq(1, 2, nil, nil, 5), []int{1}, []error{ErrMissingSeparator, ErrTrailingInput}},
	}

	all := []error{ErrMissingRoot, ErrMissingSeparator, ErrTrailingInput}
	for _, d := range dataSet {
		name := Format(d.input)
		tree, err := BuildStrict(d.input)

		if len(d.errs) == 0 {
			assert.NoError(t, err, name)
		}
		for _, target := range all {
			expected := false
			for _, e := range d.errs {
				expected = expected || e == target
			}
			assert.Equal(t, expected, errors.Is(err, target), "%s: %v is %v", name, err, target)
		}
		require.NotNil(t, tree, name)
		assert.Equal(t, d.expected, tree.Postorder(), name)
	}
}

func TestTreeIterator(t *testing.T) {
	tree := Build(seq(1, nil, 3, 2, 4, nil, 5, 6))

	it := tree.Iterator()
	assert.NotNil(t, it)

	for _, expected := range []int{5, 6, 3, 2, 4, 1} {
		assert.True(t, it.HasNext())
		n, err := it.Next()
		assert.NoError(t, err)
		assert.Equal(t, expected, n.Value())
	}

	assert.False(t, it.HasNext())
	bad, err := it.Next()
	assert.Nil(t, bad)
	assert.Equal(t, ErrNoMoreNodes, err)

	empty := Build(nil).Iterator()
	assert.False(t, empty.HasNext())
	_, err = empty.Next()
	assert.Equal(t, ErrNoMoreNodes, err)
}

func TestWalkStop(t *testing.T) {
	tree := Build(seq(1, nil, 3, 2, 4, nil, 5, 6))

	visited := make([]int, 0)
	done := Walk(tree.Root(), func(n Node) bool {
		visited = append(visited, n.Value())
		return n.Value() != 3
	})

	assert.False(t, done)
	assert.Equal(t, []int{5, 6, 3}, visited)

	assert.True(t, Walk(tree.Root(), func(Node) bool { return true }))
	assert.True(t, Walk(nil, func(Node) bool { return false }))
}

func TestSerialize(t *testing.T) {
	dataSet := []struct {
		input    []*int
		expected []*int
	}{
		{seq(), seq()},
		{seq(9), seq(9, nil)},
		{seq(9, nil, nil, nil), seq(9, nil)},
		{seq(1, nil, 3, 2, 4, nil, 5, 6), seq(1, nil, 3, 2, 4, nil, 5, 6)},
		{seq(1, nil, 2, 3, 4, nil, nil, nil, nil), seq(1, nil, 2, 3, 4)},
		{seq(1, nil, 2, nil, nil, 3, 4), seq(1, nil, 2)},
		{seq(1, 2, 3), seq(1, nil, 3)},
	}

	for _, d := range dataSet {
		tree := Build(d.input)
		encoded := Serialize(tree)

		assert.Equal(t, Format(d.expected), Format(encoded), Format(d.input))
		assert.Equal(t, tree.Postorder(), Build(encoded).Postorder(), Format(d.input))
	}
}

func TestTreeContainer(t *testing.T) {
	tree := Build(seq(1, nil, 3, 2, nil, 5))

	assert.False(t, tree.Empty())
	assert.Equal(t, []interface{}{5, 3, 2, 1}, tree.Values())
	assert.Equal(t, "NaryTree\n1\n    3\n        5\n    2\n", tree.String())

	assert.Equal(t, []int{5, 3, 2, 1}, tree.Postorder(), "reading does not change the tree")

	empty := Build(nil)
	assert.True(t, empty.Empty())
	assert.Empty(t, empty.Values())
	assert.Equal(t, "NaryTree\n", empty.String())
}

func TestDeepChain(t *testing.T) {
	n := 200000
	input := seq(0, nil)
	for i := 1; i < n; i++ {
		input = append(input, V(i), nil)
	}

	tree := Build(input)
	require.Equal(t, n, tree.Size())
	assert.Equal(t, n, tree.Height())

	values := tree.Postorder()
	require.Len(t, values, n)
	for i, v := range values {
		if v != n-1-i {
			t.Fatalf("position %d holds %d", i, v)
		}
	}
}

func TestBigKeySetBuild(t *testing.T) {
	keys := getKeys("1mvl5_10")
	if len(keys) > 50000 {
		keys = keys[:50000]
	}

	input := keyedEncoding(keys)
	fmt.Printf("encoding len %d\n", len(input))

	tree := Build(input)
	assert.Equal(t, len(keys), tree.Size())
	assert.False(t, tree.Stats().Truncated())

	got := tree.Postorder()
	assert.Equal(t, recursivePostorder(tree.Root()), got)
	assert.Equal(t, 0, got[len(got)-1])
	assert.Equal(t, Format(Serialize(tree)), Format(trimMarkers(input)))
}

// keyedEncoding builds a level-order encoding of len(keys) nodes whose
// fan-out follows the key lengths. Values are assigned in breadth-first
// order, so parent j is the j-th value.
func keyedEncoding(keys []string) []*int {
	n := len(keys)
	out := []*int{V(0), nil}
	nextID := 1
	for j := 0; j < nextID && nextID < n; j++ {
		fanOut := len(keys[j])%3 + 1
		for k := 0; k < fanOut && nextID < n; k++ {
			out = append(out, V(nextID))
			nextID++
		}
		out = append(out, nil)
	}
	return out
}

func trimMarkers(in []*int) []*int {
	end := len(in)
	for end > 2 && in[end-1] == nil {
		end--
	}
	return in[:end]
}

func recursivePostorder(n Node) []int {
	out := []int{}
	if n == nil {
		return out
	}
	for _, c := range n.Children() {
		out = append(out, recursivePostorder(c)...)
	}
	return append(out, n.Value())
}

var cache map[string][]string = map[string][]string{}

func getKeys(fn string) []string {
	ss, ok := cache[fn]
	if ok {
		return ss
	}
	ks := testkeys.Load(fn)
	cache[fn] = ks
	return ks
}

func benchBigKeySet(b *testing.B, f func(b *testing.B, input []*int)) {
	for _, fn := range testkeys.AssetNames() {
		keys := getKeys(fn)

		n := len(keys)
		if n < 1000 {
			continue
		}

		input := keyedEncoding(keys)
		b.Run(fn, func(b *testing.B) {
			f(b, input)
		})
	}
}

func BenchmarkBuild(b *testing.B) {
	benchBigKeySet(b, func(b *testing.B, input []*int) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			Build(input)
		}
	})
}

func BenchmarkPostorder(b *testing.B) {
	benchBigKeySet(b, func(b *testing.B, input []*int) {
		tree := Build(input)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			tree.Postorder()
		}
	})
}

func BenchmarkIterator(b *testing.B) {
	benchBigKeySet(b, func(b *testing.B, input []*int) {
		tree := Build(input)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for it := tree.Iterator(); it.HasNext(); {
				it.Next()
			}
		}
	})
}
