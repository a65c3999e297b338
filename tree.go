package ntree

import (
	stderrors "errors"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

func build(input []*int) *tree {
	t := &tree{stats: BuildStats{StopIdx: nullIdx}}
	if len(input) == 0 || input[0] == Marker {
		return t
	}

	t.root = newNode(*input[0])
	t.size = 1
	t.stats.Values = 1
	if len(input) > 1 && input[1] == nil {
		t.stats.Markers++
	}

	// parents wait here in the order they were discovered; the root is
	// taken off right away since input[1] already closed its declaration
	parents := linkedlistqueue.New()
	parents.Enqueue(t.root)
	p, _ := parents.Dequeue()
	parent := p.(*node)

	for i := firstChildIdx; i < len(input); i++ {
		if input[i] == Marker {
			t.stats.Markers++
			next, ok := parents.Dequeue()
			if !ok {
				if rest := len(input) - i - 1; rest > 0 {
					t.stats.StopIdx = i + 1
					t.stats.Ignored = rest
				}
				break
			}
			parent = next.(*node)
			continue
		}

		parents.Enqueue(parent.addChild(*input[i]))
		t.size++
		t.stats.Values++
	}

	return t
}

func (t *tree) check(input []*int) error {
	if len(input) == 0 {
		return nil
	}
	if input[0] == nil {
		return errors.WithStack(ErrMissingRoot)
	}

	var errs []error
	if len(input) > 1 && input[1] != nil {
		errs = append(errs, errors.Wrapf(ErrMissingSeparator, "element 1 holds %d", *input[1]))
	}
	if t.stats.Truncated() {
		errs = append(errs, errors.Wrapf(ErrTrailingInput, "%d elements ignored from index %d", t.stats.Ignored, t.stats.StopIdx))
	}
	return stderrors.Join(errs...)
}

func (t *tree) Root() Node {
	if t == nil || t.root == nil {
		return nil
	}
	return t.root
}

func (t *tree) Size() int {
	if t == nil || t.root == nil {
		return 0
	}
	return t.size
}

func (t *tree) Empty() bool {
	return t.Size() == 0
}

func (t *tree) Stats() BuildStats {
	return t.stats
}

func (t *tree) Values() []interface{} {
	return lo.ToAnySlice(t.Postorder())
}

func (t *tree) Postorder() []int {
	return Postorder(t.Root())
}

// Height counts the nodes on the longest root-to-leaf path.
func (t *tree) Height() int {
	height := 0
	walk(t.Root(), func(_ Node, depth int) bool {
		height = lo.Max([]int{height, depth})
		return true
	})
	return height
}

func (t *tree) String() string {
	var b strings.Builder
	b.WriteString("NaryTree\n")
	if root := t.Root(); root != nil {
		output(&b, root, "")
	}
	return b.String()
}

func output(b *strings.Builder, n Node, indent string) {
	b.WriteString(indent)
	b.WriteString(strconv.Itoa(n.Value()))
	b.WriteByte('\n')
	for _, child := range n.Children() {
		output(b, child, indent+"    ")
	}
}

// Postorder lists the values below root, every child subtree before its
// parent. A nil root gives an empty slice.
func Postorder(root Node) []int {
	values := make([]int, 0)
	Walk(root, func(n Node) bool {
		values = append(values, n.Value())
		return true
	})
	return values
}

// Walk visits the nodes below root in postorder until callback returns
// false. It reports whether every node was visited.
func Walk(root Node, callback Callback) bool {
	return walk(root, func(n Node, _ int) bool {
		return callback(n)
	}) == traverseContinue
}

func walk(root Node, callback depthCallback) traverseAction {
	if root == nil {
		return traverseContinue
	}

	stack := arraystack.New()
	stack.Push(newWalkFrame(root))

	for !stack.Empty() {
		top, _ := stack.Peek()
		frame := top.(*walkFrame)

		if child := frame.next(); child != nil {
			stack.Push(newWalkFrame(child))
			continue
		}

		depth := stack.Size()
		stack.Pop()
		if !callback(frame.node, depth) {
			return traverseStop
		}
	}

	return traverseContinue
}

// Serialize encodes t in level order: the root, a marker, then the children
// of every node in breadth-first order, each list closed by a marker.
// Trailing markers are trimmed down to the one after the root.
func Serialize(t Tree) []*int {
	root := t.Root()
	if root == nil {
		return []*int{}
	}

	out := []*int{V(root.Value()), Marker}
	queue := linkedlistqueue.New()
	queue.Enqueue(root)

	for !queue.Empty() {
		n, _ := queue.Dequeue()
		for _, child := range n.(Node).Children() {
			out = append(out, V(child.Value()))
			queue.Enqueue(child)
		}
		out = append(out, Marker)
	}

	end := len(out)
	for end > 2 && out[end-1] == Marker {
		end--
	}
	return out[:end]
}

func (t *tree) Iterator() Iterator {
	it := &iterator{
		tree:       t,
		depthLevel: nullIdx,
	}
	if t.root != nil {
		it.depthLevel = 0
		it.depth = []*iteratorLevel{{t.root, 0}}
		it.next()
	}
	return it
}

func (it *iterator) HasNext() bool {
	return it != nil && it.nextNode != nil
}

func (it *iterator) Next() (Node, error) {
	if !it.HasNext() {
		return nil, ErrNoMoreNodes
	}
	cur := it.nextNode
	it.next()
	return cur, nil
}

// next descends to the leftmost unvisited leaf of the current level and
// stops on the first node whose children are all done.
func (it *iterator) next() {
	for it.depthLevel >= 0 {
		level := it.depth[it.depthLevel]

		if level.childIdx < len(level.node.children) {
			child := level.node.children[level.childIdx]
			level.childIdx++

			if it.depthLevel+1 >= len(it.depth) {
				it.depth = append(it.depth, &iteratorLevel{})
			}
			it.depthLevel++
			it.depth[it.depthLevel] = &iteratorLevel{child, 0}
			continue
		}

		it.nextNode = level.node
		it.depthLevel--
		return
	}

	it.nextNode = nil
}
