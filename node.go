package ntree

import (
	"github.com/samber/lo"
)

func (n *node) Value() int {
	return n.value
}

func (n *node) Children() []Node {
	return lo.Map(n.children, func(c *node, _ int) Node {
		return c
	})
}

func (n *node) IsLeaf() bool {
	return len(n.children) == 0
}

func (n *node) addChild(v int) *node {
	child := newNode(v)
	n.children = append(n.children, child)
	return child
}

func newWalkFrame(n Node) *walkFrame {
	return &walkFrame{
		node:     n,
		children: n.Children(),
	}
}

// next returns the next unvisited child, nil once all were handed out
func (f *walkFrame) next() Node {
	if f.childIdx >= len(f.children) {
		return nil
	}
	child := f.children[f.childIdx]
	f.childIdx++
	return child
}
