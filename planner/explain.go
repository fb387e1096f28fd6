package planner

import (
	"fmt"
	"strings"

	"mit.edu/dsg/godist/common"
)

// Explain renders the tree reachable from the root, one node per line, children indented
// beneath their parent.
func (t *PlanTree) Explain() string {
	var sb strings.Builder
	if t.root.IsValid() {
		t.explain(&sb, t.root, 0, false)
	}
	return sb.String()
}

// ExplainWithIDs is Explain with each line prefixed by the node id, which makes Scan
// back-references readable.
func (t *PlanTree) ExplainWithIDs() string {
	var sb strings.Builder
	if t.root.IsValid() {
		t.explain(&sb, t.root, 0, true)
	}
	return sb.String()
}

func (t *PlanTree) explain(sb *strings.Builder, id common.NodeID, depth int, ids bool) {
	n := t.nodes[id]
	sb.WriteString(strings.Repeat("  ", depth))
	if ids {
		fmt.Fprintf(sb, "#%d ", id)
	}
	sb.WriteString(n.String())
	sb.WriteByte('\n')
	for _, c := range n.children {
		t.explain(sb, c, depth+1, ids)
	}
}

// Shape is a kind-only rendering of a subtree, used to compare plan structure.
type Shape struct {
	Kind     NodeKind
	Children []Shape
}

// ShapeOf returns the Shape of the subtree rooted at id.
func (t *PlanTree) ShapeOf(id common.NodeID) Shape {
	n := t.Node(id)
	s := Shape{Kind: n.Kind()}
	for _, c := range n.children {
		s.Children = append(s.Children, t.ShapeOf(c))
	}
	return s
}
