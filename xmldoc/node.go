package xmldoc

// Node is an in-memory element. It's used to
// build documents programmatically and in tests.
type Node struct {
	Name     string
	Attrs    map[string]string
	Elements []*Node
}

// E creates a new node. attrs is a flat list
// of name/value pairs.
func E(name string, attrs []string, children ...*Node) *Node {
	node := &Node{
		Name:     name,
		Attrs:    make(map[string]string, len(attrs)/2),
		Elements: children,
	}

	for i := 0; i+1 < len(attrs); i += 2 {
		node.Attrs[attrs[i]] = attrs[i+1]
	}

	return node
}

// A is shorthand for the attribute list passed to E.
func A(pairs ...string) []string {
	return pairs
}

func (n *Node) Tag() string {
	return n.Name
}

func (n *Node) Attr(name string) (string, bool) {
	value, ok := n.Attrs[name]
	return value, ok
}

func (n *Node) Children() []Element {
	children := make([]Element, 0, len(n.Elements))

	for _, child := range n.Elements {
		children = append(children, child)
	}

	return children
}
