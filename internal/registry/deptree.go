package registry

import (
	"fmt"
	"io"
)

// BuildDependencyTree resolves a type and recursively builds the tree of the
// nested types its fields use. Nodes that appear more than once in the tree
// are marked Deduped and not expanded again; types that are not loaded are
// marked Missing.
func (r *Registry) BuildDependencyTree(typeName string) (*DependencyNode, error) {
	if _, ok := r.Lookup(typeName); !ok {
		return nil, fmt.Errorf("type %q not found in registry", typeName)
	}
	seen := make(map[string]bool)
	return r.buildNode(typeName, seen), nil
}

func (r *Registry) buildNode(typeName string, seen map[string]bool) *DependencyNode {
	node := &DependencyNode{TypeName: typeName}

	if seen[typeName] {
		node.Deduped = true
		return node
	}
	seen[typeName] = true

	rec, ok := r.Lookup(typeName)
	if !ok {
		node.Missing = true
		return node
	}
	node.Record = rec

	for _, dep := range rec.Description.TypeDescriptionMsg.TypeDescription.NestedTypeNames() {
		node.Children = append(node.Children, r.buildNode(dep, seen))
	}
	return node
}

// FlattenTree returns all resolved records in topological order
// (dependencies first), with duplicates and missing types removed.
func FlattenTree(root *DependencyNode) []*TypeRecord {
	seen := make(map[string]bool)
	var result []*TypeRecord
	flattenRecursive(root, seen, &result)
	return result
}

func flattenRecursive(node *DependencyNode, seen map[string]bool, result *[]*TypeRecord) {
	if node == nil || node.Deduped || node.Missing || seen[node.TypeName] {
		return
	}

	// Children first, so dependencies precede their dependents.
	for _, child := range node.Children {
		flattenRecursive(child, seen, result)
	}

	seen[node.TypeName] = true
	*result = append(*result, node.Record)
}

// MissingTypes returns the names of all Missing nodes under root, in
// depth-first order.
func MissingTypes(root *DependencyNode) []string {
	var out []string
	var walk func(*DependencyNode)
	walk = func(n *DependencyNode) {
		if n == nil {
			return
		}
		if n.Missing {
			out = append(out, n.TypeName)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}

// PrintTree prints the dependency tree with box-drawing characters.
func PrintTree(w io.Writer, node *DependencyNode, prefix string, isLast bool) {
	if node == nil {
		return
	}

	connector := "├── "
	if isLast {
		connector = "└── "
	}

	label := node.TypeName
	switch {
	case node.Deduped:
		label += " (deduped)"
	case node.Missing:
		label += " (missing)"
	default:
		label += " [" + node.Record.Kind.String() + "]"
	}

	// The root node has no connector.
	if prefix == "" {
		fmt.Fprintf(w, "%s\n", label)
	} else {
		fmt.Fprintf(w, "%s%s%s\n", prefix, connector, label)
	}

	childPrefix := prefix
	switch {
	case prefix == "":
		childPrefix = " "
	case isLast:
		childPrefix += "    "
	default:
		childPrefix += "│   "
	}

	for i, child := range node.Children {
		PrintTree(w, child, childPrefix, i == len(node.Children)-1)
	}
}
