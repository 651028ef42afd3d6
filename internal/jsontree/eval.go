package jsontree

import (
	"fmt"

	"github.com/jacoelho/docpath/internal/tree"
	"github.com/jacoelho/docpath/internal/xpath"
)

// Arrays are transparent to name steps: "phones/type" visits the type field
// of every element of phones. The final step keeps an array whole unless it
// carries predicates or expand is set, so "phones" addresses the array itself
// for lookups and removal while listing visits its elements.
func evaluate(start *Node, p *xpath.Path, expand bool) []*Node {
	ctx := []*Node{start}
	if p.Absolute {
		ctx = []*Node{start.root()}
	}

	for i, step := range p.Steps {
		last := i == len(p.Steps)-1
		flatten := !last || expand || len(step.Preds) > 0

		var next []*Node
		seen := make(map[*Node]bool)
		for _, n := range ctx {
			for _, m := range stepFrom(n, step, flatten) {
				if !seen[m] {
					seen[m] = true
					next = append(next, m)
				}
			}
		}
		ctx = next
		if len(ctx) == 0 {
			return nil
		}
	}

	if expand {
		return flattenAll(ctx)
	}
	return ctx
}

func stepFrom(n *Node, step xpath.Step, flatten bool) []*Node {
	var candidates []*Node
	switch step.Axis {
	case xpath.AxisSelf:
		candidates = []*Node{n}
	case xpath.AxisParent:
		p := n.parent
		for p != nil && p.kind == kindArray {
			p = p.parent
		}
		if p != nil {
			candidates = []*Node{p}
		}
	default:
		candidates = childrenOf(n, step.Name, step.Wildcard, flatten)
	}
	return filter(candidates, step.Preds)
}

func childrenOf(n *Node, name string, wildcard, flatten bool) []*Node {
	var out []*Node
	switch n.kind {
	case kindObject:
		if wildcard {
			for _, k := range n.keys {
				out = append(out, maybeFlatten(n.fields[k], flatten)...)
			}
			return out
		}
		if child, ok := n.fields[name]; ok {
			out = maybeFlatten(child, flatten)
		}
	case kindArray:
		for _, item := range n.items {
			if wildcard && item.kind != kindObject {
				out = append(out, maybeFlatten(item, flatten)...)
				continue
			}
			out = append(out, childrenOf(item, name, wildcard, flatten)...)
		}
	}
	return out
}

func maybeFlatten(n *Node, flatten bool) []*Node {
	if !flatten || n.kind != kindArray {
		return []*Node{n}
	}
	return flattenAll(n.items)
}

func flattenAll(nodes []*Node) []*Node {
	var out []*Node
	for _, n := range nodes {
		if n.kind == kindArray {
			out = append(out, flattenAll(n.items)...)
			continue
		}
		out = append(out, n)
	}
	return out
}

func filter(nodes []*Node, preds []xpath.Predicate) []*Node {
	for _, pred := range preds {
		var kept []*Node
		switch pred.Kind {
		case xpath.PredIndex:
			if pred.Index <= len(nodes) {
				kept = []*Node{nodes[pred.Index-1]}
			}
		case xpath.PredLast:
			if len(nodes) > 0 {
				kept = []*Node{nodes[len(nodes)-1]}
			}
		default:
			for _, n := range nodes {
				if matches(n, pred) {
					kept = append(kept, n)
				}
			}
		}
		nodes = kept
	}
	return nodes
}

// matches applies a content predicate. Attribute operands read fields, since
// JSON has no attributes.
func matches(n *Node, pred xpath.Predicate) bool {
	var operands []*Node
	if pred.Operand.Axis == xpath.AxisSelf {
		operands = []*Node{n}
	} else if child, ok := n.field(pred.Operand.Name); ok {
		operands = maybeFlatten(child, true)
	}

	for _, o := range operands {
		if pred.Kind == xpath.PredExists {
			return true
		}
		if o.kind == kindScalar && !o.isNull() && pred.Match(o.value) {
			return true
		}
	}
	return false
}

// create walks p from start, adding missing fields and array slots.
func create(start *Node, p *xpath.Path) (*Node, error) {
	if !p.Creatable() {
		return nil, fmt.Errorf("%w: cannot create %q", tree.ErrNotSupported, p.Source)
	}

	cur := start
	if p.Absolute {
		cur = start.root()
	}
	for i, step := range p.Steps {
		if step.Axis == xpath.AxisSelf {
			continue
		}
		last := i == len(p.Steps)-1
		if cur.isNull() {
			cur.replaceWith(newObject())
		}
		if cur.kind == kindArray {
			cur = firstObjectItem(cur)
		}
		if cur.kind != kindObject {
			return nil, fmt.Errorf("%w: cannot add field %q to a scalar in %q", tree.ErrNotSupported, step.Name, p.Source)
		}

		child, ok := cur.fields[step.Name]
		if len(step.Preds) == 0 {
			if !ok {
				child = newObject()
				cur.put(step.Name, child)
			} else if child.kind == kindArray && !last {
				child = firstObjectItem(child)
			}
			cur = child
			continue
		}

		index := step.Preds[0].Index
		switch {
		case !ok:
			child = newArray()
			cur.put(step.Name, child)
		case child.kind != kindArray && index == 1:
			cur = child
			continue
		case child.kind != kindArray:
			single := child.clone()
			child.replaceWith(newArray())
			child.appendItem(single)
		}
		for len(child.items) < index {
			child.appendItem(newObject())
		}
		cur = child.items[index-1]
	}
	return cur, nil
}

// firstObjectItem returns the first element of arr, adding one when the
// array is empty.
func firstObjectItem(arr *Node) *Node {
	if len(arr.items) == 0 {
		arr.appendItem(newObject())
	}
	return arr.items[0]
}
