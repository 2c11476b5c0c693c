package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Predicate decides whether a node matches during a tree walk.
type Predicate[T comparable] func(*Node[T]) bool

// Walk performs a pre-order (document order) traversal of the subtree
// rooted at node, calling visit for every node, node itself included.
// If visit returns false, the node's descendants are skipped.
func Walk[T comparable](node *Node[T], visit func(*Node[T]) bool) {
	if node == nil {
		return
	}
	if !visit(node) {
		return
	}
	for _, ch := range node.Children() {
		Walk(ch, visit)
	}
}

// FindAll collects all nodes of the subtree rooted at node, in document
// order, for which match returns true.
func FindAll[T comparable](node *Node[T], match Predicate[T]) []*Node[T] {
	var hits []*Node[T]
	Walk(node, func(n *Node[T]) bool {
		if match(n) {
			hits = append(hits, n)
		}
		return true
	})
	return hits
}

// AncestorsOf returns node and its ancestors, bottom-up, at most limit
// entries. A limit <= 0 means no limit. The hop cap bounds worst-case
// cost on pathologically deep trees.
func AncestorsOf[T comparable](node *Node[T], limit int) []*Node[T] {
	var chain []*Node[T]
	for n := node; n != nil; n = n.Parent() {
		if limit > 0 && len(chain) >= limit {
			break
		}
		chain = append(chain, n)
	}
	return chain
}
