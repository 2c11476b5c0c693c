package overlay

import (
	"github.com/npillmayer/designmode/dom"
	"github.com/npillmayer/designmode/tree"
)

// findClosestTagged walks upward from an arbitrary event target and
// returns the nearest ancestor (target included) that carries an
// identity attribute and is editable. The walk is capped at a fixed
// number of hops to bound worst-case cost on pathological trees.
func (s *Session) findClosestTagged(target *dom.Node) *dom.Node {
	if target == nil {
		return nil
	}
	for _, tn := range tree.AncestorsOf(&target.Node, s.maxHops) {
		n := tn.Payload
		if n == nil || !n.IsElement() {
			continue
		}
		if !n.HasAttr(s.attrs.ID) {
			continue
		}
		if !s.editable(n) {
			tracer().Debugf("element %s is tagged but not editable", n.TagName())
			continue
		}
		return n
	}
	return nil
}

// editable implements the permissive tag-implies-editable policy with a
// short exclusion list: the document root and body, the non-editable
// mount container, and branding elements together with their subtrees.
func (s *Session) editable(n *dom.Node) bool {
	switch n.TagName() {
	case "html", "body":
		return false
	}
	if n.ID() == mountID {
		return false
	}
	for e := n; e != nil; e = e.ParentElement() {
		if e.HasAttr(brandingAttr) {
			return false
		}
	}
	return true
}
