package dom

// Observer receives batches of nodes inserted into the document.
// Delivery is decoupled from the mutating call: insertions accumulate
// until the document's pending mutations are flushed (the overlay does
// this once per frame), so freshly inserted subtrees may stay unobserved
// for one turn.
type Observer struct {
	doc    *Document
	fn     func(added []*Node)
	active bool
}

// Observe registers a structural observer on the document.
func (d *Document) Observe(fn func(added []*Node)) *Observer {
	o := &Observer{doc: d, fn: fn, active: true}
	d.mu.Lock()
	d.observers = append(d.observers, o)
	d.mu.Unlock()
	return o
}

// Disconnect stops observation. Pending insertions recorded before the
// disconnect are not delivered to this observer.
func (o *Observer) Disconnect() {
	o.doc.mu.Lock()
	defer o.doc.mu.Unlock()
	o.active = false
	for i, reg := range o.doc.observers {
		if reg == o {
			o.doc.observers = append(o.doc.observers[:i], o.doc.observers[i+1:]...)
			return
		}
	}
}

// recordInsert queues an inserted node for observer delivery. Recording
// only happens while someone observes.
func (d *Document) recordInsert(n *Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.observers) == 0 {
		return
	}
	d.pending = append(d.pending, n)
}

// FlushMutations delivers all pending insertions, batched, to every
// active observer.
func (d *Document) FlushMutations() {
	d.mu.Lock()
	batch := d.pending
	d.pending = nil
	observers := make([]*Observer, len(d.observers))
	copy(observers, d.observers)
	d.mu.Unlock()
	if len(batch) == 0 {
		return
	}
	tracer().Debugf("dom: delivering %d queued insertions", len(batch))
	for _, o := range observers {
		if o.active {
			o.fn(batch)
		}
	}
}
