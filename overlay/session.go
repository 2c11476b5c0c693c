package overlay

import (
	"sync"
	"time"

	"github.com/npillmayer/designmode/dom"
	"github.com/npillmayer/designmode/ident"
	"github.com/npillmayer/designmode/protocol"
)

// Class names and attribute keys the overlay stamps onto the live
// document while active. Feedback styling keys off these classes.
const (
	activeClass   = "0x-design-mode"
	hoverClass    = "0x-hover"
	selectedClass = "0x-selected"

	brandingAttr = "data-0x-branding"
	mountID      = "root"

	feedbackStyleID = "0x-design-mode-styles"
)

// feedbackCSS is the visual-feedback stylesheet injected while active.
const feedbackCSS = `
.` + hoverClass + ` { outline: 1px dashed #4c8bf5; outline-offset: 1px; cursor: default; }
.` + selectedClass + ` { outline: 2px solid #4c8bf5; outline-offset: 1px; }
`

// Config parameterizes a Session. The zero value selects defaults.
type Config struct {
	Attribute      string                 // id attribute key, default ident.DefaultAttribute
	HoverThrottle  time.Duration          // min interval between hover changes, default 50ms, negative = off
	MaxResolveHops int                    // ancestor hop cap during resolution, default 10
	Sink           func(protocol.Message) // outbound messages to the host; may be nil
}

// Session is design mode's runtime state for one live document: mode
// flag, at most one hovered and one selected element, the auto-tag
// counter, and the deferred-work queue standing in for animation
// frames. Construct one per document with New; tear it down on
// navigation by calling Deactivate.
type Session struct {
	doc      *dom.Document
	attrs    ident.Attributes
	sink     func(protocol.Message)
	throttle time.Duration
	maxHops  int

	mu        sync.Mutex
	active    bool
	selected  *dom.Node
	hovered   *dom.Node
	lastHover time.Time
	counter   int // next auto-tag serial
	observer  *dom.Observer
	listeners []dom.ListenerID
	style     *dom.Node // injected feedback <style>
	frame     []func()
}

// New attaches a session to a live document. The session starts
// inactive; the host drives it through HandleMessage or the Activate/
// Deactivate/Toggle methods.
func New(doc *dom.Document, cfg Config) *Session {
	if cfg.HoverThrottle == 0 {
		cfg.HoverThrottle = 50 * time.Millisecond
	}
	if cfg.MaxResolveHops == 0 {
		cfg.MaxResolveHops = 10
	}
	return &Session{
		doc:      doc,
		attrs:    ident.Derive(cfg.Attribute),
		sink:     cfg.Sink,
		throttle: cfg.HoverThrottle,
		maxHops:  cfg.MaxResolveHops,
		counter:  ident.AutoTagSeed,
	}
}

// Document returns the live document the session is attached to.
func (s *Session) Document() *dom.Document { return s.doc }

// IsActive reports whether design mode is currently on.
func (s *Session) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Selected returns the currently selected element, or nil.
func (s *Session) Selected() *dom.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Activate enters the active state: flag the document, inject feedback
// styling, sweep for auto-taggable elements, start structural
// observation, attach pointer listeners, and acknowledge with an
// "enabled" message. Re-activating an active session is a no-op and
// emits nothing.
func (s *Session) Activate() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()
	tracer().Infof("design mode activating")

	if body := s.doc.Body(); body != nil {
		body.AddClass(activeClass)
	}
	s.injectFeedbackStyle()
	s.autotagSubtree(s.doc.Root())
	s.observer = s.doc.Observe(func(added []*dom.Node) {
		for _, n := range added {
			s.autotagSubtree(n)
		}
	})
	s.listeners = []dom.ListenerID{
		s.doc.AddEventListener("pointerover", true, s.onPointerOver),
		s.doc.AddEventListener("click", true, s.onClick),
	}
	s.emit(protocol.Enabled{})
}

// Deactivate enters the inactive state, reversing everything Activate
// set up. Deactivating an inactive session is a no-op and emits
// nothing. Deferred visual updates already queued may still apply on
// the next frame; they are harmless once the classes are gone.
func (s *Session) Deactivate() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.selected = nil
	s.hovered = nil
	s.mu.Unlock()
	tracer().Infof("design mode deactivating")

	for _, id := range s.listeners {
		s.doc.RemoveEventListener(id)
	}
	s.listeners = nil
	if s.observer != nil {
		s.observer.Disconnect()
		s.observer = nil
	}
	s.doc.WalkElements(func(n *dom.Node) bool {
		n.RemoveClass(hoverClass)
		n.RemoveClass(selectedClass)
		return true
	})
	if body := s.doc.Body(); body != nil {
		body.RemoveClass(activeClass)
	}
	s.removeFeedbackStyle()
	s.emit(protocol.Disabled{})
}

// Close tears the session down on navigation or unload: listeners and
// observation are detached and all pending deferred work is dropped,
// without the transition ack a Deactivate would send. The session must
// not be used afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	wasActive := s.active
	s.active = false
	s.selected = nil
	s.hovered = nil
	s.frame = nil
	s.mu.Unlock()
	if !wasActive {
		return
	}
	for _, id := range s.listeners {
		s.doc.RemoveEventListener(id)
	}
	s.listeners = nil
	if s.observer != nil {
		s.observer.Disconnect()
		s.observer = nil
	}
	tracer().Infof("design mode session closed")
}

// Toggle flips between active and inactive.
func (s *Session) Toggle() {
	if s.IsActive() {
		s.Deactivate()
	} else {
		s.Activate()
	}
}

// HandleMessage dispatches one host command. Messages the session does
// not understand are ignored.
func (s *Session) HandleMessage(m protocol.Message) {
	switch msg := m.(type) {
	case protocol.Enable:
		s.Activate()
	case protocol.Disable:
		s.Deactivate()
	case protocol.Toggle:
		s.Toggle()
	case protocol.UpdateElement:
		s.UpdateElement(msg)
	default:
		tracer().Debugf("overlay ignores message type %q", m.MessageType())
	}
}

// RenderFrame is the session's paint opportunity: it delivers pending
// structural-observation batches and then runs every deferred visual
// update queued since the previous frame. The embedding host calls this
// in place of a browser's animation-frame callback.
func (s *Session) RenderFrame() {
	s.doc.FlushMutations()
	s.mu.Lock()
	tasks := s.frame
	s.frame = nil
	s.mu.Unlock()
	for _, task := range tasks {
		task()
	}
}

// scheduleFrame queues a deferred visual update for the next frame.
func (s *Session) scheduleFrame(task func()) {
	s.mu.Lock()
	s.frame = append(s.frame, task)
	s.mu.Unlock()
}

func (s *Session) emit(m protocol.Message) {
	if s.sink != nil {
		s.sink(m)
	}
}

func (s *Session) injectFeedbackStyle() {
	head := s.doc.Head()
	if head == nil {
		return
	}
	st := s.doc.CreateElement("style")
	st.SetAttr("id", feedbackStyleID)
	st.AppendChild(s.doc.CreateTextNode(feedbackCSS))
	head.AppendChild(st)
	s.style = st
}

func (s *Session) removeFeedbackStyle() {
	if s.style != nil {
		s.style.Remove()
		s.style = nil
	}
}

// --- Pointer interaction ---------------------------------------------------

// onPointerOver resolves the hovered element, throttled, and swaps the
// hover highlight on the next frame. Only the latest resolved target
// within a throttle window matters; intermediate targets are dropped.
func (s *Session) onPointerOver(ev *dom.Event) {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	now := time.Now()
	if s.throttle > 0 && now.Sub(s.lastHover) < s.throttle {
		s.mu.Unlock()
		return
	}
	s.lastHover = now
	s.mu.Unlock()

	resolved := s.findClosestTagged(ev.Target)
	s.scheduleFrame(func() {
		s.mu.Lock()
		prev, sel := s.hovered, s.selected
		s.hovered = resolved
		active := s.active
		s.mu.Unlock()
		if prev != nil && prev != resolved {
			prev.RemoveClass(hoverClass)
		}
		// the selected element never shows hover styling
		if active && resolved != nil && resolved != sel {
			resolved.AddClass(hoverClass)
		}
	})
}

// onClick suppresses the default action and moves the selection to the
// resolved element. A click outside any resolvable element leaves the
// current selection untouched.
func (s *Session) onClick(ev *dom.Event) {
	if !s.IsActive() {
		return
	}
	ev.PreventDefault()
	resolved := s.findClosestTagged(ev.Target)
	if resolved == nil {
		return
	}
	s.mu.Lock()
	prev := s.selected
	s.selected = resolved
	s.mu.Unlock()
	s.scheduleFrame(func() {
		if prev != nil && prev != resolved {
			prev.RemoveClass(selectedClass)
		}
		resolved.RemoveClass(hoverClass)
		resolved.AddClass(selectedClass)
	})
	s.emit(protocol.ElementSelected{ElementDescription: s.Describe(resolved)})
}
