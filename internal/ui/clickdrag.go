package ui

import (
	"time"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"

	"github.com/ratforge/ratforge/internal/debug"
	"github.com/ratforge/ratforge/internal/dragdrop"
)

// GestureHandler receives converted pointer input. *dragdrop.Manager
// satisfies it.
type GestureHandler interface {
	HandleEvent(ev dragdrop.Event)
	Phase() dragdrop.Phase
}

// DefaultDoubleClick is used when DragSurface.DoubleClick is zero.
const DefaultDoubleClick = 400 * time.Millisecond

// DragSurface turns Gio pointer events over the play area into drag
// manager input. It covers the whole window and hit-tests kittens itself,
// so presses on kittens start gestures and moves anywhere keep them going.
//
// It also implements dragdrop.Input: move and release events are only
// forwarded for a modality while the manager has it attached.
type DragSurface struct {
	Handler     GestureHandler
	DoubleClick time.Duration

	// HitTest maps a window position to the kitten under it.
	HitTest func(p dragdrop.Point) (dragdrop.ItemID, bool)

	attached [2]bool
	pid      pointer.ID
	grabbed  bool

	pressed   dragdrop.ItemID
	lastClick dragdrop.ItemID
	lastTime  time.Duration
}

func (s *DragSurface) Attach(m dragdrop.Modality) {
	s.attached[m] = true
	debug.Log(debug.UI_EVENT, "attach %s listeners", m)
}

func (s *DragSurface) Detach(m dragdrop.Modality) {
	s.attached[m] = false
	s.grabbed = false
	debug.Log(debug.UI_EVENT, "detach %s listeners", m)
}

// Attached reports whether the listeners of m are live.
func (s *DragSurface) Attached(m dragdrop.Modality) bool {
	return s.attached[m]
}

// Layout registers the surface for pointer input over the current clip and
// delivers pending events. Call it before drawing anything that handles its
// own input (buttons), so those stay on top.
func (s *DragSurface) Layout(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: s,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		s.handle(e)
		// Keep the pointer once a drag is under way
		if e.Kind == pointer.Drag && !s.grabbed && s.Handler != nil &&
			s.Handler.Phase() == dragdrop.PhaseDragging && e.Priority < pointer.Grabbed {
			gtx.Execute(pointer.GrabCmd{Tag: s, ID: s.pid})
			s.grabbed = true
		}
	}

	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, s)
}

// handle forwards one pointer event to the handler.
func (s *DragSurface) handle(e pointer.Event) {
	if s.Handler == nil {
		return
	}
	ev, ok := convert(e)
	if !ok {
		return
	}

	switch ev.Kind {
	case dragdrop.EventPress:
		id, hit := dragdrop.ItemID(""), false
		if s.HitTest != nil {
			id, hit = s.HitTest(ev.Pos)
		}
		if !hit {
			return
		}
		s.pid = e.PointerID
		s.pressed = id
		ev.Item = id
		debug.Log(debug.UI_EVENT, "press %s at %.0f,%.0f (%s)", id, ev.Pos.X, ev.Pos.Y, ev.Modality)
		s.Handler.HandleEvent(ev)

	case dragdrop.EventMove:
		if !s.attached[ev.Modality] || e.PointerID != s.pid {
			return
		}
		s.Handler.HandleEvent(ev)

	case dragdrop.EventRelease:
		if !s.attached[ev.Modality] || e.PointerID != s.pid {
			return
		}
		if s.Handler.Phase() != dragdrop.PhasePressed {
			s.Handler.HandleEvent(ev)
			return
		}
		if !s.completesDouble(s.pressed, e.Time) {
			s.Handler.HandleEvent(ev)
			s.lastClick, s.lastTime = s.pressed, e.Time
			return
		}
		// The first click already toggled the kitten, so the second one is
		// cancelled rather than toggling it back.
		s.Handler.HandleEvent(dragdrop.Event{Kind: dragdrop.EventCancel, Modality: ev.Modality})
		s.lastClick = ""
		debug.Log(debug.UI_EVENT, "double click %s", s.pressed)
		s.Handler.HandleEvent(dragdrop.Event{
			Kind:     dragdrop.EventDoubleActivate,
			Modality: ev.Modality,
			Item:     s.pressed,
			Pos:      ev.Pos,
		})

	case dragdrop.EventCancel:
		s.Handler.HandleEvent(ev)
	}
}

// completesDouble reports whether a click on id released at at is the second
// half of a double click.
func (s *DragSurface) completesDouble(id dragdrop.ItemID, at time.Duration) bool {
	window := s.DoubleClick
	if window <= 0 {
		window = DefaultDoubleClick
	}
	return id != "" && id == s.lastClick && at-s.lastTime <= window
}

// convert maps a Gio pointer event onto a drag manager event. Item is left
// for the caller to fill in.
func convert(e pointer.Event) (dragdrop.Event, bool) {
	ev := dragdrop.Event{
		Modality: dragdrop.ModalityPointer,
		Button:   dragdrop.ButtonPrimary,
		Pos:      dragdrop.Pt(e.Position.X, e.Position.Y),
	}
	if e.Source == pointer.Touch {
		ev.Modality = dragdrop.ModalityTouch
	}
	// Touch presses carry no buttons
	if e.Buttons != 0 && !e.Buttons.Contain(pointer.ButtonPrimary) {
		switch {
		case e.Buttons.Contain(pointer.ButtonSecondary):
			ev.Button = dragdrop.ButtonSecondary
		case e.Buttons.Contain(pointer.ButtonTertiary):
			ev.Button = dragdrop.ButtonTertiary
		}
	}

	switch e.Kind {
	case pointer.Press:
		ev.Kind = dragdrop.EventPress
	case pointer.Drag, pointer.Move:
		ev.Kind = dragdrop.EventMove
	case pointer.Release:
		ev.Kind = dragdrop.EventRelease
	case pointer.Cancel:
		ev.Kind = dragdrop.EventCancel
	default:
		return dragdrop.Event{}, false
	}
	return ev, true
}
