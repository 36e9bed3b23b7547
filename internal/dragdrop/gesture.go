package dragdrop

// EventKind is the kind of an input event fed to the manager.
type EventKind int

const (
	EventPress EventKind = iota
	EventMove
	EventRelease
	// EventCancel aborts the current gesture, e.g. when the window loses focus.
	EventCancel
	// EventDoubleActivate is a double click or double tap on an item.
	EventDoubleActivate
)

func (k EventKind) String() string {
	switch k {
	case EventPress:
		return "press"
	case EventMove:
		return "move"
	case EventRelease:
		return "release"
	case EventCancel:
		return "cancel"
	case EventDoubleActivate:
		return "double-activate"
	}
	return "unknown"
}

// Event is one pointer or touch input. Item is only meaningful for
// EventPress and EventDoubleActivate.
type Event struct {
	Kind     EventKind
	Modality Modality
	Button   Button
	Item     ItemID
	Pos      Point
}

// Phase is the gesture state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePressed
	PhaseDragging
)

func (p Phase) String() string {
	switch p {
	case PhasePressed:
		return "pressed"
	case PhaseDragging:
		return "dragging"
	}
	return "idle"
}

// gesture is the transient state between a press and its release. The zero
// value is idle.
type gesture struct {
	phase      Phase
	modality   Modality
	pressed    ItemID
	origin     Point
	last       Point
	candidates []ItemID
	hovered    ZoneID
	rejected   ZoneID

	// prior is the selection escalation replaced. A drag that ends without
	// a drop puts it back.
	prior   []ItemID
	restore bool
}

type effectKind int

const (
	effAttach    effectKind = iota // attach global listeners for modality
	effDetach                      // detach global listeners
	effExitZone                    // take item out of its zone
	effSelect                      // select item, additive or not
	effToggle                      // toggle item selection
	effDragStart                   // mark items as dragging, show preview at pos
	effDragMove                    // move preview to pos
	effHover                       // leave prev, enter zone with count items
	effReject                      // move the reject mark from prev to zone
	effDragEnd                     // clear drag flags on items, zone and prev
	effCommit                      // move items into zone
	effRestore                     // reset the selection to items
)

type commitSource int

const (
	sourceDrop commitSource = iota
	sourceDoubleClick
)

// effect is a side effect requested by step and carried out by the Manager.
type effect struct {
	kind     effectKind
	modality Modality
	item     ItemID
	items    []ItemID
	zone     ZoneID
	prev     ZoneID
	additive bool
	pos      Point
	source   commitSource
}

// itemState is what step needs to know about an item.
type itemState struct {
	selected bool
	zone     ZoneID
	mode     ZoneMode // mode of zone, if any
}

// view is the read-only window step has onto the manager.
type view interface {
	itemState(id ItemID) (itemState, bool)
	selected() []ItemID
	threshold(m Modality) float32
	hitTest(p Point, candidates []ItemID) (hover, reject ZoneID)
	accepts(zone ZoneID, candidates []ItemID) bool
	doubleClickZone() (ZoneID, bool)
}

// step is the gesture transition function. It never mutates anything; the
// returned effects describe what the manager must do, in order.
func step(g gesture, ev Event, v view) (gesture, []effect) {
	switch ev.Kind {
	case EventPress:
		return press(g, ev, v)
	case EventMove:
		if g.phase == PhaseIdle || ev.Modality != g.modality {
			return g, nil
		}
		return move(g, ev, v)
	case EventRelease:
		if g.phase == PhaseIdle || ev.Modality != g.modality {
			return g, nil
		}
		return release(g)
	case EventCancel:
		return teardown(g, nil)
	case EventDoubleActivate:
		return doubleActivate(g, ev, v)
	}
	return g, nil
}

func press(g gesture, ev Event, v view) (gesture, []effect) {
	if ev.Modality == ModalityPointer && ev.Button != ButtonPrimary {
		return g, nil
	}
	// Only one gesture at a time: a new press cancels whatever is in flight.
	g, effects := teardown(g, nil)

	st, ok := v.itemState(ev.Item)
	if !ok {
		return g, effects
	}
	if st.zone != NoZone {
		effects = append(effects, effect{kind: effExitZone, item: ev.Item})
		if st.mode != ModeHybrid {
			return g, effects
		}
	}

	effects = append(effects, effect{kind: effAttach, modality: ev.Modality})
	return gesture{
		phase:    PhasePressed,
		modality: ev.Modality,
		pressed:  ev.Item,
		origin:   ev.Pos,
		last:     ev.Pos,
	}, effects
}

func move(g gesture, ev Event, v view) (gesture, []effect) {
	g.last = ev.Pos
	if g.phase == PhasePressed {
		if !exceeds(ev.Pos.Sub(g.origin), v.threshold(g.modality)) {
			return g, nil
		}
		return escalate(g, v)
	}

	effects := []effect{{kind: effDragMove, pos: ev.Pos}}
	return hover(g, v, effects)
}

// escalate turns a press into a drag. The pressed item always ends up in the
// candidate set: a pointer adds it to the current selection, a touch makes it
// the only selected item.
func escalate(g gesture, v view) (gesture, []effect) {
	st, ok := v.itemState(g.pressed)
	if !ok || st.zone != NoZone {
		// The item vanished or was placed while the button was down.
		return teardown(g, nil)
	}

	var effects []effect
	sel := v.selected()
	switch {
	case st.selected:
		g.candidates = sel
	case g.modality == ModalityTouch:
		effects = append(effects, effect{kind: effSelect, item: g.pressed})
		g.candidates = []ItemID{g.pressed}
		g.prior, g.restore = sel, true
	default:
		effects = append(effects, effect{kind: effSelect, item: g.pressed, additive: true})
		g.prior, g.restore = sel, true
		g.candidates = append(append([]ItemID(nil), sel...), g.pressed)
	}

	g.phase = PhaseDragging
	effects = append(effects, effect{kind: effDragStart, items: g.candidates, pos: g.last})
	return hover(g, v, effects)
}

// hover re-runs the hit-test at the last position and emits enter/leave and
// reject transitions.
func hover(g gesture, v view, effects []effect) (gesture, []effect) {
	hovered, rejected := v.hitTest(g.last, g.candidates)
	if hovered != g.hovered {
		effects = append(effects, effect{
			kind:  effHover,
			prev:  g.hovered,
			zone:  hovered,
			items: g.candidates,
		})
		g.hovered = hovered
	}
	if rejected != g.rejected {
		effects = append(effects, effect{kind: effReject, prev: g.rejected, zone: rejected})
		g.rejected = rejected
	}
	return g, effects
}

func release(g gesture) (gesture, []effect) {
	if g.phase == PhasePressed {
		return gesture{}, []effect{
			{kind: effToggle, item: g.pressed},
			{kind: effDetach},
		}
	}

	effects := []effect{{kind: effDragEnd, items: g.candidates, zone: g.hovered, prev: g.rejected}}
	if g.hovered != NoZone {
		effects = append(effects, effect{
			kind:   effCommit,
			items:  g.candidates,
			zone:   g.hovered,
			source: sourceDrop,
		})
	} else if g.restore {
		effects = append(effects, effect{kind: effRestore, items: g.prior})
	}
	effects = append(effects, effect{kind: effDetach})
	return gesture{}, effects
}

// teardown abandons g without committing anything.
func teardown(g gesture, effects []effect) (gesture, []effect) {
	switch g.phase {
	case PhasePressed:
		effects = append(effects, effect{kind: effDetach})
	case PhaseDragging:
		if g.hovered != NoZone {
			effects = append(effects, effect{kind: effHover, prev: g.hovered, zone: NoZone})
		}
		effects = append(effects, effect{kind: effDragEnd, items: g.candidates, prev: g.rejected})
		if g.restore {
			effects = append(effects, effect{kind: effRestore, items: g.prior})
		}
		effects = append(effects, effect{kind: effDetach})
	}
	return gesture{}, effects
}

func doubleActivate(g gesture, ev Event, v view) (gesture, []effect) {
	g, effects := teardown(g, nil)

	st, ok := v.itemState(ev.Item)
	if !ok || st.zone != NoZone {
		return g, effects
	}
	zone, ok := v.doubleClickZone()
	if !ok {
		return g, effects
	}

	ids := []ItemID{ev.Item}
	if sel := v.selected(); st.selected && len(sel) > 0 {
		ids = sel
	}
	if !v.accepts(zone, ids) {
		return g, effects
	}
	return g, append(effects, effect{
		kind:   effCommit,
		items:  ids,
		zone:   zone,
		source: sourceDoubleClick,
	})
}
