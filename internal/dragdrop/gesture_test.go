package dragdrop

import "testing"

// stubView answers step's questions from fixed tables.
type stubView struct {
	items  map[ItemID]itemState
	sel    []ItemID
	hover  ZoneID
	reject ZoneID
}

func (v *stubView) itemState(id ItemID) (itemState, bool) {
	st, ok := v.items[id]
	return st, ok
}
func (v *stubView) selected() []ItemID                       { return append([]ItemID(nil), v.sel...) }
func (v *stubView) threshold(m Modality) float32             { return map[Modality]float32{ModalityPointer: 5, ModalityTouch: 10}[m] }
func (v *stubView) hitTest(Point, []ItemID) (ZoneID, ZoneID) { return v.hover, v.reject }
func (v *stubView) accepts(ZoneID, []ItemID) bool            { return true }
func (v *stubView) doubleClickZone() (ZoneID, bool)          { return NoZone, false }

func kinds(effects []effect) []effectKind {
	out := make([]effectKind, len(effects))
	for i, e := range effects {
		out[i] = e.kind
	}
	return out
}

func sameKinds(a, b []effectKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStepTransitions(t *testing.T) {
	free := &stubView{items: map[ItemID]itemState{"a": {}}}
	inSink := &stubView{items: map[ItemID]itemState{"a": {zone: "z", mode: ModeSink}}}
	inHybrid := &stubView{items: map[ItemID]itemState{"a": {zone: "z", mode: ModeHybrid}}}
	overZone := &stubView{items: map[ItemID]itemState{"a": {selected: true}}, sel: []ItemID{"a"}, hover: "z"}

	pressed := gesture{phase: PhasePressed, pressed: "a", origin: Pt(0, 0), last: Pt(0, 0)}
	dragging := gesture{phase: PhaseDragging, pressed: "a", candidates: []ItemID{"a"}, hovered: "z"}
	escalated := gesture{phase: PhaseDragging, pressed: "a", candidates: []ItemID{"a"}, restore: true}

	testCases := []struct {
		name    string
		g       gesture
		ev      Event
		v       view
		phase   Phase
		effects []effectKind
	}{
		{"press free item", gesture{}, pressAt("a", 0, 0), free, PhasePressed, []effectKind{effAttach}},
		{"press unknown item", gesture{}, pressAt("x", 0, 0), free, PhaseIdle, nil},
		{"press sink item", gesture{}, pressAt("a", 0, 0), inSink, PhaseIdle, []effectKind{effExitZone}},
		{"press hybrid item", gesture{}, pressAt("a", 0, 0), inHybrid, PhasePressed, []effectKind{effExitZone, effAttach}},
		{"small move", pressed, moveTo(3, 3), free, PhasePressed, nil},
		{"escalate unselected", pressed, moveTo(9, 0), free, PhaseDragging, []effectKind{effSelect, effDragStart}},
		{"escalate over zone", pressed, moveTo(9, 0), overZone, PhaseDragging, []effectKind{effDragStart, effHover}},
		{"click", pressed, releaseAt(0, 0), free, PhaseIdle, []effectKind{effToggle, effDetach}},
		{"drop", dragging, releaseAt(0, 0), overZone, PhaseIdle, []effectKind{effDragEnd, effCommit, effDetach}},
		{"cancel drag", dragging, Event{Kind: EventCancel}, overZone, PhaseIdle, []effectKind{effHover, effDragEnd, effDetach}},
		{"release without zone", escalated, releaseAt(0, 0), free, PhaseIdle, []effectKind{effDragEnd, effRestore, effDetach}},
		{"cancel escalated drag", escalated, Event{Kind: EventCancel}, free, PhaseIdle, []effectKind{effDragEnd, effRestore, effDetach}},
		{"cancel idle", gesture{}, Event{Kind: EventCancel}, free, PhaseIdle, nil},
		{"move while idle", gesture{}, moveTo(50, 50), free, PhaseIdle, nil},
		{"foreign modality move", pressed, Event{Kind: EventMove, Modality: ModalityTouch, Pos: Pt(90, 90)}, free, PhasePressed, nil},
	}

	for _, tc := range testCases {
		next, effects := step(tc.g, tc.ev, tc.v)
		if next.phase != tc.phase {
			t.Errorf("%s: expected phase %s, got %s", tc.name, tc.phase, next.phase)
		}
		if got := kinds(effects); !sameKinds(got, tc.effects) {
			t.Errorf("%s: expected effects %v, got %v", tc.name, tc.effects, got)
		}
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	g := gesture{phase: PhaseDragging, candidates: []ItemID{"a", "b"}, hovered: "z"}
	v := &stubView{items: map[ItemID]itemState{"a": {}, "b": {}}}

	step(g, moveTo(500, 500), v)

	if g.hovered != "z" || len(g.candidates) != 2 {
		t.Errorf("input gesture modified: %+v", g)
	}
}

func TestEscalateDropsVanishedItem(t *testing.T) {
	pressed := gesture{phase: PhasePressed, pressed: "gone"}
	v := &stubView{items: map[ItemID]itemState{}}

	next, effects := step(pressed, moveTo(40, 40), v)

	if next.phase != PhaseIdle {
		t.Errorf("expected idle, got %s", next.phase)
	}
	if got := kinds(effects); !sameKinds(got, []effectKind{effDetach}) {
		t.Errorf("expected a lone detach, got %v", got)
	}
}
