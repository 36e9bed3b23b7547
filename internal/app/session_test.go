package app

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ratforge/ratforge/internal/dragdrop"
	"github.com/ratforge/ratforge/internal/exercise"
	"github.com/ratforge/ratforge/internal/store"
)

type loggedEvent struct {
	Type    string
	Payload map[string]any
}

type sessionFixture struct {
	s       *session
	events  []loggedEvent
	notices []string
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	f := &sessionFixture{}
	inst := &exercise.Instance{
		ID:     "test-instance",
		Total:  6,
		Target: 3,
	}
	for i := 0; i < inst.Total; i++ {
		inst.Kittens = append(inst.Kittens, exercise.Kitten{ID: i, X: 10 * i, Y: 20})
	}
	f.s = newSession(inst, sessionHooks{
		Log:    func(typ string, p map[string]any) { f.events = append(f.events, loggedEvent{typ, p}) },
		Notify: func(msg string) { f.notices = append(f.notices, msg) },
	})
	return f
}

func (f *sessionFixture) types() []string {
	var out []string
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

func kitten(i int) dragdrop.ItemID {
	return dragdrop.ItemID(exercise.KittenID(i))
}

func TestSessionStartLogsExercise(t *testing.T) {
	f := newSessionFixture(t)

	if len(f.s.state.Kittens) != 6 {
		t.Fatalf("expected 6 kitten handles, got %d", len(f.s.state.Kittens))
	}
	if f.s.state.Prompt != "Put 3 kittens in the basket!" {
		t.Errorf("unexpected prompt %q", f.s.state.Prompt)
	}
	if diff := cmp.Diff([]string{store.ExerciseStarted}, f.types()); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestSessionDropSelection(t *testing.T) {
	f := newSessionFixture(t)
	f.s.dd.SelectItem(kitten(0), false)
	f.s.dd.SelectItem(kitten(2), true)
	if f.s.state.Selected != 2 {
		t.Fatalf("expected 2 selected, got %d", f.s.state.Selected)
	}

	f.s.dropSelection()

	if f.s.state.InBasket != 2 || f.s.state.Selected != 0 {
		t.Errorf("expected 2 in basket and none selected, got %d/%d", f.s.state.InBasket, f.s.state.Selected)
	}
	if !f.s.state.Kittens[0].InBasket() || f.s.state.Kittens[1].InBasket() {
		t.Error("basket flags do not match the dropped kittens")
	}
	last := f.events[len(f.events)-1]
	if last.Type != store.KittensDropped || last.Payload["source"] != "keyboard" {
		t.Errorf("unexpected last event %+v", last)
	}
	want := []string{exercise.KittenID(0), exercise.KittenID(2)}
	if diff := cmp.Diff(want, last.Payload["kittens"]); diff != "" {
		t.Errorf("dropped kittens (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"2 kittens moved to the basket"}, f.notices); diff != "" {
		t.Errorf("notices (-want +got):\n%s", diff)
	}
}

func TestSessionRemovingKittenIsLogged(t *testing.T) {
	f := newSessionFixture(t)
	f.s.dd.MoveItemToDropZone(kitten(1), basketZone)
	if f.s.state.InBasket != 1 {
		t.Fatalf("expected 1 in basket, got %d", f.s.state.InBasket)
	}

	// A press on a basket kitten takes it out
	f.s.dd.HandleEvent(dragdrop.Event{Kind: dragdrop.EventPress, Item: kitten(1)})

	if f.s.state.InBasket != 0 {
		t.Errorf("expected empty basket, got %d", f.s.state.InBasket)
	}
	last := f.events[len(f.events)-1]
	if last.Type != store.KittenRemoved || last.Payload["kitten"] != string(kitten(1)) {
		t.Errorf("unexpected last event %+v", last)
	}
}

func TestSessionCheck(t *testing.T) {
	testCases := []struct {
		name     string
		placed   int
		correct  bool
		feedback string
	}{
		{"too few", 2, false, "Not quite - you need 1 more kitten!"},
		{"exact", 3, true, "Perfect! You counted correctly!"},
		{"too many", 5, false, "Too many! Take 2 kittens out."},
	}

	for _, tc := range testCases {
		f := newSessionFixture(t)
		for i := 0; i < tc.placed; i++ {
			f.s.dd.MoveItemToDropZone(kitten(i), basketZone)
		}

		res := f.s.check()

		if res.Correct != tc.correct || f.s.state.Feedback != tc.feedback || !f.s.state.Submitted {
			t.Errorf("%s: got %+v, state feedback %q submitted %v", tc.name, res, f.s.state.Feedback, f.s.state.Submitted)
		}
		last := f.events[len(f.events)-1]
		if last.Type != store.AnswerSubmitted || last.Payload["answer"] != tc.placed || last.Payload["correct"] != tc.correct {
			t.Errorf("%s: unexpected event %+v", tc.name, last)
		}
	}
}

func TestSessionCheckNeedsKittens(t *testing.T) {
	f := newSessionFixture(t)
	f.s.check()
	if f.s.state.Submitted {
		t.Error("an empty basket was graded")
	}
}

func TestSubmittedBasketIgnoresKeyboardDrop(t *testing.T) {
	f := newSessionFixture(t)
	f.s.dd.MoveItemToDropZone(kitten(0), basketZone)
	f.s.check()

	f.s.dd.SelectItem(kitten(1), false)
	f.s.dropSelection()
	if f.s.state.InBasket != 1 {
		t.Errorf("keyboard drop went through after submit: %d in basket", f.s.state.InBasket)
	}

	// Direct placement skips the zone policy
	f.s.dd.MoveItemToDropZone(kitten(2), basketZone)
	if f.s.state.InBasket != 2 {
		t.Errorf("expected 2 in basket, got %d", f.s.state.InBasket)
	}
}

func TestSessionTryAgain(t *testing.T) {
	f := newSessionFixture(t)
	f.s.dd.MoveItemToDropZone(kitten(0), basketZone)
	f.s.check()

	f.s.tryAgain()

	if f.s.state.Submitted || f.s.state.Feedback != "" {
		t.Errorf("expected the basket reopened, got %+v", f.s.state)
	}
	if f.s.state.InBasket != 1 {
		t.Errorf("try again should keep the basket, got %d", f.s.state.InBasket)
	}
}

func TestCheckedBasketKeepsItsKittens(t *testing.T) {
	f := newSessionFixture(t)
	f.s.dd.MoveItemToDropZone(kitten(0), basketZone)
	f.s.dd.MoveItemToDropZone(kitten(1), basketZone)
	f.s.check()
	logged := len(f.events)

	f.s.HandleEvent(dragdrop.Event{Kind: dragdrop.EventPress, Item: kitten(0)})
	f.s.HandleEvent(dragdrop.Event{Kind: dragdrop.EventRelease})
	f.s.HandleEvent(dragdrop.Event{Kind: dragdrop.EventDoubleActivate, Item: kitten(2)})

	if f.s.state.InBasket != 2 {
		t.Errorf("expected the graded 2 kittens to stay, got %d", f.s.state.InBasket)
	}
	if len(f.events) != logged {
		t.Errorf("input after check was logged: %+v", f.events[logged:])
	}

	// Try again reopens the basket to presses
	f.s.tryAgain()
	f.s.HandleEvent(dragdrop.Event{Kind: dragdrop.EventPress, Item: kitten(0)})
	if f.s.state.InBasket != 1 {
		t.Errorf("expected kitten 0 out after try again, got %d in basket", f.s.state.InBasket)
	}
}
