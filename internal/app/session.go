package app

import (
	"fmt"

	"github.com/ratforge/ratforge/internal/debug"
	"github.com/ratforge/ratforge/internal/dragdrop"
	"github.com/ratforge/ratforge/internal/exercise"
	"github.com/ratforge/ratforge/internal/store"
	"github.com/ratforge/ratforge/internal/ui"
)

const basketZone dragdrop.ZoneID = "basket"

// sessionHooks connect a session to the window and the attempt log.
type sessionHooks struct {
	Input   dragdrop.Input
	Preview dragdrop.Preview

	PointerThreshold float32
	TouchThreshold   float32

	Log    func(eventType string, payload map[string]any)
	Notify func(msg string)
}

// session is one basket exercise: its kittens, the drag manager that moves
// them and the screen state derived from both.
type session struct {
	inst  *exercise.Instance
	dd    *dragdrop.Manager
	state ui.State
	hooks sessionHooks
}

func newSession(inst *exercise.Instance, hooks sessionHooks) *session {
	s := &session{inst: inst, hooks: hooks}
	if s.hooks.Log == nil {
		s.hooks.Log = func(string, map[string]any) {}
	}
	if s.hooks.Notify == nil {
		s.hooks.Notify = func(string) {}
	}

	s.dd = dragdrop.New(dragdrop.Options{
		OnSelectionChange: func(ids []dragdrop.ItemID) { s.state.Selected = len(ids) },
		OnItemMove:        s.onItemMove,
		OnDrop:            func(ids []dragdrop.ItemID, zone dragdrop.ZoneID) { s.onDrop(ids, zone, "drag") },
		OnDoubleClick:     func(ids []dragdrop.ItemID, zone dragdrop.ZoneID) { s.onDrop(ids, zone, "double_click") },
		DefaultDropZone:   basketZone,
		PointerThreshold:  hooks.PointerThreshold,
		TouchThreshold:    hooks.TouchThreshold,
		Input:             hooks.Input,
		Preview:           hooks.Preview,
	})

	s.state = ui.State{
		Prompt: inst.Prompt(),
		Basket: &ui.Basket{},
	}
	for _, k := range inst.Kittens {
		h := &ui.Kitten{ID: dragdrop.ItemID(exercise.KittenID(k.ID)), X: k.X, Y: k.Y}
		s.state.Kittens = append(s.state.Kittens, h)
		s.dd.RegisterItem(h.ID, h, k)
	}
	s.dd.RegisterDropZone(basketZone, s.state.Basket, dragdrop.ZoneOptions{
		// The basket is closed once an answer is in
		Accepts: func([]dragdrop.ItemInfo) bool { return !s.state.Submitted },
	})

	s.hooks.Log(store.ExerciseStarted, map[string]any{
		"exercise":    exercise.Key,
		"instance_id": inst.ID,
		"seed":        inst.Seed,
		"total":       inst.Total,
		"target":      inst.Target,
	})
	return s
}

func (s *session) onItemMove(id dragdrop.ItemID, zone dragdrop.ZoneID) {
	s.state.InBasket = len(s.dd.ItemsInZone(basketZone))
	if zone == dragdrop.NoZone {
		debug.Log(debug.EXERCISE, "%s left the basket (%d in basket)", id, s.state.InBasket)
		s.hooks.Log(store.KittenRemoved, map[string]any{
			"instance_id": s.inst.ID,
			"kitten":      string(id),
			"in_basket":   s.state.InBasket,
		})
	}
}

func (s *session) onDrop(ids []dragdrop.ItemID, zone dragdrop.ZoneID, source string) {
	debug.Log(debug.EXERCISE, "%d kittens dropped in %s via %s", len(ids), zone, source)
	s.hooks.Log(store.KittensDropped, map[string]any{
		"instance_id": s.inst.ID,
		"kittens":     idStrings(ids),
		"zone":        string(zone),
		"source":      source,
		"in_basket":   s.state.InBasket,
	})
	if len(ids) == 1 {
		s.hooks.Notify("1 kitten moved to the basket")
	} else {
		s.hooks.Notify(fmt.Sprintf("%d kittens moved to the basket", len(ids)))
	}
}

// HandleEvent feeds surface input to the drag manager. Once an answer is in,
// presses and double clicks are dropped so the graded basket stays as it was.
func (s *session) HandleEvent(ev dragdrop.Event) {
	if s.state.Submitted && (ev.Kind == dragdrop.EventPress || ev.Kind == dragdrop.EventDoubleActivate) {
		debug.Log(debug.EXERCISE, "ignoring %s on a checked basket", ev.Kind)
		return
	}
	s.dd.HandleEvent(ev)
}

func (s *session) Phase() dragdrop.Phase {
	return s.dd.Phase()
}

// check grades the basket and locks the exercise.
func (s *session) check() exercise.Result {
	if !s.state.CanCheck() {
		return exercise.Result{}
	}
	res := s.inst.Validate(s.state.InBasket)
	s.state.Submitted = true
	s.state.Correct = res.Correct
	s.state.Feedback = res.Feedback
	s.dd.ClearSelection()

	s.hooks.Log(store.AnswerSubmitted, map[string]any{
		"instance_id": s.inst.ID,
		"answer":      s.state.InBasket,
		"target":      s.inst.Target,
		"correct":     res.Correct,
	})
	return res
}

// tryAgain reopens the basket after a wrong answer.
func (s *session) tryAgain() {
	if !s.state.Submitted || s.state.Correct {
		return
	}
	s.state.Submitted = false
	s.state.Feedback = ""
}

// dropSelection moves every selected kitten into the basket, like a drag
// onto it would.
func (s *session) dropSelection() {
	ids := s.dd.Selection()
	if len(ids) == 0 || s.state.Submitted {
		return
	}
	for _, id := range ids {
		s.dd.MoveItemToDropZone(id, basketZone)
	}
	s.dd.ClearSelection()
	s.onDrop(ids, basketZone, "keyboard")
}

func (s *session) clearSelection() {
	s.dd.ClearSelection()
}

func (s *session) close() {
	s.dd.Destroy()
}

func idStrings(ids []dragdrop.ItemID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
