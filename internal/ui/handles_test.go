package ui

import (
	"image"
	"testing"

	"github.com/ratforge/ratforge/internal/dragdrop"
)

func TestFlagSet(t *testing.T) {
	k := &Kitten{ID: "a"}
	k.SetFlag(dragdrop.FlagSelected, true)
	k.SetFlag(dragdrop.FlagDragging, true)
	k.SetFlag(dragdrop.FlagSelected, false)

	if k.Has(dragdrop.FlagSelected) || !k.Has(dragdrop.FlagDragging) || k.InBasket() {
		t.Errorf("unexpected flags %08b", k.flags)
	}

	b := &Basket{}
	b.SetFlag(dragdrop.FlagZoneReject, true)
	if b.Active() || !b.Rejecting() {
		t.Errorf("unexpected basket flags %08b", b.flags)
	}
}

func TestKittenAtPrefersTopmost(t *testing.T) {
	kittens := []*Kitten{
		{ID: "under", rect: image.Rect(0, 0, 50, 50)},
		{ID: "over", rect: image.Rect(25, 25, 75, 75)},
		{ID: "unplaced"},
	}

	testCases := []struct {
		p    dragdrop.Point
		want dragdrop.ItemID
		ok   bool
	}{
		{dragdrop.Pt(10, 10), "under", true},
		{dragdrop.Pt(30, 30), "over", true},
		{dragdrop.Pt(70, 70), "over", true},
		{dragdrop.Pt(0, 0), "under", true},
		{dragdrop.Pt(90, 90), "", false},
	}
	for _, tc := range testCases {
		got, ok := kittenAt(kittens, tc.p)
		if got != tc.want || ok != tc.ok {
			t.Errorf("%v: expected %q/%v, got %q/%v", tc.p, tc.want, tc.ok, got, ok)
		}
	}
}

func TestGhost(t *testing.T) {
	var g Ghost
	g.ShowPreview(3, dragdrop.Pt(1, 2))
	g.MovePreview(dragdrop.Pt(5, 6))
	if !g.Visible || g.Count != 3 || g.At != dragdrop.Pt(5, 6) {
		t.Errorf("unexpected ghost %+v", g)
	}
	g.HidePreview()
	if g.Visible {
		t.Error("expected ghost hidden")
	}
}
