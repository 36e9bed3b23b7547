package ui

import (
	"image"
	"testing"

	"gioui.org/unit"

	"github.com/ratforge/ratforge/internal/dragdrop"
)

func px(v unit.Dp) int { return int(v) }

func TestComputeLayout(t *testing.T) {
	size := image.Pt(1000, 700)
	l := computeLayout(size, px)

	if !l.basket.In(image.Rectangle{Max: size}) {
		t.Errorf("basket %v outside window", l.basket)
	}
	if l.basket.Overlaps(l.kittens) {
		t.Errorf("basket %v overlaps the kitten area %v", l.basket, l.kittens)
	}
	if l.kittens.Min.Y < l.header.Max.Y || l.kittens.Max.Y > l.footer.Min.Y {
		t.Errorf("kitten area %v not between header and footer", l.kittens)
	}
	if l.basket.Dx() > 320 {
		t.Errorf("basket wider than its cap: %d", l.basket.Dx())
	}
}

func TestPlaceKittens(t *testing.T) {
	l := computeLayout(image.Pt(1000, 700), px)
	free := &Kitten{ID: "free", X: 60, Y: 80}
	corner := &Kitten{ID: "corner", X: 100, Y: 100}
	placed := []*Kitten{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}
	for _, k := range placed {
		k.SetFlag(dragdrop.FlagInZone, true)
	}
	kittens := append([]*Kitten{free, corner}, placed...)

	placeKittens(kittens, l)

	for _, k := range []*Kitten{free, corner} {
		if !k.rect.In(l.kittens) {
			t.Errorf("%s at %v escaped the kitten area %v", k.ID, k.rect, l.kittens)
		}
	}
	for _, k := range placed {
		if !k.rect.In(l.basket) {
			t.Errorf("%s at %v not inside the basket %v", k.ID, k.rect, l.basket)
		}
	}
	if placed[0].rect.Overlaps(placed[1].rect) {
		t.Errorf("basket kittens overlap: %v %v", placed[0].rect, placed[1].rect)
	}
}

func TestHint(t *testing.T) {
	testCases := []struct {
		state State
		want  string
	}{
		{State{}, "Click kittens to select them, then drag to the basket."},
		{State{Selected: 3}, "3 selected - drag to basket"},
		{State{Selected: 3, Submitted: true}, ""},
	}
	for _, tc := range testCases {
		if got := tc.state.Hint(); got != tc.want {
			t.Errorf("%+v: expected %q, got %q", tc.state, tc.want, got)
		}
	}
}
