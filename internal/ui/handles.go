package ui

import (
	"image"

	"github.com/ratforge/ratforge/internal/dragdrop"
)

// flagSet stores presentation flags set by the drag manager.
type flagSet uint8

func (s *flagSet) set(f dragdrop.Flag, on bool) {
	if on {
		*s |= 1 << uint(f)
	} else {
		*s &^= 1 << uint(f)
	}
}

func (s flagSet) has(f dragdrop.Flag) bool {
	return s&(1<<uint(f)) != 0
}

// Kitten is the on-screen handle of one draggable kitten.
type Kitten struct {
	ID   dragdrop.ItemID
	X, Y int // Position in the play area, percent

	rect  image.Rectangle // Last laid out bounds, window pixels
	flags flagSet
}

func (k *Kitten) Bounds() dragdrop.Rect            { return toRect(k.rect) }
func (k *Kitten) SetFlag(f dragdrop.Flag, on bool) { k.flags.set(f, on) }

// Has reports whether the manager has set flag f.
func (k *Kitten) Has(f dragdrop.Flag) bool { return k.flags.has(f) }

// InBasket reports whether the kitten has been dropped in a zone.
func (k *Kitten) InBasket() bool { return k.flags.has(dragdrop.FlagInZone) }

// Basket is the drop zone region. Its bounds follow the window layout.
type Basket struct {
	rect  image.Rectangle
	flags flagSet
}

func (b *Basket) Bounds() dragdrop.Rect            { return toRect(b.rect) }
func (b *Basket) SetFlag(f dragdrop.Flag, on bool) { b.flags.set(f, on) }

// Active reports whether the basket is the current drop target.
func (b *Basket) Active() bool { return b.flags.has(dragdrop.FlagZoneActive) }

// Rejecting reports whether the basket refuses the current drag.
func (b *Basket) Rejecting() bool { return b.flags.has(dragdrop.FlagZoneReject) }

// Ghost is the drag preview: a kitten with a count badge under the pointer.
type Ghost struct {
	Visible bool
	Count   int
	At      dragdrop.Point
}

func (g *Ghost) ShowPreview(count int, at dragdrop.Point) {
	g.Visible, g.Count, g.At = true, count, at
}

func (g *Ghost) MovePreview(at dragdrop.Point) { g.At = at }

func (g *Ghost) HidePreview() {
	g.Visible, g.Count = false, 0
}

func toRect(r image.Rectangle) dragdrop.Rect {
	return dragdrop.Rect{
		Left:   float32(r.Min.X),
		Top:    float32(r.Min.Y),
		Right:  float32(r.Max.X),
		Bottom: float32(r.Max.Y),
	}
}

// kittenAt returns the topmost kitten under p. Kittens are drawn in slice
// order, so the last match wins.
func kittenAt(kittens []*Kitten, p dragdrop.Point) (dragdrop.ItemID, bool) {
	for i := len(kittens) - 1; i >= 0; i-- {
		k := kittens[i]
		if !k.rect.Empty() && k.Bounds().Contains(p) {
			return k.ID, true
		}
	}
	return "", false
}
