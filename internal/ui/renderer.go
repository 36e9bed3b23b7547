package ui

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/font"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/ratforge/ratforge/internal/config"
	"github.com/ratforge/ratforge/internal/debug"
	"github.com/ratforge/ratforge/internal/dragdrop"
)

type Renderer struct {
	Theme    *material.Theme
	Surface  DragSurface
	Ghost    Ghost
	DarkMode bool

	hotkeys *config.HotkeyMatcher
	keyTag  struct{}
	focused bool

	checkBtn    widget.Clickable
	resetBtn    widget.Clickable
	tryAgainBtn widget.Clickable
	nextBtn     widget.Clickable

	kittens  []*Kitten // Kittens of the last frame, for hit testing
	lastSize image.Point
	toast    Toast
}

func NewRenderer() *Renderer {
	r := &Renderer{
		Theme: material.NewTheme(),
	}
	r.Surface.HitTest = func(p dragdrop.Point) (dragdrop.ItemID, bool) {
		return kittenAt(r.kittens, p)
	}
	return r
}

// SetHotkeys installs the keyboard shortcuts
func (r *Renderer) SetHotkeys(h *config.HotkeyMatcher) {
	r.hotkeys = h
}

// screenLayout holds the window regions, in pixels.
type screenLayout struct {
	header  image.Rectangle
	kittens image.Rectangle // Where free kittens roam
	basket  image.Rectangle
	footer  image.Rectangle

	kittenSize int
	smallSize  int // Kittens in the basket
}

func computeLayout(size image.Point, dp func(unit.Dp) int) screenLayout {
	margin := dp(16)
	headerH, footerH := dp(96), dp(72)

	l := screenLayout{
		header:     image.Rect(0, 0, size.X, headerH),
		footer:     image.Rect(0, max(headerH, size.Y-footerH), size.X, size.Y),
		kittenSize: dp(56),
		smallSize:  dp(34),
	}
	play := image.Rect(margin, headerH, size.X-margin, l.footer.Min.Y-margin)
	split := play.Min.X + play.Dx()*62/100
	l.kittens = image.Rect(play.Min.X, play.Min.Y, split, play.Max.Y)

	area := image.Rect(split+margin, play.Min.Y, play.Max.X, play.Max.Y)
	w := min(area.Dx(), dp(320))
	h := w * 3 / 5
	x := area.Min.X + (area.Dx()-w)/2
	y := area.Min.Y + (area.Dy()-h)/2
	l.basket = image.Rect(x, y, x+w, y+h)
	return l
}

// placeKittens lays out free kittens by their percentage position and packs
// basket kittens into rows inside the basket.
func placeKittens(kittens []*Kitten, l screenLayout) {
	s, small := l.kittenSize, l.smallSize
	inner := image.Rect(
		l.basket.Min.X+l.basket.Dx()/5, l.basket.Min.Y+l.basket.Dy()/3,
		l.basket.Max.X-l.basket.Dx()/5, l.basket.Max.Y-l.basket.Dy()/12,
	)
	cols := max(1, inner.Dx()/max(1, small))

	n := 0
	for _, k := range kittens {
		if k.InBasket() {
			row, col := n/cols, n%cols
			x := inner.Min.X + col*small
			y := inner.Max.Y - (row+1)*small
			k.rect = image.Rect(x, y, x+small, y+small)
			n++
			continue
		}
		x := l.kittens.Min.X + l.kittens.Dx()*k.X/100
		y := l.kittens.Min.Y + l.kittens.Dy()*k.Y/100
		x = min(x, l.kittens.Max.X-s)
		y = min(y, l.kittens.Max.Y-s)
		k.rect = image.Rect(x, y, x+s, y+s)
	}
}

// within lays out w with its origin at rect.Min and at most rect's size
func within(gtx layout.Context, rect image.Rectangle, w layout.Widget) layout.Dimensions {
	defer op.Offset(rect.Min).Push(gtx.Ops).Pop()
	gtx.Constraints = layout.Constraints{Max: rect.Size()}
	return w(gtx)
}

func (r *Renderer) Layout(gtx layout.Context, state *State) UIEvent {
	applyTheme(r.DarkMode)
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, colWhite)

	lay := computeLayout(gtx.Constraints.Max, gtx.Dp)
	if gtx.Constraints.Max != r.lastSize {
		r.lastSize = gtx.Constraints.Max
		debug.Log(debug.UI_LAYOUT, "window %v: play %v basket %v", r.lastSize, lay.kittens, lay.basket)
	}
	if state.Basket != nil {
		state.Basket.rect = lay.basket
	}
	placeKittens(state.Kittens, lay)
	r.kittens = state.Kittens

	// ===== KEYBOARD FOCUS =====
	event.Op(gtx.Ops, &r.keyTag)
	if !r.focused {
		gtx.Execute(key.FocusCmd{Tag: &r.keyTag})
		r.focused = true
	}
	eventOut := r.processHotkeys(gtx, state)

	// The surface sits below the buttons so they keep their clicks
	r.Surface.Layout(gtx)

	r.layoutPlayArea(gtx, state, lay)
	r.layoutHeader(gtx, state, lay)
	r.layoutFooter(gtx, state, lay, &eventOut)
	r.layoutGhost(gtx, lay)
	r.layoutToast(gtx, r.Theme)

	if eventOut.Action != ActionNone {
		debug.Log(debug.UI, "action %s", eventOut.Action)
	}
	return eventOut
}

func (r *Renderer) processHotkeys(gtx layout.Context, state *State) UIEvent {
	if r.hotkeys == nil {
		return UIEvent{}
	}
	var filters []event.Filter
	for _, h := range r.hotkeys.All() {
		filters = append(filters, h.Filter(&r.keyTag))
	}

	out := UIEvent{}
	for {
		e, ok := gtx.Event(filters...)
		if !ok {
			break
		}
		k, ok := e.(key.Event)
		if !ok || k.State != key.Press {
			continue
		}
		debug.Log(debug.UI_EVENT, "key %q mods=0x%x", k.Name, k.Modifiers)
		switch {
		case r.hotkeys.CheckAnswer.Matches(k) && state.CanCheck():
			out.Action = ActionCheckAnswer
		case r.hotkeys.StartOver.Matches(k):
			out.Action = ActionStartOver
		case r.hotkeys.ClearSelection.Matches(k):
			out.Action = ActionClearSelection
		case r.hotkeys.DropSelection.Matches(k) && state.Selected > 0:
			out.Action = ActionDropSelection
		case r.hotkeys.ToggleTheme.Matches(k):
			out.Action = ActionToggleTheme
		}
	}
	return out
}

func (r *Renderer) layoutPlayArea(gtx layout.Context, state *State, lay screenLayout) {
	radius := gtx.Dp(unit.Dp(12))
	fillRect(gtx.Ops, lay.kittens, colPlayArea, radius)

	if b := state.Basket; b != nil {
		switch {
		case b.Active():
			fillRect(gtx.Ops, lay.basket.Inset(-gtx.Dp(unit.Dp(8))), colZoneGlow, radius)
		case b.Rejecting():
			fillRect(gtx.Ops, lay.basket.Inset(-gtx.Dp(unit.Dp(8))), colRejectBg, radius)
		}
		drawBasket(gtx.Ops, lay.basket)
	}

	ring := gtx.Dp(unit.Dp(3))
	for _, k := range state.Kittens {
		alpha := uint8(255)
		if k.Has(dragdrop.FlagDragging) {
			alpha = 110
		}
		drawKitten(gtx.Ops, k.rect, alpha)
		if k.Has(dragdrop.FlagSelected) {
			outline(gtx.Ops, k.rect.Inset(-ring), colSelected, ring, radius)
		}
	}

	if state.InBasket == 0 && state.Basket != nil {
		hint := image.Rect(lay.basket.Min.X, lay.basket.Max.Y+gtx.Dp(unit.Dp(6)), lay.basket.Max.X, lay.basket.Max.Y+gtx.Dp(unit.Dp(30)))
		within(gtx, hint, func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			lbl := material.Body2(r.Theme, "Drop kittens here")
			lbl.Color = colGray
			lbl.Alignment = text.Middle
			return lbl.Layout(gtx)
		})
	}
}

func (r *Renderer) layoutHeader(gtx layout.Context, state *State, lay screenLayout) {
	within(gtx, lay.header, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min.X = gtx.Constraints.Max.X
		return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if state.ConfigError == "" {
						return layout.Dimensions{}
					}
					return r.banner(gtx, "Config error: "+state.ConfigError, colErrorBanner)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					title := material.H5(r.Theme, state.Prompt)
					title.Color = colText
					title.Font.Weight = font.Bold
					return title.Layout(gtx)
				}),
				layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if state.Feedback != "" {
						col := colDanger
						if state.Correct {
							col = colSuccess
						}
						return r.banner(gtx, state.Feedback, col)
					}
					hint := material.Body1(r.Theme, state.Hint())
					hint.Color = colGray
					return hint.Layout(gtx)
				}),
			)
		})
	})
}

// banner renders a rounded, colored message strip
func (r *Renderer) banner(gtx layout.Context, msg string, bg color.NRGBA) layout.Dimensions {
	macro := op.Record(gtx.Ops)
	dims := layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(12), Right: unit.Dp(12)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		lbl := material.Body1(r.Theme, msg)
		lbl.Color = colOnAccent
		return lbl.Layout(gtx)
	})
	call := macro.Stop()
	fillRect(gtx.Ops, image.Rectangle{Max: dims.Size}, bg, gtx.Dp(unit.Dp(6)))
	call.Add(gtx.Ops)
	return dims
}

func (r *Renderer) layoutFooter(gtx layout.Context, state *State, lay screenLayout, eventOut *UIEvent) {
	if r.checkBtn.Clicked(gtx) && state.CanCheck() {
		*eventOut = UIEvent{Action: ActionCheckAnswer}
	}
	if r.resetBtn.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionStartOver}
	}
	if r.tryAgainBtn.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionTryAgain}
	}
	if r.nextBtn.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionStartOver}
	}

	within(gtx, lay.footer, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min = gtx.Constraints.Max
		return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			gap := layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout)
			children := []layout.FlexChild{
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return r.button(gtx, &r.checkBtn, "Check answer", true, state.CanCheck())
				}),
			}
			switch {
			case !state.Submitted:
				children = append(children, gap, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return r.button(gtx, &r.resetBtn, "Start over", false, true)
				}))
			case state.Correct:
				children = append(children, gap, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return r.button(gtx, &r.nextBtn, "Next exercise", true, true)
				}))
			default:
				children = append(children, gap, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return r.button(gtx, &r.tryAgainBtn, "Try again", true, true)
				}))
			}
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx, children...)
		})
	})
}

// layoutGhost draws the drag preview under the pointer
func (r *Renderer) layoutGhost(gtx layout.Context, lay screenLayout) {
	if !r.Ghost.Visible {
		return
	}
	s := lay.kittenSize
	at := image.Pt(int(r.Ghost.At.X)-s/2, int(r.Ghost.At.Y)-s/2)
	rect := image.Rectangle{Min: at, Max: at.Add(image.Pt(s, s))}
	drawKitten(gtx.Ops, rect, 200)

	if r.Ghost.Count < 2 {
		return
	}
	d := gtx.Dp(unit.Dp(22))
	badge := image.Rect(rect.Max.X-d*2/3, rect.Min.Y-d/3, rect.Max.X+d/3, rect.Min.Y+d*2/3)
	paint.FillShape(gtx.Ops, colBadge, clip.Ellipse{Min: badge.Min, Max: badge.Max}.Op(gtx.Ops))
	within(gtx, badge, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min = gtx.Constraints.Max
		return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			lbl := material.Caption(r.Theme, fmt.Sprint(r.Ghost.Count))
			lbl.Color = colOnAccent
			lbl.Font.Weight = font.Bold
			return lbl.Layout(gtx)
		})
	})
}
