package ui

import (
	"image"
	"image/color"
	"sync"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// ToastType indicates the severity/type of toast message
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastError
)

// Toast is a short notice such as "2 kittens moved to the basket".
// The store goroutine may post errors, so access is locked.
type Toast struct {
	mu        sync.Mutex
	message   string
	kind      ToastType
	expiresAt time.Time
}

// toastDuration is how long toasts are displayed
const toastDuration = 2500 * time.Millisecond

// ShowToast displays a toast notification that auto-dismisses
func (r *Renderer) ShowToast(message string, kind ToastType) {
	r.toast.mu.Lock()
	defer r.toast.mu.Unlock()
	r.toast.message = message
	r.toast.kind = kind
	r.toast.expiresAt = time.Now().Add(toastDuration)
}

// ShowError is a convenience method for showing error toasts
func (r *Renderer) ShowError(message string) {
	r.ShowToast(message, ToastError)
}

// current returns the live message, or "" once it has expired.
func (t *Toast) current(now time.Time) (string, ToastType, time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.message == "" || now.After(t.expiresAt) {
		t.message = ""
		return "", ToastInfo, time.Time{}
	}
	return t.message, t.kind, t.expiresAt
}

func toastColor(kind ToastType) color.NRGBA {
	switch kind {
	case ToastSuccess:
		return withAlpha(colSuccess, 240)
	case ToastError:
		return withAlpha(colDanger, 240)
	}
	return color.NRGBA{R: 60, G: 60, B: 60, A: 240}
}

// layoutToast renders the toast at the bottom center of the screen
func (r *Renderer) layoutToast(gtx layout.Context, th *material.Theme) layout.Dimensions {
	message, kind, expiresAt := r.toast.current(gtx.Now)
	if message == "" {
		return layout.Dimensions{}
	}
	// Redraw when the toast should disappear
	gtx.Execute(op.InvalidateCmd{At: expiresAt})

	return layout.S.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Bottom: unit.Dp(90)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(unit.Dp(420)))
			gtx.Constraints.Min = image.Point{}

			macro := op.Record(gtx.Ops)
			dims := layout.Inset{
				Top: unit.Dp(10), Bottom: unit.Dp(10), Left: unit.Dp(16), Right: unit.Dp(16),
			}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				label := material.Body1(th, message)
				label.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
				return label.Layout(gtx)
			})
			call := macro.Stop()

			rr := gtx.Dp(unit.Dp(8))
			paint.FillShape(gtx.Ops, toastColor(kind), clip.RRect{
				Rect: image.Rectangle{Max: dims.Size},
				NE:   rr, NW: rr, SE: rr, SW: rr,
			}.Op(gtx.Ops))
			call.Add(gtx.Ops)
			return dims
		})
	})
}
