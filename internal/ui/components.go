package ui

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

// canvas maps a fixed viewBox onto a pixel rectangle.
type canvas struct {
	ops    *op.Ops
	origin f32.Point
	sx, sy float32
}

func newCanvas(ops *op.Ops, r image.Rectangle, viewW, viewH float32) canvas {
	return canvas{
		ops:    ops,
		origin: f32.Pt(float32(r.Min.X), float32(r.Min.Y)),
		sx:     float32(r.Dx()) / viewW,
		sy:     float32(r.Dy()) / viewH,
	}
}

func (c canvas) pt(x, y float32) f32.Point {
	return f32.Pt(c.origin.X+x*c.sx, c.origin.Y+y*c.sy)
}

func (c canvas) ellipse(cx, cy, rx, ry float32, col color.NRGBA) {
	lo, hi := c.pt(cx-rx, cy-ry), c.pt(cx+rx, cy+ry)
	e := clip.Ellipse{Min: lo.Round(), Max: hi.Round()}
	paint.FillShape(c.ops, col, e.Op(c.ops))
}

// polygon fills the closed path through pts (x0, y0, x1, y1, ...).
func (c canvas) polygon(col color.NRGBA, pts ...float32) {
	var p clip.Path
	p.Begin(c.ops)
	p.MoveTo(c.pt(pts[0], pts[1]))
	for i := 2; i+1 < len(pts); i += 2 {
		p.LineTo(c.pt(pts[i], pts[i+1]))
	}
	p.Close()
	paint.FillShape(c.ops, col, clip.Outline{Path: p.End()}.Op())
}

func (c canvas) line(col color.NRGBA, width float32, x0, y0, x1, y1 float32) {
	var p clip.Path
	p.Begin(c.ops)
	p.MoveTo(c.pt(x0, y0))
	p.LineTo(c.pt(x1, y1))
	paint.FillShape(c.ops, col, clip.Stroke{Path: p.End(), Width: width * c.sx}.Op())
}

// drawKitten paints a kitten into r using a 100x100 viewBox.
func drawKitten(ops *op.Ops, r image.Rectangle, alpha uint8) {
	c := newCanvas(ops, r, 100, 100)
	fur, inner := withAlpha(colKitten, alpha), withAlpha(colKittenInner, alpha)
	eye, shine := withAlpha(colEye, alpha), withAlpha(colOnAccent, alpha)

	c.ellipse(50, 65, 30, 25, fur)
	c.ellipse(50, 35, 25, 25, fur)
	c.polygon(fur, 30, 20, 25, 0, 40, 15)
	c.polygon(fur, 70, 20, 75, 0, 60, 15)
	c.polygon(inner, 30, 18, 27, 5, 38, 14)
	c.polygon(inner, 70, 18, 73, 5, 62, 14)
	c.ellipse(40, 32, 5, 5, eye)
	c.ellipse(60, 32, 5, 5, eye)
	c.ellipse(42, 30, 2, 2, shine)
	c.ellipse(62, 30, 2, 2, shine)
	c.ellipse(50, 42, 4, 3, inner)
	for _, dy := range []float32{-3, 0, 3} {
		c.line(eye, 1, 25, 42+dy, 10, 42+dy*2)
		c.line(eye, 1, 75, 42+dy, 90, 42+dy*2)
	}
	c.ellipse(35, 80, 8, 6, fur)
	c.ellipse(65, 80, 8, 6, fur)
}

// drawBasket paints the basket into r using a 200x120 viewBox.
func drawBasket(ops *op.Ops, r image.Rectangle) {
	c := newCanvas(ops, r, 200, 120)
	c.polygon(colBasket, 20, 40, 35, 110, 165, 110, 180, 40)

	var rim clip.Path
	rim.Begin(ops)
	rim.MoveTo(c.pt(30, 40))
	rim.QuadTo(c.pt(100, 10), c.pt(170, 40))
	paint.FillShape(ops, colBasketRim, clip.Stroke{Path: rim.End(), Width: 5 * c.sx}.Op())

	slat := withAlpha(colBasketRim, 128)
	c.line(slat, 2, 50, 40, 58, 110)
	c.line(slat, 2, 100, 40, 100, 110)
	c.line(slat, 2, 150, 40, 142, 110)
}

// outline strokes a rounded rectangle around r
func outline(ops *op.Ops, r image.Rectangle, col color.NRGBA, width, radius int) {
	rr := clip.RRect{Rect: r, NE: radius, NW: radius, SE: radius, SW: radius}
	paint.FillShape(ops, col, clip.Stroke{Path: rr.Path(ops), Width: float32(width)}.Op())
}

// fillRect paints a rounded rectangle
func fillRect(ops *op.Ops, r image.Rectangle, col color.NRGBA, radius int) {
	paint.FillShape(ops, col, clip.RRect{Rect: r, NE: radius, NW: radius, SE: radius, SW: radius}.Op(ops))
}

// button renders a material button, greyed out and inert when disabled
func (r *Renderer) button(gtx layout.Context, clk *widget.Clickable, label string, primary, enabled bool) layout.Dimensions {
	if !enabled {
		gtx = gtx.Disabled()
	}
	btn := material.Button(r.Theme, clk, label)
	btn.Inset = layout.Inset{Top: unit.Dp(10), Bottom: unit.Dp(10), Left: unit.Dp(18), Right: unit.Dp(18)}
	if primary {
		btn.Background = colSelected
	} else {
		btn.Background = colGray
	}
	return btn.Layout(gtx)
}
