package ui

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Kitten and basket palette
var (
	colKitten      = nrgba(colornames.Sandybrown)
	colKittenInner = nrgba(colornames.Lightpink)
	colBasket      = nrgba(colornames.Saddlebrown)
	colBasketRim   = color.NRGBA{R: 93, G: 58, B: 26, A: 255}
	colEye         = color.NRGBA{R: 51, G: 51, B: 51, A: 255}
	colOnAccent    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Theme colors - these are variables so they can be modified for dark mode
var (
	colWhite     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colText      = color.NRGBA{R: 33, G: 33, B: 33, A: 255}
	colGray      = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colPlayArea  = color.NRGBA{R: 250, G: 247, B: 240, A: 255}
	colSelected  = color.NRGBA{R: 66, G: 133, B: 244, A: 255}
	colSuccess   = color.NRGBA{R: 40, G: 167, B: 69, A: 255}
	colDanger    = color.NRGBA{R: 220, G: 53, B: 69, A: 255}
	colBadge     = color.NRGBA{R: 220, G: 53, B: 69, A: 255}
	colZoneGlow  = color.NRGBA{R: 40, G: 167, B: 69, A: 90}
	colRejectBg  = color.NRGBA{R: 220, G: 53, B: 69, A: 70}

	colErrorBanner = nrgba(colornames.Orangered)
)

func nrgba(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// withAlpha scales the alpha channel, used for kittens that are being dragged
func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = uint8(uint16(c.A) * uint16(a) / 255)
	return c
}

// applyTheme switches the screen colors between light and dark
func applyTheme(dark bool) {
	if dark {
		colWhite = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		colText = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
		colGray = color.NRGBA{R: 170, G: 170, B: 170, A: 255}
		colPlayArea = color.NRGBA{R: 45, G: 42, B: 38, A: 255}
		return
	}
	colWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colText = color.NRGBA{R: 33, G: 33, B: 33, A: 255}
	colGray = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colPlayArea = color.NRGBA{R: 250, G: 247, B: 240, A: 255}
}
