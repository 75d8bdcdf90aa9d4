package fill

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
)

// Blur paints the whole canvas with the source stretched to the canvas size
// and Gaussian-blurred. The caller composites the sharp source on top, so
// the margins end up as a softened continuation of the picture.
type Blur struct{}

func (Blur) Fill(canvas *image.NRGBA, src image.Image, srcRect image.Rectangle) error {
	srcBounds := src.Bounds()
	if srcBounds.Dx() <= 0 || srcBounds.Dy() <= 0 {
		return fmt.Errorf("blur fill: empty source")
	}

	cb := canvas.Bounds()
	stretched := imaging.Resize(src, cb.Dx(), cb.Dy(), imaging.Lanczos)
	blurred := imaging.Blur(stretched, blurSigma(cb, srcRect))
	draw.Draw(canvas, cb, blurred, blurred.Bounds().Min, draw.Src)
	return nil
}

// blurSigma scales the blur with the margin so thin borders keep visible
// structure instead of washing out to a flat color.
func blurSigma(canvas, srcRect image.Rectangle) float64 {
	marginX := canvas.Dx() - srcRect.Dx()
	marginY := canvas.Dy() - srcRect.Dy()
	margin := marginX
	if marginY > margin {
		margin = marginY
	}

	sigma := float64(margin) / 10.0 / 2.0 // margin is split across two sides
	if sigma < 3 {
		sigma = 3
	}
	if sigma > 30 {
		sigma = 30
	}
	return sigma
}
