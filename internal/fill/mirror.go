package fill

import (
	"fmt"
	"image"
)

// Mirror extends the source outward by reflecting it at its edges. Margins
// wider than the source keep reflecting back and forth, so any margin size
// is covered.
type Mirror struct{}

func (Mirror) Fill(canvas *image.NRGBA, src image.Image, srcRect image.Rectangle) error {
	srcBounds := src.Bounds()
	w, h := srcBounds.Dx(), srcBounds.Dy()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("mirror fill: empty source")
	}

	cb := canvas.Bounds()
	for y := cb.Min.Y; y < cb.Max.Y; y++ {
		for x := cb.Min.X; x < cb.Max.X; x++ {
			if image.Pt(x, y).In(srcRect) {
				continue
			}
			sx := srcBounds.Min.X + reflect(x-srcRect.Min.X, w)
			sy := srcBounds.Min.Y + reflect(y-srcRect.Min.Y, h)
			canvas.Set(x, y, src.At(sx, sy))
		}
	}
	return nil
}

// reflect maps an out-of-range coordinate into [0, n) by mirroring at both
// edges. The mapping has period 2n: 0..n-1 reads forward, n..2n-1 reads
// backward, then repeats.
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}
