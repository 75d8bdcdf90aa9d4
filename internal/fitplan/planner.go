// Package fitplan decides how a source image maps onto an aspect-ratio
// bucket: which bucket wins, the crop rectangle or pad canvas geometry, and
// the final output size after the longest-side clamp. It does no pixel work
// and no I/O, so plans are cheap to compute and easy to test.
package fitplan

import (
	"errors"
	"fmt"
	"image"
	"math"

	"bucketcrop/internal/bucket"
)

// Mode selects the fit strategy.
type Mode int

const (
	// ModeCrop removes pixels to match the target ratio.
	ModeCrop Mode = iota
	// ModePad adds canvas around the source to match the target ratio.
	ModePad
)

func (m Mode) String() string {
	switch m {
	case ModeCrop:
		return "crop"
	case ModePad:
		return "pad"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ErrInvalidGeometry reports that no sane plan exists for the inputs:
// degenerate source dimensions, an empty candidate set, or a crop that
// would collapse to zero area.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Plan is the full geometry decision for one source image.
type Plan struct {
	Bucket bucket.Definition
	Mode   Mode

	// CropRect is the centered source region to keep. Crop mode only.
	CropRect image.Rectangle

	// CanvasWidth/CanvasHeight and Origin describe the pad canvas and where
	// the source sits inside it. Pad mode only.
	CanvasWidth  int
	CanvasHeight int
	Origin       image.Point

	// OutputWidth/OutputHeight are the final dimensions after the
	// longest-side clamp. They equal the crop/canvas dimensions when no
	// clamp applies.
	OutputWidth  int
	OutputHeight int
}

// Scaled reports whether the clamp shrank the output below the crop or
// canvas geometry, i.e. whether a resample pass is needed.
func (p Plan) Scaled() bool {
	switch p.Mode {
	case ModeCrop:
		return p.OutputWidth != p.CropRect.Dx() || p.OutputHeight != p.CropRect.Dy()
	default:
		return p.OutputWidth != p.CanvasWidth || p.OutputHeight != p.CanvasHeight
	}
}

// SelectBucket picks the candidate whose ratio is closest to the source
// ratio in log space. Log distance keeps reciprocal ratios symmetric: 2:1
// and 1:2 are equally far from square. Ties go to the first-listed
// candidate, so selection is deterministic for a fixed catalog order.
func SelectBucket(srcWidth, srcHeight int, candidates bucket.Catalog) (bucket.Definition, error) {
	if srcWidth <= 0 || srcHeight <= 0 {
		return bucket.Definition{}, fmt.Errorf("%w: source %dx%d", ErrInvalidGeometry, srcWidth, srcHeight)
	}
	if len(candidates) == 0 {
		return bucket.Definition{}, fmt.Errorf("%w: empty candidate set", ErrInvalidGeometry)
	}

	srcLog := math.Log(float64(srcWidth) / float64(srcHeight))
	best := candidates[0]
	bestDist := math.Abs(candidates[0].LogRatio() - srcLog)
	for _, c := range candidates[1:] {
		if d := math.Abs(c.LogRatio() - srcLog); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, nil
}

// Compute produces the crop or pad plan for a source image against the
// candidate buckets. maxLongestSide <= 0 means no clamp.
func Compute(srcWidth, srcHeight int, candidates bucket.Catalog, mode Mode, maxLongestSide int) (Plan, error) {
	selected, err := SelectBucket(srcWidth, srcHeight, candidates)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{Bucket: selected, Mode: mode}
	srcRatio := float64(srcWidth) / float64(srcHeight)
	targetRatio := selected.Ratio()

	switch mode {
	case ModeCrop:
		// Largest centered rectangle of the target ratio that fits inside
		// the source. Centered rather than top-left: training subjects are
		// usually centered.
		cropW, cropH := srcWidth, srcHeight
		if srcRatio > targetRatio {
			cropW = int(math.Round(float64(srcHeight) * targetRatio))
		} else {
			cropH = int(math.Round(float64(srcWidth) / targetRatio))
		}
		if cropW <= 0 || cropH <= 0 {
			return Plan{}, fmt.Errorf("%w: crop of %dx%d to %s collapses to %dx%d",
				ErrInvalidGeometry, srcWidth, srcHeight, selected.Name, cropW, cropH)
		}
		x0 := (srcWidth - cropW) / 2
		y0 := (srcHeight - cropH) / 2
		plan.CropRect = image.Rect(x0, y0, x0+cropW, y0+cropH)
		plan.OutputWidth, plan.OutputHeight = clampLongestSide(cropW, cropH, maxLongestSide)

	case ModePad:
		// Smallest canvas of the target ratio that fully contains the
		// source, source centered inside it.
		canvasW, canvasH := srcWidth, srcHeight
		if srcRatio < targetRatio {
			canvasW = int(math.Round(float64(srcHeight) * targetRatio))
		} else {
			canvasH = int(math.Round(float64(srcWidth) / targetRatio))
		}
		// Rounding must never shrink the canvas below the source.
		if canvasW < srcWidth {
			canvasW = srcWidth
		}
		if canvasH < srcHeight {
			canvasH = srcHeight
		}
		plan.CanvasWidth, plan.CanvasHeight = canvasW, canvasH
		plan.Origin = image.Pt((canvasW-srcWidth)/2, (canvasH-srcHeight)/2)
		plan.OutputWidth, plan.OutputHeight = clampLongestSide(canvasW, canvasH, maxLongestSide)

	default:
		return Plan{}, fmt.Errorf("%w: unknown fit mode %d", ErrInvalidGeometry, mode)
	}

	return plan, nil
}

// clampLongestSide proportionally downscales so the longer side does not
// exceed max. It never enlarges, and it is a no-op for dimensions already
// within bound.
func clampLongestSide(width, height, max int) (int, int) {
	if max <= 0 {
		return width, height
	}
	longest := width
	if height > longest {
		longest = height
	}
	if longest <= max {
		return width, height
	}

	scale := float64(max) / float64(longest)
	if width >= height {
		height = int(math.Round(float64(height) * scale))
		width = max
	} else {
		width = int(math.Round(float64(width) * scale))
		height = max
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}
