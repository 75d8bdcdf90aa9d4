// Package fill generates pixel content for the padding margins produced in
// pad mode. Each fill mode is its own Strategy implementation so the
// algorithms stay independently testable.
package fill

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
)

// Mode tags the available fill strategies.
type Mode int

const (
	// ModeSolid fills margins with a caller-supplied color.
	ModeSolid Mode = iota
	// ModeWhite fills margins with opaque white. Functionally a solid
	// fill, kept as its own tag because callers select it explicitly.
	ModeWhite
	// ModeBlur fills the canvas with a stretched, blurred copy of the
	// source so margins keep the image's context.
	ModeBlur
	// ModeMirror extends the source edges outward as repeated reflections.
	ModeMirror
)

func (m Mode) String() string {
	switch m {
	case ModeSolid:
		return "solid"
	case ModeWhite:
		return "white"
	case ModeBlur:
		return "blur"
	case ModeMirror:
		return "mirror"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps a flag value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "solid", "color":
		return ModeSolid, nil
	case "white":
		return ModeWhite, nil
	case "blur":
		return ModeBlur, nil
	case "mirror":
		return ModeMirror, nil
	default:
		return 0, fmt.Errorf("unknown fill mode %q", s)
	}
}

// Options selects and parameterizes a fill strategy. Color is only
// meaningful for ModeSolid.
type Options struct {
	Mode  Mode
	Color color.NRGBA
}

// Strategy fills every canvas pixel outside srcRect. Implementations write
// only to canvas and never read it back or mutate src. The sharp source is
// composited into srcRect by the caller afterwards, so a strategy may also
// paint inside srcRect if that is cheaper.
type Strategy interface {
	Fill(canvas *image.NRGBA, src image.Image, srcRect image.Rectangle) error
}

// ForOptions maps an Options tag to its strategy.
func ForOptions(opts Options) Strategy {
	switch opts.Mode {
	case ModeWhite:
		return Solid{Color: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}
	case ModeBlur:
		return Blur{}
	case ModeMirror:
		return Mirror{}
	default:
		return Solid{Color: opts.Color}
	}
}

// Fallback is the degraded fill applied when a strategy fails: opaque
// black, chosen so a partial result is still obviously usable.
var Fallback = Solid{Color: color.NRGBA{A: 0xff}}

// Solid fills margins with a single color.
type Solid struct {
	Color color.NRGBA
}

func (s Solid) Fill(canvas *image.NRGBA, src image.Image, srcRect image.Rectangle) error {
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(s.Color), image.Point{}, draw.Src)
	return nil
}

// ParseHexColor parses #RGB, #RRGGBB, or #RRGGBBAA. The leading '#' is
// optional. Alpha defaults to opaque.
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	c := color.NRGBA{A: 0xff}

	hexByte := func(hi, lo byte) (uint8, error) {
		var v uint8
		for _, b := range []byte{hi, lo} {
			v <<= 4
			switch {
			case b >= '0' && b <= '9':
				v |= b - '0'
			case b >= 'a' && b <= 'f':
				v |= b - 'a' + 10
			case b >= 'A' && b <= 'F':
				v |= b - 'A' + 10
			default:
				return 0, fmt.Errorf("invalid hex digit %q", b)
			}
		}
		return v, nil
	}

	var err error
	switch len(s) {
	case 3:
		if c.R, err = hexByte(s[0], s[0]); err != nil {
			return c, err
		}
		if c.G, err = hexByte(s[1], s[1]); err != nil {
			return c, err
		}
		c.B, err = hexByte(s[2], s[2])
	case 8:
		if c.A, err = hexByte(s[6], s[7]); err != nil {
			return c, err
		}
		fallthrough
	case 6:
		if c.R, err = hexByte(s[0], s[1]); err != nil {
			return c, err
		}
		if c.G, err = hexByte(s[2], s[3]); err != nil {
			return c, err
		}
		c.B, err = hexByte(s[4], s[5])
	default:
		return c, fmt.Errorf("invalid color %q: want #RGB, #RRGGBB or #RRGGBBAA", s)
	}
	return c, err
}
