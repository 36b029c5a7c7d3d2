// Package pixel implements the reversible per-pixel transforms applied by
// pixshift: a red/blue channel swap and an additive shift modulo 256.
//
// Every transform works on an owned *image.RGBA in place. A pixel's output
// depends only on that pixel, so raster order has no effect on the result.
// Channel arithmetic is unsigned 8-bit wraparound; values are never clamped,
// which keeps Add and Sub exact inverses for any constant.
package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
)

// DefaultConstant is the additive shift used when none is given.
const DefaultConstant = 100

// ErrUnknownOp is returned for an Op outside the known set
var ErrUnknownOp = errors.New("unknown pixel operation")

// Op selects a transform
type Op int

const (
	OpSwap Op = iota // (R,G,B) -> (B,G,R)
	OpAdd            // v -> (v + k) mod 256
	OpSub            // v -> (v - k) mod 256
)

func (o Op) String() string {
	switch o {
	case OpSwap:
		return "swap"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// ParseOp maps a name (swap, add, sub) to its Op
func ParseOp(name string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "swap":
		return OpSwap, nil
	case "add":
		return OpAdd, nil
	case "sub", "subtract":
		return OpSub, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOp, name)
}

// Inverse returns the op that undoes o for the same constant.
func Inverse(o Op) Op {
	switch o {
	case OpAdd:
		return OpSub
	case OpSub:
		return OpAdd
	}
	return o
}

// Normalize reduces any integer constant to the equivalent shift in 0..255.
// Negative constants wrap, so -1 behaves like 255.
func Normalize(k int) uint8 {
	return uint8(((k % 256) + 256) % 256)
}

// SwapPixel exchanges the red and blue channels
func SwapPixel(c color.RGBA) color.RGBA {
	c.R, c.B = c.B, c.R
	return c
}

// AddPixel shifts each color channel up by k modulo 256. Alpha is untouched.
func AddPixel(c color.RGBA, k int) color.RGBA {
	s := Normalize(k)
	c.R += s
	c.G += s
	c.B += s
	return c
}

// SubPixel shifts each color channel down by k modulo 256. Alpha is untouched.
func SubPixel(c color.RGBA, k int) color.RGBA {
	s := Normalize(k)
	c.R -= s
	c.G -= s
	c.B -= s
	return c
}

// SwapRB swaps red and blue for every pixel of img
func SwapRB(img *image.RGBA) {
	eachRow(img, func(row []uint8) {
		for i := 0; i+3 < len(row); i += 4 {
			row[i], row[i+2] = row[i+2], row[i]
		}
	})
}

// Add applies AddPixel to every pixel of img
func Add(img *image.RGBA, k int) {
	shift(img, Normalize(k))
}

// Sub applies SubPixel to every pixel of img
func Sub(img *image.RGBA, k int) {
	// subtracting s is adding its two's complement
	shift(img, -Normalize(k))
}

// Apply dispatches op over img. k is ignored by OpSwap.
func Apply(img *image.RGBA, op Op, k int) error {
	if img == nil {
		return errors.New("nil image")
	}
	switch op {
	case OpSwap:
		SwapRB(img)
	case OpAdd:
		Add(img, k)
	case OpSub:
		Sub(img, k)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownOp, op)
	}
	return nil
}

func shift(img *image.RGBA, s uint8) {
	if s == 0 {
		return
	}
	eachRow(img, func(row []uint8) {
		for i := 0; i+3 < len(row); i += 4 {
			row[i] += s
			row[i+1] += s
			row[i+2] += s
		}
	})
}

// eachRow hands fn the Pix bytes of each row inside img.Rect, so sub-images
// with a wider stride are handled.
func eachRow(img *image.RGBA, fn func(row []uint8)) {
	b := img.Rect
	w := b.Dx() * 4
	if w <= 0 {
		return
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		fn(img.Pix[off : off+w])
	}
}
