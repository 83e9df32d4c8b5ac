package formats

import "fmt"

// IntWidth is the byte width of a variable-width integer field.
// The width is never stored in the stream; both sides derive it from a bound
// that has already been written or read.
type IntWidth uint8

const (
	Width8  IntWidth = 1
	Width16 IntWidth = 2
	Width32 IntWidth = 4
)

// WidthFor returns the narrowest width able to hold every value up to bound.
func WidthFor(bound uint32) IntWidth {
	switch {
	case bound <= 0xFF:
		return Width8
	case bound <= 0xFFFF:
		return Width16
	default:
		return Width32
	}
}

// String returns the width as "u8", "u16" or "u32".
func (w IntWidth) String() string {
	switch w {
	case Width8:
		return "u8"
	case Width16:
		return "u16"
	case Width32:
		return "u32"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(w))
	}
}

// frameWidth returns the width of frame indices and key counts for an
// animation spanning frameCount frames.
func frameWidth(frameCount uint32) IntWidth {
	if frameCount == 0 {
		return Width8
	}
	return WidthFor(frameCount - 1)
}

// modifierWidth returns the width of a bone index inside the SEAnim modifier
// table. Unlike the other bounds it is capped at two bytes.
func modifierWidth(boneCount uint32) IntWidth {
	if boneCount <= 0xFF {
		return Width8
	}
	return Width16
}

// limit returns the largest value a field of width w can hold.
func (w IntWidth) limit() uint32 {
	switch w {
	case Width8:
		return 0xFF
	case Width16:
		return 0xFFFF
	default:
		return 0xFFFFFFFF
	}
}
