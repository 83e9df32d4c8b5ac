package formats

import "testing"

func TestWidthFor(t *testing.T) {
	tests := []struct {
		bound uint32
		want  IntWidth
	}{
		{0, Width8},
		{0xFF, Width8},
		{0x100, Width16},
		{0xFFFF, Width16},
		{0x10000, Width32},
		{0xFFFFFFFF, Width32},
	}

	for _, tt := range tests {
		if got := WidthFor(tt.bound); got != tt.want {
			t.Errorf("WidthFor(%#x) = %v, want %v", tt.bound, got, tt.want)
		}
	}
}

func TestFrameWidth(t *testing.T) {
	tests := []struct {
		frameCount uint32
		want       IntWidth
	}{
		{0, Width8},
		{1, Width8},
		{41, Width8},
		{256, Width8}, // last index is 255
		{257, Width16},
		{0x10000, Width16},
		{0x10001, Width32},
	}

	for _, tt := range tests {
		if got := frameWidth(tt.frameCount); got != tt.want {
			t.Errorf("frameWidth(%d) = %v, want %v", tt.frameCount, got, tt.want)
		}
	}
}

func TestModifierWidth(t *testing.T) {
	tests := []struct {
		boneCount uint32
		want      IntWidth
	}{
		{1, Width8},
		{255, Width8},
		{256, Width16},
		{0x20000, Width16},
	}

	for _, tt := range tests {
		if got := modifierWidth(tt.boneCount); got != tt.want {
			t.Errorf("modifierWidth(%d) = %v, want %v", tt.boneCount, got, tt.want)
		}
	}
}

func TestIntWidth_String(t *testing.T) {
	tests := []struct {
		width IntWidth
		want  string
	}{
		{Width8, "u8"},
		{Width16, "u16"},
		{Width32, "u32"},
		{IntWidth(3), "Unknown(3)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.width.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
