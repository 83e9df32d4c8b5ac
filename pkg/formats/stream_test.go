package formats

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/Faultbox/setools/pkg/math"
)

type failingWriter struct {
	limit int
	err   error
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.limit < len(p) {
		n := w.limit
		w.limit = 0
		return n, w.err
	}
	w.limit -= len(p)
	return len(p), nil
}

func TestStreamWriter_StickyError(t *testing.T) {
	errDisk := errors.New("disk full")
	fw := &failingWriter{limit: 3, err: errDisk}
	s := newStreamWriter(fw)

	s.u16(1)
	s.u16(2) // fails
	s.u32(3)
	s.cstring("ignored")

	if !errors.Is(s.Err(), errDisk) {
		t.Fatalf("Err() = %v, want %v", s.Err(), errDisk)
	}
}

func TestStream_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := newStreamWriter(&buf)
	w.cstring("joint_0")
	w.cstring("")
	w.uint(0xAB, Width8)
	w.uint(0xABCD, Width16)
	w.uint(0xABCDEF01, Width32)
	w.i32(-1)
	w.vec3(math.Vec3{X: 1, Y: 2, Z: 3}, true)
	w.quat(math.QuatIdentity(), false)
	w.vec2(math.Vec2{X: 0.5, Y: 0.25})
	if err := w.Err(); err != nil {
		t.Fatalf("write: %v", err)
	}

	// MultiReader has no ReadByte, so the reader must buffer it
	r := newStreamReader(io.MultiReader(&buf))
	if got := r.cstring(); got != "joint_0" {
		t.Errorf("cstring = %q, want %q", got, "joint_0")
	}
	if got := r.cstring(); got != "" {
		t.Errorf("empty cstring = %q", got)
	}
	if got := r.uint(Width8); got != 0xAB {
		t.Errorf("u8 = %#x", got)
	}
	if got := r.uint(Width16); got != 0xABCD {
		t.Errorf("u16 = %#x", got)
	}
	if got := r.uint(Width32); got != 0xABCDEF01 {
		t.Errorf("u32 = %#x", got)
	}
	if got := r.i32(); got != -1 {
		t.Errorf("i32 = %d", got)
	}
	if got := r.vec3(true); got != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("vec3 = %v", got)
	}
	if got := r.quat(false); got != math.QuatIdentity() {
		t.Errorf("quat = %v", got)
	}
	if got := r.vec2(); got != (math.Vec2{X: 0.5, Y: 0.25}) {
		t.Errorf("vec2 = %v", got)
	}
	if err := r.Err(); err != nil {
		t.Fatalf("read: %v", err)
	}

	r.u8()
	if !errors.Is(r.Err(), io.EOF) {
		t.Errorf("read past end: err = %v, want EOF", r.Err())
	}
}

func TestStreamReader_UnterminatedString(t *testing.T) {
	r := newStreamReader(bytes.NewReader([]byte("abc")))
	if got := r.cstring(); got != "" {
		t.Errorf("cstring = %q, want empty", got)
	}
	if !errors.Is(r.Err(), io.ErrUnexpectedEOF) {
		t.Errorf("err = %v, want ErrUnexpectedEOF", r.Err())
	}
}
