package formats

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	stdmath "math"
	"os"
	"strings"

	"github.com/Faultbox/setools/pkg/math"
)

// maxPrealloc caps slice capacity taken from counts read off the stream,
// so a corrupt count fails on the truncated read instead of on allocation.
const maxPrealloc = 1 << 16

func capHint(n uint32) int {
	if n > maxPrealloc {
		return maxPrealloc
	}
	return int(n)
}

// streamWriter writes little-endian primitives and keeps the first error.
// After a failure every call is a no-op.
type streamWriter struct {
	w   io.Writer
	buf [8]byte
	err error
}

func newStreamWriter(w io.Writer) *streamWriter {
	return &streamWriter{w: w}
}

// Err returns the first write error, unmodified.
func (s *streamWriter) Err() error {
	return s.err
}

func (s *streamWriter) raw(p []byte) {
	if s.err != nil {
		return
	}
	_, s.err = s.w.Write(p)
}

func (s *streamWriter) u8(v uint8) {
	s.buf[0] = v
	s.raw(s.buf[:1])
}

func (s *streamWriter) u16(v uint16) {
	binary.LittleEndian.PutUint16(s.buf[:2], v)
	s.raw(s.buf[:2])
}

func (s *streamWriter) u32(v uint32) {
	binary.LittleEndian.PutUint32(s.buf[:4], v)
	s.raw(s.buf[:4])
}

func (s *streamWriter) i32(v int32) {
	s.u32(uint32(v))
}

func (s *streamWriter) f32(v float32) {
	s.u32(stdmath.Float32bits(v))
}

func (s *streamWriter) f64(v float64) {
	binary.LittleEndian.PutUint64(s.buf[:8], stdmath.Float64bits(v))
	s.raw(s.buf[:8])
}

func (s *streamWriter) zeros(n int) {
	for i := 0; i < n; i++ {
		s.u8(0)
	}
}

// checkNames rejects names that cstring could not terminate unambiguously.
func checkNames(kind string, names ...string) error {
	for _, name := range names {
		if strings.IndexByte(name, 0) >= 0 {
			return fmt.Errorf("%w: %s %q", ErrInvalidName, kind, name)
		}
	}
	return nil
}

// cstring writes str followed by a single zero byte.
func (s *streamWriter) cstring(str string) {
	if s.err != nil {
		return
	}
	if _, s.err = io.WriteString(s.w, str); s.err != nil {
		return
	}
	s.u8(0)
}

// uint writes v truncated to width w.
func (s *streamWriter) uint(v uint32, w IntWidth) {
	switch w {
	case Width8:
		s.u8(uint8(v))
	case Width16:
		s.u16(uint16(v))
	default:
		s.u32(v)
	}
}

// real writes v as a float32, or as a float64 when wide is set.
func (s *streamWriter) real(v float32, wide bool) {
	if wide {
		s.f64(float64(v))
		return
	}
	s.f32(v)
}

func (s *streamWriter) vec2(v math.Vec2) {
	s.f32(v.X)
	s.f32(v.Y)
}

func (s *streamWriter) vec3(v math.Vec3, wide bool) {
	s.real(v.X, wide)
	s.real(v.Y, wide)
	s.real(v.Z, wide)
}

func (s *streamWriter) quat(q math.Quat, wide bool) {
	s.real(q.X, wide)
	s.real(q.Y, wide)
	s.real(q.Z, wide)
	s.real(q.W, wide)
}

// byteReader is what streamReader needs from its source.
type byteReader interface {
	io.Reader
	io.ByteReader
}

// streamReader reads little-endian primitives and keeps the first error.
// After a failure every call returns a zero value.
type streamReader struct {
	r   byteReader
	buf [8]byte
	err error
}

func newStreamReader(r io.Reader) *streamReader {
	br, ok := r.(byteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &streamReader{r: br}
}

// Err returns the first read error, unmodified.
func (s *streamReader) Err() error {
	return s.err
}

func (s *streamReader) ok() bool {
	return s.err == nil
}

func (s *streamReader) fill(p []byte) bool {
	if s.err != nil {
		return false
	}
	_, s.err = io.ReadFull(s.r, p)
	return s.err == nil
}

func (s *streamReader) bytes(n int) []byte {
	p := make([]byte, n)
	if !s.fill(p) {
		return nil
	}
	return p
}

func (s *streamReader) skip(n int) {
	for i := 0; i < n && s.ok(); i++ {
		s.u8()
	}
}

func (s *streamReader) u8() uint8 {
	if !s.fill(s.buf[:1]) {
		return 0
	}
	return s.buf[0]
}

func (s *streamReader) u16() uint16 {
	if !s.fill(s.buf[:2]) {
		return 0
	}
	return binary.LittleEndian.Uint16(s.buf[:2])
}

func (s *streamReader) u32() uint32 {
	if !s.fill(s.buf[:4]) {
		return 0
	}
	return binary.LittleEndian.Uint32(s.buf[:4])
}

func (s *streamReader) i32() int32 {
	return int32(s.u32())
}

func (s *streamReader) f32() float32 {
	return stdmath.Float32frombits(s.u32())
}

func (s *streamReader) f64() float64 {
	if !s.fill(s.buf[:8]) {
		return 0
	}
	return stdmath.Float64frombits(binary.LittleEndian.Uint64(s.buf[:8]))
}

// cstring reads bytes up to and excluding the next zero byte.
func (s *streamReader) cstring() string {
	if s.err != nil {
		return ""
	}
	var buf []byte
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			s.err = err
			return ""
		}
		if b == 0 {
			return string(buf)
		}
		buf = append(buf, b)
	}
}

// uint reads an unsigned integer of width w.
func (s *streamReader) uint(w IntWidth) uint32 {
	switch w {
	case Width8:
		return uint32(s.u8())
	case Width16:
		return uint32(s.u16())
	default:
		return s.u32()
	}
}

func (s *streamReader) real(wide bool) float32 {
	if wide {
		return float32(s.f64())
	}
	return s.f32()
}

func (s *streamReader) vec2() math.Vec2 {
	return math.Vec2{X: s.f32(), Y: s.f32()}
}

func (s *streamReader) vec3(wide bool) math.Vec3 {
	return math.Vec3{X: s.real(wide), Y: s.real(wide), Z: s.real(wide)}
}

func (s *streamReader) quat(wide bool) math.Quat {
	return math.Quat{X: s.real(wide), Y: s.real(wide), Z: s.real(wide), W: s.real(wide)}
}

// writeFile creates path and streams encode into it through a buffered writer.
// The file is closed on every path.
func writeFile(path string, encode func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := encode(bw); err != nil {
		return err
	}
	return bw.Flush()
}
