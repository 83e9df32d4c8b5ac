package formats

import (
	"fmt"
	"io"

	"github.com/Faultbox/setools/pkg/math"
)

// Write encodes the animation to w.
func (a *SEAnim) Write(w io.Writer) error {
	bones := a.Bones()
	boneIndex := make(map[string]uint32, len(bones))
	for i, name := range bones {
		boneIndex[name] = uint32(i)
	}

	// Structural checks before the first byte goes out
	if len(a.modifiers) > 0xFF {
		return fmt.Errorf("%w: %d bone modifiers, max 255", ErrFieldOverflow, len(a.modifiers))
	}
	for _, mod := range a.modifiers {
		if _, ok := boneIndex[mod.Bone]; !ok {
			return fmt.Errorf("%w: modifier for unanimated bone %q", ErrUnknownBone, mod.Bone)
		}
	}
	if err := checkNames("bone", bones...); err != nil {
		return err
	}
	if err := checkNames("notification", a.Notes.order...); err != nil {
		return err
	}
	if highest, ok := a.highestFrame(); ok && highest == 0xFFFFFFFF {
		return fmt.Errorf("%w: frame %d leaves no room for a frame count", ErrFieldOverflow, highest)
	}

	frameCount := a.FrameCount()
	fw := frameWidth(frameCount)
	for _, name := range bones {
		for _, n := range []int{
			len(a.Positions.keys[name]), len(a.Rotations.keys[name]), len(a.Scales.keys[name]),
		} {
			if uint64(n) > uint64(fw.limit()) {
				return fmt.Errorf("%w: bone %q has %d keys of one kind, max %d for %s counts",
					ErrFieldOverflow, name, n, fw.limit(), fw)
			}
		}
	}

	presence := a.PresenceFlags()
	s := newStreamWriter(w)

	// Header
	s.raw([]byte(seAnimMagic))
	s.u16(seAnimVersion)
	s.u16(seAnimHeaderSize)
	s.u8(uint8(a.Type))
	var flags uint8
	if a.Looping {
		flags |= seAnimFlagLooping
	}
	s.u8(flags)
	s.u8(presence)
	var precision uint8
	if a.HighPrecision {
		precision |= seAnimPrecisionHigh
	}
	s.u8(precision)
	s.zeros(2)
	s.f32(a.FrameRate)

	// Counts
	s.u32(frameCount)
	s.u32(uint32(len(bones)))
	s.u8(uint8(len(a.modifiers)))
	s.zeros(3)
	s.u32(uint32(a.NotificationCount()))

	// Bone tags
	for _, name := range bones {
		s.cstring(name)
	}

	// Modifiers, in insertion order
	mw := modifierWidth(uint32(len(bones)))
	for _, mod := range a.modifiers {
		s.uint(boneIndex[mod.Bone], mw)
		s.u8(uint8(mod.Type))
	}

	// Per-bone key blocks
	wide := a.HighPrecision
	for _, name := range bones {
		s.u8(0) // bone flags, reserved

		if presence&SEAnimPresenceBoneLoc != 0 {
			writeAnimKeys(s, a.Positions.keys[name], fw, func(v math.Vec3) { s.vec3(v, wide) })
		}
		if presence&SEAnimPresenceBoneRot != 0 {
			writeAnimKeys(s, a.Rotations.keys[name], fw, func(q math.Quat) { s.quat(q, wide) })
		}
		if presence&SEAnimPresenceBoneScale != 0 {
			writeAnimKeys(s, a.Scales.keys[name], fw, func(v math.Vec3) { s.vec3(v, wide) })
		}
	}

	// Notifications, one record per occurrence
	if presence&SEAnimPresenceNote != 0 {
		for _, name := range a.Notes.order {
			for _, key := range a.Notes.keys[name] {
				s.uint(key.Frame, fw)
				s.cstring(name)
			}
		}
	}

	return s.Err()
}

// writeAnimKeys writes a key count followed by (frame, value) pairs.
// A bone without keys of this kind still gets an explicit zero count.
func writeAnimKeys[T any](s *streamWriter, keys []SEAnimKey[T], fw IntWidth, value func(T)) {
	s.uint(uint32(len(keys)), fw)
	for _, key := range keys {
		s.uint(key.Frame, fw)
		value(key.Value)
	}
}

// WriteFile encodes the animation to a file at path.
func (a *SEAnim) WriteFile(path string) error {
	if err := writeFile(path, a.Write); err != nil {
		return fmt.Errorf("writing SEAnim file: %w", err)
	}
	return nil
}
