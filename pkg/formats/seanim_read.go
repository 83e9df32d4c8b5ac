package formats

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// ReadSEAnim decodes an SEAnim document from r.
// The layout mirrors SEAnim.Write: widths are inferred from the header's
// frame and bone counts.
func ReadSEAnim(r io.Reader) (*SEAnim, error) {
	s := newStreamReader(r)

	// Read magic
	magic := s.bytes(len(seAnimMagic))
	if err := s.Err(); err != nil {
		return nil, err
	}
	if string(magic) != seAnimMagic {
		return nil, ErrInvalidSEAnimMagic
	}

	// Version and header size are not validated
	s.u16()
	s.u16()

	anim := NewSEAnim()
	anim.Type = SEAnimType(s.u8())
	anim.Looping = s.u8()&seAnimFlagLooping != 0
	presence := s.u8()
	anim.HighPrecision = s.u8()&seAnimPrecisionHigh != 0
	s.skip(2)
	anim.FrameRate = s.f32()

	frameCount := s.u32()
	boneCount := s.u32()
	modifierCount := s.u8()
	s.skip(3)
	noteCount := s.u32()
	if err := s.Err(); err != nil {
		return nil, err
	}

	// Bone tags
	bones := make([]string, 0, capHint(boneCount))
	for i := uint32(0); i < boneCount && s.ok(); i++ {
		bones = append(bones, s.cstring())
	}

	// Modifiers
	mw := modifierWidth(boneCount)
	for i := 0; i < int(modifierCount) && s.ok(); i++ {
		idx := s.uint(mw)
		typ := SEAnimType(s.u8())
		if !s.ok() {
			break
		}
		if int(idx) >= len(bones) {
			return nil, fmt.Errorf("%w: modifier references bone %d of %d", ErrUnknownBone, idx, len(bones))
		}
		anim.AddBoneModifier(bones[idx], typ)
	}

	// Per-bone key blocks
	fw := frameWidth(frameCount)
	wide := anim.HighPrecision
	for _, name := range bones {
		if !s.ok() {
			break
		}
		s.u8() // bone flags, ignored

		if presence&SEAnimPresenceBoneLoc != 0 {
			count := s.uint(fw)
			for k := uint32(0); k < count && s.ok(); k++ {
				frame := s.uint(fw)
				anim.AddTranslationKey(name, frame, s.vec3(wide))
			}
		}
		if presence&SEAnimPresenceBoneRot != 0 {
			count := s.uint(fw)
			for k := uint32(0); k < count && s.ok(); k++ {
				frame := s.uint(fw)
				anim.AddRotationKey(name, frame, s.quat(wide))
			}
		}
		if presence&SEAnimPresenceBoneScale != 0 {
			count := s.uint(fw)
			for k := uint32(0); k < count && s.ok(); k++ {
				frame := s.uint(fw)
				anim.AddScaleKey(name, frame, s.vec3(wide))
			}
		}
	}

	// Notifications
	if presence&SEAnimPresenceNote != 0 {
		for i := uint32(0); i < noteCount && s.ok(); i++ {
			frame := s.uint(fw)
			name := s.cstring()
			if s.ok() {
				anim.AddNoteKey(name, frame)
			}
		}
	}

	if err := s.Err(); err != nil {
		return nil, err
	}

	if anim.Type == SEAnimDelta && len(bones) > 0 {
		anim.DeltaTagName = bones[0]
	}

	return anim, nil
}

// ParseSEAnim decodes an SEAnim document from a byte slice.
func ParseSEAnim(data []byte) (*SEAnim, error) {
	return ReadSEAnim(bytes.NewReader(data))
}

// ParseSEAnimFile decodes an SEAnim file from disk.
func ParseSEAnimFile(path string) (*SEAnim, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening SEAnim file: %w", err)
	}
	defer f.Close()

	anim, err := ReadSEAnim(f)
	if err != nil {
		return nil, fmt.Errorf("reading SEAnim file %s: %w", path, err)
	}
	return anim, nil
}
