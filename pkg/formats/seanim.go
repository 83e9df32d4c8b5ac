// SEAnim format: keyframed bone animation with notifications.
package formats

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Faultbox/setools/pkg/math"
)

// SEAnim format errors.
var (
	ErrInvalidSEAnimMagic = errors.New("invalid SEAnim magic: expected 'SEAnim'")
)

const (
	seAnimMagic      = "SEAnim"
	seAnimVersion    = 1
	seAnimHeaderSize = 0x1C
)

// SEAnim presence flags, one bit per optional block.
const (
	SEAnimPresenceBoneLoc   uint8 = 1 << 0
	SEAnimPresenceBoneRot   uint8 = 1 << 1
	SEAnimPresenceBoneScale uint8 = 1 << 2
	SEAnimPresenceNote      uint8 = 1 << 6
	SEAnimPresenceCustom    uint8 = 1 << 7 // reserved, never written
)

const (
	seAnimFlagLooping   uint8 = 1 << 0
	seAnimPrecisionHigh uint8 = 1 << 0
)

// SEAnimType describes how key values combine with the bind pose.
type SEAnimType uint8

const (
	SEAnimAbsolute SEAnimType = 0
	SEAnimAdditive SEAnimType = 1
	SEAnimRelative SEAnimType = 2
	SEAnimDelta    SEAnimType = 3
)

// String returns a human-readable animation type name.
func (t SEAnimType) String() string {
	switch t {
	case SEAnimAbsolute:
		return "Absolute"
	case SEAnimAdditive:
		return "Additive"
	case SEAnimRelative:
		return "Relative"
	case SEAnimDelta:
		return "Delta"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// SEAnimKey is one keyframe of a bone track.
type SEAnimKey[T any] struct {
	Frame uint32 `json:"frame"`
	Value T      `json:"value"`
}

// SEAnimTrack maps names to key lists, remembering the order in which names
// were first seen. The zero value is ready to use.
type SEAnimTrack[T any] struct {
	order []string
	keys  map[string][]SEAnimKey[T]
}

func (t *SEAnimTrack[T]) add(name string, frame uint32, value T) {
	if t.keys == nil {
		t.keys = make(map[string][]SEAnimKey[T])
	}
	if _, ok := t.keys[name]; !ok {
		t.order = append(t.order, name)
	}
	t.keys[name] = append(t.keys[name], SEAnimKey[T]{Frame: frame, Value: value})
}

// Names returns track names in first-seen order.
func (t *SEAnimTrack[T]) Names() []string {
	return slices.Clone(t.order)
}

// Keys returns the keys recorded for name, in insertion order.
func (t *SEAnimTrack[T]) Keys(name string) []SEAnimKey[T] {
	return t.keys[name]
}

// Len returns the number of names with at least one key.
func (t *SEAnimTrack[T]) Len() int {
	return len(t.order)
}

// KeyCount returns the total number of keys across all names.
func (t *SEAnimTrack[T]) KeyCount() int {
	total := 0
	for _, keys := range t.keys {
		total += len(keys)
	}
	return total
}

// maxFrame returns the largest frame index in the track.
func (t *SEAnimTrack[T]) maxFrame() (uint32, bool) {
	var highest uint32
	found := false
	for _, keys := range t.keys {
		for _, k := range keys {
			if !found || k.Frame > highest {
				highest = k.Frame
				found = true
			}
		}
	}
	return highest, found
}

// SEAnimModifier overrides the animation type for a single bone.
type SEAnimModifier struct {
	Bone string     `json:"bone"`
	Type SEAnimType `json:"type"`
}

// SEAnim is an in-memory SEAnim document.
type SEAnim struct {
	Type          SEAnimType
	Looping       bool
	DeltaTagName  string  // Bone written first for Delta animations
	FrameRate     float32 // Frames per second
	HighPrecision bool    // Write key values as float64

	Positions SEAnimTrack[math.Vec3]
	Rotations SEAnimTrack[math.Quat]
	Scales    SEAnimTrack[math.Vec3]
	Notes     SEAnimTrack[struct{}]

	modifiers     []SEAnimModifier
	modifierIndex map[string]int
}

// NewSEAnim returns an empty absolute animation at 30 frames per second.
func NewSEAnim() *SEAnim {
	return &SEAnim{
		Type:      SEAnimAbsolute,
		FrameRate: 30,
	}
}

// AddTranslationKey appends a position key for bone.
func (a *SEAnim) AddTranslationKey(bone string, frame uint32, pos math.Vec3) {
	a.Positions.add(bone, frame, pos)
}

// AddRotationKey appends a rotation key for bone.
func (a *SEAnim) AddRotationKey(bone string, frame uint32, rot math.Quat) {
	a.Rotations.add(bone, frame, rot)
}

// AddScaleKey appends a scale key for bone.
func (a *SEAnim) AddScaleKey(bone string, frame uint32, scale math.Vec3) {
	a.Scales.add(bone, frame, scale)
}

// AddNoteKey records notification name firing at frame.
func (a *SEAnim) AddNoteKey(name string, frame uint32) {
	a.Notes.add(name, frame, struct{}{})
}

// AddBoneModifier sets the animation type override for bone.
// Setting an existing bone replaces its type but keeps its position.
func (a *SEAnim) AddBoneModifier(bone string, typ SEAnimType) {
	if a.modifierIndex == nil {
		a.modifierIndex = make(map[string]int)
	}
	if i, ok := a.modifierIndex[bone]; ok {
		a.modifiers[i].Type = typ
		return
	}
	a.modifierIndex[bone] = len(a.modifiers)
	a.modifiers = append(a.modifiers, SEAnimModifier{Bone: bone, Type: typ})
}

// Modifiers returns the bone modifiers in insertion order.
func (a *SEAnim) Modifiers() []SEAnimModifier {
	return slices.Clone(a.modifiers)
}

// FrameCount returns the highest frame index used by any key or
// notification plus one, or 0 for an empty animation. A key at the last
// uint32 frame saturates the count; Write rejects such animations.
func (a *SEAnim) FrameCount() uint32 {
	highest, ok := a.highestFrame()
	switch {
	case !ok:
		return 0
	case highest == 0xFFFFFFFF:
		return highest
	default:
		return highest + 1
	}
}

func (a *SEAnim) highestFrame() (uint32, bool) {
	var highest uint32
	found := false
	for _, fn := range []func() (uint32, bool){
		a.Positions.maxFrame, a.Rotations.maxFrame, a.Scales.maxFrame, a.Notes.maxFrame,
	} {
		if f, ok := fn(); ok && (!found || f > highest) {
			highest = f
			found = true
		}
	}
	return highest, found
}

// Bones returns the bone table in stream order: names from the position,
// rotation and scale tracks, each in first-seen order and deduplicated.
// For Delta animations the delta tag bone is moved to the front.
func (a *SEAnim) Bones() []string {
	seen := make(map[string]struct{})
	var bones []string
	for _, names := range [][]string{a.Positions.order, a.Rotations.order, a.Scales.order} {
		for _, name := range names {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			bones = append(bones, name)
		}
	}

	if a.Type == SEAnimDelta {
		if i := slices.Index(bones, a.DeltaTagName); i > 0 {
			bones = slices.Delete(bones, i, i+1)
			bones = slices.Insert(bones, 0, a.DeltaTagName)
		}
	}
	return bones
}

// BoneCount returns the number of animated bones. Notifications do not count.
func (a *SEAnim) BoneCount() int {
	return len(a.Bones())
}

// NotificationCount returns the number of (name, frame) notification records.
func (a *SEAnim) NotificationCount() int {
	return a.Notes.KeyCount()
}

// PresenceFlags returns the presence byte for the animation.
func (a *SEAnim) PresenceFlags() uint8 {
	var flags uint8
	if a.Positions.Len() > 0 {
		flags |= SEAnimPresenceBoneLoc
	}
	if a.Rotations.Len() > 0 {
		flags |= SEAnimPresenceBoneRot
	}
	if a.Scales.Len() > 0 {
		flags |= SEAnimPresenceBoneScale
	}
	if a.Notes.Len() > 0 {
		flags |= SEAnimPresenceNote
	}
	return flags
}
