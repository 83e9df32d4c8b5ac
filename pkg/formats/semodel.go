// SEModel format: bone hierarchy, skinned meshes and material references.
package formats

import (
	"errors"
	"fmt"

	"github.com/Faultbox/setools/pkg/math"
)

// SEModel format errors.
var (
	ErrInvalidSEModelMagic = errors.New("invalid SEModel magic: expected 'SEModel'")
)

const (
	seModelMagic      = "SEModel"
	seModelVersion    = 1
	seModelHeaderSize = 0x14
)

// SEModel model-level presence flags.
const (
	SEModelPresenceBone      uint8 = 1 << 0
	SEModelPresenceMesh      uint8 = 1 << 1
	SEModelPresenceMaterials uint8 = 1 << 2
	SEModelPresenceCustom    uint8 = 1 << 7 // reserved, always zero
)

// SEModel bone-level presence flags.
const (
	SEModelBoneGlobalMatrix uint8 = 1 << 0
	SEModelBoneLocalMatrix  uint8 = 1 << 1
	SEModelBoneScales       uint8 = 1 << 2
)

// SEModel mesh-level presence flags.
const (
	SEModelMeshUVSet   uint8 = 1 << 0
	SEModelMeshNormals uint8 = 1 << 1
	SEModelMeshColor   uint8 = 1 << 2
	SEModelMeshWeights uint8 = 1 << 3

	seModelMeshAll = SEModelMeshUVSet | SEModelMeshNormals | SEModelMeshColor | SEModelMeshWeights
)

// SEModelBoneMode selects which bone transforms are stored.
type SEModelBoneMode uint8

const (
	SEModelBoneLocals  SEModelBoneMode = 0
	SEModelBoneGlobals SEModelBoneMode = 1
	SEModelBoneBoth    SEModelBoneMode = 2
)

// String returns a human-readable bone mode name.
func (m SEModelBoneMode) String() string {
	switch m {
	case SEModelBoneLocals:
		return "Locals"
	case SEModelBoneGlobals:
		return "Globals"
	case SEModelBoneBoth:
		return "Both"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(m))
	}
}

// White is the default vertex color.
var White = [4]uint8{255, 255, 255, 255}

// SEModelBone is a node of the skeleton. Its index is its position in SEModel.Bones.
type SEModelBone struct {
	Name   string `json:"name"`
	Parent int32  `json:"parent"` // Parent bone index, -1 for roots

	GlobalPosition math.Vec3 `json:"global_position"`
	GlobalRotation math.Quat `json:"global_rotation"`
	LocalPosition  math.Vec3 `json:"local_position"`
	LocalRotation  math.Quat `json:"local_rotation"`
	Scale          math.Vec3 `json:"scale"`
}

// NewSEModelBone returns a bone with identity rotations and unit scale.
func NewSEModelBone(name string, parent int32) SEModelBone {
	return SEModelBone{
		Name:           name,
		Parent:         parent,
		GlobalRotation: math.QuatIdentity(),
		LocalRotation:  math.QuatIdentity(),
		Scale:          math.Vec3One(),
	}
}

// IsRoot returns true if the bone has no parent.
func (b *SEModelBone) IsRoot() bool {
	return b.Parent <= -1
}

// SEModelWeight is one skin influence of a vertex.
type SEModelWeight struct {
	Bone   uint32  `json:"bone"`   // Index into SEModel.Bones
	Weight float32 `json:"weight"` // Influence
}

// SEModelVertex is a mesh vertex. Every vertex of a mesh is expected to carry
// one UV per material reference of that mesh.
type SEModelVertex struct {
	Position math.Vec3       `json:"position"`
	UVs      []math.Vec2     `json:"uvs,omitempty"`
	Normal   math.Vec3       `json:"normal"`
	Color    [4]uint8        `json:"color"` // RGBA
	Weights  []SEModelWeight `json:"weights,omitempty"`
}

// NewSEModelVertex returns a white vertex at pos.
func NewSEModelVertex(pos math.Vec3) SEModelVertex {
	return SEModelVertex{Position: pos, Color: White}
}

// SEModelFace is a triangle of vertex indices.
type SEModelFace [3]uint32

// SEModelMesh is a triangle mesh. MaterialRefs holds one material index per UV layer.
type SEModelMesh struct {
	Vertices     []SEModelVertex `json:"vertices"`
	Faces        []SEModelFace   `json:"faces"`
	MaterialRefs []int32         `json:"material_refs,omitempty"`
}

// maxInfluence returns the largest weight list length in the mesh.
func (m *SEModelMesh) maxInfluence() int {
	highest := 0
	for i := range m.Vertices {
		if n := len(m.Vertices[i].Weights); n > highest {
			highest = n
		}
	}
	return highest
}

// SESimpleMaterial references diffuse, normal and specular texture paths.
type SESimpleMaterial struct {
	DiffuseMap  string `json:"diffuse_map"`
	NormalMap   string `json:"normal_map"`
	SpecularMap string `json:"specular_map"`
}

// SEModelMaterial is a named material. Simple is nil when the material kind
// is not one this package understands; only the name is kept in that case.
type SEModelMaterial struct {
	Name   string            `json:"name"`
	Simple *SESimpleMaterial `json:"simple,omitempty"`
}

// IsSimple returns true if the material carries a simple payload.
func (m *SEModelMaterial) IsSimple() bool {
	return m.Simple != nil
}

// SEModel is an in-memory SEModel document.
type SEModel struct {
	BoneMode SEModelBoneMode
	Flags    uint32 // Caller-defined, not serialized

	// MaxSkinInfluence is the largest per-mesh skin influence seen when
	// reading. Write ignores it and derives each mesh's influence from the
	// longest weight list in that mesh.
	MaxSkinInfluence uint8

	Bones     []SEModelBone
	Meshes    []SEModelMesh
	Materials []SEModelMaterial
}

// NewSEModel returns an empty model storing local transforms.
func NewSEModel() *SEModel {
	return &SEModel{BoneMode: SEModelBoneLocals}
}

// AddBone appends a bone and returns its index.
func (m *SEModel) AddBone(bone SEModelBone) int {
	m.Bones = append(m.Bones, bone)
	return len(m.Bones) - 1
}

// AddMesh appends a mesh and returns its index.
func (m *SEModel) AddMesh(mesh SEModelMesh) int {
	m.Meshes = append(m.Meshes, mesh)
	return len(m.Meshes) - 1
}

// AddMaterial appends a material and returns its index.
func (m *SEModel) AddMaterial(mat SEModelMaterial) int {
	m.Materials = append(m.Materials, mat)
	return len(m.Materials) - 1
}

// GetBoneByName returns the first bone with the given name, or nil if not found.
func (m *SEModel) GetBoneByName(name string) *SEModelBone {
	for i := range m.Bones {
		if m.Bones[i].Name == name {
			return &m.Bones[i]
		}
	}
	return nil
}

// GetTotalVertexCount returns the number of vertices across all meshes.
func (m *SEModel) GetTotalVertexCount() int {
	total := 0
	for i := range m.Meshes {
		total += len(m.Meshes[i].Vertices)
	}
	return total
}

// GetTotalFaceCount returns the number of faces across all meshes.
func (m *SEModel) GetTotalFaceCount() int {
	total := 0
	for i := range m.Meshes {
		total += len(m.Meshes[i].Faces)
	}
	return total
}
