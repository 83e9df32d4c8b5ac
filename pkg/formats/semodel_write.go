package formats

import (
	"fmt"
	"io"

	"github.com/Faultbox/setools/pkg/math"
)

// Write encodes the model to w. The layout is the exact mirror of ReadSEModel.
func (m *SEModel) Write(w io.Writer) error {
	p := m.PresenceFlags()

	// Byte-sized per-mesh fields must fit before anything is written
	for i := range m.Meshes {
		mesh := &m.Meshes[i]
		if n := len(mesh.MaterialRefs); n > 0xFF {
			return fmt.Errorf("%w: mesh %d has %d material references, max 255", ErrFieldOverflow, i, n)
		}
		if p.Mesh&SEModelMeshWeights != 0 {
			if n := mesh.maxInfluence(); n > 0xFF {
				return fmt.Errorf("%w: mesh %d has %d skin influences, max 255", ErrFieldOverflow, i, n)
			}
		}
	}

	for i := range m.Bones {
		if err := checkNames("bone", m.Bones[i].Name); err != nil {
			return err
		}
	}
	for i := range m.Materials {
		mat := &m.Materials[i]
		if err := checkNames("material", mat.Name); err != nil {
			return err
		}
		if mat.Simple != nil {
			if err := checkNames("texture", mat.Simple.DiffuseMap, mat.Simple.NormalMap, mat.Simple.SpecularMap); err != nil {
				return err
			}
		}
	}

	s := newStreamWriter(w)

	// Header
	s.raw([]byte(seModelMagic))
	s.u16(seModelVersion)
	s.u16(seModelHeaderSize)
	s.u8(p.Model)
	s.u8(p.Bone)
	s.u8(p.Mesh)
	s.u32(uint32(len(m.Bones)))
	s.u32(uint32(len(m.Meshes)))
	s.u32(uint32(len(m.Materials)))
	s.zeros(3)

	// Bone names, then bone records
	for i := range m.Bones {
		s.cstring(m.Bones[i].Name)
	}
	for i := range m.Bones {
		writeSEModelBone(s, &m.Bones[i], p.Bone)
	}

	boneWidth := WidthFor(uint32(len(m.Bones)))
	for i := range m.Meshes {
		writeSEModelMesh(s, &m.Meshes[i], p.Mesh, boneWidth)
	}

	for i := range m.Materials {
		mat := &m.Materials[i]
		s.cstring(mat.Name)
		if mat.Simple == nil {
			s.u8(0)
			continue
		}
		s.u8(1)
		s.cstring(mat.Simple.DiffuseMap)
		s.cstring(mat.Simple.NormalMap)
		s.cstring(mat.Simple.SpecularMap)
	}

	return s.Err()
}

func writeSEModelBone(s *streamWriter, b *SEModelBone, flags uint8) {
	s.u8(0) // bone flags, reserved
	s.i32(b.Parent)

	if flags&SEModelBoneGlobalMatrix != 0 {
		s.vec3(b.GlobalPosition, false)
		s.quat(b.GlobalRotation, false)
	}
	if flags&SEModelBoneLocalMatrix != 0 {
		s.vec3(b.LocalPosition, false)
		s.quat(b.LocalRotation, false)
	}
	if flags&SEModelBoneScales != 0 {
		s.vec3(b.Scale, false)
	}
}

// writeSEModelMesh writes one mesh. Vertices missing a field reserved by the
// model-wide flags are written with zero values.
func writeSEModelMesh(s *streamWriter, mesh *SEModelMesh, flags uint8, boneWidth IntWidth) {
	layers := len(mesh.MaterialRefs)
	influence := 0
	if flags&SEModelMeshWeights != 0 {
		influence = mesh.maxInfluence()
	}
	vertexCount := uint32(len(mesh.Vertices))

	s.u8(0) // mesh flags, reserved
	s.u8(uint8(layers))
	s.u8(uint8(influence))
	s.u32(vertexCount)
	s.u32(uint32(len(mesh.Faces)))

	for i := range mesh.Vertices {
		s.vec3(mesh.Vertices[i].Position, false)
	}

	if flags&SEModelMeshUVSet != 0 {
		for i := range mesh.Vertices {
			uvs := mesh.Vertices[i].UVs
			for l := 0; l < layers; l++ {
				var uv math.Vec2
				if l < len(uvs) {
					uv = uvs[l]
				}
				s.vec2(uv)
			}
		}
	}

	if flags&SEModelMeshNormals != 0 {
		for i := range mesh.Vertices {
			s.vec3(mesh.Vertices[i].Normal, false)
		}
	}

	if flags&SEModelMeshColor != 0 {
		for i := range mesh.Vertices {
			c := mesh.Vertices[i].Color
			s.raw(c[:])
		}
	}

	if flags&SEModelMeshWeights != 0 {
		for i := range mesh.Vertices {
			weights := mesh.Vertices[i].Weights
			for w := 0; w < influence; w++ {
				var weight SEModelWeight
				if w < len(weights) {
					weight = weights[w]
				}
				s.uint(weight.Bone, boneWidth)
				s.f32(weight.Weight)
			}
		}
	}

	faceWidth := WidthFor(vertexCount)
	for _, face := range mesh.Faces {
		s.uint(face[0], faceWidth)
		s.uint(face[1], faceWidth)
		s.uint(face[2], faceWidth)
	}

	for _, ref := range mesh.MaterialRefs {
		s.i32(ref)
	}
}

// WriteFile encodes the model to a file at path.
func (m *SEModel) WriteFile(path string) error {
	if err := writeFile(path, m.Write); err != nil {
		return fmt.Errorf("writing SEModel file: %w", err)
	}
	return nil
}
