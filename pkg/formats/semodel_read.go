package formats

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/setools/pkg/math"
)

// ReadSEModel decodes an SEModel document from r.
// Only the magic is validated; truncated or inconsistent data surfaces as
// the underlying read error.
func ReadSEModel(r io.Reader) (*SEModel, error) {
	s := newStreamReader(r)

	// Read magic
	magic := s.bytes(len(seModelMagic))
	if err := s.Err(); err != nil {
		return nil, err
	}
	if string(magic) != seModelMagic {
		return nil, ErrInvalidSEModelMagic
	}

	// Version and header size are not validated
	s.u16()
	s.u16()

	var p SEModelPresence
	p.Model = s.u8()
	p.Bone = s.u8()
	p.Mesh = s.u8()

	model := NewSEModel()
	switch {
	case p.Bone&SEModelBoneGlobalMatrix != 0 && p.Bone&SEModelBoneLocalMatrix != 0:
		model.BoneMode = SEModelBoneBoth
	case p.Bone&SEModelBoneGlobalMatrix != 0:
		model.BoneMode = SEModelBoneGlobals
	case p.Bone&SEModelBoneLocalMatrix != 0:
		model.BoneMode = SEModelBoneLocals
	}

	boneCount := s.u32()
	meshCount := s.u32()
	materialCount := s.u32()
	s.skip(3)
	if err := s.Err(); err != nil {
		return nil, err
	}

	// Bone names come first and are matched to records by position
	names := make([]string, 0, capHint(boneCount))
	for i := uint32(0); i < boneCount && s.ok(); i++ {
		names = append(names, s.cstring())
	}

	model.Bones = make([]SEModelBone, 0, capHint(boneCount))
	for i := uint32(0); i < boneCount && s.ok(); i++ {
		model.Bones = append(model.Bones, readSEModelBone(s, names[i], p.Bone))
	}

	boneWidth := WidthFor(boneCount)
	model.Meshes = make([]SEModelMesh, 0, capHint(meshCount))
	for i := uint32(0); i < meshCount && s.ok(); i++ {
		mesh, influence := readSEModelMesh(s, p.Mesh, boneWidth)
		model.Meshes = append(model.Meshes, mesh)
		if influence > model.MaxSkinInfluence {
			model.MaxSkinInfluence = influence
		}
	}

	model.Materials = make([]SEModelMaterial, 0, capHint(materialCount))
	for i := uint32(0); i < materialCount && s.ok(); i++ {
		mat := SEModelMaterial{Name: s.cstring()}
		if s.u8() != 0 {
			mat.Simple = &SESimpleMaterial{
				DiffuseMap:  s.cstring(),
				NormalMap:   s.cstring(),
				SpecularMap: s.cstring(),
			}
		}
		model.Materials = append(model.Materials, mat)
	}

	if err := s.Err(); err != nil {
		return nil, err
	}
	return model, nil
}

func readSEModelBone(s *streamReader, name string, flags uint8) SEModelBone {
	s.u8() // bone flags, ignored
	bone := NewSEModelBone(name, s.i32())

	if flags&SEModelBoneGlobalMatrix != 0 {
		bone.GlobalPosition = s.vec3(false)
		bone.GlobalRotation = s.quat(false)
	}
	if flags&SEModelBoneLocalMatrix != 0 {
		bone.LocalPosition = s.vec3(false)
		bone.LocalRotation = s.quat(false)
	}
	if flags&SEModelBoneScales != 0 {
		bone.Scale = s.vec3(false)
	}
	return bone
}

// readSEModelMesh reads one mesh and returns it with its skin influence.
func readSEModelMesh(s *streamReader, flags uint8, boneWidth IntWidth) (SEModelMesh, uint8) {
	var mesh SEModelMesh

	s.u8() // mesh flags, ignored
	layers := int(s.u8())
	influence := s.u8()
	vertexCount := s.u32()
	faceCount := s.u32()
	if !s.ok() {
		return mesh, 0
	}

	// Positions
	mesh.Vertices = make([]SEModelVertex, 0, capHint(vertexCount))
	for i := uint32(0); i < vertexCount && s.ok(); i++ {
		mesh.Vertices = append(mesh.Vertices, NewSEModelVertex(s.vec3(false)))
	}
	if !s.ok() {
		return mesh, influence
	}

	if flags&SEModelMeshUVSet != 0 && layers > 0 {
		for i := range mesh.Vertices {
			uvs := make([]math.Vec2, layers)
			for l := range uvs {
				uvs[l] = s.vec2()
			}
			mesh.Vertices[i].UVs = uvs
		}
	}

	if flags&SEModelMeshNormals != 0 {
		for i := range mesh.Vertices {
			mesh.Vertices[i].Normal = s.vec3(false)
		}
	}

	if flags&SEModelMeshColor != 0 {
		for i := range mesh.Vertices {
			s.fill(mesh.Vertices[i].Color[:])
		}
	}

	if flags&SEModelMeshWeights != 0 && influence > 0 {
		for i := range mesh.Vertices {
			weights := make([]SEModelWeight, influence)
			for w := range weights {
				weights[w].Bone = s.uint(boneWidth)
				weights[w].Weight = s.f32()
			}
			mesh.Vertices[i].Weights = weights
		}
	}

	// Face indices are as wide as this mesh's vertex count requires
	faceWidth := WidthFor(vertexCount)
	mesh.Faces = make([]SEModelFace, 0, capHint(faceCount))
	for i := uint32(0); i < faceCount && s.ok(); i++ {
		mesh.Faces = append(mesh.Faces, SEModelFace{s.uint(faceWidth), s.uint(faceWidth), s.uint(faceWidth)})
	}

	for i := 0; i < layers && s.ok(); i++ {
		mesh.MaterialRefs = append(mesh.MaterialRefs, s.i32())
	}

	return mesh, influence
}

// ParseSEModel decodes an SEModel document from a byte slice.
func ParseSEModel(data []byte) (*SEModel, error) {
	return ReadSEModel(bytes.NewReader(data))
}

// ParseSEModelFile decodes an SEModel file from disk.
func ParseSEModelFile(path string) (*SEModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening SEModel file: %w", err)
	}
	defer f.Close()

	model, err := ReadSEModel(f)
	if err != nil {
		return nil, fmt.Errorf("reading SEModel file %s: %w", path, err)
	}
	return model, nil
}
