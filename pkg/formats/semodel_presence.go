package formats

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// SEModelPresence holds the three presence bytes of an SEModel header.
type SEModelPresence struct {
	Model uint8
	Bone  uint8
	Mesh  uint8
}

// PresenceFlags scans the model once and returns its presence bytes.
// Bone and mesh flags are model-wide: one bone with a non-unit scale, or one
// vertex anywhere needing a field, reserves that field for every bone or vertex.
func (m *SEModel) PresenceFlags() SEModelPresence {
	var p SEModelPresence

	if len(m.Bones) > 0 {
		p.Model |= SEModelPresenceBone
	}
	if len(m.Meshes) > 0 {
		p.Model |= SEModelPresenceMesh
	}
	if len(m.Materials) > 0 {
		p.Model |= SEModelPresenceMaterials
	}

	switch m.BoneMode {
	case SEModelBoneGlobals:
		p.Bone |= SEModelBoneGlobalMatrix
	case SEModelBoneBoth:
		p.Bone |= SEModelBoneGlobalMatrix | SEModelBoneLocalMatrix
	default:
		p.Bone |= SEModelBoneLocalMatrix
	}
	for i := range m.Bones {
		if !m.Bones[i].Scale.IsOne() {
			p.Bone |= SEModelBoneScales
			break
		}
	}

	p.Mesh = meshPresence(m.Meshes)
	return p
}

// meshPresence ORs the per-mesh flags of all meshes. Meshes are scanned
// concurrently; workers stop early once every flag is known to be set.
func meshPresence(meshes []SEModelMesh) uint8 {
	var acc atomic.Uint32

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range meshes {
		mesh := &meshes[i]
		g.Go(func() error {
			acc.Or(uint32(mesh.presence(&acc)))
			return nil
		})
	}
	_ = g.Wait()

	return uint8(acc.Load())
}

// presence returns the flags this mesh needs. It returns early when either
// the mesh itself or the shared accumulator already has every flag.
func (m *SEModelMesh) presence(shared *atomic.Uint32) uint8 {
	var flags uint8
	for i := range m.Vertices {
		if flags == seModelMeshAll || uint8(shared.Load()) == seModelMeshAll {
			break
		}
		v := &m.Vertices[i]
		if len(v.UVs) > 0 {
			flags |= SEModelMeshUVSet
		}
		if !v.Normal.IsZero() {
			flags |= SEModelMeshNormals
		}
		if v.Color != White {
			flags |= SEModelMeshColor
		}
		if len(v.Weights) > 0 {
			flags |= SEModelMeshWeights
		}
	}
	return flags
}
