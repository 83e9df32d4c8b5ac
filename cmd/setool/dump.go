package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/Faultbox/setools/pkg/formats"
	"github.com/Faultbox/setools/pkg/math"
)

type animBoneView struct {
	Name      string                         `json:"name"`
	Positions []formats.SEAnimKey[math.Vec3] `json:"positions,omitempty"`
	Rotations []formats.SEAnimKey[math.Quat] `json:"rotations,omitempty"`
	Scales    []formats.SEAnimKey[math.Vec3] `json:"scales,omitempty"`
}

type animNoteView struct {
	Name   string   `json:"name"`
	Frames []uint32 `json:"frames"`
}

type animView struct {
	Type          string                   `json:"type"`
	Looping       bool                     `json:"looping"`
	FrameRate     float32                  `json:"frame_rate"`
	FrameCount    uint32                   `json:"frame_count"`
	HighPrecision bool                     `json:"high_precision"`
	DeltaTag      string                   `json:"delta_tag,omitempty"`
	Bones         []animBoneView           `json:"bones"`
	Modifiers     []formats.SEAnimModifier `json:"modifiers,omitempty"`
	Notes         []animNoteView           `json:"notes,omitempty"`
}

type modelView struct {
	BoneMode         string                    `json:"bone_mode"`
	MaxSkinInfluence uint8                     `json:"max_skin_influence"`
	Bones            []formats.SEModelBone     `json:"bones"`
	Meshes           []formats.SEModelMesh     `json:"meshes"`
	Materials        []formats.SEModelMaterial `json:"materials"`
}

func newAnimView(a *formats.SEAnim) animView {
	v := animView{
		Type:          a.Type.String(),
		Looping:       a.Looping,
		FrameRate:     a.FrameRate,
		FrameCount:    a.FrameCount(),
		HighPrecision: a.HighPrecision,
		Modifiers:     a.Modifiers(),
	}
	if a.Type == formats.SEAnimDelta {
		v.DeltaTag = a.DeltaTagName
	}
	for _, name := range a.Bones() {
		v.Bones = append(v.Bones, animBoneView{
			Name:      name,
			Positions: a.Positions.Keys(name),
			Rotations: a.Rotations.Keys(name),
			Scales:    a.Scales.Keys(name),
		})
	}
	for _, name := range a.Notes.Names() {
		note := animNoteView{Name: name}
		for _, k := range a.Notes.Keys(name) {
			note.Frames = append(note.Frames, k.Frame)
		}
		v.Notes = append(v.Notes, note)
	}
	return v
}

func newModelView(m *formats.SEModel) modelView {
	return modelView{
		BoneMode:         m.BoneMode.String(),
		MaxSkinInfluence: m.MaxSkinInfluence,
		Bones:            m.Bones,
		Meshes:           m.Meshes,
		Materials:        m.Materials,
	}
}

func dumpCmd() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "Print the decoded document as JSON",
		ArgsUsage: "<file>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() < 1 {
				return fmt.Errorf("usage: setool dump <file>")
			}
			doc, err := openDocument(cmd.Args().First())
			if err != nil {
				return err
			}
			return dumpJSON(os.Stdout, doc, appConfig.Output.JSONIndent)
		},
	}
}

func dumpJSON(w io.Writer, doc *document, indent string) error {
	var view any
	if doc.anim != nil {
		view = newAnimView(doc.anim)
	} else {
		view = newModelView(doc.model)
	}

	enc := json.NewEncoder(w)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(view)
}
