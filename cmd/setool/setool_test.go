package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/setools/pkg/formats"
	"github.com/Faultbox/setools/pkg/math"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name string
		head string
		want fileKind
	}{
		{"model", "SEModel\x01\x00", kindModel},
		{"anim", "SEAnim\x01\x00", kindAnim},
		{"short", "SE", kindUnknown},
		{"other", "GRSM\x01\x05", kindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectKind([]byte(tt.head)); got != tt.want {
				t.Errorf("detectKind(%q) = %v, want %v", tt.head, got, tt.want)
			}
		})
	}
}

func writeTestModel(t *testing.T, dir string) string {
	t.Helper()
	model := formats.NewSEModel()
	model.AddBone(formats.NewSEModelBone("root", -1))
	model.AddBone(formats.NewSEModelBone("arm", 0))
	model.AddMaterial(formats.SEModelMaterial{
		Name:   "skin",
		Simple: &formats.SESimpleMaterial{DiffuseMap: "skin.png"},
	})

	path := filepath.Join(dir, "in.semodel")
	if err := model.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func writeTestAnim(t *testing.T, dir string) string {
	t.Helper()
	anim := formats.NewSEAnim()
	anim.AddTranslationKey("root", 0, math.Vec3{})
	anim.AddTranslationKey("root", 12, math.Vec3{X: 1})
	anim.AddNoteKey("step", 6)

	path := filepath.Join(dir, "in.seanim")
	if err := anim.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestRewrite_Model(t *testing.T) {
	dir := t.TempDir()
	in := writeTestModel(t, dir)
	out := filepath.Join(dir, "out.semodel")

	if err := rewrite(in, out, rewriteOptions{boneMode: "both"}); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	got, err := formats.ParseSEModelFile(out)
	if err != nil {
		t.Fatalf("ParseSEModelFile failed: %v", err)
	}
	if got.BoneMode != formats.SEModelBoneBoth {
		t.Errorf("BoneMode = %v, want Both", got.BoneMode)
	}
	if len(got.Bones) != 2 || got.Bones[1].Name != "arm" {
		t.Errorf("bones = %+v", got.Bones)
	}

	if err := rewrite(in, out, rewriteOptions{boneMode: "sideways"}); err == nil {
		t.Error("expected error for invalid bone mode")
	}
}

func TestRewrite_Anim(t *testing.T) {
	dir := t.TempDir()
	in := writeTestAnim(t, dir)
	out := filepath.Join(dir, "out.seanim")

	hp := true
	if err := rewrite(in, out, rewriteOptions{highPrecision: &hp}); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	got, err := formats.ParseSEAnimFile(out)
	if err != nil {
		t.Fatalf("ParseSEAnimFile failed: %v", err)
	}
	if !got.HighPrecision {
		t.Error("expected high precision after rewrite")
	}
	if got.FrameCount() != 13 || got.NotificationCount() != 1 {
		t.Errorf("frames/notes = %d/%d", got.FrameCount(), got.NotificationCount())
	}
}

func TestOpenDocument_Unknown(t *testing.T) {
	if _, err := openDocument(filepath.Join(t.TempDir(), "missing.semodel")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDumpJSON(t *testing.T) {
	dir := t.TempDir()

	doc, err := openDocument(writeTestModel(t, dir))
	if err != nil {
		t.Fatalf("openDocument failed: %v", err)
	}
	var buf bytes.Buffer
	if err := dumpJSON(&buf, doc, ""); err != nil {
		t.Fatalf("dumpJSON failed: %v", err)
	}
	for _, want := range []string{
		`"bone_mode":"Locals"`,
		`"name":"arm","parent":0`,
		`"local_rotation":{"x":0,"y":0,"z":0,"w":1}`,
		`"diffuse_map":"skin.png"`,
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("model dump missing %s: %s", want, buf.String())
		}
	}

	doc, err = openDocument(writeTestAnim(t, dir))
	if err != nil {
		t.Fatalf("openDocument failed: %v", err)
	}
	buf.Reset()
	if err := dumpJSON(&buf, doc, ""); err != nil {
		t.Fatalf("dumpJSON failed: %v", err)
	}
	for _, want := range []string{
		`"frame_count":13`,
		`"name":"root"`,
		`{"frame":12,"value":{"x":1,"y":0,"z":0}}`,
		`"frames":[6]`,
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("anim dump missing %s: %s", want, buf.String())
		}
	}
	if strings.Contains(buf.String(), `"Frame"`) || strings.Contains(buf.String(), `"X"`) {
		t.Errorf("anim dump has Go-cased keys: %s", buf.String())
	}
}

func TestPrintInfo(t *testing.T) {
	doc, err := openDocument(writeTestAnim(t, t.TempDir()))
	if err != nil {
		t.Fatalf("openDocument failed: %v", err)
	}

	var buf bytes.Buffer
	printInfo(&buf, "in.seanim", doc)
	for _, want := range []string{"Format:   SEAnim", "Frames:   13 (u8 indices)", "Bones:    1"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("info missing %q:\n%s", want, buf.String())
		}
	}
}
