package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/Faultbox/setools/internal/logger"
	"github.com/Faultbox/setools/pkg/formats"
)

func infoCmd() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Show counts and presence flags of a file",
		ArgsUsage: "<file>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() < 1 {
				return fmt.Errorf("usage: setool info <file>")
			}
			path := cmd.Args().First()

			doc, err := openDocument(path)
			if err != nil {
				return err
			}
			logger.Debug("decoded file", zap.String("path", path), zap.Stringer("kind", doc.kind))

			printInfo(os.Stdout, path, doc)
			return nil
		},
	}
}

func printInfo(w io.Writer, path string, doc *document) {
	fmt.Fprintf(w, "File:     %s\n", path)
	fmt.Fprintf(w, "Format:   %s\n", doc.kind)

	if a := doc.anim; a != nil {
		fmt.Fprintf(w, "Type:     %s\n", a.Type)
		fmt.Fprintf(w, "Looping:  %v\n", a.Looping)
		fmt.Fprintf(w, "Rate:     %.2f fps\n", a.FrameRate)
		fmt.Fprintf(w, "Frames:   %d (%s indices)\n", a.FrameCount(), formats.WidthFor(max(a.FrameCount(), 1)-1))
		fmt.Fprintf(w, "Bones:    %d\n", a.BoneCount())
		fmt.Fprintf(w, "Notes:    %d\n", a.NotificationCount())
		fmt.Fprintf(w, "Presence: %#02x\n", a.PresenceFlags())
		if a.Type == formats.SEAnimDelta {
			fmt.Fprintf(w, "Delta:    %s\n", a.DeltaTagName)
		}
		return
	}

	m := doc.model
	p := m.PresenceFlags()
	fmt.Fprintf(w, "Bones:    %d (%s transforms)\n", len(m.Bones), m.BoneMode)
	fmt.Fprintf(w, "Meshes:   %d\n", len(m.Meshes))
	fmt.Fprintf(w, "Vertices: %d\n", m.GetTotalVertexCount())
	fmt.Fprintf(w, "Faces:    %d\n", m.GetTotalFaceCount())
	fmt.Fprintf(w, "Materials: %d\n", len(m.Materials))
	fmt.Fprintf(w, "Skin:     %d influences max\n", m.MaxSkinInfluence)
	fmt.Fprintf(w, "Presence: model=%#02x bone=%#02x mesh=%#02x\n", p.Model, p.Bone, p.Mesh)
}
