package cmd

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/go-darkroom/darkroom/internal/config"
	"github.com/go-darkroom/darkroom/pkg/backend"
	"github.com/go-darkroom/darkroom/pkg/document"
	derrors "github.com/go-darkroom/darkroom/pkg/errors"
)

func init() {
	RegisterCommand(&Command{
		Name:  "preview",
		Short: "Render a software preview of an edited photo",
		Long: `Preview decodes a photo, applies its sidecar adjustments with the
software renderer, and writes the result as PNG. This is the debugging
path for the edit pipeline; the interactive app uses the same renderer
behind the debounced backend client.`,
		Usage: "darkroom preview <photo> [-o output.png] [--long-edge N]",
		Run:   runPreview,
	})
}

// previewOptions parses the preview arguments. The long-edge cap defaults
// from the loaded configuration and is only overridden by --long-edge.
func previewOptions(args []string, cfg *config.Config) (path, out string, longEdge int, err error) {
	longEdge = cfg.Preview.LongEdge
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-o", "--output":
			if i+1 >= len(args) {
				return "", "", 0, fmt.Errorf("%s requires a file path", args[i])
			}
			i++
			out = args[i]
		case "--long-edge":
			if i+1 >= len(args) {
				return "", "", 0, fmt.Errorf("--long-edge requires a value")
			}
			i++
			if _, err := fmt.Sscanf(args[i], "%d", &longEdge); err != nil {
				return "", "", 0, fmt.Errorf("invalid --long-edge %q", args[i])
			}
		default:
			if path != "" {
				return "", "", 0, fmt.Errorf("unexpected argument %q", args[i])
			}
			path = args[i]
		}
	}
	if path == "" {
		return "", "", 0, fmt.Errorf("preview requires a photo path")
	}
	if out == "" {
		out = path + ".preview.png"
	}
	return path, out, longEdge, nil
}

func runPreview(args []string) error {
	path, out, longEdge, err := previewOptions(args, config.New())
	if err != nil {
		return err
	}

	src, err := decodeImage(path)
	if err != nil {
		return err
	}
	doc, err := document.LoadOrNew(path)
	if err != nil {
		return err
	}

	req := backend.PreviewRequest{
		Curves:           doc.Curves,
		Masks:            doc.Masks,
		Rotation:         doc.RotationDegrees,
		OrientationSteps: doc.OrientationSteps,
	}
	if crop, ok := doc.CropRect(); ok {
		req.Crop = &crop
	}

	renderer := &backend.SoftwareRenderer{Source: src, LongEdge: longEdge}
	preview, err := renderer.RenderPreview(context.Background(), req)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return derrors.E("cmd.preview", derrors.KindBackend, err).WithPath(out)
	}
	defer f.Close()
	if err := png.Encode(f, preview); err != nil {
		return derrors.E("cmd.preview", derrors.KindBackend, err).WithPath(out)
	}

	fmt.Printf("Wrote %s (%dx%d)\n", out, preview.Bounds().Dx(), preview.Bounds().Dy())
	return nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, derrors.E("cmd.preview", derrors.KindDecode, err).WithPath(path)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, derrors.E("cmd.preview", derrors.KindDecode, err).WithPath(path)
	}
	return img, nil
}
