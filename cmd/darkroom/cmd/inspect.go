package cmd

import (
	"fmt"

	"github.com/go-darkroom/darkroom/pkg/document"
)

func init() {
	RegisterCommand(&Command{
		Name:  "inspect",
		Short: "Summarize a photo's adjustment sidecar",
		Long: `Inspect loads the YAML sidecar for a photo and prints its
adjustments: curve channels that deviate from identity, the mask
containers with their sub-masks, and the crop and orientation state.`,
		Usage: "darkroom inspect <photo>",
		Run:   runInspect,
	})
}

func runInspect(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("inspect requires exactly one photo path")
	}

	doc, err := document.LoadOrNew(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Source: %s (schema v%d)\n", args[0], doc.Version)

	fmt.Println("Curves:")
	channels := []struct {
		name   string
		points int
		ident  bool
	}{
		{"luma", len(doc.Curves.Luma.Points), doc.Curves.Luma.IsIdentity()},
		{"red", len(doc.Curves.Red.Points), doc.Curves.Red.IsIdentity()},
		{"green", len(doc.Curves.Green.Points), doc.Curves.Green.IsIdentity()},
		{"blue", len(doc.Curves.Blue.Points), doc.Curves.Blue.IsIdentity()},
	}
	for _, ch := range channels {
		state := "identity"
		if !ch.ident {
			state = fmt.Sprintf("%d points", ch.points)
		}
		fmt.Printf("  %-6s %s\n", ch.name+":", state)
	}

	if len(doc.Masks) == 0 {
		fmt.Println("Masks:  none")
	} else {
		fmt.Println("Masks:")
		for _, c := range doc.Masks {
			visibility := ""
			if !c.Visible {
				visibility = " (hidden)"
			}
			fmt.Printf("  %s%s  opacity=%.0f  invert=%v\n", c.Name, visibility, c.Opacity, c.Invert)
			for _, m := range c.SubMasks {
				fmt.Printf("    - %s %s\n", m.Kind, m.Mode)
			}
		}
	}

	if crop, ok := doc.CropRect(); ok {
		fmt.Printf("Crop:   %.0fx%.0f at (%.0f, %.0f)\n", crop.Width(), crop.Height(), crop.Left, crop.Top)
	} else {
		fmt.Println("Crop:   none")
	}
	fmt.Printf("Rotation: %.2f deg, orientation steps: %d\n", doc.RotationDegrees, doc.OrientationSteps)
	return nil
}
