package cmd

import (
	"fmt"

	"github.com/go-darkroom/darkroom/pkg/curve"
	"github.com/go-darkroom/darkroom/pkg/document"
)

func init() {
	RegisterCommand(&Command{
		Name:  "lut",
		Short: "Export a tone-curve lookup table",
		Long: `Lut evaluates one curve channel of a photo's sidecar into its
256-entry lookup table and prints it one "input output" pair per line,
ready for piping into plotting tools.`,
		Usage: "darkroom lut <photo> [--channel luma|red|green|blue]",
		Run:   runLUT,
	})
}

func runLUT(args []string) error {
	var path, channel string
	channel = "luma"
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--channel":
			if i+1 >= len(args) {
				return fmt.Errorf("--channel requires a value")
			}
			i++
			channel = args[i]
		default:
			if path != "" {
				return fmt.Errorf("unexpected argument %q", args[i])
			}
			path = args[i]
		}
	}
	if path == "" {
		return fmt.Errorf("lut requires a photo path")
	}

	doc, err := document.LoadOrNew(path)
	if err != nil {
		return err
	}

	var ch curve.Channel
	switch channel {
	case "luma":
		ch = doc.Curves.Luma
	case "red":
		ch = doc.Curves.Red
	case "green":
		ch = doc.Curves.Green
	case "blue":
		ch = doc.Curves.Blue
	default:
		return fmt.Errorf("unknown channel %q", channel)
	}

	lut := ch.LUT()
	for i, v := range lut {
		fmt.Printf("%d %d\n", i, v)
	}
	return nil
}
