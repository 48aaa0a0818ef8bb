// Package cmd implements the darkroom CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (inspect, lut, preview).
package cmd

import (
	"errors"
	"fmt"
	"os"

	derrors "github.com/go-darkroom/darkroom/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "darkroom",
	Short: "darkroom - non-destructive local adjustments for raw photos",
	Long: `Darkroom edits photographs without touching their pixels: every
adjustment lives in a YAML sidecar next to the source file. The CLI
inspects sidecars, exports tone-curve lookup tables, and renders
software previews for debugging the edit pipeline.

Use "darkroom <command> --help" for more information about a command.`,
	Usage: "darkroom <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the process arguments. Failures are reported
// through the global error handler before being returned, so the caller only
// decides the exit code.
func Execute() error {
	return execute(os.Args[1:])
}

func execute(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	switch args[0] {
	case "-h", "--help", "help":
		printHelp(rootCmd)
		return nil
	case "-v", "--version", "version":
		fmt.Printf("darkroom version %s (built %s)\n", Version, BuildTime)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	if err := runCommand(cmd, cmdArgs); err != nil {
		reportFailure(err)
		return err
	}
	return nil
}

// runCommand invokes a command's Run, converting a panic into a returned
// error after reporting it.
func runCommand(cmd *Command, args []string) (err error) {
	defer derrors.RecoverWithCallback("cmd."+cmd.Name, func(r any) {
		err = fmt.Errorf("%s: internal error: %v", cmd.Name, r)
	})
	return cmd.Run(args)
}

// reportFailure routes a structured error through the global handler and
// prints anything else to stderr.
func reportFailure(err error) {
	var derr *derrors.Error
	if errors.As(err, &derr) {
		derrors.Report(derr)
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
}

func printHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
	fmt.Println()
	fmt.Println("Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Printf("  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -h, --help           Show help for a command")
	fmt.Println("  -v, --version        Show version information")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  darkroom inspect photo.raw          Summarize the sidecar for a photo")
	fmt.Println("  darkroom lut photo.raw --channel red   Export one channel's lookup table")
	fmt.Println("  darkroom preview photo.png -o out.png  Render a software preview")
}

func printCommandHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
}
