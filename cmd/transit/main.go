// Command transit inspects and exercises machine definitions: validate checks
// a definition against the full rule set, viz renders it as a Mermaid or
// Graphviz diagram, and simulate walks it interactively.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/amp-labs/transit"
	"github.com/amp-labs/transit/validator"
	"github.com/amp-labs/transit/visualizer"
	"github.com/manifoldco/promptui"
)

const quitChoice = "[quit]"

var errValidationFailed = errors.New("validation failed")

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error

	switch os.Args[1] {
	case "validate":
		err = runValidate(os.Args[2:])
	case "viz":
		err = runViz(os.Args[2:])
	case "simulate":
		err = runSimulate(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: transit <validate|viz|simulate> <definition.yaml> [flags]")
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("validate requires exactly one definition file")
	}

	path := fs.Arg(0)

	result, err := validator.ValidateFile(path)
	if err != nil {
		return err
	}

	for _, e := range result.Errors {
		fmt.Printf("error [%s] %s\n", e.Code, e.Message)

		if e.Fix != nil {
			fmt.Printf("  fix: %s\n", e.Fix.Description)
		}
	}

	for _, w := range result.Warnings {
		fmt.Printf("warning [%s] %s\n", w.Code, w.Message)
	}

	for _, s := range result.Suggestions {
		fmt.Printf("suggestion: %s\n", s.Message)
	}

	if !result.Valid {
		return errValidationFailed
	}

	fmt.Printf("%s is valid\n", path)

	return nil
}

func runViz(args []string) error {
	fs := flag.NewFlagSet("viz", flag.ExitOnError)
	format := fs.String("format", "mermaid", "output format: mermaid or dot")
	direction := fs.String("direction", "TD", "mermaid diagram direction: TD or LR")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("viz requires exactly one definition file")
	}

	def, err := transit.LoadDefinition(fs.Arg(0))
	if err != nil {
		return err
	}

	opts := visualizer.DefaultOptions().WithDirection(*direction)

	var out string

	switch *format {
	case "mermaid":
		out, err = visualizer.GenerateMermaidWithOptions(def, opts)
	case "dot":
		out, err = visualizer.GenerateDOTWithOptions(def, opts)
	default:
		return fmt.Errorf("unknown format: %s", *format)
	}

	if err != nil {
		return err
	}

	fmt.Print(out)

	return nil
}

func runSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("simulate requires exactly one definition file")
	}

	def, err := transit.LoadDefinition(fs.Arg(0))
	if err != nil {
		return err
	}

	engine, err := transit.FromDefinition(def,
		transit.WithLogger[any](transit.NewDefaultLogger()),
		transit.WithErrorHandler[any](func(message string) {
			fmt.Println(message)
		}),
	)
	if err != nil {
		return err
	}

	ctx := context.Background()

	for {
		targets := def.Transitions[engine.Current()]
		if len(targets) == 0 {
			fmt.Printf("reached terminal state %s\n", engine.Current())

			return nil
		}

		choices := append([]string{quitChoice}, targets...)

		sel := &promptui.Select{
			Label: fmt.Sprintf("Current state: %s — transition to", engine.Current()),
			Items: choices,
		}

		idx, target, err := sel.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return nil
			}

			return err
		}

		if idx == 0 {
			return nil
		}

		if _, err := engine.Dispatch(ctx, target, nil); err != nil {
			return err
		}
	}
}
