package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith/pkg/canvas"
	"github.com/pagesmith/pagesmith/pkg/errors"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	width  float64
	height float64
	name   string
}

// buildCommand creates the build command: the interactive canvas editor.
// It opens an existing document or starts a fresh one, and writes the
// document back when the editor quits with save.
func (c *CLI) buildCommand() *cobra.Command {
	opts := buildOpts{
		width:  c.Config.Canvas.Width,
		height: c.Config.Canvas.Height,
	}

	cmd := &cobra.Command{
		Use:   "build [document.json]",
		Short: "Build a page interactively in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "page.json"
			if len(args) > 0 {
				path = args[0]
			}
			return c.runBuild(path, &opts)
		},
	}

	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "canvas width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "canvas height")
	cmd.Flags().StringVar(&opts.name, "name", "", "document name (default: file name)")

	return cmd
}

func (c *CLI) runBuild(path string, opts *buildOpts) error {
	rect := canvas.Rect{Width: opts.width, Height: opts.height}

	store, name, err := loadOrCreateStore(path)
	if err != nil {
		return err
	}
	if opts.name != "" {
		name = opts.name
	}
	if err := errors.ValidateDocumentName(name); err != nil {
		return err
	}

	ctl := canvas.NewController(store, c.Logger)
	model := NewBuilderModel(ctl, rect, name)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("builder: %w", err)
	}

	result, ok := final.(BuilderModel)
	if !ok || !result.Saved {
		printInfo("Discarded changes")
		return nil
	}

	doc := canvas.FromStore(store, rect)
	doc.Name = name
	if err := canvas.WriteDocumentFile(doc, path); err != nil {
		return err
	}
	printSuccess("Saved %s", path)

	if out := result.Generated(); out != "" {
		htmlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".html"
		if err := os.WriteFile(htmlPath, []byte(out), 0o644); err != nil {
			return fmt.Errorf("write markup: %w", err)
		}
		printFile(htmlPath)
	}

	printNextStep("Generate markup", "pagesmith generate "+path)
	return nil
}

// loadOrCreateStore reads an existing document into a store, or returns
// an empty store when the file does not exist yet.
func loadOrCreateStore(path string) (*canvas.Store, string, error) {
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return canvas.NewStore(), name, nil
	}

	doc, err := canvas.ReadDocumentFile(path)
	if err != nil {
		return nil, "", err
	}

	store, err := doc.ToStore()
	if err != nil {
		return nil, "", err
	}
	return store, doc.Name, nil
}
