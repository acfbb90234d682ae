package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith/pkg/assist"
	"github.com/pagesmith/pagesmith/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output    string  // output file path
	width     float64 // canvas width used to clamp positions
	height    float64 // canvas height used to clamp positions
	noCache   bool    // disable markup caching
	refresh   bool    // bypass cached markup
	useAssist bool    // also ask the assist service for suggestions
	prompt    string  // free-text prompt for the assist service
}

// generateCommand creates the generate command producing markup from a
// saved document.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{
		width:  c.Config.Canvas.Width,
		height: c.Config.Canvas.Height,
	}

	cmd := &cobra.Command{
		Use:   "generate [document.json]",
		Short: "Generate static markup from a saved document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: document name with .html)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "canvas width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "canvas height")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable markup caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even if cached")
	cmd.Flags().BoolVar(&opts.useAssist, "assist", false, "ask the assist service for suggestions")
	cmd.Flags().StringVar(&opts.prompt, "prompt", "", "free-text prompt for the assist service")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, input string, opts *generateOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		DocumentPath: input,
		CanvasWidth:  opts.width,
		CanvasHeight: opts.height,
		Refresh:      opts.refresh,
		Logger:       c.Logger,
	})
	if err != nil {
		return err
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".html"
	}
	if err := os.WriteFile(outputPath, []byte(result.Markup), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	printSuccess("Generated %s", outputPath)
	printStats(result.Stats.ComponentCount, result.Stats.OutputBytes, result.CacheInfo.GenerateHit)

	if opts.useAssist {
		if err := c.runAssist(ctx, result, opts.prompt); err != nil {
			printWarning("assist request failed: %s", err)
		}
	}
	return nil
}

// runAssist sends the placed components to the assist service and prints
// the raw response. Failures don't fail the generate command; markup has
// already been written.
func (c *CLI) runAssist(ctx context.Context, result *pipeline.Result, prompt string) error {
	client, err := c.newAssistClient()
	if err != nil {
		return err
	}
	if client == nil {
		return fmt.Errorf("no assist endpoint configured (set assist.endpoint in config.toml)")
	}

	store, err := result.Document.ToStore()
	if err != nil {
		return err
	}

	spinner := newSpinner("Asking assist service...")
	spinner.Start()
	resp, err := client.Suggest(ctx, assist.Request{
		Prompt:     prompt,
		Components: assist.FromPlaced(store.Components()),
	}, false)
	if err != nil {
		spinner.StopWithError("Assist request failed")
		return err
	}
	spinner.StopWithSuccess("Assist response received")

	var pretty map[string]any
	if err := json.Unmarshal(resp, &pretty); err == nil {
		out, _ := json.MarshalIndent(pretty, "", "  ")
		fmt.Println(string(out))
	} else {
		fmt.Println(string(resp))
	}
	return nil
}
