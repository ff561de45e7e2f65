package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/circuitgen/pkg/pipeline"
)

// generateCommand creates the generate command for building schematics.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		tablePath   string
		formats     string
		output      string
		noCache     bool
		interactive bool
		offset      offsetValue
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "generate [decoder...]",
		Short: "Build decoder schematics",
		Long: `Build decoder schematics.

Each named decoder is routed and written to <output>/rvc/rvc_<name>.<format>.
With no names every decoder in the table is built. Use -i to pick decoders
interactively.

Results are cached locally for faster subsequent runs.`,
		ValidArgsFunction: completeDecoders,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formats)
			opts.Offset = offset
			return c.runGenerate(cmd.Context(), tablePath, args, interactive, output, opts, noCache)
		},
	}

	addTableFlag(cmd.Flags(), &tablePath)
	cmd.Flags().StringVarP(&output, "output", "o", ".", "output root directory")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): schem (default), nbt, json, cbor, dot, svg (comma-separated)")
	cmd.Flags().Var(&offset, "offset", "paste offset written into schematics")
	cmd.Flags().BoolVar(&opts.Constants, "constants", false, "show constant sources in plan diagrams")
	cmd.Flags().IntVarP(&opts.Workers, "jobs", "j", 0, "decoders built in parallel (default: number of CPUs)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick decoders interactively")

	return cmd
}

// runGenerate builds the selected decoders and writes their artifacts.
func (c *CLI) runGenerate(ctx context.Context, tablePath string, names []string, interactive bool, output string, opts pipeline.Options, noCache bool) error {
	logger := loggerFromContext(ctx)

	table, err := loadTable(tablePath)
	if err != nil {
		return err
	}

	if interactive {
		if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
			return fmt.Errorf("interactive mode needs a terminal")
		}
		names, err = pickDecoders(table)
		if err != nil {
			return fmt.Errorf("pick decoders: %w", err)
		}
		if len(names) == 0 {
			printInfo("Nothing selected")
			return nil
		}
	}

	if opts.Offset != ([3]int{}) && !hasSchematicFormat(opts.Formats) {
		printWarning("--offset only applies to schem and nbt output")
	}

	ds, err := table.Select(names...)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = logger

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Building %d decoder(s)...", len(ds)))
	spinner.Start()

	results, err := runner.BuildAll(ctx, ds, opts)
	if spinner.Cancelled() {
		spinner.Stop()
		return ctx.Err()
	}
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Routed %d decoder(s)", len(results)))

	files := 0
	for _, res := range results {
		paths, err := pipeline.WriteArtifacts(output, res)
		if err != nil {
			return err
		}
		printSuccess("%s", res.Decoder)
		for _, p := range paths {
			printFile(p)
		}
		printStats(res.Report, res.CacheHit)
		files += len(paths)
	}
	prog.done(fmt.Sprintf("Wrote %d file(s)", files))

	if len(results) == 1 {
		if _, ok := results[0].Artifacts[pipeline.FormatSchem]; ok {
			printNewline()
			printNextStep("Inspect", appName+" inspect "+pipeline.OutputPath(output, results[0].Decoder, pipeline.FormatSchem))
		}
	}
	return nil
}

// completeDecoders completes decoder names from the built-in table.
func completeDecoders(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return decoderNames(), cobra.ShellCompDirectiveNoFileComp
}

// hasSchematicFormat reports whether formats includes a schematic encoding.
func hasSchematicFormat(formats []string) bool {
	for _, f := range formats {
		if f == pipeline.FormatSchem || f == pipeline.FormatNBT {
			return true
		}
	}
	return false
}
