package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"propcalc/config"
	"propcalc/observability"
	"propcalc/service"
)

// app is the state shared by every subcommand.
type app struct {
	verbose      bool
	showDefaults bool
	defaultsFile string

	defaults   *config.Defaults
	calculator *service.CalculatorService
	listings   *service.ListingExtractor
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "propcalc",
		Short: "Keep-vs-sell and rental property calculators",
		Long: `propcalc runs the mortgage, property comparison and keep-vs-sell
calculators on YAML or JSON input files and prints the result as JSON.

Use "-" as the file to read from standard input.

Examples:
  propcalc debt mortgage.yaml
  propcalc compare --defaults > swap.yaml
  propcalc decide retiree.json --summary`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.showDefaults {
				return a.printDefaults(cmd.OutOrStdout())
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log calculations to stderr")
	root.PersistentFlags().StringVar(&a.defaultsFile, "defaults-file", "", "YAML file replacing the built-in default inputs")
	root.Flags().BoolVar(&a.showDefaults, "defaults", false, "print the default input records as YAML")

	root.AddCommand(
		newDebtCmd(a),
		newCompareCmd(a),
		newScreenCmd(a),
		newDecideCmd(a),
		newExtractCmd(a),
	)
	return root
}

func (a *app) init() error {
	defaults, err := config.LoadDefaults(a.defaultsFile)
	if err != nil {
		return fmt.Errorf("load defaults: %w", err)
	}
	a.defaults = defaults

	logger := zap.NewNop()
	if a.verbose {
		logger = observability.NewLogger("debug")
	}
	metrics := observability.NewMetrics()
	a.calculator = service.NewCalculatorService(metrics, logger)
	a.listings = service.NewListingExtractor(metrics, logger)
	return nil
}

func (a *app) printDefaults(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(a.defaults); err != nil {
		return fmt.Errorf("encode defaults: %w", err)
	}
	return enc.Close()
}

// openInput opens path, or stdin for "-".
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

// readInput decodes a YAML or JSON document into v. JSON parses as YAML,
// and the domain records carry matching tags for both.
func readInput(cmd *cobra.Command, path string, v any) error {
	r, err := openInput(cmd, path)
	if err != nil {
		return err
	}
	defer r.Close()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeResult(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
