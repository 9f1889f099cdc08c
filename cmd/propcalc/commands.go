package main

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"propcalc/domain"
)

type compareInput struct {
	Current   domain.CurrentPropertyInputs `yaml:"current"`
	Candidate domain.NewPropertyInputs     `yaml:"candidate"`
}

type screenInput struct {
	Candidate  domain.NewPropertyInputs    `yaml:"candidate"`
	Thresholds *domain.ScreeningThresholds `yaml:"thresholds"`
}

func newDebtCmd(a *app) *cobra.Command {
	var (
		convention string
		schedule   bool
	)
	cmd := &cobra.Command{
		Use:   "debt <file>",
		Short: "Price a mortgage",
		Long: `Price a mortgage from a file holding principal, annualRatePercent,
amortizationYears, paymentFrequency and termYears.

Examples:
  propcalc debt mortgage.yaml
  propcalc debt mortgage.yaml --convention simple --schedule`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in domain.MortgageInputs
			if err := readInput(cmd, args[0], &in); err != nil {
				return err
			}
			if schedule {
				rows, err := a.calculator.Schedule(cmdContext(cmd), in, convention)
				if err != nil {
					return err
				}
				return writeResult(cmd, rows)
			}
			res, err := a.calculator.DebtService(cmdContext(cmd), in, convention)
			if err != nil {
				return err
			}
			return writeResult(cmd, res)
		},
	}
	cmd.Flags().StringVar(&convention, "convention", "semi-annual", "rate convention: semi-annual or simple")
	cmd.Flags().BoolVar(&schedule, "schedule", false, "print every payment instead of totals")
	return cmd
}

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <file>",
		Short: "Compare the current property with a candidate",
		Long: `Compare the current property with a candidate purchase. The file holds
a "current" and a "candidate" record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in compareInput
			if err := readInput(cmd, args[0], &in); err != nil {
				return err
			}
			res, err := a.calculator.Compare(cmdContext(cmd), in.Current, in.Candidate)
			if err != nil {
				return err
			}
			return writeResult(cmd, res)
		},
	}
}

func newScreenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "screen <file>",
		Short: "Check a candidate against investment thresholds",
		Long: `Check a candidate against investment thresholds. The file holds a
"candidate" record and optional "thresholds"; the default thresholds
apply when they are missing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in screenInput
			if err := readInput(cmd, args[0], &in); err != nil {
				return err
			}
			thresholds := a.defaults.Screening
			if in.Thresholds != nil {
				thresholds = *in.Thresholds
			}
			res, err := a.calculator.Screen(cmdContext(cmd), in.Candidate, thresholds)
			if err != nil {
				return err
			}
			return writeResult(cmd, res)
		},
	}
}

func newDecideCmd(a *app) *cobra.Command {
	var summary bool
	cmd := &cobra.Command{
		Use:   "decide <file>",
		Short: "Run the keep-vs-sell simulation",
		Long: `Run the year-by-year keep-vs-sell simulation up to the planning age.

Examples:
  propcalc decide retiree.yaml
  propcalc decide retiree.yaml --summary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in domain.DecisionInputs
			if err := readInput(cmd, args[0], &in); err != nil {
				return err
			}
			res, err := a.calculator.Decide(cmdContext(cmd), in)
			if err != nil {
				return err
			}
			if summary {
				fmt.Fprintln(cmd.OutOrStdout(), summarize(res))
				return nil
			}
			return writeResult(cmd, res)
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "print a one-line recommendation")
	return cmd
}

func newExtractCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file>",
		Short: "Pull candidate figures out of a saved listing page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer r.Close()

			res, err := a.listings.Extract(cmdContext(cmd), r)
			if err != nil {
				return err
			}
			return writeResult(cmd, res)
		},
	}
}

// summarize renders "YES at 90: keep 19,234,567 vs sell 19,876,543. <reason>".
func summarize(res domain.DecisionResult) string {
	return fmt.Sprintf("%s at %d: keep %s vs sell %s. %s",
		res.Decision,
		res.PlanningAge,
		money(res.CurrentAtPlanning),
		money(res.NewAtPlanning),
		res.DecisionReason,
	)
}

// money formats v rounded to whole units with thousands separators.
// Non-finite values print as 0.
func money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	s := decimal.NewFromFloat(v).Round(0).String()
	neg := len(s) > 0 && s[0] == '-'
	if neg {
		s = s[1:]
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
