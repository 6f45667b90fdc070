package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/engine"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"
)

// readInput reads a file argument, or stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize FILE",
		Short: "Normalise and tag a JSON array of component records",
		Long: `Canonicalise socket, memory and form-factor spellings, fill in missing
objectIDs and performance tiers, and generate compatibility tags. The
normalised records are printed as JSON; rejected records are reported on
stderr.

Examples:
  catalogctl normalize raw.json > clean.json
  cat raw.json | catalogctl normalize -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			var records []json.RawMessage
			if err := json.Unmarshal(data, &records); err != nil {
				return fmt.Errorf("expected a JSON array: %w", err)
			}

			out := make([]entity.Component, 0, len(records))
			for i, raw := range records {
				c, err := entity.DecodeComponent(raw)
				if err != nil {
					printWarning(cmd.ErrOrStderr(), fmt.Sprintf("record %d skipped: %v", i+1, err))
					continue
				}
				engine.NormalizeComponent(c)
				out = append(out, c)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a build for compatibility problems and size its power supply",
		Long: `Read a build ({"cpu": {...}, "motherboard": {...}, ...}) and report
compatibility issues, search filters and the power analysis. Exits non-zero
when the build has error-level issues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			var b entity.Build
			if err := json.Unmarshal(data, &b); err != nil {
				return fmt.Errorf("invalid build: %w", err)
			}

			d := engine.Derive(b)
			if oc, _ := cmd.Flags().GetBool("overclocking"); oc && b.CPU != nil {
				d.Power, _ = engine.AnalyzeBuildPower(b, true)
			}

			if ok, err := tryJSON(cmd, d); ok {
				if err != nil {
					return err
				}
			} else {
				renderDerived(cmd.OutOrStdout(), d)
			}

			if n := len(d.Validation.Errors()); n > 0 {
				return fmt.Errorf("build has %d compatibility error(s)", n)
			}
			return nil
		},
	}
	cmd.Flags().Bool("overclocking", false, "Reserve overclocking headroom in the power analysis")
	return cmd
}

func renderDerived(w io.Writer, d engine.Derived) {
	fmt.Fprintln(w, titleStyle.Render("Compatibility"))
	if len(d.Validation.Issues) == 0 {
		printSuccess(w, "No issues")
	}
	for _, is := range d.Validation.Issues {
		msg := fmt.Sprintf("%s  %s", is.Code, is.Message)
		if is.Suggestion != "" {
			msg += dimStyle.Render("  (" + is.Suggestion + ")")
		}
		if is.Type == entity.SeverityError {
			printError(w, msg)
		} else {
			printWarning(w, msg)
		}
	}
	if len(d.Missing) > 0 {
		names := make([]string, len(d.Missing))
		for i, k := range d.Missing {
			names[i] = k.String()
		}
		fmt.Fprintln(w, dimStyle.Render("Missing: "+strings.Join(names, ", ")))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Power"))
	if d.Power == nil {
		fmt.Fprintln(w, dimStyle.Render("Select a CPU to size the power supply"))
		return
	}
	renderPower(w, d.Power)
}

func renderPower(w io.Writer, p *engine.PowerAnalysis) {
	b := p.Breakdown
	renderTable(w, []string{"SOURCE", "WATTS"}, [][]string{
		{"CPU", fmt.Sprintf("%.0f", b.CPUPower)},
		{"GPU", fmt.Sprintf("%.0f", b.GPUPower)},
		{"Base", fmt.Sprintf("%.0f", b.BasePower)},
		{"Transient", fmt.Sprintf("%.0f", b.TransientBuffer)},
		{"Overclock", fmt.Sprintf("%.0f", b.OverclockBuffer)},
		{"Total draw", fmt.Sprintf("%.0f", b.TotalDraw)},
	})
	fmt.Fprintf(w, "Recommended: %dW (%s tier, %s)\n", p.RecommendedWattage, p.RecommendedTier, p.EfficiencyAtLoad)
	for _, n := range p.Notes {
		printWarning(w, n)
	}
}

func newPowerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "power",
		Short: "Size a power supply from CPU and GPU draw",
		Long: `Examples:
  catalogctl power --cpu-tdp 105 --gpu-tdp 350
  catalogctl power --cpu-tdp 65 --cpu-max-tdp 117 --overclocking --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			in := engine.PowerInput{}
			if flags.Changed("cpu-tdp") {
				tdp, _ := flags.GetFloat64("cpu-tdp")
				in.CPU = &engine.CPUDraw{TDPWatts: tdp}
				if flags.Changed("cpu-max-tdp") {
					maxTDP, _ := flags.GetFloat64("cpu-max-tdp")
					in.CPU.MaxTDPWatts = &maxTDP
				}
			}
			if flags.Changed("gpu-tdp") {
				tdp, _ := flags.GetFloat64("gpu-tdp")
				in.GPU = &engine.GPUDraw{TDPWatts: tdp}
			}
			in.Overclocking, _ = flags.GetBool("overclocking")

			analysis, err := engine.CalculatePower(in)
			if err != nil {
				return err
			}
			if ok, err := tryJSON(cmd, analysis); ok {
				return err
			}
			renderPower(cmd.OutOrStdout(), analysis)
			return nil
		},
	}
	cmd.Flags().Float64("cpu-tdp", 0, "CPU rated TDP in watts (required)")
	cmd.Flags().Float64("cpu-max-tdp", 0, "CPU maximum turbo power in watts")
	cmd.Flags().Float64("gpu-tdp", 0, "GPU board power in watts")
	cmd.Flags().Bool("overclocking", false, "Reserve overclocking headroom")
	return cmd
}
