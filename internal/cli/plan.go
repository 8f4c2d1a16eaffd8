package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/nirmanlabs/nirman/internal/config"
	"github.com/nirmanlabs/nirman/pkg/format"
	"github.com/nirmanlabs/nirman/pkg/pipeline"
	"github.com/nirmanlabs/nirman/pkg/plan"
)

// newPlanCmd creates the plan command: run the full pipeline for a
// spec file and print the result.
func newPlanCmd(configPath *string) *cobra.Command {
	var (
		strategy string
		refresh  bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "plan [spec.toml]",
		Short: "Estimate and lay out a construction project",
		Long: `Plan runs the full planning pipeline for a project spec: workforce,
cost breakdown, materials, construction schedule, and the architectural
blueprint. Without a spec file it plans the built-in default project.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			spec := plan.DefaultSpec()
			if len(args) == 1 {
				if spec, err = loadSpec(args[0]); err != nil {
					return err
				}
			}

			store, err := cfg.OpenCache(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			assistClient, err := cfg.AssistClient(logger)
			if err != nil {
				return err
			}

			if strategy == "" {
				strategy = cfg.Layout.Strategy
			}

			runner := pipeline.NewRunner(store, nil, logger)

			spinner := newSpinnerWithContext(ctx, "Planning "+spec.Name+"...")
			if !asJSON {
				spinner.Start()
			}
			prog := newProgress(logger)
			result, err := runner.Execute(ctx, pipeline.Options{
				Spec:        spec,
				Strategy:    strategy,
				AspectRatio: cfg.Layout.AspectRatio,
				Refresh:     refresh,
				Assist:      assistClient,
				Logger:      logger,
			})
			if !asJSON {
				spinner.Stop()
			}
			if err != nil {
				return err
			}
			prog.done("plan generated")

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			printResult(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "corridor strategy: edge or center")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and recompute")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw result as JSON")
	return cmd
}

// loadSpec reads a project spec from a TOML file.
func loadSpec(path string) (plan.ProjectSpec, error) {
	spec := plan.DefaultSpec()
	data, err := os.ReadFile(path)
	if err != nil {
		return plan.ProjectSpec{}, err
	}
	if err := toml.Unmarshal(data, &spec); err != nil {
		return plan.ProjectSpec{}, fmt.Errorf("parse spec %s: %w", path, err)
	}
	return spec, nil
}

// ============================================================================
// Output
// ============================================================================

func printResult(r *pipeline.Result) {
	printTitle(r.Spec.Name)
	printKeyValue("Plan ID", r.PlanID)
	printKeyValue("Total area", fmt.Sprintf("%.0f sqft across %d floors", r.Spec.TotalArea(), r.Spec.Floors))
	printKeyValue("Timeline", fmt.Sprintf("%d months", r.Spec.MonthsToBuild))
	printCacheStatus(r.CacheInfo.Hit)

	printCosts(r)
	printWorkers(r)
	printMaterials(r)
	printSchedule(r)
	printBlueprint(r)
	printAnalysis(r)
}

func printCosts(r *pipeline.Result) {
	printTitle("Cost Breakdown")
	t := newTable("Head", "Amount")
	t.Row("Material", format.INR(r.Costs.Material))
	t.Row("Labour", format.INR(r.Costs.Labour))
	t.Row("Overhead", format.INR(r.Costs.Overhead))
	t.Row("Contingency", format.INR(r.Costs.Contingency))
	t.Row("Total", format.INR(r.Costs.Total))
	t.Row("Per sqft", format.INR(r.Costs.PerSqft))
	fmt.Println(t)
}

func printWorkers(r *pipeline.Result) {
	printTitle("Workforce")
	t := newTable("Trade", "Count")
	t.Row("Masons", strconv.Itoa(r.Workers.Masons))
	t.Row("Helpers", strconv.Itoa(r.Workers.Helpers))
	t.Row("Carpenters", strconv.Itoa(r.Workers.Carpenters))
	t.Row("Steel workers", strconv.Itoa(r.Workers.SteelWorkers))
	t.Row("Plumbers", strconv.Itoa(r.Workers.Plumbers))
	t.Row("Electricians", strconv.Itoa(r.Workers.Electricians))
	t.Row("Painters", strconv.Itoa(r.Workers.Painters))
	t.Row("Total", strconv.Itoa(r.Workers.Total))
	fmt.Println(t)
}

func printMaterials(r *pipeline.Result) {
	printTitle("Materials")
	t := newTable("Material", "Quantity", "Unit", "Cost")
	for _, m := range r.Materials {
		t.Row(m.Name, format.Number(float64(m.Quantity)), m.Unit, format.INR(m.Total))
	}
	fmt.Println(t)
}

func printSchedule(r *pipeline.Result) {
	printTitle("Schedule")
	t := newTable("Phase", "Weeks", "Duration")
	for _, p := range r.Timeline {
		t.Row(p.Name, fmt.Sprintf("%d-%d", p.StartWeek, p.EndWeek), fmt.Sprintf("%dw", p.Duration))
	}
	fmt.Println(t)
}

func printBlueprint(r *pipeline.Result) {
	bp := r.Blueprint
	printTitle("Blueprint")
	printKeyValue("Footprint", fmt.Sprintf("%.1fft x %.1fft", bp.Envelope.Width, bp.Envelope.Depth))
	printKeyValue("Source", bp.Source)
	printKeyValue("Overview", bp.Overview)

	t := newTable("Component", "Count")
	for _, c := range bp.Components {
		t.Row(c.Component, strconv.Itoa(c.Count))
	}
	fmt.Println(t)
}

func printAnalysis(r *pipeline.Result) {
	a := r.Analysis
	printTitle("Analysis")
	fmt.Println(StyleValue.Render(a.Summary))

	printTitle("Risks")
	for _, risk := range a.Risks {
		printInfo("%s", risk)
	}

	printTitle("Recommendations")
	for _, rec := range a.Recommendations {
		printInfo("%s", rec)
	}

	if a.HindiSummary != "" {
		printTitle("सारांश")
		fmt.Println(StyleDim.Render(a.HindiSummary))
	}
}
