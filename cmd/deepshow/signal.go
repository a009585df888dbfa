package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/deepshow/internal/analysis"
	"github.com/san-kum/deepshow/internal/control"
	"github.com/san-kum/deepshow/internal/export"
	"github.com/san-kum/deepshow/internal/optim"
	"github.com/san-kum/deepshow/internal/sim"
	"github.com/san-kum/deepshow/internal/storage"
	"github.com/san-kum/deepshow/internal/viz"
)

var (
	signalJSON     string
	signalSVG      string
	signalTarget   float64
	signalDuration float64

	tuneMetric string
	tuneSteps  int
)

func newSignalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signal",
		Short: "simulate PID and predictive control of the booster pump",
		Long: "Signal runs the booster pump model under a tuned PID loop and the\n" +
			"predictive controller side by side and compares their pressure traces.",
		RunE: runSignal,
	}
	cmd.Flags().StringVar(&signalJSON, "json", "", "write both traces as JSON to this path")
	cmd.Flags().StringVar(&signalSVG, "svg", "", "write the comparison chart as SVG to this path")
	cmd.PersistentFlags().Float64Var(&signalTarget, "target", 0.4, "pressure set point (MPa)")
	cmd.PersistentFlags().Float64Var(&signalDuration, "duration", 60, "simulated seconds")

	tune := &cobra.Command{
		Use:   "tune",
		Short: "grid search PID gains on the booster model",
		RunE:  runTune,
	}
	tune.Flags().StringVar(&tuneMetric, "metric", "iae", "metric to minimise (iae, overshoot, settling, effort)")
	tune.Flags().IntVar(&tuneSteps, "steps", 5, "grid points per gain")
	cmd.AddCommand(tune)
	return cmd
}

// signalConfig applies the shared signal flags and returns the simulation
// settings.
func signalConfig(cmd *cobra.Command) (sim.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("target") {
		cfg.Signal.Target = signalTarget
	}
	if flags.Changed("duration") {
		cfg.Signal.Duration = signalDuration
	}
	if err := cfg.Validate(); err != nil {
		return sim.Config{}, err
	}
	simCfg := sim.DefaultConfig()
	simCfg.Dt = cfg.Signal.Dt
	simCfg.Duration = cfg.Signal.Duration
	return simCfg, nil
}

func runSignal(cmd *cobra.Command, args []string) error {
	simCfg, err := signalConfig(cmd)
	if err != nil {
		return err
	}
	sc := cfg.Signal

	pidPlant, mpcPlant := sim.NewBooster(), sim.NewBooster()
	mpc := control.NewPredictive(mpcPlant.Model(), sc.Target, sc.Dt)
	mpc.Horizon = sc.Horizon
	mpc.Lambda = sc.Lambda

	names := []string{"pid", "mpc"}
	results, err := sim.RunAll(cmd.Context(), sim.State{0.2, 0}, simCfg,
		sim.New(pidPlant, sim.NewRK4(), control.NewPID(sc.Kp, sc.Ki, sc.Kd, sc.Target)).WithLoopMetrics(sc.Target),
		sim.New(mpcPlant, sim.NewRK4(), mpc).WithLoopMetrics(sc.Target),
	)
	if err != nil {
		return err
	}
	for i, r := range results {
		for _, e := range r.Errors {
			log.Warn().Err(e).Str("controller", names[i]).Msg("simulation issue")
		}
	}

	fmt.Println(viz.Plot(fmt.Sprintf("outlet pressure (MPa), target %.2f", sc.Target), 80, 12,
		viz.Series{Name: "PID", Data: results[0].Pressure, Color: asciigraph.Red},
		viz.Series{Name: "MPC", Data: results[1].Pressure, Color: asciigraph.Green},
	))
	fmt.Println()

	metricNames := make([]string, 0, len(results[0].Metrics))
	for name := range results[0].Metrics {
		metricNames = append(metricNames, name)
	}
	sort.Strings(metricNames)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tPID\tMPC")
	for _, name := range metricNames {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\n", name, results[0].Metrics[name], results[1].Metrics[name])
	}
	fmt.Fprint(w, "hunting")
	for _, r := range results {
		period := "-"
		if osc, ok := analysis.Dominant(r.Pressure, sc.Dt); ok && osc.Share > huntingShare {
			period = fmt.Sprintf("%.1fs", osc.Period)
		}
		fmt.Fprint(w, "\t"+period)
	}
	fmt.Fprintln(w)
	if err := w.Flush(); err != nil {
		return err
	}

	if signalJSON != "" {
		exports := make([]storage.SignalExport, len(results))
		for i, r := range results {
			exports[i] = storage.NewSignalExport(names[i], sc.Target, simCfg, r)
		}
		if err := storage.ExportSignal(signalJSON, exports...); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", signalJSON)
	}

	if signalSVG != "" {
		target := make([]float64, len(results[0].Times))
		for i := range target {
			target[i] = sc.Target
		}
		svg := export.SignalSVG(900, 400,
			export.Trace{Times: results[0].Times, Values: target, Color: "#64748b"},
			export.Trace{Times: results[0].Times, Values: results[0].Pressure, Color: "#ff4444"},
			export.Trace{Times: results[1].Times, Values: results[1].Pressure, Color: "#00ff88"},
		)
		if err := os.WriteFile(signalSVG, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", signalSVG)
	}
	return nil
}

// A spectral peak holding more than this share of the spectrum counts as
// hunting.
const huntingShare = 0.05

func runTune(cmd *cobra.Command, args []string) error {
	simCfg, err := signalConfig(cmd)
	if err != nil {
		return err
	}
	sc := cfg.Signal
	n := max(tuneSteps, 1)

	fmt.Printf("tuning PID on %d grid points for %s (target %.2f MPa, %.0fs)\n",
		n*n*n, tuneMetric, sc.Target, sc.Duration)

	res, err := optim.TunePID(cmd.Context(), sim.State{0.2, 0}, simCfg, sc.Target, tuneMetric,
		optim.Span(sc.Kp/4, sc.Kp*2, n),
		optim.Span(0, sc.Ki*2, n),
		optim.Span(0, sc.Kd*4, n),
	)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tKP\tKI\tKD")
	fmt.Fprintf(w, "config\t%.3f\t%.3f\t%.3f\n", sc.Kp, sc.Ki, sc.Kd)
	fmt.Fprintf(w, "best\t%.3f\t%.3f\t%.3f\n", res.Kp, res.Ki, res.Kd)
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%s = %.4f after %d runs\n", res.Metric, res.Score, res.Evaluated)
	return nil
}
