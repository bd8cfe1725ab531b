package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sondreal/liftline/internal/config"
	"github.com/sondreal/liftline/internal/sim"
	"github.com/sondreal/liftline/internal/store"
	"github.com/sondreal/liftline/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	duration   float64
	runName    string
	wakeFormat string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "liftline",
		Short: "lifting line sail aerodynamics lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".liftline", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration override")
	runCmd.Flags().StringVar(&runName, "name", "run", "run name")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live visualization",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	liveCmd.Flags().Float64Var(&duration, "time", 0, "duration override")
	liveCmd.Flags().StringVar(&runName, "name", "live", "run name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	wakeCmd := &cobra.Command{
		Use:   "wake [output_path]",
		Short: "run a simulation and export the final wake geometry",
		Args:  cobra.ExactArgs(1),
		RunE:  exportWake,
	}
	wakeCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	wakeCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	wakeCmd.Flags().Float64Var(&duration, "time", 0, "duration override")
	wakeCmd.Flags().StringVar(&wakeFormat, "format", "obj", "output format: obj or vtk")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, wakeCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if dt > 0 {
		cfg.Dt = dt
	}
	if duration > 0 {
		cfg.Duration = duration
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	simulation, err := cfg.BuildSimulation()
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s for %d steps...\n", runName, cfg.NrSteps())
	start := time.Now()

	hist := &store.History{}
	results, err := simulation.Run(context.Background(), cfg.NrSteps(), hist.Record)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("nothing to run: %d steps", cfg.NrSteps())
	}
	elapsed := time.Since(start)

	runID, err := st.Save(runName, cfg.Wake.Type, cfg.Dt, len(cfg.Wings), hist)
	if err != nil {
		return err
	}

	last := results[len(results)-1]
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n\n", runID)

	summary := viz.RunSummary{
		Name:       runName,
		Steps:      len(results),
		Duration:   last.Time,
		TotalForce: last.TotalForce,
		Residual:   last.Solver.Residual,
		Iterations: last.Solver.Iterations,
		Converged:  last.Solver.Converged,
	}
	fmt.Println(summary.Render())
	fmt.Println(viz.SpanwisePlot(last.Solver.Circulation, "circulation along the span"))

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	simulation, err := cfg.BuildSimulation()
	if err != nil {
		return err
	}

	model := viz.NewLiveModel(simulation, runName, cfg.NrSteps())
	program := tea.NewProgram(model)
	_, err = program.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tSTEPS\tDT\tWAKE\tCONVERGED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%s\t%t\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.WakeType,
			run.Converged,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, forces, residuals, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n", len(times))

	magnitudes := make([]float64, len(forces))
	for i, f := range forces {
		magnitudes[i] = f.Length()
	}
	fmt.Println(viz.SeriesPlot(magnitudes, "total force [N]"))
	fmt.Println(viz.SeriesPlot(residuals, "solver residual"))
	if len(meta.FinalCirculation) > 1 {
		fmt.Println(viz.SpanwisePlot(meta.FinalCirculation, "final circulation along the span"))
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportWake(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	simulation, err := cfg.BuildSimulation()
	if err != nil {
		return err
	}

	var last sim.StepResult
	_, err = simulation.Run(context.Background(), cfg.NrSteps(), func(r sim.StepResult) { last = r })
	if err != nil {
		return err
	}

	switch wakeFormat {
	case "obj":
		err = simulation.Wake.ExportOBJFile(args[0])
	case "vtk":
		err = simulation.Wake.ExportVTKFile(args[0])
	default:
		return fmt.Errorf("unknown format: %s", wakeFormat)
	}
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s after %d steps\n", args[0], last.Step+1)
	return nil
}
