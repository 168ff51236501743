package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/dsoppit/wavesim/internal/config"
	"github.com/dsoppit/wavesim/internal/export"
	"github.com/dsoppit/wavesim/internal/metrics"
	"github.com/dsoppit/wavesim/internal/sim"
	"github.com/dsoppit/wavesim/internal/store"
	"github.com/dsoppit/wavesim/internal/viz"
)

var (
	dataDir    string
	lx         float64
	ly         float64
	dx         float64
	dy         float64
	nStop      int
	wavelength float64
	pulseWidth float64
	t0         float64
	waveSpeed  float64
	boundary   string
	sourceIX   int
	sourceIY   int
	configFile string
	preset     string
	frameRate  int
	outFile    string
	chartScale float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wavesim",
		Short: "2D wave equation FDTD simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".wavesim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation and store the result",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live terminal visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's energy and peak series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export frame series to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and frames to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return store.New(dataDir).ExportJSONStdout(args[0])
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the final field as an SVG heatmap",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().Float64Var(&chartScale, "scale", 4, "cell size in pixels")

	exportChartCmd := &cobra.Command{
		Use:   "export-chart [run_id]",
		Short: "export the energy series as a PNG chart",
		Args:  cobra.ExactArgs(1),
		RunE:  exportChart,
	}
	exportChartCmd.Flags().StringVarP(&outFile, "out", "o", "energy.png", "output file")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark grid sizes and step counts",
		RunE:  benchGrids,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, p := range names {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, exportChartCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&lx, "lx", config.DefaultLx, "domain length in x (m)")
	cmd.Flags().Float64Var(&ly, "ly", config.DefaultLy, "domain length in y (m)")
	cmd.Flags().Float64Var(&dx, "dx", config.DefaultDx, "cell size in x (m)")
	cmd.Flags().Float64Var(&dy, "dy", config.DefaultDy, "cell size in y (m)")
	cmd.Flags().IntVar(&nStop, "steps", config.DefaultNStop, "number of time steps")
	cmd.Flags().Float64Var(&wavelength, "wavelength", config.DefaultWavelength, "source wavelength (m)")
	cmd.Flags().Float64Var(&pulseWidth, "pulse-width", config.DefaultPulseWidth, "source pulse width (s)")
	cmd.Flags().Float64Var(&t0, "t0", config.DefaultT0, "pulse center time (s)")
	cmd.Flags().Float64Var(&waveSpeed, "c", 299792458, "wave speed (m/s)")
	cmd.Flags().StringVar(&boundary, "boundary", "mur", "boundary condition (mur, reflecting)")
	cmd.Flags().IntVar(&sourceIX, "source-ix", -1, "literal source grid index in x (-1 = center)")
	cmd.Flags().IntVar(&sourceIY, "source-iy", -1, "literal source grid index in y (-1 = center)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves the effective configuration: preset first, then
// config file, then explicit CLI flags on top.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("lx") {
		cfg.Lx = lx
	}
	if cmd.Flags().Changed("ly") {
		cfg.Ly = ly
	}
	if cmd.Flags().Changed("dx") {
		cfg.Dx = dx
	}
	if cmd.Flags().Changed("dy") {
		cfg.Dy = dy
	}
	if cmd.Flags().Changed("steps") {
		cfg.NStop = nStop
	}
	if cmd.Flags().Changed("wavelength") {
		cfg.Wavelength = wavelength
	}
	if cmd.Flags().Changed("pulse-width") {
		cfg.PulseWidth = pulseWidth
	}
	if cmd.Flags().Changed("t0") {
		cfg.T0 = t0
	}
	if cmd.Flags().Changed("c") {
		cfg.WaveSpeed = waveSpeed
	}
	if cmd.Flags().Changed("boundary") {
		cfg.Boundary = boundary
	}
	if cmd.Flags().Changed("source-ix") {
		cfg.Source.IX = sourceIX
		cfg.Source.Centered = false
	}
	if cmd.Flags().Changed("source-iy") {
		cfg.Source.IY = sourceIY
		cfg.Source.Centered = false
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	integ, err := cfg.BuildIntegrator()
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.New(integ)
	runner.AddMetric(metrics.NewEnergy())
	runner.AddMetric(metrics.NewPeakAmplitude())

	g := integ.Grid()
	fmt.Printf("running %dx%d grid, %d steps, dt=%.3e s, boundary=%s...\n",
		g.Nx, g.Ny, integ.NSteps(), g.Dt, integ.Boundary())
	start := time.Now()

	result, err := runner.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(integ, result.Metrics)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6e\n", name, result.Metrics[name])
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	integ, err := cfg.BuildIntegrator()
	if err != nil {
		return err
	}

	m := viz.NewModel(integ, frameRate)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
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
	fmt.Fprintln(w, "ID\tTIME\tGRID\tSTEPS\tBOUNDARY\tENERGY")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%s\t%.3e\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Nx, run.Ny,
			run.NStop,
			run.Boundary,
			run.Metrics["energy"],
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
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d, %d steps, boundary=%s\n\n", meta.Nx, meta.Ny, meta.NStop, meta.Boundary)

	energy := make([]float64, len(frames))
	peak := make([]float64, len(frames))
	for i, f := range frames {
		energy[i] = f.Energy
		peak[i] = f.Peak
	}

	fmt.Println(asciigraph.Plot(energy,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("field energy vs step"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(peak,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("peak |u| vs step"),
	))

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	frames, err := store.New(dataDir).LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"step", "time", "energy", "peak"}); err != nil {
		return err
	}
	for _, f := range frames {
		row := []string{
			strconv.Itoa(f.Step),
			strconv.FormatFloat(f.Time, 'e', 9, 64),
			strconv.FormatFloat(f.Energy, 'e', 9, 64),
			strconv.FormatFloat(f.Peak, 'e', 9, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	field, nx, ny, err := store.New(dataDir).LoadField(runID)
	if err != nil {
		return err
	}

	svg := export.FieldToSVG(field, nx, ny, chartScale)
	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(outFile, []byte(svg), 0644)
}

func exportChart(cmd *cobra.Command, args []string) error {
	runID := args[0]

	frames, err := store.New(dataDir).LoadFrames(runID)
	if err != nil {
		return err
	}

	times := make([]float64, len(frames))
	energy := make([]float64, len(frames))
	for i, f := range frames {
		times[i] = f.Time
		energy[i] = f.Energy
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.EnergyChartPNG(times, energy, f); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func benchGrids(cmd *cobra.Command, args []string) error {
	cells := []float64{0.48e-6, 0.24e-6, 0.12e-6}
	stepCounts := []int{25, 50, 100}

	fmt.Println("benchmarking FDTD step throughput")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tSTEPS\tTIME\tSTEPS/SEC")

	for _, cell := range cells {
		for _, steps := range stepCounts {
			cfg := config.DefaultConfig()
			cfg.Dx = cell
			cfg.Dy = cell
			cfg.NStop = steps

			integ, err := cfg.BuildIntegrator()
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := sim.New(integ).Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			g := integ.Grid()
			fmt.Fprintf(w, "%dx%d\t%d\t%v\t%.0f\n",
				g.Nx, g.Ny, result.StepsTaken, elapsed,
				float64(result.StepsTaken)/elapsed.Seconds())
		}
	}

	return w.Flush()
}
