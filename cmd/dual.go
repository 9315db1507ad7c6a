/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	perf "github.com/hodgesds/perf-utils"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/notargets/incomflow/InputParameters"
	"github.com/notargets/incomflow/dualgrid"
	"github.com/notargets/incomflow/mesh"
	"github.com/notargets/incomflow/readfiles"
	"github.com/notargets/incomflow/utils"
)

type DualOptions struct {
	GridFiles []string
	ICFile    string
	Graph     bool
	Delay     int // Milliseconds to display each plot
	Perf      bool
	Profile   bool
	MaxProcs  int
}

// GridResult is the dual grid built from one grid file
type GridResult struct {
	GridFile  string
	Primary   *mesh.PrimaryGrid
	Dual      *dualgrid.DualGrid
	CPUCycles uint64 // Zero unless measured
}

// DualCmd represents the dual command
var DualCmd = &cobra.Command{
	Use:   "dual [gridFiles...]",
	Short: "Build the median dual grid of one or more grid files",
	Long: `
Reads primary grids of triangles and quadrilaterals and builds their median dual
grids, printing control volume, face and boundary summaries.

incomflow dual -F grid.dat -I input.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := dualOptionsFromFlags(cmd, args)
		if err != nil {
			return err
		}
		return RunDual(cmd.Context(), cmd.OutOrStdout(), opts)
	},
}

func init() {
	rootCmd.AddCommand(DualCmd)
	DualCmd.Flags().StringP("gridFile", "F", "", "Grid file to read in primary grid (.dat) format")
	DualCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Title\n\t- GridFile\n\t- Boundaries (marker: type)")
	DualCmd.Flags().BoolP("graph", "g", false, "display the primary grid and boundary dual elements")
	DualCmd.Flags().IntP("delay", "d", 50000, "milliseconds to display each plot")
	DualCmd.Flags().Bool("perf", false, "report the CPU cycles spent building each dual grid")
	DualCmd.Flags().Bool("profile", false, "write a CPU profile to the current directory")
	DualCmd.Flags().Int("maxProcs", runtime.NumCPU(), "maximum number of grids processed concurrently")
	for _, name := range []string{"delay", "maxProcs"} {
		if err := viper.BindPFlag(name, DualCmd.Flags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func dualOptionsFromFlags(cmd *cobra.Command, args []string) (opts *DualOptions, err error) {
	var (
		gridFile string
	)
	opts = &DualOptions{}
	if opts.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
		return nil, err
	}
	if gridFile, err = cmd.Flags().GetString("gridFile"); err != nil {
		return nil, err
	}
	if len(gridFile) != 0 {
		opts.GridFiles = append(opts.GridFiles, gridFile)
	}
	opts.GridFiles = append(opts.GridFiles, args...)
	for name, target := range map[string]*bool{
		"graph":   &opts.Graph,
		"perf":    &opts.Perf,
		"profile": &opts.Profile,
	} {
		if *target, err = cmd.Flags().GetBool(name); err != nil {
			return nil, err
		}
	}
	opts.Delay = viper.GetInt("delay")
	opts.MaxProcs = viper.GetInt("maxProcs")
	return
}

func RunDual(ctx context.Context, w io.Writer, opts *DualOptions) (err error) {
	var (
		bd *dualgrid.BoundaryDef
	)
	if opts.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	if len(opts.ICFile) != 0 {
		var ip *InputParameters.InputParameters
		if ip, err = InputParameters.ReadInputParameters(opts.ICFile); err != nil {
			return
		}
		if bd, err = ip.BoundaryDef(); err != nil {
			return
		}
		if len(opts.GridFiles) == 0 && len(ip.GridFile) != 0 {
			gridFile := ip.GridFile
			if !filepath.IsAbs(gridFile) {
				gridFile = filepath.Join(filepath.Dir(opts.ICFile), gridFile)
			}
			opts.GridFiles = append(opts.GridFiles, gridFile)
		}
		zap.L().Info("input parameters", zap.String("title", ip.Title),
			zap.Int("boundaries", bd.Size()))
	}
	if len(opts.GridFiles) == 0 {
		return fmt.Errorf("must supply a grid file (-F, --gridFile) or a GridFile in the input parameters")
	}

	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]*GridResult, len(opts.GridFiles))
	g, gctx := errgroup.WithContext(ctx)
	if opts.MaxProcs > 0 {
		g.SetLimit(opts.MaxProcs)
	}
	for i, gridFile := range opts.GridFiles {
		g.Go(func() (err error) {
			if err = gctx.Err(); err != nil {
				return
			}
			results[i], err = processGrid(gridFile, bd, opts.Perf)
			return
		})
	}
	if err = g.Wait(); err != nil {
		return
	}
	for _, res := range results {
		printSummary(w, res)
	}
	zap.L().Debug("memory usage", zap.String("mem", utils.GetMemUsage()))
	if opts.Graph {
		for _, res := range results {
			readfiles.PlotDualGrid(res.Primary, res.Dual, true)
			utils.SleepFor(opts.Delay)
		}
	}
	return
}

func processGrid(gridFile string, bd *dualgrid.BoundaryDef, withPerf bool) (res *GridResult, err error) {
	res = &GridResult{GridFile: gridFile}
	if res.Primary, err = readfiles.ReadPrimaryGrid(gridFile); err != nil {
		return nil, err
	}
	if bd == nil {
		bd = markerBoundaryDef(res.Primary)
	}
	build := func() error {
		res.Dual = dualgrid.NewDualGrid(res.Primary, bd)
		return nil
	}
	if !withPerf {
		err = build()
		return
	}
	var ran bool
	pv, perr := perf.CPUCycles(func() error {
		ran = true
		return build()
	})
	if perr != nil {
		zap.L().Warn("cpu cycle counter unavailable", zap.String("grid", gridFile), zap.Error(perr))
		if !ran {
			err = build()
		}
		return
	}
	res.CPUCycles = pv.Value
	return
}

// markerBoundaryDef defines every marker of the grid with an invalid type
func markerBoundaryDef(pg *mesh.PrimaryGrid) (bd *dualgrid.BoundaryDef) {
	bd = dualgrid.NewBoundaryDef()
	for _, marker := range pg.BdryEdgeMarkers {
		bd.AddMarker(marker, utils.BdryInvalid)
	}
	return
}

func printSummary(w io.Writer, res *GridResult) {
	var (
		pg, dg = res.Primary, res.Dual
	)
	fmt.Fprintf(w, "Grid: %s\n", res.GridFile)
	fmt.Fprintf(w, "  vertices = %d, triangles = %d, quads = %d\n", pg.NVertices, pg.NTris, pg.NQuads)
	fmt.Fprintf(w, "  dual elements = %d, faces = %d (%d interior)\n", dg.NElements, dg.NFaces, dg.NIntrFaces)
	fmt.Fprintf(w, "  total volume = %.6f, primary area = %.6f\n", dg.TotalVolume(), pg.Area())
	fmt.Fprintf(w, "  volume min/max = %.6g/%.6g\n", dg.Volumes.Min(), dg.Volumes.Max())
	for _, b := range dg.Boundaries.All() {
		fmt.Fprintf(w, "  boundary %d [%s]: %d dual elements, %d edges\n",
			b.Marker, b.Type, b.NDualElements, b.NPrimEdges)
	}
	if res.CPUCycles != 0 {
		fmt.Fprintf(w, "  cpu cycles = %d\n", res.CPUCycles)
	}
}
