// SPDX-License-Identifier: MIT
// Command discretenet generates labeled optimization problem instances.

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/discretenet/discretenet/generator"
	"github.com/discretenet/discretenet/problem"
	"github.com/discretenet/discretenet/problems/fcmnf"
	"github.com/discretenet/discretenet/problems/gisp"
	"github.com/discretenet/discretenet/problems/schoolbus"
	"github.com/discretenet/discretenet/problems/waterpipe"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "discretenet",
		Short: "Generate labeled discrete optimization problem instances",
		Long: "discretenet samples reproducible instances of discrete optimization\n" +
			"problem families and writes them as solver input files with optional\n" +
			"parameter and feature sidecars.",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.AddCommand(newGenerateCmd())
	return cmd
}

// generateOptions collects the flags shared by every family.
type generateOptions struct {
	family   string
	count    int
	seed     int64
	out      string
	jobs     int
	features bool
	params   bool

	// Graph sizing, shared by the graph-based families.
	minNodes int
	maxNodes int
	erProb   float64

	// gisp only.
	whichSet string
	setParam float64
	alpha    float64

	// fcmnf only.
	commodities int

	// school_bus_scheduling only.
	schools    int
	routes     int
	maxTime    int
	timeWindow int
	routeAvg   float64
	routeStd   float64

	// water_pipe_enhancement only.
	housingRate  float64
	housingSize  int
	criticalRate float64
	sourceRate   float64
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a batch of instances of one problem family",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.family, "family", "",
		"problem family: gisp, fcmnf, school_bus_scheduling or water_pipe_enhancement (required)")
	f.IntVar(&opts.count, "count", 1, "number of instances to generate")
	f.Int64Var(&opts.seed, "seed", 42, "parent random seed for the batch")
	f.StringVar(&opts.out, "out", ".", "output directory")
	f.IntVar(&opts.jobs, "jobs", 0, "concurrent generation workers (0 = all CPUs)")
	f.BoolVar(&opts.features, "features", false, "write <name>_features.json per instance")
	f.BoolVar(&opts.params, "params", false, "write <name>_parameters.json per instance")

	f.IntVar(&opts.minNodes, "min-n", 100, "minimum node count of the base graph")
	f.IntVar(&opts.maxNodes, "max-n", 100, "maximum node count of the base graph")
	f.Float64Var(&opts.erProb, "er-prob", 0.1, "edge probability of the base graph")

	f.StringVar(&opts.whichSet, "which-set", gisp.Set2, "gisp revenue/cost regime (SET1 or SET2)")
	f.Float64Var(&opts.setParam, "set-param", 100.0, "gisp set parameter")
	f.Float64Var(&opts.alpha, "alpha", 0.75, "gisp removable-edge probability")

	f.IntVar(&opts.commodities, "commodities", 35, "fcmnf commodity count")

	f.IntVar(&opts.schools, "schools", 5, "school_bus_scheduling school count")
	f.IntVar(&opts.routes, "routes", 6, "school_bus_scheduling routes per school")
	f.IntVar(&opts.maxTime, "max-time", 120, "school_bus_scheduling time horizon")
	f.IntVar(&opts.timeWindow, "time-window", 20, "school_bus_scheduling start window")
	f.Float64Var(&opts.routeAvg, "route-avg", 30, "school_bus_scheduling mean route length")
	f.Float64Var(&opts.routeStd, "route-std", 10, "school_bus_scheduling route length stddev")

	f.Float64Var(&opts.housingRate, "housing-rate", 0.01, "water_pipe_enhancement housing area rate")
	f.IntVar(&opts.housingSize, "housing-size", 3, "water_pipe_enhancement housing area radius")
	f.Float64Var(&opts.criticalRate, "critical-rate", 0.01, "water_pipe_enhancement critical customer rate")
	f.Float64Var(&opts.sourceRate, "source-rate", 0.005, "water_pipe_enhancement water source rate")

	cobra.CheckErr(cmd.MarkFlagRequired("family"))
	return cmd
}

func runGenerate(cmd *cobra.Command, opts generateOptions) error {
	gen, err := newGenerator(opts)
	if err != nil {
		return err
	}

	instances, err := generator.Batch(cmd.Context(), gen, opts.count, opts.seed,
		generator.WithWorkers(opts.jobs))
	if err != nil {
		return err
	}

	var saveOpts []problem.SaveOption
	if opts.params {
		saveOpts = append(saveOpts, problem.WithParameters())
	}
	if opts.features {
		saveOpts = append(saveOpts, problem.WithFeatures())
	}
	if err := generator.SaveBatch(instances, opts.out, saveOpts...); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"family": opts.family,
		"count":  len(instances),
		"out":    opts.out,
	}).Info("batch written")
	return nil
}

// newGenerator builds the family generator selected by --family.
func newGenerator(opts generateOptions) (generator.Generator, error) {
	switch opts.family {
	case "gisp":
		params := gisp.DefaultParams()
		params.MinNodes = opts.minNodes
		params.MaxNodes = opts.maxNodes
		params.EdgeProb = opts.erProb
		params.WhichSet = opts.whichSet
		params.SetParam = opts.setParam
		params.Alpha = opts.alpha
		return gisp.New(params)
	case "fcmnf":
		params := fcmnf.DefaultParams()
		params.MinNodes = opts.minNodes
		params.MaxNodes = opts.maxNodes
		params.EdgeProb = opts.erProb
		params.NumCommodities = opts.commodities
		return fcmnf.New(params)
	case "school_bus_scheduling":
		params := schoolbus.DefaultParams()
		params.NumSchools = opts.schools
		params.NumRoutes = opts.routes
		params.MaxTime = opts.maxTime
		params.TimeWindow = opts.timeWindow
		params.RouteLengthAvg = opts.routeAvg
		params.RouteLengthStd = opts.routeStd
		return schoolbus.New(params)
	case "water_pipe_enhancement":
		params := waterpipe.DefaultParams()
		params.MinNodes = opts.minNodes
		params.MaxNodes = opts.maxNodes
		params.EdgeProb = opts.erProb
		params.HousingAreaRate = opts.housingRate
		params.HousingAreaSize = opts.housingSize
		params.CriticalRate = opts.criticalRate
		params.WaterSourceRate = opts.sourceRate
		return waterpipe.New(params)
	default:
		return nil, fmt.Errorf("unknown family %q (want gisp, fcmnf, school_bus_scheduling or water_pipe_enhancement)", opts.family)
	}
}
