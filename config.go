package main

import (
	"runtime"
	"strings"
	"time"

	"github.com/AlexandreDubray/couaincre/logger"
	"github.com/AlexandreDubray/couaincre/td"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// Command line flags.
var (
	HeuristicFlag = cli.StringFlag{
		Name:  "heuristic",
		Usage: "elimination heuristic (\"min-fill\", \"min-degree\")",
		Value: "min-fill",
	}
	SchedulerFlag = cli.StringFlag{
		Name:  "scheduler",
		Usage: "structure backing the elimination scheduler (\"auto\", \"bucket\", \"heap\")",
		Value: "auto",
	}
	OutDirFlag = cli.PathFlag{
		Name:  "out",
		Usage: "directory where output files are written; defaults to the directory of each input",
	}
	TDFlag = cli.BoolFlag{
		Name:  "td",
		Usage: "write each decomposition in the PACE .td format",
	}
	GraphFlag = cli.BoolFlag{
		Name:  "gr",
		Usage: "write each primal graph in the PACE .gr format",
	}
	DOTFlag = cli.BoolFlag{
		Name:  "dot",
		Usage: "write each decomposition as a graphviz .dot file",
	}
	CacheFlag = cli.PathFlag{
		Name:  "cache",
		Usage: "directory of a decomposition cache, reused across runs",
	}
	WorkersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "number of inputs decomposed concurrently",
		Value: runtime.NumCPU(),
	}
	LowerBoundFlag = cli.BoolFlag{
		Name:  "lower-bound",
		Usage: "compute lower bounds of the treewidth of each input",
	}
	ValidateFlag = cli.BoolFlag{
		Name:  "validate",
		Usage: "check each decomposition against its graph",
	}
	TimeoutFlag = cli.DurationFlag{
		Name:  "timeout",
		Usage: "maximum time spent decomposing each input, 0 for no limit",
	}
)

// config gathers the settings of a run.
type config struct {
	Heuristic  td.Heuristic
	Scheduler  td.SchedulerKind
	OutDir     string
	WriteTD    bool
	WriteGraph bool
	WriteDOT   bool
	CacheDir   string
	Workers    int
	LowerBound bool
	Validate   bool
	Timeout    time.Duration
	LogLevel   string
	Inputs     []string
}

// newConfig reads the configuration of a run from the command line.
func newConfig(ctx *cli.Context) (*config, error) {
	if ctx.NArg() == 0 {
		return nil, td.ConfigError(errors.New("no input file"))
	}
	h, err := td.ParseHeuristic(ctx.String(HeuristicFlag.Name))
	if err != nil {
		return nil, err
	}
	kind, err := parseScheduler(ctx.String(SchedulerFlag.Name))
	if err != nil {
		return nil, err
	}
	workers := ctx.Int(WorkersFlag.Name)
	if workers < 1 {
		return nil, td.ConfigError(errors.Newf("invalid number of workers %d", workers))
	}
	timeout := ctx.Duration(TimeoutFlag.Name)
	if timeout < 0 {
		return nil, td.ConfigError(errors.Newf("invalid timeout %v", timeout))
	}
	return &config{
		Heuristic:  h,
		Scheduler:  kind,
		OutDir:     ctx.Path(OutDirFlag.Name),
		WriteTD:    ctx.Bool(TDFlag.Name),
		WriteGraph: ctx.Bool(GraphFlag.Name),
		WriteDOT:   ctx.Bool(DOTFlag.Name),
		CacheDir:   ctx.Path(CacheFlag.Name),
		Workers:    workers,
		LowerBound: ctx.Bool(LowerBoundFlag.Name),
		Validate:   ctx.Bool(ValidateFlag.Name),
		Timeout:    timeout,
		LogLevel:   ctx.String(logger.LogLevelFlag.Name),
		Inputs:     ctx.Args().Slice(),
	}, nil
}

func parseScheduler(name string) (td.SchedulerKind, error) {
	for _, kind := range []td.SchedulerKind{td.SchedulerAuto, td.SchedulerBucket, td.SchedulerHeap} {
		if strings.EqualFold(name, kind.String()) {
			return kind, nil
		}
	}
	return 0, td.ConfigError(errors.Newf("unknown scheduler %q", name))
}
