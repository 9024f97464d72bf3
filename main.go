package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/AlexandreDubray/couaincre/cnf"
	"github.com/AlexandreDubray/couaincre/logger"
	"github.com/AlexandreDubray/couaincre/store"
	"github.com/AlexandreDubray/couaincre/td"
	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

// App decomposes the primal graphs of CNF formulas.
var App = cli.App{
	Name:      "couaincre",
	HelpName:  "couaincre",
	Usage:     "compute tree decompositions of the primal graphs of CNF formulas",
	ArgsUsage: "(file.cnf|file.gr)...",
	Flags: []cli.Flag{
		&HeuristicFlag,
		&SchedulerFlag,
		&OutDirFlag,
		&TDFlag,
		&GraphFlag,
		&DOTFlag,
		&CacheFlag,
		&WorkersFlag,
		&LowerBoundFlag,
		&ValidateFlag,
		&TimeoutFlag,
		&logger.LogLevelFlag,
	},
	Action: decomposeAction,
	Description: `
Decomposes each input, a DIMACS CNF formula or a PACE graph, and prints a summary of the
decompositions. Inputs are processed concurrently, each one on its own.
`,
}

func main() {
	debug.SetGCPercent(300)
	if err := App.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		if td.IsConfigError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// A summary describes the decomposition of one input.
type summary struct {
	Path       string
	Vertices   int
	Edges      int
	Width      int
	Bags       int
	LowerBound int // -1 when not computed
	Cached     bool
	Elapsed    time.Duration
}

type runner struct {
	cfg   *config
	log   logger.Logger
	cache *store.Store // nil without a cache
}

func decomposeAction(ctx *cli.Context) error {
	cfg, err := newConfig(ctx)
	if err != nil {
		return err
	}
	r := &runner{cfg: cfg, log: logger.NewLogger(cfg.LogLevel, "couaincre")}
	if cfg.CacheDir != "" {
		if r.cache, err = store.Open(cfg.CacheDir); err != nil {
			return err
		}
		defer r.cache.Close()
	}
	start := time.Now()
	summaries, err := r.run(ctx.Context)
	if err != nil {
		return err
	}
	printSummaries(ctx.App.Writer, summaries)
	h, m, s := logger.ParseTime(time.Since(start))
	r.log.Noticef("decomposed %d inputs in %dh %dm %ds", len(summaries), h, m, s)
	return nil
}

// run decomposes every input, at most cfg.Workers at a time.
func (r *runner) run(ctx context.Context) ([]summary, error) {
	summaries := make([]summary, len(r.cfg.Inputs))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(r.cfg.Workers)
	for i, path := range r.cfg.Inputs {
		group.Go(func() error {
			sum, err := r.process(ctx, path)
			if err != nil {
				return errors.Wrapf(err, "%s", path)
			}
			summaries[i] = sum
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// process decomposes the input at path and writes the requested output files.
func (r *runner) process(ctx context.Context, path string) (summary, error) {
	start := time.Now()
	g, err := readGraph(path)
	if err != nil {
		return summary{}, err
	}
	sum := summary{Path: path, Vertices: g.Len(), Edges: g.NbEdges(), LowerBound: -1}
	d, cached, err := r.decompose(ctx, g)
	if err != nil {
		return summary{}, err
	}
	sum.Cached = cached
	if r.cfg.Validate {
		if err := d.Validate(g); err != nil {
			return summary{}, errors.NewAssertionErrorWithWrappedErrf(err, "decomposition of %s", path)
		}
	}
	if r.cfg.LowerBound {
		sum.LowerBound = td.CliqueLowerBound(g)
		if degeneracy := td.DegeneracyLowerBound(g); degeneracy > sum.LowerBound {
			sum.LowerBound = degeneracy
		}
	}
	if err := r.write(path, ".gr", r.cfg.WriteGraph, func(w io.Writer) error { return td.WritePrimal(w, g) }); err != nil {
		return summary{}, err
	}
	if err := r.write(path, ".td", r.cfg.WriteTD, func(w io.Writer) error { return td.WriteTD(w, d) }); err != nil {
		return summary{}, err
	}
	if err := r.write(path, ".dot", r.cfg.WriteDOT, func(w io.Writer) error { return td.RenderDOT(w, d) }); err != nil {
		return summary{}, err
	}
	sum.Width = d.Width()
	sum.Bags = d.Len()
	sum.Elapsed = time.Since(start)
	r.log.Infof("%s: width %d, %d bags, %v", path, sum.Width, sum.Bags, sum.Elapsed.Round(time.Millisecond))
	return sum, nil
}

// decompose returns the decomposition of g, from the cache if possible.
func (r *runner) decompose(ctx context.Context, g *td.Graph) (*td.Decomposition, bool, error) {
	var key []byte
	if r.cache != nil {
		key = store.Key(g, r.cfg.Heuristic)
		d, found, err := r.cache.Get(key)
		switch {
		case err != nil:
			r.log.Warningf("ignoring cache entry: %v", err)
		case found && d.NbVertices != g.Len():
			r.log.Warningf("ignoring cache entry for %d vertices, graph has %d", d.NbVertices, g.Len())
		case found:
			return d, true, nil
		}
	}
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}
	d, err := td.DecomposeContext(ctx, g, td.Options{
		Heuristic: r.cfg.Heuristic,
		Scheduler: r.cfg.Scheduler,
		Log:       r.log,
	})
	if err != nil {
		return nil, false, err
	}
	if r.cache != nil {
		if err := r.cache.Put(key, d); err != nil {
			return nil, false, err
		}
	}
	return d, false, nil
}

// write writes the output file of the given extension for input, if enabled.
func (r *runner) write(input, ext string, enabled bool, fn func(w io.Writer) error) (err error) {
	if !enabled {
		return nil
	}
	path := outputPath(r.cfg.OutDir, input, ext)
	f, err := os.Create(path)
	if err != nil {
		return td.ConfigError(errors.Wrapf(err, "could not create %q", path))
	}
	defer func() {
		err = errors.CombineErrors(err, f.Close())
	}()
	if err := fn(f); err != nil {
		return errors.Wrapf(err, "could not write %q", path)
	}
	r.log.Debugf("wrote %s", path)
	return nil
}

func outputPath(dir, input, ext string) string {
	if dir == "" {
		dir = filepath.Dir(input)
	}
	base := filepath.Base(input)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+ext)
}

// readGraph reads the primal graph of a .cnf formula, or a .gr graph.
func readGraph(path string) (*td.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, td.ConfigError(errors.Wrapf(err, "could not open %q", path))
	}
	defer f.Close()
	switch {
	case strings.HasSuffix(path, ".cnf"):
		pb, err := cnf.Parse(f)
		if err != nil {
			return nil, td.ConfigError(errors.Wrapf(err, "could not parse DIMACS file %q", path))
		}
		return td.FromFormula(pb)
	case strings.HasSuffix(path, ".gr"):
		return td.ReadPrimal(f)
	default:
		return nil, td.ConfigError(errors.Newf("invalid file format for %q", path))
	}
}

func printSummaries(w io.Writer, summaries []summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"file", "vars", "edges", "width", "bags", "lower bound", "cached", "time"})
	for _, s := range summaries {
		lower := "-"
		if s.LowerBound >= 0 {
			lower = fmt.Sprint(s.LowerBound)
		}
		t.AppendRow(table.Row{s.Path, s.Vertices, s.Edges, s.Width, s.Bags, lower, s.Cached, s.Elapsed.Round(time.Millisecond)})
	}
	t.Render()
}
