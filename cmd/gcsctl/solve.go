package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/latticeforge/gcs/internal/gcslog"
	"github.com/latticeforge/gcs/pkg/gcs"
)

type solveOptions struct {
	timeout      time.Duration
	prove        bool
	proofPath    string
	selfCheck    bool
	allSolutions bool
	statistics   bool
	logFormat    string
}

func newSolveCommand() *cobra.Command {
	opts := &solveOptions{}
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("solve <%s>", strings.Join(scenarioNames(), "|")),
		Short: "Solve a built-in demonstration scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, args[0], opts)
		},
	}
	flags := cmd.Flags()
	flags.DurationVar(&opts.timeout, "timeout", 0, "abort the search after this long (0 disables the timeout)")
	flags.BoolVar(&opts.prove, "prove", false, "write a pseudo-Boolean proof pair alongside the solve")
	flags.StringVar(&opts.proofPath, "proof-path", "", "base path for the .opb/.pbp proof pair (defaults to the scenario name)")
	flags.BoolVar(&opts.selfCheck, "self-check", false, "build the internal SAT self-checker alongside the proof (no proof line is passed through it)")
	flags.BoolVar(&opts.allSolutions, "all-solutions", false, "enumerate every solution instead of stopping at the first one found")
	flags.BoolVar(&opts.statistics, "statistics", false, "print %%%mzn-stat: search statistics after solving")
	flags.StringVar(&opts.logFormat, "log-format", "pretty", "solver log output format: pretty or json")
	return cmd
}

func runSolve(cmd *cobra.Command, name string, opts *solveOptions) error {
	s, ok := scenarios[name]
	if !ok {
		return fmt.Errorf("unknown scenario %q (known: %s)", name, strings.Join(scenarioNames(), ", "))
	}

	logger := gcslog.New(cmd.ErrOrStderr(), opts.logFormat != "json")
	cfg := gcs.DefaultSolverConfig()
	cfg.Logger = &logger
	cfg.Timeout = opts.timeout
	cfg.EnableProof = opts.prove
	cfg.EnableSelfCheck = opts.selfCheck
	if opts.proofPath != "" {
		cfg.ProofPath = opts.proofPath
	} else {
		cfg.ProofPath = s.name
	}

	p := gcs.NewProblem(cfg)
	named, branch := s.build(p)

	out := cmd.OutOrStdout()
	solutions := 0
	cb := gcs.Callbacks{
		OnSolution: func(state *gcs.State) bool {
			solutions++
			printSolution(out, named, state)
			return opts.allSolutions
		},
	}

	stats, outcome, err := p.SolveWith(branch, cb)
	if err != nil {
		return err
	}

	switch outcome {
	case gcs.OutcomeExhausted:
		if solutions == 0 {
			fmt.Fprintln(out, "=====UNSATISFIABLE=====")
		} else {
			fmt.Fprintln(out, "==========")
		}
	case gcs.OutcomeStoppedByCallback:
		// the callback stopped the search at the first solution found; for
		// square-minimise that solution need not be the optimum
	case gcs.OutcomeTimedOut:
		fmt.Fprintln(out, "% timed out before the search space was exhausted")
	case gcs.OutcomeAborted:
		fmt.Fprintln(out, "% aborted before the search space was exhausted")
	}

	if opts.statistics {
		printStatistics(out, stats)
	}
	return nil
}

func printSolution(out io.Writer, named []namedVar, state *gcs.State) {
	for _, nv := range named {
		lo, hi := state.Bounds(nv.v)
		if lo == hi {
			fmt.Fprintf(out, "%s = %d;\n", nv.name, lo)
		} else {
			fmt.Fprintf(out, "%s = %d..%d;\n", nv.name, lo, hi)
		}
	}
	fmt.Fprintln(out, "----------")
}

func printStatistics(out io.Writer, stats gcs.Stats) {
	fmt.Fprintf(out, "%%%%%%mzn-stat: decisions=%d\n", stats.Decisions)
	fmt.Fprintf(out, "%%%%%%mzn-stat: backtracks=%d\n", stats.Backtracks)
	fmt.Fprintf(out, "%%%%%%mzn-stat: solutions=%d\n", stats.Solutions)
	fmt.Fprintf(out, "%%%%%%mzn-stat: propagatorCalls=%d\n", stats.PropagatorCalls)
	fmt.Fprintf(out, "%%%%%%mzn-stat: solveTime=%s\n", stats.Duration)
	fmt.Fprintln(out, "%%%mzn-stat-end")
}
