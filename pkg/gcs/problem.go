package gcs

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/latticeforge/gcs/internal/gcslog"
)

// SolverConfig configures a Problem's ambient behaviour: proof logging,
// timeouts, and where log output goes. DefaultSolverConfig is safe to use
// as-is for a quick solve with no certificate.
type SolverConfig struct {
	// EnableProof turns on pseudo-Boolean proof logging. ProofPath is used
	// as a base name: "<ProofPath>.opb" gets the model, "<ProofPath>.pbp"
	// the derivation.
	EnableProof bool
	ProofPath   string

	// EnableSelfCheck, together with EnableProof, makes NewProblem build a
	// ProofSelfChecker (proof_selfcheck.go). No proof line is passed through
	// it during a solve.
	EnableSelfCheck bool

	// Timeout aborts the search after this long, reported as
	// OutcomeTimedOut. Zero means no timeout.
	Timeout time.Duration

	// Logger is nil by default, in which case NewProblem installs a
	// pretty-printed stderr logger.
	Logger *gcslog.Logger
}

// DefaultSolverConfig returns a config with proof logging and timeouts
// disabled and a pretty-printed stderr logger.
func DefaultSolverConfig() SolverConfig {
	l := gcslog.Default()
	return SolverConfig{Logger: &l}
}

// Constraint is anything Problem.Post can install: a propagator,
// optionally a PB encoding, and the triggers that wake it.
type Constraint interface {
	post(p *Problem) error
}

// ConstraintFunc adapts a plain function to Constraint.
type ConstraintFunc func(p *Problem) error

func (f ConstraintFunc) post(p *Problem) error { return f(p) }

// Problem is the builder and solve-time facade: create variables, post
// constraints, optionally set an objective, then SolveWith a branching
// strategy. It owns the State, Scheduler, and (if enabled) the proof model
// and logger, handing the state, proof logger and names tracker to every
// propagator through the InferenceTracker the scheduler constructs per call.
type Problem struct {
	state     *State
	scheduler *Scheduler
	names     *NamesAndIDsTracker
	model     *ProofModel
	proof     *ProofLogger
	selfCheck *ProofSelfChecker

	config SolverConfig
	log    gcslog.Logger

	abortFlag  *atomic.Bool
	presolvers []func(*Problem) error
	objective  *Objective

	nowFunc func() time.Time
}

// NewProblem returns an empty problem configured by cfg.
func NewProblem(cfg SolverConfig) *Problem {
	if cfg.Logger == nil {
		l := gcslog.Default()
		cfg.Logger = &l
	}
	state := NewState()
	names := NewNamesAndIDsTracker()
	p := &Problem{
		state:   state,
		names:   names,
		config:  cfg,
		log:     cfg.Logger.Component("gcs"),
		nowFunc: time.Now,
	}
	p.scheduler = NewScheduler(state, nil, names)
	if cfg.EnableProof {
		p.model = NewProofModel(names)
		if cfg.EnableSelfCheck {
			p.selfCheck = NewProofSelfChecker()
		}
	}
	return p
}

func (p *Problem) now() time.Time { return p.nowFunc() }

// State exposes the underlying store for read-only inspection (e.g.
// printing a found solution's bound values). Propagators must not be given
// this directly; they receive an InferenceTracker instead.
func (p *Problem) State() *State { return p.state }

// ProofModel exposes the accumulated PB model, for a propagator's post-time
// constructor to add its own encoding. Returns nil when proof logging is
// disabled, so callers must check before dereferencing.
func (p *Problem) ProofModel() *ProofModel { return p.model }

// Names exposes the names-and-IDs tracker, needed by any constraint that
// adds its own PB encoding at post time.
func (p *Problem) Names() *NamesAndIDsTracker { return p.names }

// CreateIntegerVariable creates a variable with domain [lo, hi].
func (p *Problem) CreateIntegerVariable(lo, hi Integer, name string) IntegerVariableID {
	v := p.state.CreateVariable(lo, hi, name)
	p.names.RecordBounds(v, lo, hi)
	return v
}

// CreateIntegerVariableFromValues creates a variable whose domain is
// exactly the given value set.
func (p *Problem) CreateIntegerVariableFromValues(values []Integer, name string) IntegerVariableID {
	v := p.state.CreateVariableFromValues(values, name)
	lo, hi := p.state.Bounds(v)
	p.names.RecordBounds(v, lo, hi)
	return v
}

// Post installs a constraint.
func (p *Problem) Post(c Constraint) error { return c.post(p) }

// AddPresolver registers a pass run once, after every constraint has been
// posted but before the initial propagation fixpoint, given full builder
// access (so it may itself post further constraints, e.g. a presolver that
// detects an implied all-different and posts the GAC propagator for it).
func (p *Problem) AddPresolver(f func(*Problem) error) {
	p.presolvers = append(p.presolvers, f)
}

// Minimise sets the search objective to minimise v.
func (p *Problem) Minimise(v IntegerVariableID) { p.objective = &Objective{Var: v, Minimise: true} }

// Maximise sets the search objective to maximise v.
func (p *Problem) Maximise(v IntegerVariableID) { p.objective = &Objective{Var: v, Minimise: false} }

// AbortFlag returns the flag Solve polls; setting it (e.g. from a signal
// handler or a timeout goroutine) stops the search cooperatively at the
// next propagator-call boundary.
func (p *Problem) AbortFlag() *atomic.Bool {
	if p.abortFlag == nil {
		p.abortFlag = &atomic.Bool{}
	}
	return p.abortFlag
}

func (p *Problem) openProof() error {
	if p.model == nil {
		return nil
	}
	base := p.config.ProofPath
	if base == "" {
		base = "gcs-proof"
	}
	opbPath := base + ".opb"
	pbpPath := base + ".pbp"

	if err := os.MkdirAll(filepath.Dir(opbPath), 0o755); err != nil && filepath.Dir(opbPath) != "." {
		return NewProofError("creating proof directory: %v", err)
	}

	opb, err := os.Create(opbPath)
	if err != nil {
		return NewProofError("creating %s: %v", opbPath, err)
	}
	defer opb.Close()
	if err := p.model.Finalise(opb); err != nil {
		return err
	}

	pbp, err := os.Create(pbpPath)
	if err != nil {
		return NewProofError("creating %s: %v", pbpPath, err)
	}
	logger := NewProofLogger(pbp, p.model.LineCount())
	logger.SetCloser(pbp)
	p.proof = logger
	p.scheduler.SetProofLogger(logger)
	p.names.SetProofLogger(logger)
	p.log.Info().Str("opb", opbPath).Str("pbp", pbpPath).Msg("proof logging enabled")
	return nil
}

// SolveWith runs presolvers, establishes the initial propagation fixpoint,
// and then searches, reporting solutions through cb and returning
// accumulated Stats plus how the search ended.
func (p *Problem) SolveWith(branch BranchingStrategy, cb Callbacks) (Stats, SolveOutcome, error) {
	for _, f := range p.presolvers {
		if err := f(p); err != nil {
			return Stats{}, OutcomeExhausted, err
		}
	}
	if err := p.openProof(); err != nil {
		return Stats{}, OutcomeExhausted, err
	}
	var timedOut atomic.Bool
	if p.config.Timeout > 0 {
		flag := p.AbortFlag()
		timer := time.AfterFunc(p.config.Timeout, func() {
			timedOut.Store(true)
			flag.Store(true)
		})
		defer timer.Stop()
	}
	p.scheduler.SetAbortFlag(p.AbortFlag())

	p.scheduler.QueueAll()
	if dr := p.scheduler.Drain(); dr.Outcome == Contradiction {
		p.concludeProof(ConcludeUnsat, 0, 0)
		return Stats{}, OutcomeExhausted, nil
	}

	var best Integer
	if p.objective != nil {
		obj, inner := p.objective.Var, cb.OnSolution
		cb.OnSolution = func(s *State) bool {
			best, _ = s.OptionalSingleValue(obj)
			return inner == nil || inner(s)
		}
	}

	stats, outcome := p.Solve(branch, p.objective, cb)
	if outcome == OutcomeAborted && timedOut.Load() {
		outcome = OutcomeTimedOut
	}
	for _, e := range p.scheduler.props {
		stats.PropagatorCalls += e.callCount
	}

	switch outcome {
	case OutcomeExhausted:
		if stats.Solutions == 0 {
			p.concludeProof(ConcludeUnsat, 0, 0)
		} else if p.objective != nil {
			p.concludeProof(ConcludeBounds, best, best)
		} else {
			p.concludeProof(ConcludeSat, 0, 0)
		}
	case OutcomeTimedOut, OutcomeAborted:
		p.concludeProof(ConcludeNone, 0, 0)
	}
	return stats, outcome, nil
}

func (p *Problem) concludeProof(c ProofConclusion, lo, hi Integer) {
	if p.proof == nil {
		return
	}
	if err := p.proof.Conclude(c, lo, hi); err != nil {
		p.log.Error().Err(err).Msg("failed to finalise proof")
	}
}

// scenarioProofBase derives a proof base name from a scenario name by
// replacing spaces with hyphens (e.g. "n queens" -> "n-queens").
func scenarioProofBase(name string) string {
	return strings.ReplaceAll(name, " ", "-")
}
