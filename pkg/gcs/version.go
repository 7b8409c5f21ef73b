package gcs

import "github.com/blang/semver/v4"

// SolverVersion is the solver engine's own release version, bumped
// independently of the proof format it emits.
var SolverVersion = semver.MustParse("0.1.0")

// ProofFormatVersion is the proof format version declared on the header
// line of every .pbp file this package produces (NewProofLogger writes it
// there as "2.0"), so a verifier
// can refuse a proof produced by an incompatible future format change
// before it wastes time checking it.
var ProofFormatVersion = semver.MustParse("2.0.0")

// CompatibleProofFormat reports whether a proof format version this
// package could have produced (same major version) matches v.
func CompatibleProofFormat(v semver.Version) bool {
	return v.Major == ProofFormatVersion.Major
}

// String returns the solver's version for CLI --version output.
func String() string {
	return "gcs " + SolverVersion.String() + " (proof format " + ProofFormatVersion.String() + ")"
}
