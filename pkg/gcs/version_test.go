package gcs

import (
	"testing"

	"github.com/blang/semver/v4"
	"github.com/stretchr/testify/require"
)

func TestCompatibleProofFormatMatchesOnMajorOnly(t *testing.T) {
	require.True(t, CompatibleProofFormat(semver.MustParse("2.0.0")))
	require.True(t, CompatibleProofFormat(semver.MustParse("2.9.3")))
	require.False(t, CompatibleProofFormat(semver.MustParse("1.0.0")))
	require.False(t, CompatibleProofFormat(semver.MustParse("3.0.0")))
}

func TestStringReportsSolverAndProofFormatVersions(t *testing.T) {
	s := String()
	require.Contains(t, s, SolverVersion.String())
	require.Contains(t, s, ProofFormatVersion.String())
}
