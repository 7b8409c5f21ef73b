package gcslog

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestComponentAndEpochFieldsAppearInOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false).Component("scheduler").WithEpoch(3).WithRecursion(1)
	logger.Info().Msg("draining queue")

	var fields map[string]any
	if err := json.Unmarshal(buf.Bytes(), &fields); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if fields["component"] != "scheduler" {
		t.Fatalf("component = %v, want scheduler", fields["component"])
	}
	if fields["epoch"] != float64(3) {
		t.Fatalf("epoch = %v, want 3", fields["epoch"])
	}
	if fields["recursion"] != float64(1) {
		t.Fatalf("recursion = %v, want 1", fields["recursion"])
	}
	if fields["message"] != "draining queue" {
		t.Fatalf("message = %v, want %q", fields["message"], "draining queue")
	}
}

func TestSetGlobalLevelRejectsUnknownLevel(t *testing.T) {
	if err := SetGlobalLevel("not-a-level"); err == nil {
		t.Fatalf("expected an error for an invalid level")
	}
	if err := SetGlobalLevel("debug"); err != nil {
		t.Fatalf("SetGlobalLevel(debug): %v", err)
	}
}
