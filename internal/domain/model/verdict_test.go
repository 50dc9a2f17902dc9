package model

import "testing"

func intPtr(v int) *int { return &v }

func TestVerdictFromJudgeStatus(t *testing.T) {
	cases := map[int]Verdict{
		3: VerdictAccepted,
		4: VerdictWrongAnswer,
		5: VerdictTimeLimitExceeded,
		6: VerdictCompilationError,
		7: VerdictRuntimeError,
	}
	for id, want := range cases {
		if got := VerdictFromJudgeStatus(intPtr(id)); got != want {
			t.Fatalf("status %d: expected %q, got %q", id, want, got)
		}
	}

	for _, id := range []int{-1, 0, 1, 2, 8, 11, 13, 14, 100} {
		if got := VerdictFromJudgeStatus(intPtr(id)); got != VerdictInternalError {
			t.Fatalf("status %d: expected internal error, got %q", id, got)
		}
	}
	if got := VerdictFromJudgeStatus(nil); got != VerdictInternalError {
		t.Fatalf("missing status: expected internal error, got %q", got)
	}
}

func TestVerdictIsTerminal(t *testing.T) {
	if VerdictPending.IsTerminal() {
		t.Fatalf("pending must not be terminal")
	}
	for _, v := range []Verdict{VerdictAccepted, VerdictWrongAnswer, VerdictInternalError} {
		if !v.IsTerminal() {
			t.Fatalf("%q should be terminal", v)
		}
	}
}
