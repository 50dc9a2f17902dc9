package model

type Verdict string

const (
	VerdictPending           Verdict = "Pending"
	VerdictAccepted          Verdict = "Accepted"
	VerdictWrongAnswer       Verdict = "Wrong Answer"
	VerdictTimeLimitExceeded Verdict = "Time Limit Exceeded"
	VerdictCompilationError  Verdict = "Compilation Error"
	VerdictRuntimeError      Verdict = "Runtime Error"
	VerdictInternalError     Verdict = "Internal Error"
)

// Judge status ids with a local verdict. Every other id (queued, processing,
// the runtime-error subtypes above 7, internal and exec-format errors) is
// reported as Internal Error.
const (
	JudgeStatusAccepted          = 3
	JudgeStatusWrongAnswer       = 4
	JudgeStatusTimeLimitExceeded = 5
	JudgeStatusCompilationError  = 6
	JudgeStatusRuntimeError      = 7
)

// VerdictFromJudgeStatus maps a judge status id to a verdict. A nil id means
// the judge response carried no status.
func VerdictFromJudgeStatus(statusID *int) Verdict {
	if statusID == nil {
		return VerdictInternalError
	}
	switch *statusID {
	case JudgeStatusAccepted:
		return VerdictAccepted
	case JudgeStatusWrongAnswer:
		return VerdictWrongAnswer
	case JudgeStatusTimeLimitExceeded:
		return VerdictTimeLimitExceeded
	case JudgeStatusCompilationError:
		return VerdictCompilationError
	case JudgeStatusRuntimeError:
		return VerdictRuntimeError
	default:
		return VerdictInternalError
	}
}

// IsTerminal reports whether the verdict is final.
func (v Verdict) IsTerminal() bool {
	switch v {
	case VerdictAccepted, VerdictWrongAnswer, VerdictTimeLimitExceeded,
		VerdictCompilationError, VerdictRuntimeError, VerdictInternalError:
		return true
	}
	return false
}
