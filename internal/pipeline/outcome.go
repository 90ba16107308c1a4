package pipeline

import "nuclear-grid-lab/internal/domain"

// Status tags a per-source acquisition outcome. The continue-vs-abort policy
// lives in the tag instead of being inferred from which error class fired.
type Status int

// Outcome statuses.
const (
	StatusOK       Status = iota // series acquired and normalized
	StatusDegraded               // source failed, run continues with an empty series
	StatusFatal                  // unrecoverable, aborts the run
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDegraded:
		return "degraded"
	case StatusFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of acquiring one source.
type Outcome struct {
	Source string
	Status Status
	Series *domain.Series // nil unless StatusOK
	Reason error          // nil when StatusOK
}

// Ok builds a successful outcome.
func Ok(source string, series *domain.Series) Outcome {
	return Outcome{Source: source, Status: StatusOK, Series: series}
}

// Degraded builds a degraded outcome: the source contributes an empty series
// and the run continues.
func Degraded(source string, reason error) Outcome {
	return Outcome{Source: source, Status: StatusDegraded, Reason: reason}
}
