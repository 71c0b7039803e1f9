package domain

// LogicResult is the uniform outcome of every deduction step in the engine.
type LogicResult int

const (
	LogicNone     LogicResult = iota // no progress
	LogicChanged                     // at least one candidate removed or cell finalized
	LogicInvalid                     // contradiction, current branch is infeasible
	LogicComplete                    // board fully finalized and consistent
)

func (r LogicResult) String() string {
	switch r {
	case LogicNone:
		return "none"
	case LogicChanged:
		return "changed"
	case LogicInvalid:
		return "invalid"
	case LogicComplete:
		return "complete"
	}
	return "unknown"
}

// Combine folds two step outcomes: Invalid dominates, then Complete, then Changed.
func (r LogicResult) Combine(o LogicResult) LogicResult {
	if r == LogicInvalid || o == LogicInvalid {
		return LogicInvalid
	}
	if r == LogicComplete || o == LogicComplete {
		return LogicComplete
	}
	if r == LogicChanged || o == LogicChanged {
		return LogicChanged
	}
	return LogicNone
}
