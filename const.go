package match

import "math"

const (
	// EngineVersion is the current version of the matching core
	EngineVersion = "v1.0.0"

	// MaxOrderSize is the largest size a single order may carry.
	// Level totals and depth diffs stay well inside int64 with this cap.
	MaxOrderSize = math.MaxUint32
)
