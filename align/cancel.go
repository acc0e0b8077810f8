package align

import "github.com/cwbudde/speechalign/dtwengine"

// CancelFunc is the orchestrator's cooperative cancel check, polled at
// pass boundaries (spec §5) in addition to the per-row polling dtwengine
// already does inside a single pass.
type CancelFunc = dtwengine.CancelFunc
