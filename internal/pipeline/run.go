package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tenderlens/tenderlens/constants"
)

// legalTransitions encodes the run state machine:
// IDLE -> EXTRACTING -> REQUESTING -> VALIDATING -> DONE, with FAILED
// reachable from any non-terminal state. No state is re-entered.
var legalTransitions = map[constants.RunState][]constants.RunState{
	constants.RunIdle:       {constants.RunExtracting, constants.RunFailed},
	constants.RunExtracting: {constants.RunRequesting, constants.RunFailed},
	constants.RunRequesting: {constants.RunValidating, constants.RunFailed},
	constants.RunValidating: {constants.RunDone, constants.RunFailed},
}

// runTracker carries the state of one analysis run and guards transitions.
type runTracker struct {
	id     string
	state  constants.RunState
	logger *slog.Logger
}

func newRunTracker(logger *slog.Logger) *runTracker {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New().String()
	return &runTracker{
		id:     id,
		state:  constants.RunIdle,
		logger: logger.With("run_id", id),
	}
}

func (r *runTracker) advance(to constants.RunState) error {
	for _, next := range legalTransitions[r.state] {
		if next == to {
			r.logger.Debug("pipeline.run.transition", "from", string(r.state), "to", string(to))
			r.state = to
			return nil
		}
	}
	return fmt.Errorf("illegal run transition %s -> %s", string(r.state), string(to))
}

// fail moves the run to FAILED and passes the error through.
func (r *runTracker) fail(err error) error {
	if !r.state.Terminal() {
		_ = r.advance(constants.RunFailed)
	}
	r.logger.Error("pipeline.run.failed", "state", string(r.state), "error", err)
	return err
}
