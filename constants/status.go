package constants

// RunState is the canonical state of one analysis run.
type RunState string

// Stable values (logged and reported as-is).
const (
	RunIdle       RunState = "IDLE"       // created, not started
	RunExtracting RunState = "EXTRACTING" // document text extraction in flight
	RunRequesting RunState = "REQUESTING" // generation endpoint call in flight
	RunValidating RunState = "VALIDATING" // response decode + contract check
	RunDone       RunState = "DONE"       // terminal success
	RunFailed     RunState = "FAILED"     // terminal failure
)

// Terminal reports whether the state ends the run.
func (s RunState) Terminal() bool {
	return s == RunDone || s == RunFailed
}
