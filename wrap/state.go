package wrap

// state tracks a wrap invocation through its pipeline. Transitions are
// strictly forward; any step can fall to stateFailed.
type state uint8

const (
	stateInit state = iota
	stateWorkspaceReady
	stateSourceGenerated
	stateWrapperPrepared
	stateBuilt
	stateLoaded
	stateDone
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateInit:
		return "INIT"
	case stateWorkspaceReady:
		return "WORKSPACE_READY"
	case stateSourceGenerated:
		return "SOURCE_GENERATED"
	case stateWrapperPrepared:
		return "WRAPPER_PREPARED"
	case stateBuilt:
		return "BUILT"
	case stateLoaded:
		return "LOADED"
	case stateDone:
		return "DONE"
	case stateFailed:
		return "FAILED"
	}
	return "UNKNOWN"
}
