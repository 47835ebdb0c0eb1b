package pipeline

// State is the lifecycle state of a pipeline run.
type State int32

// The states a pipeline passes through, in this order.
const (
	Starting State = iota
	Producing
	Draining
	Done
)

func (s State) String() string {
	switch s {
	case Starting:
		return "Starting"
	case Producing:
		return "Producing"
	case Draining:
		return "Draining"
	case Done:
		return "Done"
	default:
		return "Unknown"
	}
}
