package tinygo_stepper

type (
	// Direction is an enum to represent the commanded motion sense of the motor.
	Direction uint8

	// Level is the binary level driven onto an output line.
	Level uint8
)

const (
	DirectionNil Direction = iota
	DirectionStopped
	DirectionForward
	DirectionReverse
)

const (
	LevelLow Level = iota
	LevelHigh
)

// String returns the name of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionStopped:
		return "stopped"
	case DirectionForward:
		return "forward"
	case DirectionReverse:
		return "reverse"
	default:
		return "nil"
	}
}
