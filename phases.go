package tinygo_stepper

const (
	// PhaseCount is the number of commutation states in a full cycle
	PhaseCount = 6

	// LineCount is the number of output lines driven by the motor
	LineCount = 4
)

// phaseTable holds the level of the 4 lines for every commutation state, bit i
// drives line i. Walking it forward moves the rotor one step forward.
//
//	State  3 2 1 0
//	0      1 0 0 1
//	1      0 0 0 1
//	2      0 1 1 1
//	3      0 1 1 0
//	4      1 1 1 0
//	5      1 0 0 0
var phaseTable = [PhaseCount]uint8{0x9, 0x1, 0x7, 0x6, 0xE, 0x8}

// phasePattern returns the line pattern for the given phase index
func phasePattern(index uint8) uint8 {
	return phaseTable[index%PhaseCount]
}

// nextPhase returns the phase index one step forward in the cycle
func nextPhase(index uint8) uint8 {
	return (index + 1) % PhaseCount
}

// previousPhase returns the phase index one step backward in the cycle
func previousPhase(index uint8) uint8 {
	return (index + PhaseCount - 1) % PhaseCount
}

// phaseLevel decodes the level of a single line from a pattern
func phaseLevel(pattern uint8, line int) Level {
	if (pattern>>line)&0x1 == 0 {
		return LevelLow
	}
	return LevelHigh
}
