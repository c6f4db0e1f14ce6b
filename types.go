package tinygo_stepper

import (
	"time"

	tinygoerrors "github.com/ralvarezdev/tinygo-errors"
	tinygologger "github.com/ralvarezdev/tinygo-logger"
)

type (
	// Motor is the default implementation to handle a 4-line stepper motor driven through
	// a 6-state commutation cycle.
	Motor struct {
		travelLimit           uint16
		lines                 [LineCount]OutputLine
		phase                 uint8
		position              uint16
		target                uint16
		direction             Direction
		velocity              uint8
		stopped               bool
		homed                 bool
		profile               *AccelerationProfile
		zeroingSettleInterval uint32
		stepsTaken            uint32
		lastStepTime          time.Time
		hasStepped            bool
		powerStage            PowerStage
		runningDuty           float64
		holdingDuty           float64
		logger                tinygologger.Logger
	}
)

const (
	// DefaultZeroingSettleInterval is the delay in microseconds after every homing step
	DefaultZeroingSettleInterval uint32 = 800
)

var (
	// newMotorPrefix is the prefix for the log message when creating the motor
	newMotorPrefix = []byte("Created stepper motor with travel limit:")

	// setTargetPrefix is the prefix for the log message when setting the target
	setTargetPrefix = []byte("Set stepper motor target to:")

	// stoppedPrefix is the prefix for the log message when the motor stops at a position
	stoppedPrefix = []byte("Stepper motor stopped at:")

	// zeroStartPrefix is the prefix for the log message when homing starts
	zeroStartPrefix = []byte("Zeroing stepper motor, homing steps:")

	// zeroDonePrefix is the prefix for the log message when homing completes
	zeroDonePrefix = []byte("Stepper motor zeroed")

	// zeroAbortPrefix is the prefix for the log message when homing is aborted
	zeroAbortPrefix = []byte("Stepper motor zeroing aborted at homing step:")

	// lineFailurePrefix is the prefix for the log message when an output line write fails
	lineFailurePrefix = []byte("Failed to drive stepper motor line:")

	// lineFailureCodePrefix is the prefix for the log message with the line error code
	lineFailureCodePrefix = []byte("Stepper motor line error code:")

	// directionPrefix is the prefix for the log message when the commanded direction changes
	directionPrefix = []byte("Stepper motor direction:")
)

// NewMotor creates a new instance of Motor
//
// Parameters:
//
// travelLimit: Total addressable steps, the exclusive upper bound of the position
// line0: Output line driven by bit 0 of the phase pattern
// line1: Output line driven by bit 1 of the phase pattern
// line2: Output line driven by bit 2 of the phase pattern
// line3: Output line driven by bit 3 of the phase pattern
// profile: Acceleration profile used by Advance, nil for DefaultAccelerationProfile
// zeroingSettleInterval: Delay in microseconds after every homing step, 0 for DefaultZeroingSettleInterval
// powerStage: Optional driver enable stage, nil if the coils are always powered
// runningDuty: Power stage duty while motion is commanded
// holdingDuty: Power stage duty while the motor is stopped
// logger: The logger to log messages
//
// Returns:
//
// An instance of Motor and an error if any occurred during initialization
func NewMotor(
	travelLimit uint16,
	line0 OutputLine,
	line1 OutputLine,
	line2 OutputLine,
	line3 OutputLine,
	profile *AccelerationProfile,
	zeroingSettleInterval uint32,
	powerStage PowerStage,
	runningDuty float64,
	holdingDuty float64,
	logger tinygologger.Logger,
) (*Motor, tinygoerrors.ErrorCode) {
	// Check if the travel limit is zero
	if travelLimit == 0 {
		return nil, ErrorCodeStepperZeroTravelLimit
	}

	// Check the output lines
	if line0 == nil || line1 == nil || line2 == nil || line3 == nil {
		return nil, ErrorCodeStepperNilOutputLine
	}

	// Check the power stage duties
	if runningDuty < 0 || runningDuty > 1 {
		return nil, ErrorCodeStepperInvalidRunningDuty
	}
	if holdingDuty < 0 || holdingDuty > 1 {
		return nil, ErrorCodeStepperInvalidHoldingDuty
	}

	if profile == nil {
		profile = DefaultAccelerationProfile
	} else if profile.Len() == 0 {
		return nil, ErrorCodeStepperInvalidAccelerationProfile
	}
	if zeroingSettleInterval == 0 {
		zeroingSettleInterval = DefaultZeroingSettleInterval
	}

	motor := &Motor{
		travelLimit:           travelLimit,
		lines:                 [LineCount]OutputLine{line0, line1, line2, line3},
		direction:             DirectionStopped,
		stopped:               true,
		profile:               profile,
		zeroingSettleInterval: zeroingSettleInterval,
		powerStage:            powerStage,
		runningDuty:           runningDuty,
		holdingDuty:           holdingDuty,
		logger:                logger,
	}

	// Start with the holding current
	if code := motor.setPowerDuty(holdingDuty); code != tinygoerrors.ErrorCodeNil {
		return nil, code
	}

	if logger != nil {
		logger.AddMessageWithUint32(
			newMotorPrefix,
			uint32(travelLimit),
			true,
			true,
			false,
		)
		logger.Debug()
	}

	return motor, tinygoerrors.ErrorCodeNil
}

// setPowerDuty sets the power stage duty, if there is a power stage
func (m *Motor) setPowerDuty(duty float64) tinygoerrors.ErrorCode {
	if m.powerStage == nil {
		return tinygoerrors.ErrorCodeNil
	}
	return m.powerStage.SetDuty(duty)
}

// commit writes the current phase pattern to the output lines, bit 0 to line 0.
// It stops at the first line that fails and returns its error code.
func (m *Motor) commit() tinygoerrors.ErrorCode {
	pattern := phasePattern(m.phase)
	for i, line := range m.lines {
		if code := line.Set(phaseLevel(pattern, i)); code != tinygoerrors.ErrorCodeNil {
			m.logLineFailure(i, code)
			return code
		}
	}
	return tinygoerrors.ErrorCodeNil
}

// logLineFailure logs the line that failed and its error code
func (m *Motor) logLineFailure(line int, code tinygoerrors.ErrorCode) {
	if m.logger == nil {
		return
	}
	m.logger.AddMessageWithUint32(
		lineFailurePrefix,
		uint32(line),
		true,
		true,
		false,
	)
	m.logger.Debug()
	m.logger.AddMessageWithErrorCode(
		lineFailureCodePrefix,
		code,
		true,
		true,
	)
	m.logger.Debug()
}

// StepUp moves the motor one step forward. It is a no-op at the last position.
//
// Returns:
//
// The error code of the first output line that failed, otherwise nil.
func (m *Motor) StepUp() tinygoerrors.ErrorCode {
	if uint32(m.position)+1 >= uint32(m.travelLimit) {
		return tinygoerrors.ErrorCodeNil
	}

	position, phase := m.position, m.phase
	m.position++
	m.phase = nextPhase(m.phase)
	if code := m.commit(); code != tinygoerrors.ErrorCodeNil {
		m.position, m.phase = position, phase
		return code
	}

	// A jog while stopped keeps the motor stopped at its new position
	if m.stopped {
		m.target = m.position
	}
	return tinygoerrors.ErrorCodeNil
}

// StepDown moves the motor one step backward. It is a no-op at position zero.
//
// Returns:
//
// The error code of the first output line that failed, otherwise nil.
func (m *Motor) StepDown() tinygoerrors.ErrorCode {
	if m.position == 0 {
		return tinygoerrors.ErrorCodeNil
	}

	position, phase := m.position, m.phase
	m.position--
	m.phase = previousPhase(m.phase)
	if code := m.commit(); code != tinygoerrors.ErrorCodeNil {
		m.position, m.phase = position, phase
		return code
	}

	if m.stopped {
		m.target = m.position
	}
	return tinygoerrors.ErrorCodeNil
}

// Zero drives the motor back against its end stop to establish the zero position.
// It assumes the motor is at the far end and issues one reverse step per position of
// travel, each followed by the settle delay. It blocks until the sweep is done.
//
// Parameters:
//
// delayer: The blocking delay used between homing steps, nil for SleepDelayer
//
// Returns:
//
// The error code of the first output line that failed, otherwise nil.
func (m *Motor) Zero(delayer Delayer) tinygoerrors.ErrorCode {
	if delayer == nil {
		delayer = SleepDelayer{}
	}

	if m.logger != nil {
		m.logger.AddMessageWithUint32(
			zeroStartPrefix,
			uint32(m.travelLimit),
			true,
			true,
			false,
		)
		m.logger.Debug()
	}

	m.homed = false
	if code := m.setPowerDuty(m.runningDuty); code != tinygoerrors.ErrorCodeNil {
		return code
	}

	m.position = m.travelLimit - 1
	for i := uint32(0); i < uint32(m.travelLimit); i++ {
		// The sweep over-travels on purpose, so the phase keeps moving at position zero
		phase := m.phase
		m.phase = previousPhase(m.phase)
		if code := m.commit(); code != tinygoerrors.ErrorCodeNil {
			m.phase = phase
			if m.logger != nil {
				m.logger.AddMessageWithUint32(
					zeroAbortPrefix,
					i,
					true,
					true,
					false,
				)
				m.logger.Debug()
			}
			return code
		}
		if m.position > 0 {
			m.position--
		}
		delayer.DelayMicroseconds(m.zeroingSettleInterval)
	}

	m.position = 0
	m.target = 0
	m.velocity = 0
	m.direction = DirectionStopped
	m.stopped = true
	m.stepsTaken = 0
	m.lastStepTime = time.Time{}
	m.hasStepped = false
	m.homed = true

	if m.logger != nil {
		m.logger.AddMessage(
			zeroDonePrefix,
			true,
		)
		m.logger.Debug()
	}

	return m.setPowerDuty(m.holdingDuty)
}

// directionTo returns the direction to move from the current position to the given one
func (m *Motor) directionTo(target uint16) Direction {
	switch {
	case target > m.position:
		return DirectionForward
	case target < m.position:
		return DirectionReverse
	default:
		return DirectionStopped
	}
}

// SetTarget sets the destination of advance-driven motion.
//
// Parameters:
//
// target: The destination position, lower than the travel limit
//
// Returns:
//
// An error if the motor is not homed, the target is out of range or the power stage failed, otherwise nil.
func (m *Motor) SetTarget(target uint16) tinygoerrors.ErrorCode {
	if !m.homed {
		return ErrorCodeStepperNotHomed
	}
	if target >= m.travelLimit {
		return ErrorCodeStepperTargetOutOfRange
	}

	m.target = target
	if m.logger != nil {
		m.logger.AddMessageWithUint32(
			setTargetPrefix,
			uint32(target),
			true,
			true,
			false,
		)
		m.logger.Debug()
	}

	// Advance settles the motor if it is still moving, otherwise it stops here
	if target == m.position {
		if m.velocity == 0 && !m.stopped {
			return m.settle()
		}
		return tinygoerrors.ErrorCodeNil
	}

	// A new direction restarts the ramp
	direction := m.directionTo(target)
	if direction != m.direction {
		m.stepsTaken = 0
		m.logDirection(direction)
	}
	m.direction = direction

	if m.stopped {
		m.stopped = false
		return m.setPowerDuty(m.runningDuty)
	}
	return tinygoerrors.ErrorCodeNil
}

// logDirection logs a change of the commanded direction
func (m *Motor) logDirection(direction Direction) {
	if m.logger == nil {
		return
	}
	m.logger.AddMessage(directionPrefix, false)
	m.logger.AddMessage([]byte(direction.String()), true)
	m.logger.Debug()
}

// settle stops the motor at the current position
func (m *Motor) settle() tinygoerrors.ErrorCode {
	m.target = m.position
	m.velocity = 0
	m.direction = DirectionStopped
	m.stopped = true
	m.stepsTaken = 0

	if m.logger != nil {
		m.logger.AddMessageWithUint32(
			stoppedPrefix,
			uint32(m.position),
			true,
			true,
			false,
		)
		m.logger.Debug()
	}

	return m.setPowerDuty(m.holdingDuty)
}

// Advance moves the motor towards its target. It issues at most one step per call,
// once the interval of the current ramp tier has elapsed since the previous step, and
// never blocks.
//
// Parameters:
//
// now: The current time, used to pace the steps
//
// Returns:
//
// The error code of the first output line that failed, otherwise nil.
func (m *Motor) Advance(now time.Time) tinygoerrors.ErrorCode {
	if m.position == m.target {
		if !m.stopped || m.velocity != 0 {
			return m.settle()
		}
		return tinygoerrors.ErrorCodeNil
	}

	direction := m.directionTo(m.target)
	if direction != m.direction {
		m.direction = direction
		m.stepsTaken = 0
		m.logDirection(direction)
	}
	m.stopped = false

	// Ramp up from the start of the motion and back down before the target
	var remaining uint32
	if direction == DirectionForward {
		remaining = uint32(m.target - m.position)
	} else {
		remaining = uint32(m.position - m.target)
	}
	tier := m.profile.TierFor(m.stepsTaken, remaining)
	m.velocity = tier + 1

	interval := m.profile.Interval(tier)
	if m.hasStepped && now.Sub(m.lastStepTime) < interval {
		return tinygoerrors.ErrorCodeNil
	}

	var code tinygoerrors.ErrorCode
	if direction == DirectionForward {
		code = m.StepUp()
	} else {
		code = m.StepDown()
	}
	if code != tinygoerrors.ErrorCodeNil {
		return code
	}
	m.lastStepTime = now
	m.hasStepped = true
	m.stepsTaken++

	if m.position == m.target {
		return m.settle()
	}
	return tinygoerrors.ErrorCodeNil
}

// Stop stops the motor at its current position, dropping the remaining motion.
//
// Returns:
//
// An error if the power stage could not be set to the holding duty, otherwise nil.
func (m *Motor) Stop() tinygoerrors.ErrorCode {
	return m.settle()
}

// Release drives all the output lines low, de-energizing the coils.
//
// Returns:
//
// The error code of the first output line that failed, otherwise nil.
func (m *Motor) Release() tinygoerrors.ErrorCode {
	for i, line := range m.lines {
		if code := line.Set(LevelLow); code != tinygoerrors.ErrorCodeNil {
			m.logLineFailure(i, code)
			return code
		}
	}
	return tinygoerrors.ErrorCodeNil
}

// Energize writes the current phase pattern to the output lines again.
//
// Returns:
//
// The error code of the first output line that failed, otherwise nil.
func (m *Motor) Energize() tinygoerrors.ErrorCode {
	return m.commit()
}

// TravelLimit returns the total addressable steps
func (m *Motor) TravelLimit() uint16 {
	return m.travelLimit
}

// Position returns the absolute position in steps from the zero reference
func (m *Motor) Position() uint16 {
	return m.position
}

// Target returns the destination of advance-driven motion
func (m *Motor) Target() uint16 {
	return m.target
}

// Phase returns the current index in the commutation cycle
func (m *Motor) Phase() uint8 {
	return m.phase
}

// Direction returns the commanded motion sense
func (m *Motor) Direction() Direction {
	return m.direction
}

// Velocity returns the current ramp tier ordinal, 0 when stopped
func (m *Motor) Velocity() uint8 {
	return m.velocity
}

// IsStopped returns true if no motion is commanded or in progress
func (m *Motor) IsStopped() bool {
	return m.stopped
}

// IsHomed returns true if the last Zero completed
func (m *Motor) IsHomed() bool {
	return m.homed
}
