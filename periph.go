package tinygo_stepper

import (
	tinygoerrors "github.com/ralvarezdev/tinygo-errors"
	tinygologger "github.com/ralvarezdev/tinygo-logger"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

var (
	// periphLineFailurePrefix is the prefix for the log message when a periph pin write fails
	periphLineFailurePrefix = []byte("Failed to drive periph pin:")
)

type (
	// PeriphLine is an OutputLine backed by a periph GPIO output pin
	PeriphLine struct {
		pin     gpio.PinOut
		lastErr error
		logger  tinygologger.Logger
	}

	// PeriphPowerStage is a PowerStage backed by the PWM of a periph GPIO output pin
	PeriphPowerStage struct {
		pin       gpio.PinOut
		frequency physic.Frequency
	}
)

// NewPeriphLine creates a new instance of PeriphLine
//
// Parameters:
//
// pin: The periph output pin driving one motor phase
// logger: The logger to log write failures
//
// Returns:
//
// An instance of PeriphLine and an error if the pin is nil
func NewPeriphLine(
	pin gpio.PinOut,
	logger tinygologger.Logger,
) (*PeriphLine, tinygoerrors.ErrorCode) {
	if pin == nil {
		return nil, ErrorCodeStepperNilOutputLine
	}
	return &PeriphLine{pin: pin, logger: logger}, tinygoerrors.ErrorCodeNil
}

// Set drives the pin to the given level. The periph error of a failed write is kept
// and can be read with Err.
func (l *PeriphLine) Set(level Level) tinygoerrors.ErrorCode {
	out := gpio.Low
	if level == LevelHigh {
		out = gpio.High
	}
	if err := l.pin.Out(out); err != nil {
		l.lastErr = err
		if l.logger != nil {
			l.logger.AddMessage(periphLineFailurePrefix, false)
			l.logger.AddMessage([]byte(err.Error()), true)
			l.logger.Debug()
		}
		return ErrorCodeStepperFailedToDriveLine
	}
	l.lastErr = nil
	return tinygoerrors.ErrorCodeNil
}

// Err returns the periph error of the last write, nil if it succeeded
func (l *PeriphLine) Err() error {
	return l.lastErr
}

// NewPeriphPowerStage creates a new instance of PeriphPowerStage
//
// Parameters:
//
// pin: The periph output pin connected to the driver enable input
// frequency: Frequency for the PWM signal
//
// Returns:
//
// An instance of PeriphPowerStage and an error if any of the parameters are invalid
func NewPeriphPowerStage(
	pin gpio.PinOut,
	frequency physic.Frequency,
) (*PeriphPowerStage, tinygoerrors.ErrorCode) {
	if pin == nil {
		return nil, ErrorCodeStepperNilOutputLine
	}
	if frequency <= 0 {
		return nil, ErrorCodeStepperZeroFrequency
	}
	return &PeriphPowerStage{
		pin:       pin,
		frequency: frequency,
	}, tinygoerrors.ErrorCodeNil
}

// SetDuty sets the PWM duty of the enable pin, between 0 and 1
func (p *PeriphPowerStage) SetDuty(duty float64) tinygoerrors.ErrorCode {
	if duty < 0 || duty > 1 {
		return ErrorCodeStepperFailedToSetPowerDuty
	}
	if err := p.pin.PWM(gpio.Duty(duty*float64(gpio.DutyMax)), p.frequency); err != nil {
		return ErrorCodeStepperFailedToSetPowerDuty
	}
	return tinygoerrors.ErrorCodeNil
}
