//go:build tinygo

package tinygo_stepper

import (
	"machine"

	tinygoerrors "github.com/ralvarezdev/tinygo-errors"
	tinygopwm "github.com/ralvarezdev/tinygo-pwm"
)

type (
	// MachineLine is an OutputLine backed by a TinyGo machine pin
	MachineLine struct {
		pin machine.Pin
	}

	// PWMPowerStage is a PowerStage driving the enable input of the motor driver with PWM
	PWMPowerStage struct {
		pwm     tinygopwm.PWM
		channel uint8
		period  uint32
	}
)

// NewMachineLine configures the pin as an output and creates a new instance of MachineLine
func NewMachineLine(pin machine.Pin) *MachineLine {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &MachineLine{pin: pin}
}

// Set drives the pin to the given level. Machine pins cannot fail to be driven.
func (l *MachineLine) Set(level Level) tinygoerrors.ErrorCode {
	l.pin.Set(level == LevelHigh)
	return tinygoerrors.ErrorCodeNil
}

// NewPWMPowerStage creates a new instance of PWMPowerStage
//
// Parameters:
//
// pwm: The PWM interface to control the enable input
// pin: The pin connected to the enable input
// frequency: Frequency for the PWM signal
//
// Returns:
//
// An instance of PWMPowerStage and an error if any occurred during initialization
func NewPWMPowerStage(
	pwm tinygopwm.PWM,
	pin machine.Pin,
	frequency uint16,
) (*PWMPowerStage, tinygoerrors.ErrorCode) {
	// Check if the frequency is zero
	if frequency == 0 {
		return nil, ErrorCodeStepperZeroFrequency
	}

	// Configure the PWM
	period := 1e9 / float64(frequency)
	if err := pwm.Configure(
		machine.PWMConfig{
			Period: uint64(period),
		},
	); err != nil {
		return nil, ErrorCodeStepperFailedToConfigurePWM
	}

	// Get the channel from the pin
	channel, err := pwm.Channel(pin)
	if err != nil {
		return nil, ErrorCodeStepperFailedToGetPWMChannel
	}

	return &PWMPowerStage{
		pwm:     pwm,
		channel: channel,
		period:  uint32(period),
	}, tinygoerrors.ErrorCodeNil
}

// SetDuty sets the PWM duty of the enable input, between 0 and 1
func (p *PWMPowerStage) SetDuty(duty float64) tinygoerrors.ErrorCode {
	if duty < 0 || duty > 1 {
		return ErrorCodeStepperFailedToSetPowerDuty
	}
	tinygopwm.SetDuty(p.pwm, p.channel, uint32(float64(p.period)*duty), p.period)
	return tinygoerrors.ErrorCodeNil
}
