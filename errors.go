package tinygo_stepper

import (
	tinygoerrors "github.com/ralvarezdev/tinygo-errors"
)

const (
	// ErrorCodeStepperStartNumber is the starting number for stepper motor-related error codes.
	ErrorCodeStepperStartNumber uint16 = 5250
)

const (
	ErrorCodeStepperZeroTravelLimit tinygoerrors.ErrorCode = tinygoerrors.ErrorCode(iota + ErrorCodeStepperStartNumber)
	ErrorCodeStepperNilOutputLine
	ErrorCodeStepperInvalidAccelerationProfile
	ErrorCodeStepperInvalidRunningDuty
	ErrorCodeStepperInvalidHoldingDuty
	ErrorCodeStepperTargetOutOfRange
	ErrorCodeStepperNotHomed
	ErrorCodeStepperFailedToDriveLine
	ErrorCodeStepperFailedToSetPowerDuty
	ErrorCodeStepperFailedToConfigurePWM
	ErrorCodeStepperFailedToGetPWMChannel
	ErrorCodeStepperZeroFrequency
)
