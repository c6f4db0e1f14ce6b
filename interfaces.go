package tinygo_stepper

import (
	"time"

	tinygoerrors "github.com/ralvarezdev/tinygo-errors"
)

type (
	// OutputLine is a single digital output driving one motor phase. A failed write
	// returns the platform error code describing the failure.
	OutputLine interface {
		Set(level Level) tinygoerrors.ErrorCode
	}

	// Delayer is a blocking microsecond sleep, only used while homing.
	Delayer interface {
		DelayMicroseconds(us uint32)
	}

	// PowerStage is an optional driver enable stage whose duty sets the coil current.
	PowerStage interface {
		SetDuty(duty float64) tinygoerrors.ErrorCode
	}

	// Handler is the interface to handle stepper motor operations
	Handler interface {
		StepUp() tinygoerrors.ErrorCode
		StepDown() tinygoerrors.ErrorCode
		Zero(delayer Delayer) tinygoerrors.ErrorCode
		SetTarget(target uint16) tinygoerrors.ErrorCode
		Advance(now time.Time) tinygoerrors.ErrorCode
		Stop() tinygoerrors.ErrorCode
		Release() tinygoerrors.ErrorCode
		Energize() tinygoerrors.ErrorCode
		Position() uint16
		Target() uint16
		Phase() uint8
		Direction() Direction
		Velocity() uint8
		IsStopped() bool
		IsHomed() bool
	}
)
