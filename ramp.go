package tinygo_stepper

import (
	"time"

	tinygoerrors "github.com/ralvarezdev/tinygo-errors"
)

type (
	// RampTier is a single entry of an acceleration profile. Once Steps steps have
	// been taken since the motion started, the motor may step every Interval.
	RampTier struct {
		Steps    uint16
		Interval time.Duration
	}

	// AccelerationProfile is an ordered ramp table mapping accumulated steps to the
	// minimum interval between steps.
	AccelerationProfile struct {
		tiers []RampTier
	}
)

var (
	// DefaultAccelerationProfile is the ramp used when no profile is given
	DefaultAccelerationProfile = &AccelerationProfile{
		tiers: []RampTier{
			{Steps: 20, Interval: 3000 * time.Microsecond},
			{Steps: 50, Interval: 1500 * time.Microsecond},
			{Steps: 100, Interval: 1000 * time.Microsecond},
			{Steps: 150, Interval: 800 * time.Microsecond},
			{Steps: 300, Interval: 600 * time.Microsecond},
		},
	}
)

// NewAccelerationProfile creates a new acceleration profile
//
// Parameters:
//
// tiers: The ramp tiers, ordered by strictly increasing step thresholds and strictly decreasing intervals
//
// Returns:
//
// An instance of AccelerationProfile and an error if the tiers do not form a ramp
func NewAccelerationProfile(tiers ...RampTier) (
	*AccelerationProfile,
	tinygoerrors.ErrorCode,
) {
	if len(tiers) == 0 || len(tiers) > 0xFF {
		return nil, ErrorCodeStepperInvalidAccelerationProfile
	}

	for i, tier := range tiers {
		if tier.Interval <= 0 {
			return nil, ErrorCodeStepperInvalidAccelerationProfile
		}
		if i == 0 {
			continue
		}
		if tier.Steps <= tiers[i-1].Steps || tier.Interval >= tiers[i-1].Interval {
			return nil, ErrorCodeStepperInvalidAccelerationProfile
		}
	}

	// Copy the tiers so the caller cannot mutate the ramp afterwards
	copied := make([]RampTier, len(tiers))
	copy(copied, tiers)
	return &AccelerationProfile{tiers: copied}, tinygoerrors.ErrorCodeNil
}

// Len returns the number of tiers in the profile
func (p *AccelerationProfile) Len() int {
	return len(p.tiers)
}

// Tier returns the index of the tier to use after the given number of ramp steps.
// It is the last tier whose threshold has been reached, or the first one when no
// threshold has been reached yet.
func (p *AccelerationProfile) Tier(rampSteps uint32) uint8 {
	var index uint8
	for i, tier := range p.tiers {
		if rampSteps < uint32(tier.Steps) {
			break
		}
		index = uint8(i)
	}
	return index
}

// Interval returns the interval for the tier at the given index
func (p *AccelerationProfile) Interval(tier uint8) time.Duration {
	if int(tier) >= len(p.tiers) {
		return p.tiers[len(p.tiers)-1].Interval
	}
	return p.tiers[tier].Interval
}

// TierFor returns the tier for the next step of a move, given the steps taken since
// the motion started and the steps remaining to the target. The ramp down mirrors
// the ramp up so the motor slows again before it arrives.
func (p *AccelerationProfile) TierFor(taken, remaining uint32) uint8 {
	rampSteps := taken
	if remaining > 0 && remaining-1 < rampSteps {
		rampSteps = remaining - 1
	}
	return p.Tier(rampSteps)
}
