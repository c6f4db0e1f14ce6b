package tinygo_stepper

import (
	"time"
)

type (
	// SleepDelayer is the default Delayer, it blocks the calling goroutine with time.Sleep
	SleepDelayer struct{}
)

// DelayMicroseconds blocks for the given number of microseconds
func (SleepDelayer) DelayMicroseconds(us uint32) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}
