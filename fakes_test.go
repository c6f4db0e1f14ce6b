package tinygo_stepper

import (
	tinygoerrors "github.com/ralvarezdev/tinygo-errors"
)

const (
	// errorCodeTestLineFault is the code returned by a faulty fake line
	errorCodeTestLineFault tinygoerrors.ErrorCode = 9001

	// errorCodeTestPowerFault is the code returned by a faulty fake power stage
	errorCodeTestPowerFault tinygoerrors.ErrorCode = 9002
)

type (
	// lineWrite is a single write recorded by fakeBus
	lineWrite struct {
		line  int
		level Level
	}

	// fakeBus records the writes of the 4 fake lines of a motor
	fakeBus struct {
		writes []lineWrite
		levels [LineCount]Level
		failAt int // 1-based index of the write that fails, 0 never fails
	}

	// fakeLine is an OutputLine writing through a fakeBus
	fakeLine struct {
		bus   *fakeBus
		index int
	}

	// fakeDelayer records the requested delays
	fakeDelayer struct {
		delays []uint32
	}

	// fakePowerStage records the requested duties
	fakePowerStage struct {
		duties   []float64
		failCode tinygoerrors.ErrorCode
	}
)

func (l *fakeLine) Set(level Level) tinygoerrors.ErrorCode {
	b := l.bus
	b.writes = append(b.writes, lineWrite{line: l.index, level: level})
	if b.failAt != 0 && len(b.writes) == b.failAt {
		return errorCodeTestLineFault
	}
	b.levels[l.index] = level
	return tinygoerrors.ErrorCodeNil
}

// commits returns the number of complete phase commits seen by the bus
func (b *fakeBus) commits() int {
	n := 0
	for _, w := range b.writes {
		if w.line == LineCount-1 {
			n++
		}
	}
	return n
}

// pattern returns the levels currently held by the lines packed as a phase pattern
func (b *fakeBus) pattern() uint8 {
	var p uint8
	for i, level := range b.levels {
		if level == LevelHigh {
			p |= 1 << i
		}
	}
	return p
}

func (d *fakeDelayer) DelayMicroseconds(us uint32) {
	d.delays = append(d.delays, us)
}

func (p *fakePowerStage) SetDuty(duty float64) tinygoerrors.ErrorCode {
	p.duties = append(p.duties, duty)
	return p.failCode
}

// newFakeMotor creates a motor over fake lines with the default configuration
func newFakeMotor(travelLimit uint16) (*Motor, *fakeBus) {
	bus := &fakeBus{}
	motor, code := NewMotor(
		travelLimit,
		&fakeLine{bus: bus, index: 0},
		&fakeLine{bus: bus, index: 1},
		&fakeLine{bus: bus, index: 2},
		&fakeLine{bus: bus, index: 3},
		nil,
		0,
		nil,
		1,
		0,
		nil,
	)
	if code != tinygoerrors.ErrorCodeNil {
		panic("failed to create fake motor")
	}
	return motor, bus
}

// newHomedMotor creates a fake motor that has already been zeroed, with a clean bus
func newHomedMotor(travelLimit uint16) (*Motor, *fakeBus) {
	motor, bus := newFakeMotor(travelLimit)
	if code := motor.Zero(&fakeDelayer{}); code != tinygoerrors.ErrorCodeNil {
		panic("failed to zero fake motor")
	}
	bus.writes = nil
	return motor, bus
}
