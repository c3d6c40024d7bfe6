package game

import "time"

type Timer interface {
	Stop() bool
}

// Clock is the only source of deferred execution in the engine.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func NewClock() Clock {
	return realClock{}
}
