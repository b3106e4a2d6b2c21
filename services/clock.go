package services

import "time"

// Clock supplies the current instant. The reminder engine takes a Clock
// instead of calling time.Now directly so tests can pin time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }
