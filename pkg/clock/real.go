package clock

import (
	"time"

	"github.com/aretw0/vitrine/pkg/ports"
)

// Real is the wall-clock implementation backed by time.AfterFunc.
type Real struct{}

// New returns the wall clock.
func New() Real {
	return Real{}
}

// Now returns time.Now().
func (Real) Now() time.Time {
	return time.Now()
}

// AfterFunc wraps time.AfterFunc.
func (Real) AfterFunc(d time.Duration, f func()) ports.Timer {
	return time.AfterFunc(d, f)
}

var _ ports.Clock = Real{}
