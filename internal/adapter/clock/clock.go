package clock

import (
	"time"

	"github.com/zcartvn/zcart/internal/core/port"
)

type systemClock struct{}

// New returns the wall clock. Tests substitute the port with a mock.
func New() port.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
