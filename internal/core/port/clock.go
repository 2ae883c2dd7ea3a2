package port

import "time"

// Clock exists so time-window and timeout logic stays testable.
//
//go:generate mockgen -source=clock.go -destination=mock/clock.go -package=mock
type Clock interface {
	Now() time.Time
}
