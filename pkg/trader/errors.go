package trader

import (
	"github.com/pkg/errors"

	"github.com/ladderbot/ladderbot/pkg/util/backoff"
)

var (
	// ErrZeroStopDistance is the sizing error: entry and stop-loss are the same price.
	ErrZeroStopDistance = errors.New("stop-loss distance is zero")

	// ErrDeadlineExceeded is the "not completed" result of every deadline-bound loop.
	ErrDeadlineExceeded = backoff.ErrDeadlineExceeded

	// ErrNothingToFlatten is returned when a flatten is requested for a zero position amount.
	ErrNothingToFlatten = errors.New("nothing to flatten")
)
