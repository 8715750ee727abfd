package geolocation

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultTimeout bounds how long a clock-in waits for a position fix.
const DefaultTimeout = 5 * time.Second

var (
	ErrPermissionDenied = errors.New("location permission denied")
	ErrTimeout          = errors.New("timed out waiting for location")
	ErrUnavailable      = errors.New("location unavailable")
)

type Position struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64 // meters, 0 when unknown
}

// Locator provides the device's current position.
type Locator interface {
	CurrentPosition(ctx context.Context, highAccuracy bool) (Position, error)
}

// Capture asks the locator for a fix and gives up after timeout.
// Any failure is reported as one of the package errors.
func Capture(ctx context.Context, locator Locator, timeout time.Duration, highAccuracy bool) (Position, error) {
	if locator == nil {
		return Position{}, ErrUnavailable
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		pos Position
		err error
	}
	done := make(chan result, 1)
	go func() {
		pos, err := locator.CurrentPosition(ctx, highAccuracy)
		done <- result{pos, err}
	}()

	select {
	case <-ctx.Done():
		return Position{}, ErrTimeout
	case res := <-done:
		switch {
		case res.err == nil:
		case errors.Is(res.err, ErrPermissionDenied):
			return Position{}, ErrPermissionDenied
		case errors.Is(res.err, context.DeadlineExceeded), errors.Is(res.err, ErrTimeout):
			return Position{}, ErrTimeout
		default:
			return Position{}, fmt.Errorf("%w: %v", ErrUnavailable, res.err)
		}
		if res.pos.Latitude < -90 || res.pos.Latitude > 90 || res.pos.Longitude < -180 || res.pos.Longitude > 180 {
			return Position{}, fmt.Errorf("%w: coordinates out of range", ErrUnavailable)
		}
		return res.pos, nil
	}
}

// StaticLocator always reports the same fix. A nil Position means the user denied access.
type StaticLocator struct {
	Position *Position
}

func (s StaticLocator) CurrentPosition(ctx context.Context, highAccuracy bool) (Position, error) {
	if s.Position == nil {
		return Position{}, ErrPermissionDenied
	}
	return *s.Position, nil
}
