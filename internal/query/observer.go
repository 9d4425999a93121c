package query

import "time"

// Observer receives one event per handled request, typically to update
// metrics.
type Observer interface {
	ObserveQuery(transport, format string, replies int, err error, elapsed time.Duration)
}

// NopObserver discards every event.
type NopObserver struct{}

func (NopObserver) ObserveQuery(string, string, int, error, time.Duration) {}
