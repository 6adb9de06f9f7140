package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/vendra/vendra/internal/port/messagequeue"
	"github.com/vendra/vendra/internal/resilience"
)

// eventBreaker stops hammering the broker during an outage. Events dropped
// while the circuit is open are lost; publishing is best-effort by contract.
var eventBreaker = resilience.NewBreaker(5, 30*time.Second)

// publishEvent marshals and publishes a domain event. Publishing is
// best-effort; a queue outage never fails the request that produced the
// event.
func publishEvent(ctx context.Context, queue messagequeue.Queue, subject string, event any) {
	if queue == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("marshal event failed", "subject", subject, "error", err)
		return
	}
	err = eventBreaker.Execute(func() error {
		return queue.Publish(ctx, subject, data)
	})
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			slog.Warn("event dropped, breaker open", "subject", subject)
			return
		}
		slog.Warn("event publish failed", "subject", subject, "error", err, "breaker", eventBreaker.State())
	}
}
