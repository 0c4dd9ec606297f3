package services

import (
	"context"
	"time"
)

// Op names a service operation for latency purposes.
type Op string

const (
	OpGetAll  Op = "get_all"
	OpGetByID Op = "get_by_id"
	OpCreate  Op = "create"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
	OpSearch  Op = "search"
	OpLookup  Op = "lookup"
)

var baseDelays = map[Op]time.Duration{
	OpGetAll:  300 * time.Millisecond,
	OpGetByID: 200 * time.Millisecond,
	OpCreate:  400 * time.Millisecond,
	OpUpdate:  350 * time.Millisecond,
	OpDelete:  300 * time.Millisecond,
	OpSearch:  250 * time.Millisecond,
	OpLookup:  200 * time.Millisecond,
}

// Latency simulates the round trip of a remote backend. The zero value
// does not wait at all.
type Latency struct {
	delays map[Op]time.Duration
}

// NewLatency scales the default per-operation delays. A scale of zero or
// less disables waiting.
func NewLatency(scale float64) Latency {
	if scale <= 0 {
		return Latency{}
	}
	delays := make(map[Op]time.Duration, len(baseDelays))
	for op, d := range baseDelays {
		delays[op] = time.Duration(float64(d) * scale)
	}
	return Latency{delays: delays}
}

// Delay returns the wait applied to op.
func (l Latency) Delay(op Op) time.Duration {
	return l.delays[op]
}

// Wait blocks for the delay of op. It returns early with the context error
// if ctx ends first; callers must not touch the store in that case.
func (l Latency) Wait(ctx context.Context, op Op) error {
	d := l.delays[op]
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
