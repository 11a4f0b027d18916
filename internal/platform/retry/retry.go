// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package retry runs an operation with exponential backoff between attempts.

The loop is explicit: one initial attempt followed by up to Policy.Retries
retries, sleeping InitialDelay, then InitialDelay*Multiplier, and so on.
Sleeping honours context cancellation.
*/
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy describes how many times and how patiently an operation is retried.
type Policy struct {
	// Retries is the number of attempts after the first one.
	Retries int
	// InitialDelay is the wait before the first retry.
	InitialDelay time.Duration
	// Multiplier grows the delay after each retry.
	Multiplier float64
	// Sleep waits for d or until ctx is done. Nil uses a timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Default is the metadata client policy: 3 retries starting at 1s, x1.5.
func Default() Policy {
	return Policy{
		Retries:      3,
		InitialDelay: time.Second,
		Multiplier:   1.5,
	}
}

// Delays lists the waits the policy performs between attempts.
func (p Policy) Delays() []time.Duration {
	delays := make([]time.Duration, 0, max(p.Retries, 0))
	delay := p.InitialDelay
	for range p.Retries {
		delays = append(delays, delay)
		delay = time.Duration(float64(delay) * p.Multiplier)
	}
	return delays
}

/*
Do calls fn until it succeeds or the policy is exhausted.

Parameters:
  - ctx: cancels both the pending sleep and the operation
  - policy: attempt budget and backoff
  - fn: the operation

Returns:
  - T: the first successful result
  - error: the last failure, or the context error if cancelled while waiting
*/
func Do[T any](ctx context.Context, policy Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	sleep := policy.Sleep
	if sleep == nil {
		sleep = timerSleep
	}

	var (
		result T
		err    error
	)

	delays := policy.Delays()
	for attempt := 0; ; attempt++ {
		result, err = fn(ctx)
		if err == nil {
			return result, nil
		}

		if attempt >= len(delays) {
			break
		}

		if sleepErr := sleep(ctx, delays[attempt]); sleepErr != nil {
			var zero T
			return zero, fmt.Errorf("retry: interrupted after %d attempts: %w", attempt+1, sleepErr)
		}
	}

	var zero T
	return zero, fmt.Errorf("retry: gave up after %d attempts: %w", len(delays)+1, err)
}

func timerSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
