// Package generate provides the report generation task abstraction.
package generate

import (
	"context"
	"time"
)

// Generator runs the per-student report generation work for a workspace.
// The workspace state machine only cares about when the work finishes, so a
// real document engine can be substituted here without touching it.
type Generator interface {
	Generate(ctx context.Context, templateName, dataName string) error
}

// TimedGenerator simulates generation by waiting a fixed delay.
// It never produces output and never fails.
type TimedGenerator struct {
	delay time.Duration
}

// NewTimedGenerator creates a simulated generator with the given delay.
func NewTimedGenerator(delay time.Duration) *TimedGenerator {
	return &TimedGenerator{delay: delay}
}

// Generate waits for the configured delay, then reports success.
func (g *TimedGenerator) Generate(ctx context.Context, templateName, dataName string) error {
	timer := time.NewTimer(g.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
