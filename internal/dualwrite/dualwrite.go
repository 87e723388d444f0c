// Package dualwrite executes mutations that span two independently failing
// stores (the filesystem and the database) as an ordered sequence of steps,
// each paired with a best-effort compensation. There is no shared transaction
// across the stores: when a step fails, the compensations of the steps that
// already ran are applied in reverse order, and the caller receives the
// original error. Compensation failures are logged and swallowed.
package dualwrite

import (
	"context"
	"log/slog"
)

// Step is one side effect in a dual-write plan. Undo reverses Do after a
// later step fails; a nil Undo marks the step as irreversible (or as an
// accepted gap).
type Step struct {
	Name string
	Do   func(ctx context.Context) error
	Undo func(ctx context.Context) error
}

// Run executes steps in order. On the first Do error it unwinds completed
// steps in reverse and returns that error unchanged, so callers can classify
// it (not-found, conflict, ...) with errors.Is/As.
func Run(ctx context.Context, logger *slog.Logger, steps ...Step) error {
	for i, step := range steps {
		err := step.Do(ctx)
		if err == nil {
			continue
		}

		for j := i - 1; j >= 0; j-- {
			if steps[j].Undo == nil {
				continue
			}
			if undoErr := steps[j].Undo(ctx); undoErr != nil {
				logger.Warn("compensation failed",
					"step", steps[j].Name,
					"failed_step", step.Name,
					"error", undoErr,
				)
			}
		}

		return err
	}

	return nil
}
