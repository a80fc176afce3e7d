package account

import (
	"context"

	"github.com/styledecor/styledecor/internal/domain"
)

// sagaStep is one unit of a multi-step commit. undo reverses run and may be
// nil for the final step.
type sagaStep struct {
	name string
	run  func(ctx context.Context) error
	undo func(ctx context.Context) error
}

// runSaga executes steps in order. On failure it undoes the completed steps
// in reverse; a failed undo surfaces as Internal instead of being dropped.
func runSaga(ctx context.Context, steps []sagaStep) error {
	var done []sagaStep
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			for i := len(done) - 1; i >= 0; i-- {
				if done[i].undo == nil {
					continue
				}
				if undoErr := done[i].undo(ctx); undoErr != nil {
					return domain.Wrap(domain.KindInternal,
						"compensation for step "+done[i].name+" failed after step "+step.name+" error: "+err.Error(),
						undoErr)
				}
			}
			return err
		}
		done = append(done, step)
	}
	return nil
}
