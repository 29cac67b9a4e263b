package worker

import (
	"context"
	"sync"

	"github.com/alitto/pond/v2"
)

// DefaultPoolSize bounds concurrent fan-out tasks when no size is configured
const DefaultPoolSize = 16

// NewPool creates a bounded worker pool shared by request fan-outs
func NewPool(size int) pond.Pool {
	if size <= 0 {
		size = DefaultPoolSize
	}
	return pond.NewPool(size)
}

// FanOut runs fn for every input on pool and returns the outputs in input order,
// whatever order the tasks complete in. The first error fails the whole call
// and cancels the context handed to the remaining tasks; tasks that already
// finished keep their side effects.
func FanOut[In, Out any](ctx context.Context, pool pond.Pool, inputs []In, fn func(context.Context, In) (Out, error)) ([]Out, error) {
	out := make([]Out, len(inputs))
	if len(inputs) == 0 {
		return out, nil
	}

	groupCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// firstErr is the failure that cancelled the group, not a sibling's ctx error
	var (
		firstErr error
		failOnce sync.Once
	)

	group := pool.NewGroupContext(groupCtx)
	for i, in := range inputs {
		i, in := i, in // per-iteration copies (go 1.21 loop semantics)
		group.SubmitErr(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			v, err := fn(groupCtx, in)
			if err != nil {
				failOnce.Do(func() {
					firstErr = err
					cancel()
				})
				return err
			}
			out[i] = v
			return nil
		})
	}

	err := group.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
