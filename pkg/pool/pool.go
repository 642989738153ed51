package pool

import (
	"context"
	"sync"
)

// WorkerFunc processes one item and returns its result.
type WorkerFunc[T, R any] func(ctx context.Context, item T) (R, error)

type task[T any] struct {
	index int
	item  T
}

// Map runs fn over items with at most numWorkers goroutines. results[i] holds the
// result for items[i] (the zero value when fn failed or never ran). Errors are
// returned in completion order. Once ctx is cancelled no new items are started.
func Map[T, R any](ctx context.Context, items []T, numWorkers int, fn WorkerFunc[T, R]) ([]R, []error) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	results := make([]R, len(items))

	var wg sync.WaitGroup
	taskChan := make(chan task[T], numWorkers)
	errChan := make(chan error, len(items))

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range taskChan {
				if ctx.Err() != nil {
					continue
				}
				res, err := fn(ctx, t.item)
				if err != nil {
					errChan <- err
					continue
				}
				results[t.index] = res
			}
		}()
	}

OUT:
	for i, item := range items {
		select {
		case taskChan <- task[T]{index: i, item: item}:
		case <-ctx.Done():
			break OUT
		}
	}
	close(taskChan)

	wg.Wait()
	close(errChan)

	var allErrors []error
	for err := range errChan {
		allErrors = append(allErrors, err)
	}
	return results, allErrors
}
