package spoonacular

import "sync"

// settled holds the outcome of one concurrently executed task.
type settled[T any] struct {
	Value T
	Err   error
}

// settleAll runs do for indices 0..n-1 concurrently and waits for all of
// them. Unlike a fail-fast group, every task runs to completion and each
// outcome is reported in its slot, so callers can partition successes from
// failures without per-item recover blocks.
func settleAll[T any](n int, do func(i int) (T, error)) []settled[T] {
	results := make([]settled[T], n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			value, err := do(i)
			results[i] = settled[T]{Value: value, Err: err}
		}(i)
	}
	wg.Wait()
	return results
}
