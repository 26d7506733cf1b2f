package service

import (
	"context"
	"sync"
)

// Settled is the outcome of one call in a SettledMap batch.
type Settled[R any] struct {
	Value R
	Err   error
}

func (s Settled[R]) OK() bool { return s.Err == nil }

// SettledMap calls fn for every item concurrently and waits for all of
// them. A failing call does not cancel its siblings. Results keep the
// order of items.
func SettledMap[T, R any](ctx context.Context, items []T, fn func(context.Context, T) (R, error)) []Settled[R] {
	out := make([]Settled[R], len(items))
	wg := sync.WaitGroup{}
	for i, item := range items {
		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			v, err := fn(ctx, item)
			out[i] = Settled[R]{Value: v, Err: err}
		}(i, item)
	}
	wg.Wait()
	return out
}
