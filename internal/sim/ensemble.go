package sim

import (
	"context"
	"errors"
	"sync"
)

// Ensemble runs one headless backdrop per seed, concurrently. Each run owns
// its scheduler, scene and random source, so nothing is shared between them.
type Ensemble struct {
	Width, Height int
	Frames        int
	Path          PointerPath
	// Options builds the scheduler options for a seed.
	Options func(seed int64) (Options, error)
	// Observers, if set, returns extra observers for run idx.
	Observers func(idx int) []Observer
}

// Run returns the finished schedulers in seed order. A cancelled ctx stops
// every run and is not reported as an error.
func (e *Ensemble) Run(ctx context.Context, seeds []int64) ([]*Scheduler, error) {
	results := make([]*Scheduler, len(seeds))
	errs := make([]error, len(seeds))

	var wg sync.WaitGroup
	for i, seed := range seeds {
		wg.Add(1)
		go func(idx int, seed int64) {
			defer wg.Done()
			results[idx], errs[idx] = e.runOne(ctx, idx, seed)
		}(i, seed)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

func (e *Ensemble) runOne(ctx context.Context, idx int, seed int64) (*Scheduler, error) {
	opts, err := e.Options(seed)
	if err != nil {
		return nil, err
	}

	host := NewHeadless(e.Width, e.Height, nil)
	host.Budget = e.Frames
	host.Path = e.Path
	defer host.Close()

	s := New(host, opts)
	if e.Observers != nil {
		for _, o := range e.Observers(idx) {
			s.AddObserver(o)
		}
	}
	d, err := s.Start()
	if err != nil {
		return nil, err
	}
	defer d.Release()

	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}
	return s, nil
}
