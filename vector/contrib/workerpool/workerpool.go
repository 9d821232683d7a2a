// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent worker pool that splits array
// work into vector-aligned chunks. A Pool is created once and reused across
// many bulk operations, so no goroutines are spawned per call.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	err := pool.ParallelFor(len(a), s.LaneCount(), func(start, end int) error {
//	    return process(a[start:end])
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. Workers are spawned once at creation
// and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with numWorkers workers. If numWorkers <= 0, uses
// GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the pool. Pending work completes. Calling Close more
// than once is safe; a closed pool runs work on the calling goroutine.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// firstError keeps the first error reported by any chunk.
type firstError struct {
	mu  sync.Mutex
	err error
}

func (f *firstError) set(err error) {
	if err == nil {
		return
	}
	f.mu.Lock()
	if f.err == nil {
		f.err = err
	}
	f.mu.Unlock()
}

// alignUp rounds n up to a multiple of align.
func alignUp(n, align int) int {
	return (n + align - 1) / align * align
}

// ParallelFor splits [0, n) into one contiguous chunk per worker and calls
// fn(start, end) for each. Every chunk boundary except n is a multiple of
// align, so only the last chunk can hold a partial vector. It blocks until
// all chunks finish and returns the first error.
func (p *Pool) ParallelFor(n, align int, fn func(start, end int) error) error {
	if n <= 0 {
		return nil
	}
	if align <= 0 {
		align = 1
	}
	blocks := (n + align - 1) / align
	workers := min(p.numWorkers, blocks)
	if workers == 1 || p.closed.Load() {
		return fn(0, n)
	}

	chunk := alignUp((n+workers-1)/workers, align)
	var errs firstError
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		p.workC <- workItem{
			fn:      func() { errs.set(fn(start, end)) },
			barrier: &wg,
		}
	}
	wg.Wait()
	return errs.err
}

// ParallelForBatched hands out batches of batch elements through an atomic
// counter, which balances load when chunks cost different amounts. batch
// is rounded up to a multiple of align. It blocks until all batches finish
// and returns the first error; batches not yet started when an error
// occurs are skipped.
func (p *Pool) ParallelForBatched(n, batch, align int, fn func(start, end int) error) error {
	if n <= 0 {
		return nil
	}
	if align <= 0 {
		align = 1
	}
	batch = alignUp(max(batch, 1), align)
	numBatches := (n + batch - 1) / batch
	workers := min(p.numWorkers, numBatches)
	if workers == 1 || p.closed.Load() {
		for start := 0; start < n; start += batch {
			if err := fn(start, min(start+batch, n)); err != nil {
				return err
			}
		}
		return nil
	}

	var next atomic.Int64
	var failed atomic.Bool
	var errs firstError
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- workItem{
			fn: func() {
				for !failed.Load() {
					start := int(next.Add(1)-1) * batch
					if start >= n {
						return
					}
					if err := fn(start, min(start+batch, n)); err != nil {
						errs.set(err)
						failed.Store(true)
					}
				}
			},
			barrier: &wg,
		}
	}
	wg.Wait()
	return errs.err
}
