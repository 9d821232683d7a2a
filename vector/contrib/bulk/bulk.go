// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package bulk applies vector operators to whole slices. Each slice is
// walked one vector at a time up to Species.LoopBound, and the remaining
// elements are handled with a single vector masked by IndexInRange, so
// no scalar tail loop is needed.
//
// Usage:
//
//	s := vector.PreferredSpecies[float32]()
//	err := bulk.Apply(s, vector.OpMul, dst, a, b)
package bulk

import (
	"fmt"

	"github.com/ajroetker/go-vector/vector"
	"github.com/ajroetker/go-vector/vector/contrib/workerpool"
)

// defaultBatchVectors is the number of vectors per batch handed out by
// ParallelApplyUnary.
const defaultBatchVectors = 64

func checkLengths(n int, others ...int) error {
	for _, m := range others {
		if m != n {
			return fmt.Errorf("%w: slices of length %d and %d", vector.ErrLengthMismatch, n, m)
		}
	}
	return nil
}

// Apply computes dst[i] = op(a[i], b[i]) for every element.
func Apply[T vector.Lanes](s *vector.Species, op *vector.Operator, dst, a, b []T) error {
	if err := checkLengths(len(dst), len(a), len(b)); err != nil {
		return err
	}
	return applyBinary(s, op, dst, a, b, 0, len(dst))
}

// ApplyUnary computes dst[i] = op(a[i]) for every element.
func ApplyUnary[T vector.Lanes](s *vector.Species, op *vector.Operator, dst, a []T) error {
	if err := checkLengths(len(dst), len(a)); err != nil {
		return err
	}
	return applyUnary(s, op, dst, a, 0, len(dst))
}

// ParallelApply is Apply with the slices split across the pool's workers.
// Chunks are aligned to the lane count of s.
func ParallelApply[T vector.Lanes](pool *workerpool.Pool, s *vector.Species, op *vector.Operator, dst, a, b []T) error {
	if err := checkLengths(len(dst), len(a), len(b)); err != nil {
		return err
	}
	return pool.ParallelFor(len(dst), s.LaneCount(), func(start, end int) error {
		return applyBinary(s, op, dst, a, b, start, end)
	})
}

// ParallelApplyUnary is ApplyUnary with batches of vectors handed out to
// the pool's workers on demand.
func ParallelApplyUnary[T vector.Lanes](pool *workerpool.Pool, s *vector.Species, op *vector.Operator, dst, a []T) error {
	if err := checkLengths(len(dst), len(a)); err != nil {
		return err
	}
	batch := defaultBatchVectors * s.LaneCount()
	return pool.ParallelForBatched(len(dst), batch, s.LaneCount(), func(start, end int) error {
		return applyUnary(s, op, dst, a, start, end)
	})
}

// Reduce folds a with an associative operator: each vector is reduced with
// ReduceLanes and the per-vector results are folded in ascending order,
// starting from the operator's identity.
func Reduce[T vector.Lanes](s *vector.Species, op *vector.Operator, a []T) (T, error) {
	acc, err := vector.Identity[T](op)
	if err != nil {
		return 0, err
	}
	fold, err := vector.BinaryFunc[T](op)
	if err != nil {
		return 0, err
	}
	n := s.LaneCount()
	bound := s.LoopBound(len(a))
	for i := 0; i < bound; i += n {
		v, err := vector.FromArray(s, a, i)
		if err != nil {
			return 0, err
		}
		r, err := v.ReduceLanes(op)
		if err != nil {
			return 0, err
		}
		acc = fold(acc, r)
	}
	if bound < len(a) {
		m, err := vector.IndexInRange[T](s, bound, len(a))
		if err != nil {
			return 0, err
		}
		v, err := vector.FromArrayMasked(s, a, bound, m)
		if err != nil {
			return 0, err
		}
		r, err := v.ReduceLanesMasked(op, m)
		if err != nil {
			return 0, err
		}
		acc = fold(acc, r)
	}
	return acc, nil
}

func applyBinary[T vector.Lanes](s *vector.Species, op *vector.Operator, dst, a, b []T, start, end int) error {
	n := s.LaneCount()
	i := start
	for ; i+n <= end; i += n {
		va, err := vector.FromArray(s, a, i)
		if err != nil {
			return err
		}
		vb, err := vector.FromArray(s, b, i)
		if err != nil {
			return err
		}
		r, err := va.Binary(op, vb)
		if err != nil {
			return err
		}
		if err := r.IntoArray(dst, i); err != nil {
			return err
		}
	}
	if i == end {
		return nil
	}
	m, err := vector.IndexInRange[T](s, i, end)
	if err != nil {
		return err
	}
	va, err := vector.FromArrayMasked(s, a, i, m)
	if err != nil {
		return err
	}
	vb, err := vector.FromArrayMasked(s, b, i, m)
	if err != nil {
		return err
	}
	r, err := va.BinaryMasked(op, vb, m)
	if err != nil {
		return err
	}
	return r.IntoArrayMasked(dst, i, m)
}

func applyUnary[T vector.Lanes](s *vector.Species, op *vector.Operator, dst, a []T, start, end int) error {
	n := s.LaneCount()
	i := start
	for ; i+n <= end; i += n {
		va, err := vector.FromArray(s, a, i)
		if err != nil {
			return err
		}
		r, err := va.Unary(op)
		if err != nil {
			return err
		}
		if err := r.IntoArray(dst, i); err != nil {
			return err
		}
	}
	if i == end {
		return nil
	}
	m, err := vector.IndexInRange[T](s, i, end)
	if err != nil {
		return err
	}
	va, err := vector.FromArrayMasked(s, a, i, m)
	if err != nil {
		return err
	}
	r, err := va.UnaryMasked(op, m)
	if err != nil {
		return err
	}
	return r.IntoArrayMasked(dst, i, m)
}
