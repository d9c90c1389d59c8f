// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package memo caches the result of a zero-argument computation for the
// lifetime of its owner.
//
// Embed a Value in the owning struct, one per memoized property:
//
//	type Repo struct {
//		org memo.Value[Org]
//	}
//
//	func (r *Repo) Org() Org {
//		return r.org.Get(r.loadOrg)
//	}
package memo

import "sync"

// Value holds at most one computed T. The zero value is ready to use and must
// not be copied after first use.
type Value[T any] struct {
	mu   sync.Mutex
	done bool
	val  T
}

// Get returns the cached value, calling compute to produce it on the first
// access only.
func (v *Value[T]) Get(compute func() T) T {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.done {
		v.val = compute()
		v.done = true
	}
	return v.val
}

// GetErr is Get for computations that can fail. A failed computation is not
// cached, so the next access calls compute again.
func (v *Value[T]) GetErr(compute func() (T, error)) (T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.done {
		return v.val, nil
	}

	val, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}

	v.val = val
	v.done = true
	return v.val, nil
}

// Computed reports whether a value has been stored.
func (v *Value[T]) Computed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.done
}

// Func returns a function that calls compute once and then keeps returning
// its result.
func Func[T any](compute func() T) func() T {
	var v Value[T]
	return func() T { return v.Get(compute) }
}
