// Package store holds the in-memory record collections backing each entity.
package store

import (
	"fmt"
	"iter"
	"sync"
	"sync/atomic"
)

// Store is an ordered in-memory collection of records of one entity type.
// Callers only ever see copies produced by the clone function.
type Store[T any] struct {
	mu    sync.RWMutex
	items []T
	id    func(T) int64
	clone func(T) T
	next  atomic.Int64
}

// New creates a store seeded with a copy of seed, in order. Identifiers
// handed out by NextID start above the largest seeded one.
func New[T any](id func(T) int64, clone func(T) T, seed []T) *Store[T] {
	s := &Store[T]{
		items: make([]T, 0, len(seed)),
		id:    id,
		clone: clone,
	}
	var top int64
	for _, item := range seed {
		s.items = append(s.items, clone(item))
		if v := id(item); v > top {
			top = v
		}
	}
	s.next.Store(top)
	return s
}

// NextID returns a fresh identifier, strictly greater than every previous one.
func (s *Store[T]) NextID() int64 {
	return s.next.Add(1)
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Snapshot returns copies of all records in insertion order.
func (s *Store[T]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	for i, item := range s.items {
		out[i] = s.clone(item)
	}
	return out
}

// All returns a restartable sequence over a snapshot taken now. Each record
// is copied again as it is yielded, so consumers cannot alias each other.
func (s *Store[T]) All() iter.Seq[T] {
	snap := s.Snapshot()
	return func(yield func(T) bool) {
		for _, item := range snap {
			if !yield(s.clone(item)) {
				return
			}
		}
	}
}

// Get returns a copy of the record with the given id.
func (s *Store[T]) Get(id int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.clone(s.items[i]), true
	}
	var zero T
	return zero, false
}

// Filter returns copies of the records matching pred, in order.
func (s *Store[T]) Filter(pred func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []T
	for _, item := range s.items {
		if pred(item) {
			out = append(out, s.clone(item))
		}
	}
	return out
}

// Insert builds new records from the current contents and appends them in
// one step. build runs under the write lock; if it fails or panics nothing
// is appended.
func (s *Store[T]) Insert(build func(current []T) ([]T, error)) (out []T, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer recoverInto(&err)

	items, err := build(s.items)
	if err != nil {
		return nil, err
	}
	out = make([]T, len(items))
	for i, item := range items {
		out[i] = s.clone(item)
	}
	for _, item := range items {
		s.items = append(s.items, s.clone(item))
	}
	return out, nil
}

// Update replaces the record with the given id by the result of fn, which
// receives a copy of the current value and the whole collection. If the id
// is absent, found is false. If fn fails or panics the record is unchanged.
func (s *Store[T]) Update(id int64, fn func(cur T, all []T) (T, error)) (out T, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer recoverInto(&err)

	i := s.indexOf(id)
	if i < 0 {
		return out, false, nil
	}
	next, err := fn(s.clone(s.items[i]), s.items)
	if err != nil {
		return out, true, err
	}
	s.items[i] = s.clone(next)
	return s.clone(next), true, nil
}

// Delete removes the record with the given id together with every record
// returned by related, which is evaluated under the write lock. It returns
// the number of records removed; zero means id was absent. If related
// panics nothing is removed.
func (s *Store[T]) Delete(id int64, related func(all []T) []int64) (removed int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer recoverInto(&err)

	if s.indexOf(id) < 0 {
		return 0, nil
	}
	drop := map[int64]struct{}{id: {}}
	if related != nil {
		for _, r := range related(s.items) {
			drop[r] = struct{}{}
		}
	}
	kept := s.items[:0]
	for _, item := range s.items {
		if _, ok := drop[s.id(item)]; ok {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	var zero T
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = zero
	}
	s.items = kept
	return removed, nil
}

// Remove deletes the record with the given id and returns it.
func (s *Store[T]) Remove(id int64) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	item := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	return s.clone(item), true
}

func (s *Store[T]) indexOf(id int64) int {
	for i, item := range s.items {
		if s.id(item) == id {
			return i
		}
	}
	return -1
}

// PanicError reports a panic raised inside a store callback.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("store: callback panicked: %v", e.Value)
}

func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = &PanicError{Value: r}
	}
}
