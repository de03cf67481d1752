/* Copyright 2024 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package core

import (
	"encoding/json"
	"strings"
)

// Set is a deduplicated collection.
//
// Identity is by Key.  Iteration follows insertion order so that
// rule preconditions that scan a Set see the same candidates in the
// same order every time.
type Set[T Item] struct {
	index map[string]int
	xs    []T
}

// NewSet makes a Set containing the given elements.
func NewSet[T Item](xs ...T) *Set[T] {
	s := &Set[T]{}
	for _, x := range xs {
		s.Add(x)
	}
	return s
}

// Add adds x if it isn't already present.  Returns true if x was
// added.
func (s *Set[T]) Add(x T) bool {
	if s.index == nil {
		s.index = make(map[string]int, 8)
	}
	k := x.Key()
	if _, have := s.index[k]; have {
		return false
	}
	s.index[k] = len(s.xs)
	s.xs = append(s.xs, x)
	return true
}

// Update adds all the given elements.
func (s *Set[T]) Update(xs ...T) {
	for _, x := range xs {
		s.Add(x)
	}
}

// Has reports whether x is present.
func (s *Set[T]) Has(x T) bool {
	if s == nil || s.index == nil {
		return false
	}
	_, have := s.index[x.Key()]
	return have
}

// Delete removes x.  Returns false if x wasn't present.
func (s *Set[T]) Delete(x T) bool {
	if !s.Has(x) {
		return false
	}
	k := x.Key()
	i := s.index[k]
	s.xs = append(s.xs[:i], s.xs[i+1:]...)
	delete(s.index, k)
	for j := i; j < len(s.xs); j++ {
		s.index[s.xs[j].Key()] = j
	}
	return true
}

// Len returns the number of elements.
func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.xs)
}

// Empty reports whether the set has no elements.
func (s *Set[T]) Empty() bool {
	return s.Len() == 0
}

// Clear removes all elements.
func (s *Set[T]) Clear() {
	s.index = nil
	s.xs = nil
}

// Elems returns a copy of the elements in insertion order.
func (s *Set[T]) Elems() []T {
	if s == nil {
		return nil
	}
	acc := make([]T, len(s.xs))
	copy(acc, s.xs)
	return acc
}

// Do calls f on each element in insertion order until f returns
// false.
func (s *Set[T]) Do(f func(T) bool) {
	if s == nil {
		return
	}
	for _, x := range s.xs {
		if !f(x) {
			return
		}
	}
}

// Union returns a new Set with the elements of both sets.
func (s *Set[T]) Union(other *Set[T]) *Set[T] {
	acc := NewSet(s.Elems()...)
	acc.Update(other.Elems()...)
	return acc
}

// Copy makes a copy that shares no mutable state with the receiver.
func (s *Set[T]) Copy() *Set[T] {
	return NewSet(s.Elems()...)
}

func (s *Set[T]) String() string {
	if s == nil {
		return "{}"
	}
	parts := make([]string, len(s.xs))
	for i, x := range s.xs {
		parts[i] = x.Key()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// MarshalJSON renders the keys in insertion order.
func (s *Set[T]) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, s.Len())
	s.Do(func(x T) bool {
		keys = append(keys, x.Key())
		return true
	})
	return json.Marshal(keys)
}
