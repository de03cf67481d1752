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

// Item is something that can live in a Stack, StackSet, or Set.
//
// Key is a canonical representation of the item.  Two items are
// equal exactly when their Keys are equal.
type Item interface {
	Key() string
}

// Stack is a LIFO sequence.
//
// The zero value is an empty Stack ready to use.
type Stack[T Item] struct {
	xs []T
}

// NewStack makes a Stack with the given elements.  The last element
// is the top.
func NewStack[T Item](xs ...T) *Stack[T] {
	s := &Stack[T]{}
	s.xs = append(s.xs, xs...)
	return s
}

// Push puts x on top.
func (s *Stack[T]) Push(x T) {
	s.xs = append(s.xs, x)
}

// Top returns the top element.
//
// The second return value is false when the stack is empty.  Rule
// preconditions treat that case as "no candidate".
func (s *Stack[T]) Top() (T, bool) {
	var zero T
	if s == nil || len(s.xs) == 0 {
		return zero, false
	}
	return s.xs[len(s.xs)-1], true
}

// Pop removes and returns the top element.
func (s *Stack[T]) Pop() (T, bool) {
	x, ok := s.Top()
	if ok {
		var zero T
		s.xs[len(s.xs)-1] = zero
		s.xs = s.xs[:len(s.xs)-1]
	}
	return x, ok
}

// Len returns the number of elements.
func (s *Stack[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.xs)
}

// Empty reports whether the stack has no elements.
func (s *Stack[T]) Empty() bool {
	return s.Len() == 0
}

// Clear removes all elements.
func (s *Stack[T]) Clear() {
	s.xs = nil
}

// Contains reports whether an element with x's Key is present.
func (s *Stack[T]) Contains(x T) bool {
	return s.index(x.Key()) >= 0
}

func (s *Stack[T]) index(key string) int {
	if s == nil {
		return -1
	}
	for i := len(s.xs) - 1; 0 <= i; i-- {
		if s.xs[i].Key() == key {
			return i
		}
	}
	return -1
}

// Remove deletes the topmost element equal to x.  Returns false if
// there was no such element.
func (s *Stack[T]) Remove(x T) bool {
	i := s.index(x.Key())
	if i < 0 {
		return false
	}
	s.xs = append(s.xs[:i], s.xs[i+1:]...)
	return true
}

// Elems returns a copy of the elements from bottom to top.
func (s *Stack[T]) Elems() []T {
	if s == nil {
		return nil
	}
	acc := make([]T, len(s.xs))
	copy(acc, s.xs)
	return acc
}

// Copy makes a copy that shares no mutable state with the receiver.
func (s *Stack[T]) Copy() *Stack[T] {
	return NewStack(s.Elems()...)
}

// String renders the stack top first, which is how people tend to
// read a stack.
func (s *Stack[T]) String() string {
	if s == nil {
		return "<>"
	}
	parts := make([]string, 0, len(s.xs))
	for i := len(s.xs) - 1; 0 <= i; i-- {
		parts = append(parts, s.xs[i].Key())
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

// MarshalJSON renders the keys top first.
func (s *Stack[T]) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, s.Len())
	for i := s.Len() - 1; 0 <= i; i-- {
		keys = append(keys, s.xs[i].Key())
	}
	return json.Marshal(keys)
}

// StackSet is a Stack without duplicates.
//
// Pushing an element that is already present moves it to the top.
type StackSet[T Item] struct {
	Stack[T]
}

// NewStackSet makes a StackSet by pushing the given elements in
// order.
func NewStackSet[T Item](xs ...T) *StackSet[T] {
	s := &StackSet[T]{}
	for _, x := range xs {
		s.Push(x)
	}
	return s
}

// Push removes any existing occurrence of x and then puts x on top.
func (s *StackSet[T]) Push(x T) {
	s.Stack.Remove(x)
	s.Stack.Push(x)
}

// Copy makes a copy that shares no mutable state with the receiver.
func (s *StackSet[T]) Copy() *StackSet[T] {
	return NewStackSet(s.Elems()...)
}
