// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

// Constraint restricts the set of acceptable values of type T. Constraints
// are checked when a builder receives a value, before the value becomes
// observable: a value that fails its constraint is never stored, not even
// transiently.
type Constraint[T any] interface {
	// IsAccepted reports whether v satisfies the constraint.
	IsAccepted(v T) bool
}

// ConstraintFunc adapts a predicate function to the [Constraint] interface.
type ConstraintFunc[T any] func(T) bool

// IsAccepted calls f.
func (f ConstraintFunc[T]) IsAccepted(v T) bool {
	return f(v)
}

// SizeConstraint bounds a count, typically the number of elements of a
// SEQUENCE OF or SET OF. Both bounds are inclusive.
type SizeConstraint struct {
	Min, Max int
}

// IsAccepted reports whether n lies within the bounds.
func (c SizeConstraint) IsAccepted(n int) bool {
	return c.Min <= n && n <= c.Max
}

// Size returns a [Constraint] bounding the length of a string or byte slice
// value. Both bounds are inclusive.
func Size[T ~string | ~[]byte](min, max int) Constraint[T] {
	return lengthConstraint[T]{min, max}
}

type lengthConstraint[T ~string | ~[]byte] struct {
	min, max int
}

func (c lengthConstraint[T]) IsAccepted(v T) bool {
	return c.min <= len(v) && len(v) <= c.max
}

// ValueConstraint restricts a value to a fixed set of allowed values.
type ValueConstraint[T comparable] struct {
	allowed map[T]struct{}
}

// Values returns a [ValueConstraint] accepting exactly the given values.
func Values[T comparable](vs ...T) ValueConstraint[T] {
	allowed := make(map[T]struct{}, len(vs))
	for _, v := range vs {
		allowed[v] = struct{}{}
	}
	return ValueConstraint[T]{allowed}
}

// IsAccepted reports whether v is one of the allowed values.
func (c ValueConstraint[T]) IsAccepted(v T) bool {
	_, ok := c.allowed[v]
	return ok
}
