// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import "fmt"

// SequenceOf builds a SEQUENCE OF type: zero or more repetitions of a single
// element type, accumulated into a slice. One element builder is reused for
// all repetitions; each accepted repetition is yielded, archived and the
// element builder reset.
type SequenceOf[T any] struct {
	Constructed
	elem   ValueBuilder[T]
	values []T
	size   Constraint[int]
}

// Init wires the element builder. inputs lists the leading tags of the
// element type; elem must have been created with this builder as its parent.
// The size constraint bounds the number of repetitions and may be nil; it can
// only be judged once the envelope closes.
func (s *SequenceOf[T]) Init(parent Acceptor, name string, elem ValueBuilder[T], inputs []Input, size Constraint[int]) {
	s.elem = elem
	s.size = size
	el := Element{ID: 1, Presence: Optional, Final: true}
	ts := make([]Transition, 0, 2*len(inputs))
	for _, in := range inputs {
		ts = append(ts, Transition{source(idAny), in, el}, Transition{source(el.ID), in, el})
	}
	s.Constructed.init(parent, s, "SEQUENCE OF "+name, anyElement, ts, true)
}

// CreateChild implements [Composite]. Every repetition uses the same element
// builder.
func (s *SequenceOf[T]) CreateChild(Element) (Builder, error) {
	return s.elem, nil
}

// PreAccept implements the acceptance hook: the completed repetition is
// archived and the element builder reset for the next one.
func (s *SequenceOf[T]) PreAccept() error {
	v, err := s.elem.Yield()
	if err != nil {
		return err
	}
	s.values = append(s.values, v)
	s.elem.Reset()
	return nil
}

// CheckConstraints judges the size constraint against the repetition count.
func (s *SequenceOf[T]) CheckConstraints() error {
	if s.size != nil && !s.size.IsAccepted(len(s.values)) {
		return &ConstraintError{Kind: s.kind, Err: fmt.Errorf("%d elements outside the size bounds", len(s.values))}
	}
	return nil
}

// Yield returns the accumulated element values.
func (s *SequenceOf[T]) Yield() ([]T, error) {
	if err := s.yieldable(); err != nil {
		return nil, err
	}
	if !s.completed() {
		// not locked yet, the size bound has not been judged
		if err := s.CheckConstraints(); err != nil {
			return nil, err
		}
	}
	return s.values, nil
}

// Reset discards the accumulated values.
func (s *SequenceOf[T]) Reset() {
	s.Constructed.Reset()
	s.values = nil
	s.elem.Reset()
}

// SetOf builds a SET OF type. DER orders SET OF elements by their encodings;
// this builder does not verify that ordering and is otherwise identical to
// [SequenceOf].
type SetOf[T any] struct {
	SequenceOf[T]
}

// Init wires the element builder like [SequenceOf.Init].
func (s *SetOf[T]) Init(parent Acceptor, name string, elem ValueBuilder[T], inputs []Input, size Constraint[int]) {
	s.SequenceOf.Init(parent, name, elem, inputs, size)
	s.kind = "SET OF " + name
}
