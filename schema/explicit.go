// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

// Explicit decorates a builder with an EXPLICIT tag. On the wire an
// explicitly tagged value is a constructed value whose only content is the
// inner value's complete encoding: the decorator consumes the outer start and
// end events and routes everything in between to the inner builder.
type Explicit[T any] struct {
	Constructed
	inner ValueBuilder[T]
}

// Init wires the inner builder. inputs lists the leading tags of the inner
// type; the decorator's own tag is matched by the enclosing composite, not by
// the decorator. inner must have been created with this builder as its
// parent.
func (e *Explicit[T]) Init(parent Acceptor, name string, inner ValueBuilder[T], inputs []Input) {
	e.inner = inner
	el := Element{ID: 1, Presence: Present, Final: true}
	ts := make([]Transition, 0, len(inputs))
	for _, in := range inputs {
		ts = append(ts, Transition{source(idAny), in, el})
	}
	e.Constructed.init(parent, e, "EXPLICIT "+name, anyElement, ts, false)
}

// CreateChild implements [Composite].
func (e *Explicit[T]) CreateChild(Element) (Builder, error) {
	return e.inner, nil
}

// Yield forwards the inner builder's value.
func (e *Explicit[T]) Yield() (T, error) {
	return e.inner.Yield()
}

// Reset resets the decorator and the inner builder.
func (e *Explicit[T]) Reset() {
	e.Constructed.Reset()
	e.inner.Reset()
}
