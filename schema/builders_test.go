// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AnkiHonnaiah/asn1"
)

// compositeFunc adapts a function to the [Composite] interface.
type compositeFunc func(Element) (Builder, error)

func (f compositeFunc) CreateChild(e Element) (Builder, error) { return f(e) }

// hexBytes decodes a hex fixture, ignoring spaces.
func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	require.NoError(t, err)
	return b
}

// measurementBuilder is a SEQUENCE with optional fields between two mandatory
// ones:
//
//	measurement ::= SEQUENCE {
//		id     INTEGER,
//		label  PrintableString OPTIONAL,
//		active BOOLEAN OPTIONAL,
//		value  INTEGER }
type measurementBuilder struct {
	Sequence
	id     *IntegerBuilder
	label  *StringBuilder
	active *BoolBuilder
	value  *IntegerBuilder
}

func newMeasurement(parent Acceptor) *measurementBuilder {
	b := &measurementBuilder{}
	b.id = NewInteger(b, nil)
	b.label = NewString(asn1.TagPrintableString, b, nil)
	b.active = NewBool(b, nil)
	b.value = NewInteger(b, nil)
	b.Sequence.Init(parent, b, "measurement", []Field{
		{Input: Universal(asn1.TagInteger), Presence: Present},
		{Input: Universal(asn1.TagPrintableString), Presence: Optional},
		{Input: Universal(asn1.TagBoolean), Presence: Optional},
		{Input: Universal(asn1.TagInteger), Presence: Present},
	})
	return b
}

func (b *measurementBuilder) CreateChild(e Element) (Builder, error) {
	switch e.ID {
	case 1:
		return b.id, nil
	case 2:
		return b.label, nil
	case 3:
		return b.active, nil
	case 4:
		return b.value, nil
	}
	return nil, fmt.Errorf("no field %d", e.ID)
}

func (b *measurementBuilder) Reset() {
	b.Sequence.Reset()
	b.id.Reset()
	b.label.Reset()
	b.active.Reset()
	b.value.Reset()
}

// flagSetBuilder is a SET with one mandatory and one optional field:
//
//	flags ::= SET { num INTEGER, flag BOOLEAN OPTIONAL }
type flagSetBuilder struct {
	Set
	num  *IntegerBuilder
	flag *BoolBuilder
}

func newFlagSet(parent Acceptor) *flagSetBuilder {
	b := &flagSetBuilder{}
	b.num = NewInteger(b, nil)
	b.flag = NewBool(b, nil)
	b.Set.Init(parent, b, "flags", []Field{
		{Input: Universal(asn1.TagInteger), Presence: Present},
		{Input: Universal(asn1.TagBoolean), Presence: Optional},
	})
	return b
}

func (b *flagSetBuilder) CreateChild(e Element) (Builder, error) {
	switch e.ID {
	case 1:
		return b.num, nil
	case 2:
		return b.flag, nil
	}
	return nil, fmt.Errorf("no field %d", e.ID)
}

func (b *flagSetBuilder) Reset() {
	b.Set.Reset()
	b.num.Reset()
	b.flag.Reset()
}

// numberOrTextBuilder is a two-alternative CHOICE:
//
//	numberOrText ::= CHOICE { number INTEGER, text IA5String }
type numberOrTextBuilder struct {
	Choice
	number *IntegerBuilder
	text   *StringBuilder
}

func newNumberOrText(parent Acceptor, c Constraint[int]) *numberOrTextBuilder {
	b := &numberOrTextBuilder{}
	b.number = NewInteger(b, nil)
	b.text = NewString(asn1.TagIA5String, b, nil)
	b.Choice.Init(parent, b, "numberOrText", []Field{
		{Input: Universal(asn1.TagInteger)},
		{Input: Universal(asn1.TagIA5String)},
	}, c)
	return b
}

func (b *numberOrTextBuilder) CreateChild(e Element) (Builder, error) {
	switch e.ID {
	case 1:
		return b.number, nil
	case 2:
		return b.text, nil
	}
	return nil, fmt.Errorf("no alternative %d", e.ID)
}

func (b *numberOrTextBuilder) Reset() {
	b.Choice.Reset()
	b.number.Reset()
	b.text.Reset()
}

// envelopeBuilder carries an ANY payload after a mandatory header field:
//
//	envelope ::= SEQUENCE { id INTEGER, payload ANY }
type envelopeBuilder struct {
	Sequence
	id      *IntegerBuilder
	payload *RawBuilder
}

func newEnvelope(parent Acceptor) *envelopeBuilder {
	b := &envelopeBuilder{}
	b.id = NewInteger(b, nil)
	b.payload = NewRaw(b, nil)
	b.Sequence.Init(parent, b, "envelope", []Field{
		{Input: Universal(asn1.TagInteger), Presence: Present},
		{Input: InputRaw, Presence: Present},
	})
	return b
}

func (b *envelopeBuilder) CreateChild(e Element) (Builder, error) {
	switch e.ID {
	case 1:
		return b.id, nil
	case 2:
		return b.payload, nil
	}
	return nil, fmt.Errorf("no field %d", e.ID)
}

func (b *envelopeBuilder) Reset() {
	b.Sequence.Reset()
	b.id.Reset()
	b.payload.Reset()
}

// treeNode is a recursive structure. The child list of the builder is created
// lazily on first use; an eager constructor would recurse forever.
//
//	node ::= SEQUENCE {
//		label    INTEGER,
//		children [0] EXPLICIT SEQUENCE OF node OPTIONAL }
type treeNode struct {
	label    int64
	children []treeNode
}

type treeNodeBuilder struct {
	Sequence
	label    *IntegerBuilder
	children *Explicit[[]treeNode]
}

func newTreeNode(parent Acceptor) *treeNodeBuilder {
	b := &treeNodeBuilder{}
	b.label = NewInteger(b, nil)
	b.Sequence.Init(parent, b, "node", []Field{
		{Input: Universal(asn1.TagInteger), Presence: Present},
		{Input: Context(0), Presence: Optional},
	})
	return b
}

func (b *treeNodeBuilder) CreateChild(e Element) (Builder, error) {
	switch e.ID {
	case 1:
		return b.label, nil
	case 2:
		if b.children == nil {
			b.children = &Explicit[[]treeNode]{}
			list := &SequenceOf[treeNode]{}
			elem := newTreeNode(list)
			list.Init(b.children, "node", elem, []Input{Universal(asn1.TagSequence)}, nil)
			b.children.Init(b, "children", list, []Input{Universal(asn1.TagSequence)})
		}
		return b.children, nil
	}
	return nil, fmt.Errorf("no field %d", e.ID)
}

func (b *treeNodeBuilder) Yield() (treeNode, error) {
	label, err := b.label.Yield()
	if err != nil {
		return treeNode{}, err
	}
	v := treeNode{label: label.Int64()}
	if b.children != nil && b.children.IsCompleted() {
		if v.children, err = b.children.Yield(); err != nil {
			return treeNode{}, err
		}
	}
	return v, nil
}

func (b *treeNodeBuilder) Reset() {
	b.Sequence.Reset()
	b.label.Reset()
	if b.children != nil {
		b.children.Reset()
	}
}
