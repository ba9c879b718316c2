// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pkix

import (
	"fmt"
	"time"

	"github.com/AnkiHonnaiah/asn1"
	"github.com/AnkiHonnaiah/asn1/schema"
)

// ValidityBuilder builds a certificate [Validity] interval. Each bound is a
// CHOICE between UTCTime and GeneralizedTime.
type ValidityBuilder struct {
	schema.Sequence
	notBefore, notAfter *timeChoiceBuilder
}

// NewValidity returns a builder for a Validity value.
func NewValidity(parent schema.Acceptor) *ValidityBuilder {
	b := &ValidityBuilder{}
	b.notBefore = newTimeChoice(b)
	b.notAfter = newTimeChoice(b)
	bound := schema.Field{Input: schema.InputChoice, Presence: schema.Present}
	b.Sequence.Init(parent, b, "Validity", []schema.Field{bound, bound})
	return b
}

// CreateChild implements [schema.Composite].
func (b *ValidityBuilder) CreateChild(e schema.Element) (schema.Builder, error) {
	switch e.ID {
	case 1:
		return b.notBefore, nil
	case 2:
		return b.notAfter, nil
	}
	return nil, fmt.Errorf("no field %d", e.ID)
}

// Yield returns the accumulated Validity.
func (b *ValidityBuilder) Yield() (Validity, error) {
	var v Validity
	var err error
	if v.NotBefore, err = b.notBefore.Yield(); err != nil {
		return Validity{}, err
	}
	if v.NotAfter, err = b.notAfter.Yield(); err != nil {
		return Validity{}, err
	}
	return v, nil
}

// Reset implements [schema.Builder].
func (b *ValidityBuilder) Reset() {
	b.Sequence.Reset()
	b.notBefore.Reset()
	b.notAfter.Reset()
}

// timeChoiceBuilder builds the Time CHOICE of RFC 5280.
type timeChoiceBuilder struct {
	schema.Choice
	utc, gen *schema.TimeBuilder
}

func newTimeChoice(parent schema.Acceptor) *timeChoiceBuilder {
	b := &timeChoiceBuilder{}
	b.utc = schema.NewTime(asn1.TagUTCTime, b, nil)
	b.gen = schema.NewTime(asn1.TagGeneralizedTime, b, nil)
	b.Choice.Init(parent, b, "Time", []schema.Field{
		{Input: schema.Universal(asn1.TagUTCTime)},
		{Input: schema.Universal(asn1.TagGeneralizedTime)},
	}, nil)
	return b
}

func (b *timeChoiceBuilder) CreateChild(e schema.Element) (schema.Builder, error) {
	switch e.ID {
	case 1:
		return b.utc, nil
	case 2:
		return b.gen, nil
	}
	return nil, fmt.Errorf("no alternative %d", e.ID)
}

func (b *timeChoiceBuilder) Yield() (time.Time, error) {
	switch b.Chosen() {
	case 1:
		return b.utc.Yield()
	case 2:
		return b.gen.Yield()
	}
	return time.Time{}, schema.ErrIncomplete
}

func (b *timeChoiceBuilder) Reset() {
	b.Choice.Reset()
	b.utc.Reset()
	b.gen.Reset()
}
