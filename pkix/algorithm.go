// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pkix

import (
	"fmt"

	"github.com/AnkiHonnaiah/asn1"
	"github.com/AnkiHonnaiah/asn1/schema"
)

// AlgorithmIdentifierBuilder builds an [AlgorithmIdentifier]. The parameters
// field is ANY DEFINED BY the algorithm: NULL and Dss-Parms decode into their
// typed representation, every other parameter value is captured raw.
type AlgorithmIdentifierBuilder struct {
	schema.Sequence
	algorithm *schema.OIDBuilder
	params    *algorithmParametersBuilder
}

// NewAlgorithmIdentifier returns a builder for an AlgorithmIdentifier value.
func NewAlgorithmIdentifier(parent schema.Acceptor) *AlgorithmIdentifierBuilder {
	b := &AlgorithmIdentifierBuilder{}
	b.algorithm = schema.NewOID(b, nil)
	b.params = newAlgorithmParameters(b)
	b.Sequence.Init(parent, b, "AlgorithmIdentifier", []schema.Field{
		{Input: schema.Universal(asn1.TagOID), Presence: schema.Present},
		{Input: schema.InputChoice, Presence: schema.Optional},
	})
	return b
}

// CreateChild implements [schema.Composite].
func (b *AlgorithmIdentifierBuilder) CreateChild(e schema.Element) (schema.Builder, error) {
	switch e.ID {
	case 1:
		return b.algorithm, nil
	case 2:
		return b.params, nil
	}
	return nil, fmt.Errorf("no field %d", e.ID)
}

// Yield returns the accumulated AlgorithmIdentifier.
func (b *AlgorithmIdentifierBuilder) Yield() (AlgorithmIdentifier, error) {
	if !b.IsCompleted() {
		return AlgorithmIdentifier{}, schema.ErrIncomplete
	}
	var v AlgorithmIdentifier
	var err error
	if v.Algorithm, err = b.algorithm.Yield(); err != nil {
		return AlgorithmIdentifier{}, err
	}
	if b.params.Chosen() != 0 {
		if v.Parameters, err = b.params.Yield(); err != nil {
			return AlgorithmIdentifier{}, err
		}
	}
	return v, nil
}

// Reset implements [schema.Builder].
func (b *AlgorithmIdentifierBuilder) Reset() {
	b.Sequence.Reset()
	b.algorithm.Reset()
	b.params.Reset()
}

// algorithmParametersBuilder builds the parameters CHOICE. The raw alternative
// catches parameter structures this package does not model.
type algorithmParametersBuilder struct {
	schema.Choice
	null *schema.NullBuilder
	dss  *DSSParametersBuilder
	raw  *schema.RawBuilder
}

func newAlgorithmParameters(parent schema.Acceptor) *algorithmParametersBuilder {
	b := &algorithmParametersBuilder{}
	b.null = schema.NewNull(b)
	b.dss = NewDSSParameters(b)
	b.raw = schema.NewRaw(b, nil)
	b.Choice.Init(parent, b, "AlgorithmParameters", []schema.Field{
		{Input: schema.Universal(asn1.TagNull)},
		{Input: schema.Universal(asn1.TagSequence)},
		{Input: schema.InputRaw},
	}, nil)
	return b
}

func (b *algorithmParametersBuilder) CreateChild(e schema.Element) (schema.Builder, error) {
	switch e.ID {
	case 1:
		return b.null, nil
	case 2:
		return b.dss, nil
	case 3:
		return b.raw, nil
	}
	return nil, fmt.Errorf("no alternative %d", e.ID)
}

func (b *algorithmParametersBuilder) Yield() (AlgorithmParameters, error) {
	switch b.Chosen() {
	case 1:
		if _, err := b.null.Yield(); err != nil {
			return AlgorithmParameters{}, err
		}
		return AlgorithmParameters{Null: true}, nil
	case 2:
		v, err := b.dss.Yield()
		if err != nil {
			return AlgorithmParameters{}, err
		}
		return AlgorithmParameters{DSS: &v}, nil
	case 3:
		v, err := b.raw.Yield()
		if err != nil {
			return AlgorithmParameters{}, err
		}
		return AlgorithmParameters{Raw: &v}, nil
	}
	return AlgorithmParameters{}, schema.ErrIncomplete
}

func (b *algorithmParametersBuilder) Reset() {
	b.Choice.Reset()
	b.null.Reset()
	b.dss.Reset()
	b.raw.Reset()
}

// DSSParametersBuilder builds the Dss-Parms domain parameter structure of the
// DSA signature algorithm.
type DSSParametersBuilder struct {
	schema.Sequence
	p, q, g *schema.IntegerBuilder
}

// NewDSSParameters returns a builder for a Dss-Parms value.
func NewDSSParameters(parent schema.Acceptor) *DSSParametersBuilder {
	b := &DSSParametersBuilder{}
	b.p = schema.NewInteger(b, nil)
	b.q = schema.NewInteger(b, nil)
	b.g = schema.NewInteger(b, nil)
	integer := schema.Field{Input: schema.Universal(asn1.TagInteger), Presence: schema.Present}
	b.Sequence.Init(parent, b, "Dss-Parms", []schema.Field{integer, integer, integer})
	return b
}

// CreateChild implements [schema.Composite].
func (b *DSSParametersBuilder) CreateChild(e schema.Element) (schema.Builder, error) {
	switch e.ID {
	case 1:
		return b.p, nil
	case 2:
		return b.q, nil
	case 3:
		return b.g, nil
	}
	return nil, fmt.Errorf("no field %d", e.ID)
}

// Yield returns the accumulated DSSParameters.
func (b *DSSParametersBuilder) Yield() (DSSParameters, error) {
	var v DSSParameters
	var err error
	if v.P, err = b.p.Yield(); err != nil {
		return DSSParameters{}, err
	}
	if v.Q, err = b.q.Yield(); err != nil {
		return DSSParameters{}, err
	}
	if v.G, err = b.g.Yield(); err != nil {
		return DSSParameters{}, err
	}
	return v, nil
}

// Reset implements [schema.Builder].
func (b *DSSParametersBuilder) Reset() {
	b.Sequence.Reset()
	b.p.Reset()
	b.q.Reset()
	b.g.Reset()
}
