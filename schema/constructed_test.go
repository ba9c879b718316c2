// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnkiHonnaiah/asn1"
)

func TestSequence_AllFields(t *testing.T) {
	b := newMeasurement(nil)
	require.NoError(t, Decode(hexBytes(t, "30 0e 02 01 07 13 03 61 62 63 01 01 ff 02 01 2a"), b))

	id, err := b.id.Yield()
	require.NoError(t, err)
	assert.Equal(t, int64(7), id.Int64())
	label, err := b.label.Yield()
	require.NoError(t, err)
	assert.Equal(t, "abc", label)
	active, err := b.active.Yield()
	require.NoError(t, err)
	assert.True(t, active)
	value, err := b.value.Yield()
	require.NoError(t, err)
	assert.Equal(t, int64(42), value.Int64())
}

func TestSequence_OptionalFieldsSkipped(t *testing.T) {
	b := newMeasurement(nil)
	require.NoError(t, Decode(hexBytes(t, "30 06 02 01 07 02 01 2a"), b))

	assert.False(t, b.label.IsCompleted())
	assert.False(t, b.active.IsCompleted())
	value, err := b.value.Yield()
	require.NoError(t, err)
	assert.Equal(t, int64(42), value.Int64())
}

func TestSequence_MissingMandatoryField(t *testing.T) {
	b := newMeasurement(nil)
	err := Decode(hexBytes(t, "30 03 02 01 07"), b)
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestSequence_FieldOutOfOrder(t *testing.T) {
	// the label arrives before the mandatory id
	b := newMeasurement(nil)
	err := Decode(hexBytes(t, "30 08 13 01 61 02 01 07 02 01 2a"), b)
	assert.ErrorIs(t, err, ErrUnexpectedInput)
}

func TestSequence_DuplicateOptionalField(t *testing.T) {
	b := newMeasurement(nil)
	err := Decode(hexBytes(t, "30 0c 02 01 07 13 01 61 13 01 62 02 01 2a"), b)
	assert.ErrorIs(t, err, ErrUnexpectedInput)
}

func TestSequence_EagerCompletion(t *testing.T) {
	// once all mandatory fields are consumed the builder is in an accepting
	// configuration even though trailing optionals could still arrive
	b := newMeasurement(nil)
	require.NoError(t, b.SequenceStart())
	require.NoError(t, b.Integer(big.NewInt(1)))
	assert.False(t, b.IsCompleted())
	require.NoError(t, b.Integer(big.NewInt(2)))
	assert.True(t, b.IsCompleted())
	require.NoError(t, b.SequenceEnd())
	assert.True(t, b.IsCompleted())
}

func TestSequence_InputAfterCompletion(t *testing.T) {
	b := newMeasurement(nil)
	require.NoError(t, Decode(hexBytes(t, "30 06 02 01 07 02 01 2a"), b))
	err := b.SequenceEnd()
	var serr *StructureError
	assert.ErrorAs(t, err, &serr)
}

func TestSequence_Reset(t *testing.T) {
	b := newMeasurement(nil)
	require.NoError(t, Decode(hexBytes(t, "30 06 02 01 07 02 01 2a"), b))

	b.Reset()
	assert.False(t, b.IsCompleted())
	require.NoError(t, Decode(hexBytes(t, "30 0b 02 01 08 13 03 78 79 7a 02 01 05"), b))
	label, err := b.label.Yield()
	require.NoError(t, err)
	assert.Equal(t, "xyz", label)
}

func TestSet_AnyOrder(t *testing.T) {
	for name, data := range map[string]string{
		"DeclarationOrder": "31 06 02 01 05 01 01 ff",
		"ReverseOrder":     "31 06 01 01 ff 02 01 05",
	} {
		t.Run(name, func(t *testing.T) {
			b := newFlagSet(nil)
			require.NoError(t, Decode(hexBytes(t, data), b))
			num, err := b.num.Yield()
			require.NoError(t, err)
			assert.Equal(t, int64(5), num.Int64())
			flag, err := b.flag.Yield()
			require.NoError(t, err)
			assert.True(t, flag)
		})
	}
}

func TestSet_DuplicateField(t *testing.T) {
	b := newFlagSet(nil)
	// num appears again after flag; the transition exists, the revisit does not
	err := Decode(hexBytes(t, "31 09 02 01 05 01 01 ff 02 01 06"), b)
	var serr *StructureError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestSet_MissingMandatoryField(t *testing.T) {
	b := newFlagSet(nil)
	err := Decode(hexBytes(t, "31 03 01 01 ff"), b)
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestChoice_Alternatives(t *testing.T) {
	t.Run("Number", func(t *testing.T) {
		b := newNumberOrText(nil, nil)
		require.NoError(t, Decode(hexBytes(t, "02 01 2a"), b))
		assert.Equal(t, 1, b.Chosen())
		v, err := b.number.Yield()
		require.NoError(t, err)
		assert.Equal(t, int64(42), v.Int64())
	})

	t.Run("Text", func(t *testing.T) {
		b := newNumberOrText(nil, nil)
		require.NoError(t, Decode(hexBytes(t, "16 02 68 69"), b))
		assert.Equal(t, 2, b.Chosen())
		v, err := b.text.Yield()
		require.NoError(t, err)
		assert.Equal(t, "hi", v)
	})
}

func TestChoice_CompletesWithoutEnvelope(t *testing.T) {
	// a CHOICE owns no envelope: the first accepted alternative completes it
	b := newNumberOrText(nil, nil)
	assert.False(t, b.IsCompleted())
	require.NoError(t, b.Integer(big.NewInt(1)))
	assert.True(t, b.IsCompleted())

	err := b.IA5String("late")
	assert.ErrorIs(t, err, ErrUnexpectedInput, "a second alternative must be rejected")
}

func TestChoice_UnknownAlternative(t *testing.T) {
	b := newNumberOrText(nil, nil)
	err := b.Bool(true)
	assert.ErrorIs(t, err, ErrUnexpectedInput)
}

func TestChoice_Constraint(t *testing.T) {
	// only the text alternative is admitted
	b := newNumberOrText(nil, Values(2))
	err := b.Integer(big.NewInt(1))
	var cerr *ConstraintError
	require.ErrorAs(t, err, &cerr)

	b.Reset()
	require.NoError(t, b.IA5String("ok"))
	assert.True(t, b.IsCompleted())
}

func TestChoice_NestedInSequence(t *testing.T) {
	// wrapper ::= SEQUENCE { v numberOrText, note PrintableString OPTIONAL }
	type wrapper struct {
		Sequence
		v    *numberOrTextBuilder
		note *StringBuilder
	}
	newWrapper := func() *wrapper {
		b := &wrapper{}
		b.v = newNumberOrText(b, nil)
		b.note = NewString(asn1.TagPrintableString, b, nil)
		b.Sequence.Init(nil, compositeFunc(func(e Element) (Builder, error) {
			if e.ID == 1 {
				return b.v, nil
			}
			return b.note, nil
		}), "wrapper", []Field{
			{Input: InputChoice, Presence: Present},
			{Input: Universal(asn1.TagPrintableString), Presence: Optional},
		})
		return b
	}

	b := newWrapper()
	require.NoError(t, Decode(hexBytes(t, "30 08 16 01 78 13 03 6f 6b 2e"), b))
	assert.Equal(t, 2, b.v.Chosen())
	text, err := b.v.text.Yield()
	require.NoError(t, err)
	assert.Equal(t, "x", text)
	note, err := b.note.Yield()
	require.NoError(t, err)
	assert.Equal(t, "ok.", note)
}

func TestSequenceOf_Repetitions(t *testing.T) {
	newInts := func(size Constraint[int]) *SequenceOf[*big.Int] {
		s := &SequenceOf[*big.Int]{}
		s.Init(nil, "INTEGER", NewInteger(s, nil), []Input{Universal(asn1.TagInteger)}, size)
		return s
	}

	t.Run("Empty", func(t *testing.T) {
		s := newInts(nil)
		require.NoError(t, Decode(hexBytes(t, "30 00"), s))
		vs, err := s.Yield()
		require.NoError(t, err)
		assert.Empty(t, vs)
	})

	t.Run("Three", func(t *testing.T) {
		s := newInts(nil)
		require.NoError(t, Decode(hexBytes(t, "30 09 02 01 01 02 01 02 02 01 03"), s))
		vs, err := s.Yield()
		require.NoError(t, err)
		require.Len(t, vs, 3)
		assert.Equal(t, int64(2), vs[1].Int64())
	})

	t.Run("SizeViolation", func(t *testing.T) {
		s := newInts(SizeConstraint{Min: 1, Max: 2})
		err := Decode(hexBytes(t, "30 09 02 01 01 02 01 02 02 01 03"), s)
		var cerr *ConstraintError
		assert.ErrorAs(t, err, &cerr)
	})

	t.Run("SizeJudgedAtEnvelopeClose", func(t *testing.T) {
		// three elements exceed the bound, but the violation only manifests
		// once the envelope closes
		s := newInts(SizeConstraint{Min: 1, Max: 2})
		require.NoError(t, s.SequenceStart())
		for i := int64(1); i <= 3; i++ {
			require.NoError(t, s.Integer(big.NewInt(i)))
		}
		err := s.SequenceEnd()
		var cerr *ConstraintError
		assert.ErrorAs(t, err, &cerr)
	})

	t.Run("ForeignElement", func(t *testing.T) {
		s := newInts(nil)
		err := Decode(hexBytes(t, "30 06 02 01 01 01 01 ff"), s)
		assert.ErrorIs(t, err, ErrUnexpectedInput)
	})

	t.Run("Reset", func(t *testing.T) {
		s := newInts(nil)
		require.NoError(t, Decode(hexBytes(t, "30 03 02 01 09"), s))
		s.Reset()
		require.NoError(t, Decode(hexBytes(t, "30 03 02 01 08"), s))
		vs, err := s.Yield()
		require.NoError(t, err)
		require.Len(t, vs, 1)
		assert.Equal(t, int64(8), vs[0].Int64())
	})
}

func TestExplicit_Tag(t *testing.T) {
	e := &Explicit[*big.Int]{}
	e.Init(nil, "version", NewInteger(e, nil), []Input{Universal(asn1.TagInteger)})

	require.NoError(t, Decode(hexBytes(t, "a0 03 02 01 07"), e))
	v, err := e.Yield()
	require.NoError(t, err)
	assert.Equal(t, int64(7), v.Int64())
}

func TestExplicit_EmptyEnvelope(t *testing.T) {
	// the inner value is mandatory inside the explicit envelope
	e := &Explicit[*big.Int]{}
	e.Init(nil, "version", NewInteger(e, nil), []Input{Universal(asn1.TagInteger)})

	err := Decode(hexBytes(t, "a0 00"), e)
	assert.ErrorIs(t, err, ErrIncomplete)
}
