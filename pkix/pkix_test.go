// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pkix

import (
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnkiHonnaiah/asn1"
	"github.com/AnkiHonnaiah/asn1/schema"
)

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	require.NoError(t, err)
	return b
}

var (
	oidRSA = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}
	oidDSA = asn1.ObjectIdentifier{1, 2, 840, 10040, 4, 1}
)

func TestAlgorithmIdentifier_RSA(t *testing.T) {
	b := NewAlgorithmIdentifier(nil)
	data := hexBytes(t, "30 0d 06 09 2a 86 48 86 f7 0d 01 01 01 05 00")
	require.NoError(t, schema.Decode(data, b))

	v, err := b.Yield()
	require.NoError(t, err)
	assert.True(t, v.Algorithm.Equal(oidRSA))
	assert.True(t, v.Parameters.Null)
	assert.Nil(t, v.Parameters.DSS)
	assert.Nil(t, v.Parameters.Raw)
}

func TestAlgorithmIdentifier_ParametersOmitted(t *testing.T) {
	b := NewAlgorithmIdentifier(nil)
	data := hexBytes(t, "30 0b 06 09 2a 86 48 86 f7 0d 01 01 01")
	require.NoError(t, schema.Decode(data, b))

	v, err := b.Yield()
	require.NoError(t, err)
	assert.True(t, v.Algorithm.Equal(oidRSA))
	assert.True(t, v.Parameters.Absent())
}

func TestAlgorithmIdentifier_CompleteAfterOID(t *testing.T) {
	// the parameters field is optional, so the builder reaches an accepting
	// configuration as soon as the algorithm is known
	b := NewAlgorithmIdentifier(nil)
	require.NoError(t, b.SequenceStart())
	assert.False(t, b.IsCompleted())
	require.NoError(t, b.OID(oidRSA))
	assert.True(t, b.IsCompleted())
	require.NoError(t, b.SequenceEnd())
	assert.True(t, b.IsCompleted())
}

func TestAlgorithmIdentifier_DSA(t *testing.T) {
	b := NewAlgorithmIdentifier(nil)
	data := hexBytes(t, `
		30 14 06 07 2a 86 48 ce 38 04 01
		30 09 02 01 02 02 01 03 02 01 05`)
	require.NoError(t, schema.Decode(data, b))

	v, err := b.Yield()
	require.NoError(t, err)
	assert.True(t, v.Algorithm.Equal(oidDSA))
	require.NotNil(t, v.Parameters.DSS)
	assert.Equal(t, int64(2), v.Parameters.DSS.P.Int64())
	assert.Equal(t, int64(3), v.Parameters.DSS.Q.Int64())
	assert.Equal(t, int64(5), v.Parameters.DSS.G.Int64())
}

func TestAlgorithmIdentifier_UnknownParameters(t *testing.T) {
	// an OCTET STRING is no parameter structure this package models, so it is
	// captured raw
	b := NewAlgorithmIdentifier(nil)
	data := hexBytes(t, "30 0f 06 09 2a 86 48 86 f7 0d 01 01 01 04 02 ab cd")
	require.NoError(t, schema.Decode(data, b))

	v, err := b.Yield()
	require.NoError(t, err)
	require.NotNil(t, v.Parameters.Raw)
	assert.Equal(t, asn1.Tag{Class: asn1.ClassUniversal, Number: asn1.TagOctetString}, v.Parameters.Raw.Tag)
	assert.Equal(t, []byte{0xab, 0xcd}, v.Parameters.Raw.Bytes)
}

func TestAlgorithmIdentifier_Reset(t *testing.T) {
	b := NewAlgorithmIdentifier(nil)
	require.NoError(t, schema.Decode(hexBytes(t, "30 0d 06 09 2a 86 48 86 f7 0d 01 01 01 05 00"), b))

	b.Reset()
	assert.False(t, b.IsCompleted())
	data := hexBytes(t, `
		30 14 06 07 2a 86 48 ce 38 04 01
		30 09 02 01 02 02 01 03 02 01 05`)
	require.NoError(t, schema.Decode(data, b))

	v, err := b.Yield()
	require.NoError(t, err)
	assert.True(t, v.Algorithm.Equal(oidDSA))
	assert.False(t, v.Parameters.Null, "state of the first decode must not leak")
	require.NotNil(t, v.Parameters.DSS)
}

func TestRDNSequence(t *testing.T) {
	// CN=Go (2.5.4.3, PrintableString)
	b := NewRDNSequence(nil)
	data := hexBytes(t, "30 0d 31 0b 30 09 06 03 55 04 03 13 02 47 6f")
	require.NoError(t, schema.Decode(data, b))

	v, err := b.Yield()
	require.NoError(t, err)
	require.Len(t, v, 1)
	require.Len(t, v[0], 1)
	atv := v[0][0]
	assert.True(t, atv.Type.Equal(asn1.ObjectIdentifier{2, 5, 4, 3}))
	assert.Equal(t, uint(asn1.TagPrintableString), atv.Value.Flavor)
	assert.Equal(t, "Go", atv.Value.String)
}

func TestRDNSequence_MultiValuedRDN(t *testing.T) {
	// one RDN holding CN=Go and OU=dev (2.5.4.11, UTF8String)
	b := NewRDNSequence(nil)
	data := hexBytes(t, `
		30 1b 31 19
			30 09 06 03 55 04 03 13 02 47 6f
			30 0c 06 03 55 04 0b 0c 05 64 65 76 65 6c`)
	require.NoError(t, schema.Decode(data, b))

	v, err := b.Yield()
	require.NoError(t, err)
	require.Len(t, v, 1)
	require.Len(t, v[0], 2)
	assert.Equal(t, "Go", v[0][0].Value.String)
	assert.Equal(t, uint(asn1.TagUTF8String), v[0][1].Value.Flavor)
	assert.Equal(t, "devel", v[0][1].Value.String)
}

func TestRDNSequence_EmptyName(t *testing.T) {
	b := NewRDNSequence(nil)
	require.NoError(t, schema.Decode(hexBytes(t, "30 00"), b))
	v, err := b.Yield()
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestRDNSequence_EmptyRDNRejected(t *testing.T) {
	b := NewRDNSequence(nil)
	err := schema.Decode(hexBytes(t, "30 02 31 00"), b)
	var cerr *schema.ConstraintError
	assert.ErrorAs(t, err, &cerr)
}

func TestValidity(t *testing.T) {
	b := NewValidity(nil)
	data := hexBytes(t, `
		30 20
		17 0d 32 36 30 31 31 35 30 30 30 30 30 30 5a
		18 0f 32 30 35 30 30 31 31 35 30 30 30 30 30 30 5a`)
	require.NoError(t, schema.Decode(data, b))

	v, err := b.Yield()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), v.NotBefore)
	assert.Equal(t, time.Date(2050, time.January, 15, 0, 0, 0, 0, time.UTC), v.NotAfter)
}

func TestExtension(t *testing.T) {
	t.Run("Critical", func(t *testing.T) {
		b := NewExtension(nil)
		data := hexBytes(t, "30 0e 06 03 55 1d 0e 01 01 ff 04 04 01 02 03 04")
		require.NoError(t, schema.Decode(data, b))

		v, err := b.Yield()
		require.NoError(t, err)
		assert.True(t, v.ID.Equal(asn1.ObjectIdentifier{2, 5, 29, 14}))
		assert.True(t, v.Critical)
		assert.Equal(t, []byte{1, 2, 3, 4}, v.Value)
	})

	t.Run("CriticalDefaulted", func(t *testing.T) {
		b := NewExtension(nil)
		data := hexBytes(t, "30 0b 06 03 55 1d 0e 04 04 01 02 03 04")
		require.NoError(t, schema.Decode(data, b))

		v, err := b.Yield()
		require.NoError(t, err)
		assert.False(t, v.Critical)
	})
}

func TestExtensions(t *testing.T) {
	// [3] EXPLICIT SEQUENCE OF Extension with two entries
	b := NewExtensions(nil)
	data := hexBytes(t, `
		a3 1d 30 1b
			30 0b 06 03 55 1d 0e 04 04 01 02 03 04
			30 0c 06 03 55 1d 0f 01 01 ff 04 02 05 a0`)
	require.NoError(t, schema.Decode(data, b))

	v, err := b.Yield()
	require.NoError(t, err)
	require.Len(t, v, 2)
	assert.True(t, v[0].ID.Equal(asn1.ObjectIdentifier{2, 5, 29, 14}))
	assert.False(t, v[0].Critical)
	assert.True(t, v[1].ID.Equal(asn1.ObjectIdentifier{2, 5, 29, 15}))
	assert.True(t, v[1].Critical)
	assert.Equal(t, []byte{0x05, 0xa0}, v[1].Value)
}
