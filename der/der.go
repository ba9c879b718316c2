// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package der implements decoding of the content octets of primitive data
// values as specified by the Distinguished Encoding Rules (DER) in
// [Rec. ITU-T X.690]. Each function parses the content octets of one data
// value, excluding its header. Minimal encodings are enforced where DER
// requires them.
//
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
package der

import (
	"bytes"
	"errors"
	"math/big"
	"time"

	"github.com/AnkiHonnaiah/asn1"
	"github.com/AnkiHonnaiah/asn1/internal/vlq"
)

var (
	errInvalidBool       = errors.New("der: invalid boolean")
	errEmptyInteger      = errors.New("der: empty integer")
	errIntegerNotMinimal = errors.New("der: integer not minimally-encoded")
	errIntegerTooLarge   = errors.New("der: integer too large")
	errInvalidNull       = errors.New("der: invalid NULL value")
	errEmptyOID          = errors.New("der: zero length OBJECT IDENTIFIER")
	errInvalidBitString  = errors.New("der: invalid padding bits in BIT STRING")
	errEmptyBitString    = errors.New("der: zero length BIT STRING")
	errInvalidUTCTime    = errors.New("der: invalid UTCTime")
	errInvalidGenTime    = errors.New("der: invalid GeneralizedTime")
)

// ParseBool parses the content octets of a BOOLEAN value. A boolean is encoded
// in a single octet; any non-zero octet decodes to true.
func ParseBool(data []byte) (bool, error) {
	if len(data) != 1 {
		return false, errInvalidBool
	}
	return data[0] != 0, nil
}

// ParseInteger parses the content octets of an INTEGER value of arbitrary
// size. The encoding must be minimal, that is it must not contain redundant
// leading octets.
func ParseInteger(data []byte) (*big.Int, error) {
	if len(data) == 0 {
		return nil, errEmptyInteger
	}
	if len(data) > 1 && ((data[0] == 0x00 && data[1]&0x80 == 0x00) || (data[0] == 0xFF && data[1]&0x80 == 0x80)) {
		return nil, errIntegerNotMinimal
	}
	i := new(big.Int)
	if data[0]&0x80 == 0x80 {
		// negative integer, calculate 2s complement
		bs := bytes.Clone(data)
		for j := range bs {
			bs[j] = ^bs[j]
		}
		i.SetBytes(bs)
		i.Add(i, big.NewInt(1))
		i.Neg(i)
	} else {
		i.SetBytes(data)
	}
	return i, nil
}

// ParseInt64 parses the content octets of an INTEGER or ENUMERATED value that
// fits into an int64.
func ParseInt64(data []byte) (int64, error) {
	if len(data) == 0 {
		return 0, errEmptyInteger
	}
	if len(data) > 1 && ((data[0] == 0x00 && data[1]&0x80 == 0x00) || (data[0] == 0xFF && data[1]&0x80 == 0x80)) {
		return 0, errIntegerNotMinimal
	}
	if len(data) > 8 {
		return 0, errIntegerTooLarge
	}
	var val uint64
	for _, b := range data {
		val <<= 8
		val |= uint64(b)
	}
	i := int64(val)
	// Shift up and down in order to sign extend the result.
	i <<= 64 - len(data)*8
	i >>= 64 - len(data)*8
	return i, nil
}

// ParseNull parses the content octets of a NULL value, which must be empty.
func ParseNull(data []byte) error {
	if len(data) != 0 {
		return errInvalidNull
	}
	return nil
}

// ParseOID parses the content octets of an OBJECT IDENTIFIER value. The first
// two components of the OID are encoded into a single base-128 integer as
// 40*value1 + value2. Subsequent components use one base-128 integer each.
func ParseOID(data []byte) (asn1.ObjectIdentifier, error) {
	if len(data) == 0 {
		return nil, errEmptyOID
	}

	r := bytes.NewReader(data)
	// According to the packing of the first two components, value1 can take
	// the values 0, 1 and 2 only. When value1 = 0 or value1 = 1, then value2
	// is <= 39. When value1 = 2, then there are no restrictions on value2.
	v, err := vlq.ReadMinimal[uint](r)
	if err != nil {
		return nil, err
	}
	s := make(asn1.ObjectIdentifier, 2, r.Len()+2)
	if v < 80 {
		s[0] = v / 40
		s[1] = v % 40
	} else {
		s[0] = 2
		s[1] = v - 80
	}
	for r.Len() > 0 {
		if v, err = vlq.ReadMinimal[uint](r); err != nil {
			return nil, err
		}
		s = append(s, v)
	}
	return s, nil
}

// ParseBitString parses the content octets of a primitive BIT STRING value.
// The first content octet gives the number of unused bits in the final octet.
// Padding bits are decoded as zero bits.
func ParseBitString(data []byte) (asn1.BitString, error) {
	if len(data) == 0 {
		return asn1.BitString{}, errEmptyBitString
	}
	padding := data[0]
	if padding > 7 || (len(data) == 1 && padding > 0) {
		return asn1.BitString{}, errInvalidBitString
	}
	bs := asn1.BitString{
		Bytes:     bytes.Clone(data[1:]),
		BitLength: (len(data)-1)*8 - int(padding),
	}
	if len(bs.Bytes) > 0 {
		// zero out padding bits
		bs.Bytes[len(bs.Bytes)-1] &= ^byte(1<<uint(padding) - 1)
	}
	return bs, nil
}

// ParseUTCTime parses the content octets of a UTCTime value. UTCTime only
// encodes times prior to 2050; two-digit years up to 49 map into the 2000s.
// See https://tools.ietf.org/html/rfc5280#section-4.1.2.5.1.
func ParseUTCTime(data []byte) (time.Time, error) {
	s := string(data)
	if len(s) < 11 || len(s) > 17 {
		return time.Time{}, errInvalidUTCTime
	}
	year := atoiN[int](s, 2)
	month := atoiN[time.Month](s[2:], 2)
	day := atoiN[int](s[4:], 2)
	hour := atoiN[int](s[6:], 2)
	minute := atoiN[int](s[8:], 2)
	s = s[10:]
	second := atoiN[int](s, 2)
	if second >= 0 {
		s = s[2:]
	} else {
		second = 0
	}
	loc := parseLocation(s)
	if loc == nil {
		return time.Time{}, errInvalidUTCTime
	}

	if year < 0 {
		return time.Time{}, errInvalidUTCTime
	} else if year <= 49 {
		year += 2000
	} else {
		year += 1900
	}
	ret := time.Date(year, month, day, hour, minute, second, 0, loc)
	if ret.Year() != year || ret.Month() != month || ret.Day() != day || ret.Hour() != hour || ret.Minute() != minute || ret.Second() != second {
		return time.Time{}, errInvalidUTCTime
	}
	return ret, nil
}

// ParseGeneralizedTime parses the content octets of a GeneralizedTime value.
// Minutes and seconds may be omitted and the smallest given unit may carry a
// fractional part.
func ParseGeneralizedTime(data []byte) (time.Time, error) {
	s := string(data)
	if len(s) < 10 {
		return time.Time{}, errInvalidGenTime
	}
	year := atoiN[int](s, 4)
	month := atoiN[time.Month](s[4:], 2)
	day := atoiN[int](s[6:], 2)
	hour := atoiN[time.Duration](s[8:], 2)
	if hour < 0 || 23 < hour {
		return time.Time{}, errInvalidGenTime
	}
	s = s[10:]
	dur := hour * time.Hour
	unit := time.Hour // unit for fractional time
	if len(s) >= 2 && '0' <= s[0] && s[0] <= '9' {
		minute := atoiN[time.Duration](s, 2)
		if 0 <= minute && minute <= 59 {
			dur += minute * time.Minute
			unit = time.Minute
			s = s[2:]
		} else {
			return time.Time{}, errInvalidGenTime
		}
	}
	if len(s) >= 2 && '0' <= s[0] && s[0] <= '9' {
		second := atoiN[time.Duration](s, 2)
		if 0 <= second && second <= 59 {
			unit = time.Second
			dur += second * time.Second
			s = s[2:]
		} else {
			return time.Time{}, errInvalidGenTime
		}
	}
	if len(s) > 0 && (s[0] == '.' || s[0] == ',') {
		i := 1
		for ; i < len(s); i++ {
			if s[i] < '0' || '9' < s[i] {
				break
			}
			unit /= 10
			dur += time.Duration(s[i]-'0') * unit
		}
		if i == 1 {
			return time.Time{}, errInvalidGenTime
		}
		s = s[i:]
	}
	var loc *time.Location
	if len(s) == 0 {
		loc = time.Local
	} else {
		loc = parseLocation(s)
		if loc == nil {
			return time.Time{}, errInvalidGenTime
		}
	}
	ret := time.Date(year, month, day, 0, 0, 0, 0, loc)
	ret = ret.Add(dur)
	if ret.Year() != year || ret.Month() != month || ret.Day() != day {
		return time.Time{}, errInvalidGenTime
	}
	return ret, nil
}

// parseLocation parses the timezone suffix of an ASN.1 time string. It returns
// nil if s is not a valid timezone specification.
func parseLocation(s string) *time.Location {
	if len(s) == 1 && s[0] == 'Z' {
		return time.UTC
	}
	if len(s) != 5 {
		return nil
	}
	if s[0] != '+' && s[0] != '-' {
		return nil
	}
	mul := 44 - int(s[0])
	locHour := atoiN[int](s[1:], 2)
	locMinute := atoiN[int](s[3:], 2)
	if locHour < 0 || locMinute < 0 {
		return nil
	}
	return time.FixedZone("", mul*locHour*3600+locMinute*60)
}

// atoiN parses the first n characters of s as a base 10 integer. It returns -1
// if s is too short or contains a non-digit character.
func atoiN[T ~int | ~int64](s string, n int) (i T) {
	if len(s) < n {
		return -1
	}
	for j := 0; j < n; j++ {
		if s[j] < '0' || '9' < s[j] {
			return -1
		}
		i = i*10 + T(s[j]-'0')
	}
	return i
}
