// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asn1

import (
	"fmt"
	"testing"
)

func ExampleTag_String() {
	t1 := Tag{Class: ClassApplication, Number: 17}
	t2 := Tag{Class: ClassContextSpecific, Number: 8}
	t3 := Tag{Class: ClassUniversal, Number: 2}
	fmt.Println(t1.String())
	fmt.Println(t2.String())
	fmt.Println(t3.String())
	// Output:
	// [APPLICATION 17]
	// [8]
	// [UNIVERSAL 2]
}

func TestClass_IsValid(t *testing.T) {
	tests := map[string]struct {
		c    Class
		want bool
	}{
		"Universal":       {ClassUniversal, true},
		"Application":     {ClassApplication, true},
		"ContextSpecific": {ClassContextSpecific, true},
		"Private":         {ClassPrivate, true},
		"OutOfRange":      {Class(4), false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.c.IsValid(); got != tt.want {
				t.Errorf("Class.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRawValue_String(t *testing.T) {
	tests := map[string]struct {
		v    RawValue
		want string
	}{
		"Primitive":   {RawValue{Tag{ClassContextSpecific, 0}, false, []byte{0x01, 0x02}}, "[0] primitive, 2 bytes"},
		"Constructed": {RawValue{Tag{ClassUniversal, TagSequence}, true, nil}, "[UNIVERSAL 16] constructed, 0 bytes"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("RawValue.String() = %v, want %v", got, tt.want)
			}
		})
	}
}
