// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package blockpipe

import (
	"bytes"
	"testing"

	"github.com/blockpipe/blockpipe/internal/testutil"
)

func TestMTFVectors(t *testing.T) {
	vectors := []struct {
		name   string
		size   int
		input  []byte
		output []byte
	}{{
		name:   "Empty",
		size:   8192,
		input:  nil,
		output: nil,
	}, {
		name:   "RepeatedZero",
		size:   8192,
		input:  testutil.MustDecodeHex("000000"),
		output: testutil.MustDecodeHex("00000003000000"),
	}, {
		name:   "Ascending",
		size:   8192,
		input:  testutil.MustDecodeHex("010203"),
		output: testutil.MustDecodeHex("00000003010203"),
	}, {
		name:   "Banana",
		size:   8192,
		input:  []byte("banana"),
		output: testutil.MustDecodeHex("0000000662626e010101"),
	}, {
		name: "BlockReset",
		size: 2,
		// The symbol list resets per block, so both blocks encode the
		// same ranks.
		input:  testutil.MustDecodeHex("05050505"),
		output: testutil.MustDecodeHex("000000020500000000020500"),
	}}

	for _, v := range vectors {
		t.Run(v.name, func(t *testing.T) {
			c, err := NewMTF(v.size)
			if err != nil {
				t.Fatalf("NewMTF() = (_, %v), want (_, nil)", err)
			}
			enc, err := c.Encode(v.input)
			if err != nil {
				t.Fatalf("Encode() = (_, %v), want (_, nil)", err)
			}
			if !bytes.Equal(enc, v.output) {
				t.Fatalf("mismatching output:\ngot  %x\nwant %x", enc, v.output)
			}
			dec, err := c.Decode(enc)
			if err != nil {
				t.Fatalf("Decode() = (_, %v), want (_, nil)", err)
			}
			if !bytes.Equal(dec, v.input) {
				t.Fatalf("mismatching round trip:\ngot  %x\nwant %x", dec, v.input)
			}
		})
	}
}

func TestMTFRoundTrip(t *testing.T) {
	c, _ := NewMTF(4096)
	for _, input := range [][]byte{
		testutil.NewRand(0).Bytes(1 << 16),
		testutil.Text(1, 1<<16),
		testutil.Runs(2, 1<<16),
	} {
		enc, err := c.Encode(input)
		if err != nil {
			t.Fatalf("Encode() = (_, %v), want (_, nil)", err)
		}
		dec, err := c.Decode(enc)
		if err != nil {
			t.Fatalf("Decode() = (_, %v), want (_, nil)", err)
		}
		if !bytes.Equal(dec, input) {
			t.Fatal("mismatching round trip")
		}
	}
}
