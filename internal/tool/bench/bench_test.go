// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"testing"

	"github.com/blockpipe/blockpipe/internal/testutil"
)

// TestCodecs tests that the output of each registered encoder round trips
// through its own decoder on every corpus.
func TestCodecs(t *testing.T) {
	corpora := map[string][]byte{
		"Text":    testutil.Text(0, 1<<14),
		"Runs":    testutil.Runs(1, 1<<14),
		"Repeats": testutil.Repeats(2, 1<<14),
		"Random":  testutil.NewRand(3).Bytes(1 << 14),
	}
	for _, c := range Codecs() {
		c := c
		t.Run("Codec:"+c.Name, func(t *testing.T) {
			t.Parallel()
			for name, input := range corpora {
				output, err := c.Encode(input)
				if err != nil {
					t.Fatalf("%s: unexpected Encode error: %v", name, err)
				}
				check, err := c.Decode(output)
				if err != nil {
					t.Fatalf("%s: unexpected Decode error: %v", name, err)
				}
				if !bytes.Equal(check, input) {
					t.Errorf("%s: round trip mismatch", name)
				}
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register(Codec{Name: "std:flate"})
}
