// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package blockpipe

import (
	"bytes"
	"testing"

	"github.com/blockpipe/blockpipe/internal/testutil"
)

func TestSplitBlocks(t *testing.T) {
	vectors := []struct {
		input string
		size  int
		want  []string
	}{
		{"", 4, nil},
		{"a", 4, []string{"a"}},
		{"abcd", 4, []string{"abcd"}},
		{"abcde", 4, []string{"abcd", "e"}},
		{"abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"abc", 1, []string{"a", "b", "c"}},
	}

	for i, v := range vectors {
		blocks := splitBlocks([]byte(v.input), v.size)
		if len(blocks) != len(v.want) {
			t.Errorf("test %d, mismatching block count: got %d, want %d", i, len(blocks), len(v.want))
			continue
		}
		for j, blk := range blocks {
			if string(blk) != v.want[j] {
				t.Errorf("test %d, block %d: got %q, want %q", i, j, blk, v.want[j])
			}
		}
	}
}

func TestFrameRoundTrip(t *testing.T) {
	data := testutil.Repeats(0, 1<<14)
	for _, size := range []int{1, 7, 256, 4096, 1 << 15} {
		var stream []byte
		blocks := splitBlocks(data, size)
		for _, blk := range blocks {
			stream = appendFrame(stream, blk)
		}

		var got [][]byte
		err := func() (err error) {
			defer errRecover(&err)
			fr := frameReader{data: stream}
			for {
				payload, ok := fr.next()
				if !ok {
					return nil
				}
				got = append(got, payload)
			}
		}()
		if err != nil {
			t.Fatalf("size %d, unexpected read error: %v", size, err)
		}
		if len(got) != len(blocks) {
			t.Fatalf("size %d, mismatching block count: got %d, want %d", size, len(got), len(blocks))
		}
		for j := range got {
			if !bytes.Equal(got[j], blocks[j]) {
				t.Errorf("size %d, block %d mismatch", size, j)
			}
		}
	}
}

func TestFrameErrors(t *testing.T) {
	vectors := []string{
		"00000005aabb", // length overruns input
		"000000",       // partial header
		"00000001aa02", // trailing garbage after a valid frame
	}

	for i, v := range vectors {
		err := func() (err error) {
			defer errRecover(&err)
			fr := frameReader{data: testutil.MustDecodeHex(v)}
			for {
				if _, ok := fr.next(); !ok {
					return nil
				}
			}
		}()
		if err != ErrTruncated {
			t.Errorf("test %d, mismatching error: got %v, want %v", i, err, ErrTruncated)
		}
	}
}

func TestFrameEmptyPayload(t *testing.T) {
	stream := appendFrame(nil, nil)
	if got := "00000000"; !bytes.Equal(stream, testutil.MustDecodeHex(got)) {
		t.Fatalf("mismatching frame: got %x, want %s", stream, got)
	}
	fr := frameReader{data: stream}
	payload, ok := fr.next()
	if !ok || len(payload) != 0 {
		t.Fatalf("next() = (%x, %v), want empty payload", payload, ok)
	}
	if _, ok := fr.next(); ok {
		t.Fatalf("next() reported a frame past the end of the stream")
	}
}
