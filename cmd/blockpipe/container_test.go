// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"hash/crc32"
	"testing"

	"github.com/blockpipe/blockpipe/internal/testutil"
)

func TestContainerRoundTrip(t *testing.T) {
	payload := testutil.NewRand(0).Bytes(1 << 10)
	hdr := fileHeader{
		Pipeline:   "BWT+MTF+RLE+HA",
		BlockSize:  4096,
		WindowSize: 8192,
		OrigSize:   1234,
		CRC32:      0xdeadbeef,
	}

	var buf bytes.Buffer
	if err := writeContainer(&buf, hdr, payload); err != nil {
		t.Fatalf("writeContainer() = %v, want nil", err)
	}
	gotHdr, gotPayload, err := readContainer(&buf)
	if err != nil {
		t.Fatalf("readContainer() = (_, _, %v), want nil error", err)
	}
	if gotHdr != hdr {
		t.Errorf("mismatching header: got %+v, want %+v", gotHdr, hdr)
	}
	if !bytes.Equal(gotPayload, payload) {
		t.Error("mismatching payload")
	}
}

// TestChecksum verifies that the chunked parallel CRC matches a single
// whole-buffer computation.
func TestChecksum(t *testing.T) {
	for _, n := range []int{0, 1, 1 << 10, 1 << 20, 1<<22 + 13} {
		data := testutil.NewRand(n).Bytes(n)
		if got, want := checksum(data), crc32.ChecksumIEEE(data); got != want {
			t.Errorf("size %d: checksum mismatch: got %08x, want %08x", n, got, want)
		}
	}
}
