// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package blockpipe

import "encoding/binary"

// Every codec frames its per-block output the same way: a 4-byte
// big-endian payload length followed by the payload itself. A framed
// stream is zero or more concatenated frames with no residue.

const frameHeaderSize = 4

// splitBlocks cuts data into chunks of at most n bytes each. Only the
// final chunk may be shorter. Empty input yields no chunks.
func splitBlocks(data []byte, n int) [][]byte {
	blocks := make([][]byte, 0, (len(data)+n-1)/n)
	for len(data) > n {
		blocks = append(blocks, data[:n:n])
		data = data[n:]
	}
	if len(data) > 0 {
		blocks = append(blocks, data)
	}
	return blocks
}

// appendFrame appends payload to dst with its length prefix.
func appendFrame(dst, payload []byte) []byte {
	var hdr [frameHeaderSize]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(payload)))
	dst = append(dst, hdr[:]...)
	return append(dst, payload...)
}

// frameReader walks a framed stream, yielding successive payloads.
type frameReader struct {
	data []byte
	pos  int
}

// next returns the next payload. It reports false once the stream is
// exhausted, and panics with ErrTruncated on a partial header or a
// length that overruns the remaining input.
func (fr *frameReader) next() ([]byte, bool) {
	rest := len(fr.data) - fr.pos
	if rest < frameHeaderSize {
		if rest != 0 {
			panic(ErrTruncated)
		}
		return nil, false
	}
	n := int(binary.BigEndian.Uint32(fr.data[fr.pos:]))
	fr.pos += frameHeaderSize
	if n > len(fr.data)-fr.pos {
		panic(ErrTruncated)
	}
	payload := fr.data[fr.pos : fr.pos+n]
	fr.pos += n
	return payload, true
}
