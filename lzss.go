// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package blockpipe

import "encoding/binary"

// LZSS is a sliding-window codec. Each block is encoded as:
//
//	4-byte BE window size (informational)
//	groups of one flag byte followed by up to eight tokens
//
// Bit k of a flag byte (LSB first) selects the kind of the k-th token:
// 0 is a literal byte, 1 is a 3-byte BE back-reference packed as
// (offset << 9) | length with offset in [1, 32767] and length in
// [3, 511]. The final group may hold fewer than eight tokens.
type LZSS struct {
	blockSize  int
	windowSize int
}

const (
	lzssMinMatch  = 3
	lzssMaxMatch  = 1<<9 - 1  // 9-bit length field
	lzssMaxWindow = 1<<15 - 1 // 15-bit offset field
	lzssGroupSize = 8
)

// NewLZSS returns an LZSS codec with the given block and window sizes.
// The window may not exceed 32767, the largest offset the reference
// encoding can carry.
func NewLZSS(blockSize, windowSize int) (*LZSS, error) {
	if blockSize < 1 || windowSize < 1 || windowSize > lzssMaxWindow {
		return nil, ErrInvalidParam
	}
	return &LZSS{blockSize: blockSize, windowSize: windowSize}, nil
}

func (c *LZSS) String() string { return "LZSS" }

// lzssToken is either a literal byte or a (dist, length) reference.
type lzssToken struct {
	ref    bool
	lit    byte
	dist   int
	length int
}

func digramKey(b []byte, i int) uint16 {
	return uint16(b[i])<<8 | uint16(b[i+1])
}

// matchLen extends a candidate match and returns its length, capped at
// max. The source may overlap the current position; the decoder copies
// byte-by-byte, so self-referential matches reproduce correctly.
func matchLen(block []byte, cand, i, max int) int {
	var n int
	for n < max && block[cand+n] == block[i+n] {
		n++
	}
	return n
}

func (c *LZSS) encodeBlock(dst, block []byte) []byte {
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(c.windowSize))
	buf := append([]byte(nil), hdr[:]...)

	// Positions of past digram occurrences, most recent last.
	digrams := make(map[uint16][]int32)
	tokens := make([]lzssToken, 0, len(block))

	n := len(block)
	for i := 0; i < n; {
		var bestLen, bestDist int
		if i+1 < n {
			max := lzssMaxMatch
			if rem := n - i; rem < max {
				max = rem
			}
			// Scan candidates newest-first so equal-length matches keep
			// the smallest offset.
			cands := digrams[digramKey(block, i)]
			for k := len(cands) - 1; k >= 0; k-- {
				cand := int(cands[k])
				if cand < i-c.windowSize {
					break
				}
				if l := matchLen(block, cand, i, max); l > bestLen {
					bestLen, bestDist = l, i-cand
					if l == max {
						break
					}
				}
			}
		}

		adv := 1
		if bestLen >= lzssMinMatch {
			tokens = append(tokens, lzssToken{ref: true, dist: bestDist, length: bestLen})
			adv = bestLen
		} else {
			tokens = append(tokens, lzssToken{lit: block[i]})
		}
		for j := i; j < i+adv && j+1 < n; j++ {
			key := digramKey(block, j)
			digrams[key] = append(digrams[key], int32(j))
		}
		i += adv
	}

	for g := 0; g < len(tokens); g += lzssGroupSize {
		group := tokens[g:]
		if len(group) > lzssGroupSize {
			group = group[:lzssGroupSize]
		}
		var flags byte
		for k, tok := range group {
			if tok.ref {
				flags |= 1 << uint(k)
			}
		}
		buf = append(buf, flags)
		for _, tok := range group {
			if tok.ref {
				v := uint32(tok.dist)<<9 | uint32(tok.length)
				buf = append(buf, byte(v>>16), byte(v>>8), byte(v))
			} else {
				buf = append(buf, tok.lit)
			}
		}
	}
	return appendFrame(dst, buf)
}

func (c *LZSS) Encode(data []byte) ([]byte, error) {
	var dst []byte
	for _, block := range splitBlocks(data, c.blockSize) {
		dst = c.encodeBlock(dst, block)
	}
	return dst, nil
}

func (c *LZSS) Decode(data []byte) (out []byte, err error) {
	defer errRecover(&err)
	fr := frameReader{data: data}
	for {
		blk, ok := fr.next()
		if !ok {
			break
		}
		if len(blk) == 0 {
			continue
		}
		if len(blk) < 4 {
			panic(ErrCorrupt)
		}
		// The window size is informational; consume and ignore it.
		buf := make([]byte, 0, len(blk))
		i := 4
	block:
		for i < len(blk) {
			flags := blk[i]
			i++
			for k := 0; k < lzssGroupSize && i < len(blk); k++ {
				if flags>>uint(k)&1 == 0 {
					buf = append(buf, blk[i])
					i++
					continue
				}
				if i+3 > len(blk) {
					break block
				}
				v := uint32(blk[i])<<16 | uint32(blk[i+1])<<8 | uint32(blk[i+2])
				i += 3
				dist := int(v >> 9)
				length := int(v & lzssMaxMatch)
				if length < lzssMinMatch {
					length = lzssMinMatch
				}
				start := len(buf) - dist
				if dist == 0 || start < 0 {
					break block
				}
				for j := 0; j < length; j++ {
					buf = append(buf, buf[start+j])
				}
			}
		}
		out = append(out, buf...)
	}
	return out, nil
}
