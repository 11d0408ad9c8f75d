// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package blockpipe

import "encoding/binary"

// LZW is a Lempel-Ziv-Welch codec emitting fixed-width 2-byte BE codes.
// The dictionary starts with the 256 single-byte strings and is rebuilt
// from scratch for every block on both sides.
//
// A block of n bytes can introduce at most n dictionary entries, so the
// 16-bit code space bounds the usable block size; NewLZW rejects sizes
// that could overflow it.
type LZW struct {
	blockSize int
}

// lzwMaxBlock is the largest block size whose dictionary growth cannot
// exceed the 2-byte code space.
const lzwMaxBlock = 1<<16 - 256

// NewLZW returns an LZW codec operating on blocks of blockSize bytes.
func NewLZW(blockSize int) (*LZW, error) {
	if blockSize < 1 || blockSize > lzwMaxBlock {
		return nil, ErrInvalidParam
	}
	return &LZW{blockSize: blockSize}, nil
}

func (c *LZW) String() string { return "LZW" }

func appendCode(dst []byte, code uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], code)
	return append(dst, b[:]...)
}

func (c *LZW) Encode(data []byte) ([]byte, error) {
	var dst, buf []byte
	for _, block := range splitBlocks(data, c.blockSize) {
		dict := make(map[string]uint16, 2*256)
		for i := 0; i < 256; i++ {
			dict[string([]byte{byte(i)})] = uint16(i)
		}
		next := 256

		buf = buf[:0]
		var w []byte
		for _, b := range block {
			w = append(w, b)
			if _, ok := dict[string(w)]; ok {
				continue
			}
			buf = appendCode(buf, dict[string(w[:len(w)-1])])
			dict[string(w)] = uint16(next)
			next++
			w = append(w[:0], b)
		}
		if len(w) > 0 {
			buf = appendCode(buf, dict[string(w)])
		}
		dst = appendFrame(dst, buf)
	}
	return dst, nil
}

func (c *LZW) Decode(data []byte) (out []byte, err error) {
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
		if len(blk)%2 != 0 {
			panic(ErrCorrupt)
		}

		dict := make([][]byte, 256, 512)
		for i := range dict {
			dict[i] = []byte{byte(i)}
		}

		code := binary.BigEndian.Uint16(blk)
		if int(code) >= len(dict) {
			panic(ErrCorrupt)
		}
		prev := dict[code]
		out = append(out, prev...)

		for idx := 2; idx < len(blk); idx += 2 {
			code = binary.BigEndian.Uint16(blk[idx:])
			var entry []byte
			switch {
			case int(code) < len(dict):
				entry = dict[code]
			case int(code) == len(dict):
				// The classic edge case: the code being defined by this
				// very step. Its expansion is prev plus its own first byte.
				entry = append(append(make([]byte, 0, len(prev)+1), prev...), prev[0])
			default:
				panic(ErrCorrupt)
			}
			out = append(out, entry...)
			dict = append(dict, append(append(make([]byte, 0, len(prev)+1), prev...), entry[0]))
			prev = entry
		}
	}
	return out, nil
}
