// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package blockpipe

// MTF is a move-to-front codec over the full 256-symbol alphabet.
// The i-th output byte of a block is the 0-based rank of the i-th input
// byte in a symbol list that starts as the identity permutation and moves
// each referenced symbol to the front. The update rule is identical on
// both sides, which is what makes the transform invertible.
type MTF struct {
	blockSize int
}

// NewMTF returns an MTF codec operating on blocks of blockSize bytes.
func NewMTF(blockSize int) (*MTF, error) {
	if err := checkBlockSize(blockSize); err != nil {
		return nil, err
	}
	return &MTF{blockSize: blockSize}, nil
}

func (c *MTF) String() string { return "MTF" }

// mtfList is the mutable symbol permutation. The front-move is a single
// overlapping copy, as in bzip2 implementations.
type mtfList struct {
	dict [256]byte
}

func (m *mtfList) init() {
	for i := range m.dict {
		m.dict[i] = byte(i)
	}
}

func (m *mtfList) encodeSym(v byte) byte {
	var idx int
	for i, dv := range &m.dict {
		if dv == v {
			idx = i
			break
		}
	}
	copy(m.dict[1:], m.dict[:idx])
	m.dict[0] = v
	return byte(idx)
}

func (m *mtfList) decodeSym(idx byte) byte {
	v := m.dict[idx]
	copy(m.dict[1:], m.dict[:idx])
	m.dict[0] = v
	return v
}

func (c *MTF) Encode(data []byte) ([]byte, error) {
	var dst, buf []byte
	var mtf mtfList
	for _, block := range splitBlocks(data, c.blockSize) {
		mtf.init()
		buf = buf[:0]
		for _, b := range block {
			buf = append(buf, mtf.encodeSym(b))
		}
		dst = appendFrame(dst, buf)
	}
	return dst, nil
}

func (c *MTF) Decode(data []byte) (out []byte, err error) {
	defer errRecover(&err)
	var mtf mtfList
	fr := frameReader{data: data}
	for {
		blk, ok := fr.next()
		if !ok {
			break
		}
		mtf.init()
		for _, idx := range blk {
			out = append(out, mtf.decodeSym(idx))
		}
	}
	return out, nil
}
