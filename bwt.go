// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package blockpipe

import (
	"encoding/binary"
	"sort"
)

// BWT is a Burrows-Wheeler codec. Each block is encoded as:
//
//	4-byte BE index of the original rotation in the sorted order
//	4-byte BE block length
//	last column of the sorted rotation matrix (block length bytes)
//
// Rotations are ordered lexicographically with ties broken by the
// rotation start index in ascending order. The inverse transform walks
// the last-to-first mapping obtained by stably sorting the last column.
type BWT struct {
	blockSize int
}

const bwtHeaderSize = 8

// NewBWT returns a BWT codec operating on blocks of blockSize bytes.
func NewBWT(blockSize int) (*BWT, error) {
	if err := checkBlockSize(blockSize); err != nil {
		return nil, err
	}
	return &BWT{blockSize: blockSize}, nil
}

func (c *BWT) String() string { return "BWT" }

// compareRotations compares the rotations of block starting at i and j
// without materializing them.
func compareRotations(block []byte, i, j int) int {
	n := len(block)
	for k := 0; k < n; k++ {
		bi, bj := block[i], block[j]
		if bi != bj {
			if bi < bj {
				return -1
			}
			return +1
		}
		if i++; i == n {
			i = 0
		}
		if j++; j == n {
			j = 0
		}
	}
	return 0
}

func (c *BWT) Encode(data []byte) ([]byte, error) {
	var dst []byte
	for _, block := range splitBlocks(data, c.blockSize) {
		n := len(block)
		sa := make([]int, n)
		for i := range sa {
			sa[i] = i
		}
		// sa starts in ascending order, so a stable sort gives equal
		// rotations the ascending-index tie-break the format requires.
		sort.SliceStable(sa, func(x, y int) bool {
			return compareRotations(block, sa[x], sa[y]) < 0
		})

		buf := make([]byte, bwtHeaderSize, bwtHeaderSize+n)
		for k, i := range sa {
			if i == 0 {
				binary.BigEndian.PutUint32(buf[0:], uint32(k))
				i = n
			}
			buf = append(buf, block[i-1])
		}
		binary.BigEndian.PutUint32(buf[4:], uint32(n))
		dst = appendFrame(dst, buf)
	}
	return dst, nil
}

func (c *BWT) Decode(data []byte) (out []byte, err error) {
	defer errRecover(&err)
	fr := frameReader{data: data}
	for {
		blk, ok := fr.next()
		if !ok {
			break
		}
		if len(blk) < bwtHeaderSize {
			panic(ErrCorrupt)
		}
		origIdx := int(binary.BigEndian.Uint32(blk[0:]))
		n := int(binary.BigEndian.Uint32(blk[4:]))
		last := blk[bwtHeaderSize:]
		if len(last) != n || origIdx >= n {
			panic(ErrCorrupt)
		}

		// Counting sort of (byte, index) pairs. Scanning the last column
		// in index order keeps equal bytes in ascending-index order,
		// which yields both the first column and the last-to-first map.
		var cnt [256]int
		for _, v := range last {
			cnt[v]++
		}
		var sum int
		for i, v := range cnt {
			cnt[i] = sum
			sum += v
		}
		lf := make([]int, n)
		first := make([]byte, n)
		for i, v := range last {
			lf[cnt[v]] = i
			first[cnt[v]] = v
			cnt[v]++
		}

		cur := origIdx
		for k := 0; k < n; k++ {
			out = append(out, first[cur])
			cur = lf[cur]
		}
	}
	return out, nil
}
