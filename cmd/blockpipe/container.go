// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"hash/crc32"
	"io"
	"runtime"

	"github.com/dsnet/golib/hashutil"
	"golang.org/x/sync/errgroup"
)

// fileHeader is the JSON metadata line prepended to every encoded file.
// It names the pipeline and parameters needed to decode the payload, and
// carries a checksum of the original bytes.
type fileHeader struct {
	Pipeline   string `json:"pipeline"`
	BlockSize  int    `json:"block_size"`
	WindowSize int    `json:"window_size"`
	OrigSize   int64  `json:"orig_size"`
	CRC32      uint32 `json:"crc32"`
}

func writeContainer(w io.Writer, hdr fileHeader, payload []byte) error {
	line, err := json.Marshal(hdr)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(line, '\n')); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

func readContainer(r io.Reader) (fileHeader, []byte, error) {
	var hdr fileHeader
	br := bufio.NewReader(r)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return hdr, nil, errors.New("missing container header")
	}
	if err := json.Unmarshal(bytes.TrimSuffix(line, []byte("\n")), &hdr); err != nil {
		return hdr, nil, err
	}
	payload, err := io.ReadAll(br)
	if err != nil {
		return hdr, nil, err
	}
	return hdr, payload, nil
}

// checksum computes the CRC-32 of data, hashing large inputs in parallel
// chunks and folding the partial sums together.
func checksum(data []byte) uint32 {
	const chunkSize = 1 << 20
	if len(data) <= chunkSize {
		return crc32.ChecksumIEEE(data)
	}

	type part struct {
		crc uint32
		n   int64
	}
	parts := make([]part, (len(data)+chunkSize-1)/chunkSize)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range parts {
		i := i
		g.Go(func() error {
			lo := i * chunkSize
			hi := lo + chunkSize
			if hi > len(data) {
				hi = len(data)
			}
			parts[i] = part{crc: crc32.ChecksumIEEE(data[lo:hi]), n: int64(hi - lo)}
			return nil
		})
	}
	g.Wait()

	crc := parts[0].crc
	for _, p := range parts[1:] {
		crc = hashutil.CombineCRC32(crc32.IEEE, crc, p.crc, p.n)
	}
	return crc
}
