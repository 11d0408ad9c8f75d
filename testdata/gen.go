// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build ignore

// Generates sample corpus files for exercising the blockpipe command.
// Each file stresses a different codec family: runs.bin favors RLE,
// repeats.bin favors the LZ codecs, and text.txt favors entropy coding.
package main

import (
	"os"

	"github.com/blockpipe/blockpipe/internal/testutil"
)

const size = 1 << 20

func main() {
	for name, data := range map[string][]byte{
		"runs.bin":    testutil.Runs(0, size),
		"repeats.bin": testutil.Repeats(1, size),
		"text.txt":    testutil.Text(2, size),
	} {
		if err := os.WriteFile(name, data, 0666); err != nil {
			panic(err)
		}
	}
}
