// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

// The tree carries no binary corpus files; tests synthesize their inputs
// with the deterministic generators below so that failures reproduce
// byte-for-byte on every platform and Go release.

// Runs returns n bytes dominated by long single-byte runs. This corpus
// heavily favors run-length encoding.
func Runs(seed, n int) []byte {
	r := NewRand(seed)
	b := make([]byte, 0, n)
	for len(b) < n {
		v := byte(r.Intn(256))
		l := 1 + r.Intn(512)
		if rem := n - len(b); l > rem {
			l = rem
		}
		for i := 0; i < l; i++ {
			b = append(b, v)
		}
	}
	return b
}

// Repeats returns n bytes where most of the data is a copy from some
// earlier distance. This corpus favors LZ77-family compression while
// giving prefix encoders little to work with.
func Repeats(seed, n int) []byte {
	r := NewRand(seed)
	b := make([]byte, 0, n)
	for len(b) < n {
		if len(b) < 16 || r.Intn(4) == 0 {
			b = append(b, r.Bytes(4+r.Intn(12))...)
			continue
		}
		d := 1 + r.Intn(len(b))
		l := 4 + r.Intn(256)
		if rem := n - len(b); l > rem {
			l = rem
		}
		for i := 0; i < l; i++ {
			b = append(b, b[len(b)-d])
		}
	}
	return b[:n]
}

// Text returns n bytes of word-like lowercase ASCII with a skewed letter
// distribution. This corpus favors entropy coding.
func Text(seed, n int) []byte {
	const letters = "eeeeettttaaaooiinnsshhr dlcumwfgypbvk"
	r := NewRand(seed)
	b := make([]byte, 0, n)
	for len(b) < n {
		for i := 2 + r.Intn(8); i > 0 && len(b) < n; i-- {
			b = append(b, letters[r.Intn(len(letters))])
		}
		if len(b) < n {
			b = append(b, ' ')
		}
	}
	return b
}
