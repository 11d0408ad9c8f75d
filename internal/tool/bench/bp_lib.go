// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import "github.com/blockpipe/blockpipe"

func init() {
	for _, name := range blockpipe.Names() {
		p, err := blockpipe.New(name, nil)
		if err != nil {
			panic(err)
		}
		Register(Codec{
			Name:   "bp:" + name,
			Encode: p.Encode,
			Decode: p.Decode,
		})
	}
}
