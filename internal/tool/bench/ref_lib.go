// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_ref_lib

package bench

import (
	"bytes"
	"compress/flate"
	"io/ioutil"

	kflate "github.com/klauspost/compress/flate"
	"github.com/ulikunitz/xz"
)

// Reference codecs give the pipeline numbers something to stand against.

func init() {
	Register(Codec{
		Name: "std:flate",
		Encode: func(data []byte) ([]byte, error) {
			var buf bytes.Buffer
			zw, err := flate.NewWriter(&buf, flate.DefaultCompression)
			if err != nil {
				return nil, err
			}
			if _, err := zw.Write(data); err != nil {
				return nil, err
			}
			if err := zw.Close(); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
		Decode: func(data []byte) ([]byte, error) {
			zr := flate.NewReader(bytes.NewReader(data))
			defer zr.Close()
			return ioutil.ReadAll(zr)
		},
	})

	Register(Codec{
		Name: "ks:flate",
		Encode: func(data []byte) ([]byte, error) {
			var buf bytes.Buffer
			zw, err := kflate.NewWriter(&buf, kflate.DefaultCompression)
			if err != nil {
				return nil, err
			}
			if _, err := zw.Write(data); err != nil {
				return nil, err
			}
			if err := zw.Close(); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
		Decode: func(data []byte) ([]byte, error) {
			zr := kflate.NewReader(bytes.NewReader(data))
			defer zr.Close()
			return ioutil.ReadAll(zr)
		},
	})

	Register(Codec{
		Name: "uk:xz",
		Encode: func(data []byte) ([]byte, error) {
			var buf bytes.Buffer
			zw, err := xz.NewWriter(&buf)
			if err != nil {
				return nil, err
			}
			if _, err := zw.Write(data); err != nil {
				return nil, err
			}
			if err := zw.Close(); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
		Decode: func(data []byte) ([]byte, error) {
			zr, err := xz.NewReader(bytes.NewReader(data))
			if err != nil {
				return nil, err
			}
			return ioutil.ReadAll(zr)
		},
	})
}
