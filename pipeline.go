// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package blockpipe

import "strings"

// Pipeline is an ordered composition of codecs. Encode applies the
// codecs first to last; Decode applies them last to first.
type Pipeline struct {
	codecs []Codec
}

// NewPipeline composes the given codecs. An empty pipeline is the
// identity transform.
func NewPipeline(codecs ...Codec) *Pipeline {
	return &Pipeline{codecs: append([]Codec(nil), codecs...)}
}

// Config carries the construction parameters for named pipelines.
type Config struct {
	// BlockSize is the number of bytes each codec processes per block.
	// It defaults to 4096.
	BlockSize int

	// WindowSize bounds how far back LZSS references may reach.
	// It defaults to 8192 and may not exceed 32767.
	WindowSize int
}

const (
	defaultBlockSize  = 4096
	defaultWindowSize = 8192
)

// pipelineNames is the set of recognized pipeline names, in the order
// Names returns them.
var pipelineNames = []string{
	"HA",
	"RLE",
	"BWT+RLE",
	"BWT+MTF+HA",
	"BWT+MTF+RLE+HA",
	"LZSS",
	"LZSS+HA",
	"LZW",
	"LZW+HA",
}

// Names returns the recognized pipeline names.
func Names() []string {
	return append([]string(nil), pipelineNames...)
}

// New builds a pipeline from its name: codec names joined by '+', e.g.
// "BWT+MTF+RLE+HA". A nil conf uses the default parameters.
func New(name string, conf *Config) (*Pipeline, error) {
	blockSize, windowSize := defaultBlockSize, defaultWindowSize
	if conf != nil {
		if conf.BlockSize > 0 {
			blockSize = conf.BlockSize
		}
		if conf.WindowSize > 0 {
			windowSize = conf.WindowSize
		}
	}

	var codecs []Codec
	for _, cn := range strings.Split(name, "+") {
		c, err := newCodec(cn, blockSize, windowSize)
		if err != nil {
			return nil, err
		}
		codecs = append(codecs, c)
	}
	return NewPipeline(codecs...), nil
}

func newCodec(name string, blockSize, windowSize int) (Codec, error) {
	switch name {
	case "RLE":
		return NewRLE(blockSize)
	case "MTF":
		return NewMTF(blockSize)
	case "BWT":
		return NewBWT(blockSize)
	case "HA":
		return NewHuffman(blockSize)
	case "LZW":
		return NewLZW(blockSize)
	case "LZSS":
		return NewLZSS(blockSize, windowSize)
	}
	return nil, Error("unknown codec: " + name)
}

// String returns the pipeline name, its codec names joined by '+'.
func (p *Pipeline) String() string {
	names := make([]string, len(p.codecs))
	for i, c := range p.codecs {
		names[i] = c.String()
	}
	return strings.Join(names, "+")
}

func (p *Pipeline) Encode(data []byte) ([]byte, error) {
	var err error
	for _, c := range p.codecs {
		if data, err = c.Encode(data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func (p *Pipeline) Decode(data []byte) ([]byte, error) {
	var err error
	for i := len(p.codecs) - 1; i >= 0; i-- {
		if data, err = p.codecs[i].Decode(data); err != nil {
			return data, err
		}
	}
	return data, nil
}
