// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench compares the named blockpipe pipelines against reference
// compressor implementations with respect to encode speed, decode speed,
// and compression ratio.
package bench

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/dsnet/golib/strconv"
)

// Codec is a buffer-to-buffer compressor registered for benchmarking.
type Codec struct {
	Name   string
	Encode func([]byte) ([]byte, error)
	Decode func([]byte) ([]byte, error)
}

var codecs = map[string]Codec{}

// Register adds a codec to the benchmark set. Registering the same name
// twice panics.
func Register(c Codec) {
	if _, ok := codecs[c.Name]; ok {
		panic("bench: duplicate codec: " + c.Name)
	}
	codecs[c.Name] = c
}

// Codecs returns all registered codecs sorted by name.
func Codecs() []Codec {
	cs := make([]Codec, 0, len(codecs))
	for _, c := range codecs {
		cs = append(cs, c)
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i].Name < cs[j].Name })
	return cs
}

// Result reports one codec's performance on a given input.
type Result struct {
	Name     string
	CompSize int
	Ratio    float64 // rawSize / compSize
	EncRate  float64 // bytes per second
	DecRate  float64 // bytes per second
}

// Run benchmarks every registered codec on input.
func Run(input []byte) ([]Result, error) {
	var results []Result
	for _, c := range Codecs() {
		r, err := runCodec(c, input)
		if err != nil {
			return nil, fmt.Errorf("bench: codec %s: %v", c.Name, err)
		}
		results = append(results, r)
	}
	return results, nil
}

func runCodec(c Codec, input []byte) (Result, error) {
	output, err := c.Encode(input)
	if err != nil {
		return Result{}, err
	}
	check, err := c.Decode(output)
	if err != nil {
		return Result{}, err
	}
	if len(check) != len(input) {
		return Result{}, fmt.Errorf("round trip size mismatch: %d != %d", len(check), len(input))
	}

	encResult := testing.Benchmark(func(b *testing.B) {
		runtime.GC()
		for i := 0; i < b.N; i++ {
			if _, err := c.Encode(input); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(input)))
		}
	})
	decResult := testing.Benchmark(func(b *testing.B) {
		runtime.GC()
		for i := 0; i < b.N; i++ {
			if _, err := c.Decode(output); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(input)))
		}
	})

	r := Result{Name: c.Name, CompSize: len(output)}
	if len(output) > 0 {
		r.Ratio = float64(len(input)) / float64(len(output))
	}
	r.EncRate = rate(encResult)
	r.DecRate = rate(decResult)
	return r, nil
}

func rate(r testing.BenchmarkResult) float64 {
	if r.N == 0 || r.T == 0 {
		return 0
	}
	return float64(r.Bytes) * float64(r.N) / r.T.Seconds()
}

// Format renders results as an aligned table.
func Format(results []Result, rawSize int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-18s %12s %8s %12s %12s\n",
		"codec", "size", "ratio", "enc", "dec")
	for _, r := range results {
		fmt.Fprintf(&sb, "%-18s %12s %8.3f %10s/s %10s/s\n",
			r.Name,
			strconv.FormatPrefix(float64(r.CompSize), strconv.Base1024, 2),
			r.Ratio,
			strconv.FormatPrefix(r.EncRate, strconv.Base1024, 2),
			strconv.FormatPrefix(r.DecRate, strconv.Base1024, 2))
	}
	fmt.Fprintf(&sb, "raw size: %s\n",
		strconv.FormatPrefix(float64(rawSize), strconv.Base1024, 2))
	return sb.String()
}
