// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// The blockpipe command compresses and decompresses files with the named
// codec pipelines, and benchmarks the pipelines against reference
// compressors.
//
// Encoded files consist of a single JSON metadata line naming the
// pipeline and its parameters, followed by the pipeline output.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/blockpipe/blockpipe"
	"github.com/blockpipe/blockpipe/internal/tool/bench"
	"github.com/schollz/progressbar/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const encodedSuffix = ".bp"

var (
	flagPipeline   string
	flagBlockSize  int
	flagWindowSize int
	flagOutput     string
	flagProgress   bool
	flagJobs       int
)

func main() {
	root := &cobra.Command{
		Use:           "blockpipe",
		Short:         "compose block compression codecs into pipelines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	encodeCmd := &cobra.Command{
		Use:   "encode [flags] FILE...",
		Short: "compress files with a codec pipeline",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runEncode,
	}
	encodeCmd.Flags().StringVarP(&flagPipeline, "pipeline", "p", "BWT+MTF+RLE+HA",
		"codec pipeline, e.g. "+strings.Join(blockpipe.Names(), " "))
	encodeCmd.Flags().IntVarP(&flagBlockSize, "block-size", "b", 4096, "block size in bytes")
	encodeCmd.Flags().IntVarP(&flagWindowSize, "window-size", "w", 8192, "LZSS window size in bytes")
	encodeCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file (single input only)")
	encodeCmd.Flags().BoolVar(&flagProgress, "progress", true, "display a progress bar")
	encodeCmd.Flags().IntVarP(&flagJobs, "jobs", "j", 4, "number of files to process concurrently")

	decodeCmd := &cobra.Command{
		Use:   "decode [flags] FILE...",
		Short: "decompress files produced by encode",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDecode,
	}
	decodeCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file (single input only)")
	decodeCmd.Flags().IntVarP(&flagJobs, "jobs", "j", 4, "number of files to process concurrently")

	benchCmd := &cobra.Command{
		Use:   "bench FILE",
		Short: "benchmark all pipelines against reference compressors",
		Args:  cobra.ExactArgs(1),
		RunE:  runBench,
	}

	root.AddCommand(encodeCmd, decodeCmd, benchCmd)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "blockpipe:", err)
		os.Exit(1)
	}
}

func runEncode(cmd *cobra.Command, args []string) error {
	if flagOutput != "" && len(args) > 1 {
		return fmt.Errorf("-o is only valid with a single input file")
	}
	conf := &blockpipe.Config{BlockSize: flagBlockSize, WindowSize: flagWindowSize}

	var total int64
	for _, name := range args {
		fi, err := os.Stat(name)
		if err != nil {
			return err
		}
		total += fi.Size()
	}
	bar := newBar(total)

	var g errgroup.Group
	g.SetLimit(flagJobs)
	for _, name := range args {
		name := name
		g.Go(func() error {
			p, err := blockpipe.New(flagPipeline, conf)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(name)
			if err != nil {
				return err
			}
			payload, err := p.Encode(data)
			if err != nil {
				return fmt.Errorf("%s: %v", name, err)
			}
			hdr := fileHeader{
				Pipeline:   p.String(),
				BlockSize:  flagBlockSize,
				WindowSize: flagWindowSize,
				OrigSize:   int64(len(data)),
				CRC32:      checksum(data),
			}
			out := flagOutput
			if out == "" {
				out = name + encodedSuffix
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := writeContainer(f, hdr, payload); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			if bar != nil {
				bar.Add(len(data))
			}
			return nil
		})
	}
	err := g.Wait()
	if bar != nil {
		bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	return err
}

func runDecode(cmd *cobra.Command, args []string) error {
	if flagOutput != "" && len(args) > 1 {
		return fmt.Errorf("-o is only valid with a single input file")
	}

	var g errgroup.Group
	g.SetLimit(flagJobs)
	for _, name := range args {
		name := name
		g.Go(func() error {
			f, err := os.Open(name)
			if err != nil {
				return err
			}
			hdr, payload, err := readContainer(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("%s: %v", name, err)
			}
			p, err := blockpipe.New(hdr.Pipeline, &blockpipe.Config{
				BlockSize:  hdr.BlockSize,
				WindowSize: hdr.WindowSize,
			})
			if err != nil {
				return fmt.Errorf("%s: %v", name, err)
			}
			data, err := p.Decode(payload)
			if err != nil {
				return fmt.Errorf("%s: %v", name, err)
			}
			if int64(len(data)) != hdr.OrigSize || checksum(data) != hdr.CRC32 {
				return fmt.Errorf("%s: checksum mismatch", name)
			}
			out := flagOutput
			if out == "" {
				out = strings.TrimSuffix(name, encodedSuffix)
				if out == name {
					out = name + ".out"
				}
			}
			return os.WriteFile(out, data, 0666)
		})
	}
	return g.Wait()
}

func runBench(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	results, err := bench.Run(data)
	if err != nil {
		return err
	}
	fmt.Print(bench.Format(results, len(data)))
	return nil
}

func newBar(total int64) *progressbar.ProgressBar {
	if !flagProgress || total == 0 {
		return nil
	}
	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetBytes64(total),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(true))
	bar.RenderBlank()
	return bar
}
