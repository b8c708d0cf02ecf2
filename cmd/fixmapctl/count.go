package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theflywheel/fixmap"
)

func newCountCmd(opts *globalOptions) *cobra.Command {
	var byRef bool
	cmd := &cobra.Command{
		Use:   "count <text>...",
		Short: "Count character occurrences",
		Long: `The count command counts how often each byte occurs in the given text
using a map from 1-byte keys to 4-byte counters.

With --by-ref the map stores 4-byte handles into a counter table the command
owns, so incrementing a counter does not need another Put.

Example:
  fixmapctl count "There are many letters in this string"
  fixmapctl count --by-ref --json hello`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			var counts map[byte]uint32
			var err error
			if byRef {
				counts, err = countByRef(opts, text)
			} else {
				counts, err = countByValue(opts, text)
			}
			if err != nil {
				return err
			}
			return printCounts(cmd, opts, counts)
		},
	}
	cmd.Flags().BoolVar(&byRef, "by-ref", false, "Store handles to caller-owned counters instead of the counts")
	return cmd
}

func countByValue(opts *globalOptions, text string) (map[byte]uint32, error) {
	m, cleanup, err := opts.newMap(1, 4, nil)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	val := make([]byte, 4)
	for i := 0; i < len(text); i++ {
		key := []byte{text[i]}
		err := m.GetInto(key, val)
		switch {
		case errors.Is(err, fixmap.ErrNotFound):
			binary.LittleEndian.PutUint32(val, 1)
		case err == nil:
			binary.LittleEndian.PutUint32(val, binary.LittleEndian.Uint32(val)+1)
		default:
			return nil, fmt.Errorf("unexpected status: %w", err)
		}
		if err := m.Put(key, val); err != nil {
			return nil, fmt.Errorf("could not insert into map: %w", err)
		}
	}
	return collectCounts(m, func(val []byte) uint32 { return binary.LittleEndian.Uint32(val) }), nil
}

func countByRef(opts *globalOptions, text string) (map[byte]uint32, error) {
	m, cleanup, err := opts.newMap(1, 4, nil)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	// The map holds indexes into counters; the counters themselves are ours.
	var counters []uint32
	ref := make([]byte, 4)
	for i := 0; i < len(text); i++ {
		key := []byte{text[i]}
		err := m.GetInto(key, ref)
		switch {
		case errors.Is(err, fixmap.ErrNotFound):
			counters = append(counters, 1)
			binary.LittleEndian.PutUint32(ref, uint32(len(counters)-1))
			if err := m.Put(key, ref); err != nil {
				return nil, fmt.Errorf("could not insert into map: %w", err)
			}
		case err == nil:
			counters[binary.LittleEndian.Uint32(ref)]++
		default:
			return nil, fmt.Errorf("unexpected status: %w", err)
		}
	}
	return collectCounts(m, func(val []byte) uint32 { return counters[binary.LittleEndian.Uint32(val)] }), nil
}

func collectCounts(m *fixmap.Map, count func(val []byte) uint32) map[byte]uint32 {
	counts := make(map[byte]uint32, m.Len())
	m.ForEach(func(key, val []byte, _ any) {
		counts[key[0]] = count(val)
	}, nil)
	return counts
}

func printCounts(cmd *cobra.Command, opts *globalOptions, counts map[byte]uint32) error {
	chars := make([]byte, 0, len(counts))
	for c := range counts {
		chars = append(chars, c)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })

	out := cmd.OutOrStdout()
	if opts.jsonOut {
		result := make(map[string]uint32, len(counts))
		for _, c := range chars {
			result[string(c)] = counts[c]
		}
		return printJSON(out, result)
	}
	for _, c := range chars {
		fmt.Fprintf(out, "%q: %d\n", c, counts[c])
	}
	return nil
}
