package main

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type fillResult struct {
	Inserted   int   `json:"inserted"`
	Removed    int   `json:"removed"`
	Len        int   `json:"len"`
	Cap        int   `json:"cap"`
	Tombstones int   `json:"tombstones"`
	Resizes    int   `json:"resizes"`
	Bytes      int64 `json:"bytes"`
}

func newFillCmd(opts *globalOptions) *cobra.Command {
	var (
		n         int
		remove    int
		valueSize uint32
	)
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Insert random UUID keys and report map statistics",
		Long: `The fill command inserts --n random UUIDs as 16-byte keys, removes the
first --remove of them again, and prints the map's length, capacity,
tombstones, number of resizes and memory footprint.

Example:
  fixmapctl fill --n 100000 --remove 5000 --hash xxhash
  fixmapctl fill --config map.toml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if remove > n {
				return fmt.Errorf("cannot remove %d of %d keys", remove, n)
			}
			if valueSize == 0 {
				return fmt.Errorf("value size must be positive")
			}
			return runFill(cmd.OutOrStdout(), opts, n, remove, valueSize)
		},
	}
	cmd.Flags().IntVarP(&n, "n", "n", 1000, "Number of keys to insert")
	cmd.Flags().IntVar(&remove, "remove", 0, "Number of inserted keys to remove again")
	cmd.Flags().Uint32Var(&valueSize, "value-size", 8, "Value record size in bytes")
	return cmd
}

func runFill(out io.Writer, opts *globalOptions, n, remove int, valueSize uint32) error {
	m, cleanup, err := opts.newMap(16, valueSize, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	keys := make([]uuid.UUID, n)
	val := make([]byte, valueSize)
	var idx [8]byte
	for i := range keys {
		keys[i] = uuid.New()
		binary.BigEndian.PutUint64(idx[:], uint64(i))
		copy(val, idx[:])
		if err := m.Put(keys[i][:], val); err != nil {
			return fmt.Errorf("failed to insert key %s: %w", keys[i], err)
		}
	}
	for i := 0; i < remove; i++ {
		if err := m.Remove(keys[i][:]); err != nil {
			return fmt.Errorf("failed to remove key %s: %w", keys[i], err)
		}
	}

	st := m.Stats()
	res := fillResult{
		Inserted:   n,
		Removed:    remove,
		Len:        st.Len,
		Cap:        st.Cap,
		Tombstones: st.Tombstones,
		Resizes:    st.Resizes,
		Bytes:      st.Bytes,
	}
	if opts.jsonOut {
		return printJSON(out, res)
	}
	fmt.Fprintf(out, "Inserted:   %d\n", res.Inserted)
	fmt.Fprintf(out, "Removed:    %d\n", res.Removed)
	fmt.Fprintf(out, "Len:        %d\n", res.Len)
	fmt.Fprintf(out, "Cap:        %d\n", res.Cap)
	fmt.Fprintf(out, "Tombstones: %d\n", res.Tombstones)
	fmt.Fprintf(out, "Resizes:    %d\n", res.Resizes)
	fmt.Fprintf(out, "Bytes:      %d\n", res.Bytes)
	return nil
}
