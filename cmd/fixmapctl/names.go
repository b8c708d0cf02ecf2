package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/theflywheel/fixmap"
)

// nameTable owns name bytes. Key records refer to a name by handle and
// length, like a pointer and size would.
type nameTable struct {
	names [][]byte
}

func (t *nameTable) add(name string) []byte {
	t.names = append(t.names, []byte(name))
	key := make([]byte, 8)
	binary.LittleEndian.PutUint32(key[0:4], uint32(len(t.names)-1))
	binary.LittleEndian.PutUint32(key[4:8], uint32(len(name)))
	return key
}

func (t *nameTable) ResolveKey(key []byte) []byte {
	handle := binary.LittleEndian.Uint32(key[0:4])
	n := binary.LittleEndian.Uint32(key[4:8])
	return t.names[handle][:n]
}

type namesResult struct {
	IdentityStatus string `json:"identity_status"`
	ResolvedStatus string `json:"resolved_status"`
	ResolvedValue  int32  `json:"resolved_value"`
	ResolvedLen    int    `json:"resolved_len"`
}

func newNamesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "names",
		Short: "Compare reference keys by identity and through a resolver",
		Long: `The names command stores a value under a key record that refers to the
name "ics53" and looks it up through a second reference to an equal name.
Without a resolver the references differ, so the lookup misses. It then
repeats the experiment with two references to "Brian" and a resolver that
compares the referenced bytes, so both references reach one entry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNames(cmd.OutOrStdout(), opts)
		},
	}
}

func runNames(out io.Writer, opts *globalOptions) error {
	var res namesResult
	val := make([]byte, 4)
	binary.LittleEndian.PutUint32(val, 42)

	var plain nameTable
	m, cleanup, err := opts.newMap(8, 4, nil)
	if err != nil {
		return err
	}
	if err := m.Put(plain.add("ics53"), val); err != nil {
		cleanup()
		return fmt.Errorf("could not insert into map: %w", err)
	}
	_, err = m.Get(plain.add("ics53"))
	cleanup()
	if err != nil && !errors.Is(err, fixmap.ErrNotFound) {
		return fmt.Errorf("could not retrieve value: %w", err)
	}
	res.IdentityStatus = fixmap.StatusOf(err).String()

	var names nameTable
	m, cleanup, err = opts.newMap(8, 4, &names)
	if err != nil {
		return err
	}
	defer cleanup()
	n1, n2 := names.add("Brian"), names.add("Brian")
	if err := m.Put(n1, val); err != nil {
		return fmt.Errorf("could not insert into map: %w", err)
	}
	got, err := m.Get(n2)
	if err != nil {
		return fmt.Errorf("could not retrieve value: %w", err)
	}
	res.ResolvedStatus = fixmap.StatusOf(err).String()
	res.ResolvedValue = int32(binary.LittleEndian.Uint32(got))
	res.ResolvedLen = m.Len()

	if opts.jsonOut {
		return printJSON(out, res)
	}
	fmt.Fprintf(out, "identity keys: second reference to \"ics53\": %s\n", res.IdentityStatus)
	fmt.Fprintf(out, "resolved keys: second reference to \"Brian\": %s, value %d, entries %d\n",
		res.ResolvedStatus, res.ResolvedValue, res.ResolvedLen)
	return nil
}
