package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"

	"github.com/spf13/cobra"
)

type person struct {
	ID       int32  `json:"id"`
	Age      uint32 `json:"age"`
	Siblings uint32 `json:"siblings"`
}

const personSize = 8

func encodePerson(p person) []byte {
	b := make([]byte, personSize)
	binary.LittleEndian.PutUint32(b[0:4], p.Age)
	binary.LittleEndian.PutUint32(b[4:8], p.Siblings)
	return b
}

func decodePerson(id int32, b []byte) person {
	return person{
		ID:       id,
		Age:      binary.LittleEndian.Uint32(b[0:4]),
		Siblings: binary.LittleEndian.Uint32(b[4:8]),
	}
}

func newPeopleCmd(opts *globalOptions) *cobra.Command {
	var (
		n    int
		seed int64
	)
	cmd := &cobra.Command{
		Use:   "people",
		Short: "Store people by id and walk them with ForEach and Entries",
		Long: `The people command fills a map from 4-byte ids to 8-byte person records,
prints every person from a ForEach visitor (once without and once with a
context value), then exports all records and prints them again.

Example:
  fixmapctl people --n 5 --seed 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeople(cmd.OutOrStdout(), opts, n, seed)
		},
	}
	cmd.Flags().IntVarP(&n, "n", "n", 5, "Number of people")
	cmd.Flags().Int64Var(&seed, "seed", 5, "Random seed for ages and sibling counts")
	return cmd
}

func runPeople(out io.Writer, opts *globalOptions, n int, seed int64) error {
	m, cleanup, err := opts.newMap(4, personSize, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	rng := rand.New(rand.NewSource(seed))
	key := make([]byte, 4)
	for i := 0; i < n; i++ {
		p := person{ID: int32(i), Age: uint32(rng.Intn(50)), Siblings: uint32(rng.Intn(3))}
		binary.LittleEndian.PutUint32(key, uint32(p.ID))
		if err := m.Put(key, encodePerson(p)); err != nil {
			return fmt.Errorf("could not insert person %d: %w", i, err)
		}
	}

	keys, vals, err := m.Entries()
	if err != nil {
		return err
	}
	if opts.jsonOut {
		people := make([]person, 0, m.Len())
		for i := 0; i < m.Len(); i++ {
			id := int32(binary.LittleEndian.Uint32(keys[i*4:]))
			people = append(people, decodePerson(id, vals[i*personSize:(i+1)*personSize]))
		}
		return printJSON(out, people)
	}

	printPerson := func(key, val []byte, data any) {
		if scoped, ok := data.(*int); ok {
			fmt.Fprintf(out, "scoped variable %d: ", *scoped)
		}
		p := decodePerson(int32(binary.LittleEndian.Uint32(key)), val)
		fmt.Fprintf(out, "person %d -> age: %d, siblings: %d\n", p.ID, p.Age, p.Siblings)
	}
	m.ForEach(printPerson, nil)
	scoped := 10
	m.ForEach(printPerson, &scoped)

	for i := 0; i < m.Len(); i++ {
		p := decodePerson(int32(binary.LittleEndian.Uint32(keys[i*4:])), vals[i*personSize:(i+1)*personSize])
		fmt.Fprintf(out, "exported person %d: age %d, siblings %d\n", p.ID, p.Age, p.Siblings)
	}
	return nil
}
