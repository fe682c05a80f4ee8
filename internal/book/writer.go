package book

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/slices"
)

// Write emits entries as a Polyglot file: records sorted by key, entries
// within a key by descending weight. The result loads with LoadReader.
func Write(w io.Writer, entries map[uint64][]Entry) error {
	keys := make([]uint64, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	bw := bufio.NewWriter(w)
	var rec [recordSize]byte
	for _, key := range keys {
		es := slices.Clone(entries[key])
		slices.SortStableFunc(es, func(a, b Entry) int {
			return int(b.Weight) - int(a.Weight)
		})
		for _, e := range es {
			binary.BigEndian.PutUint64(rec[0:8], key)
			binary.BigEndian.PutUint16(rec[8:10], e.Move)
			binary.BigEndian.PutUint16(rec[10:12], e.Weight)
			binary.BigEndian.PutUint32(rec[12:16], e.Learn)
			if _, err := bw.Write(rec[:]); err != nil {
				return fmt.Errorf("write book record: %w", err)
			}
		}
	}
	return bw.Flush()
}

// WriteFile writes the book to path.
func WriteFile(path string, entries map[uint64][]Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	if err := Write(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
