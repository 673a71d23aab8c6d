// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package embedding

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// Persisted cache layout: two files in one directory.
//
//	embeddings.bin  magic "SNV1" | uint32 N | uint32 D | N*D float32 LE
//	tracks.json     JSON array of N track identifiers, row order
//
// Row i of the matrix belongs to identifier i. Both files are written to a
// temp name and renamed into place so a crashed save never leaves a torn
// cache behind.

const (
	vectorsFileName = "embeddings.bin"
	tracksFileName  = "tracks.json"

	cacheMagic = "SNV1"

	// maxCacheElements caps N*D on load so a corrupt header cannot trigger
	// a multi-gigabyte allocation.
	maxCacheElements = 1 << 30
)

// SaveCache persists the store's matrix and identifier list under dir,
// creating the directory if needed.
func SaveCache(dir string, s *Store) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	if err := writeAtomic(filepath.Join(dir, vectorsFileName), func(w *bufio.Writer) error {
		return encodeMatrix(w, s)
	}); err != nil {
		return fmt.Errorf("failed to write vector matrix: %w", err)
	}

	ids, err := json.Marshal(s.ids)
	if err != nil {
		return fmt.Errorf("failed to encode identifiers: %w", err)
	}
	if err := writeAtomic(filepath.Join(dir, tracksFileName), func(w *bufio.Writer) error {
		_, werr := w.Write(ids)
		return werr
	}); err != nil {
		return fmt.Errorf("failed to write identifiers: %w", err)
	}

	return nil
}

// LoadCache reads a persisted store from dir. The row-to-identifier
// correspondence survives independent save/load cycles.
func LoadCache(dir string) (*Store, error) {
	ids, err := readIdentifiers(filepath.Join(dir, tracksFileName))
	if err != nil {
		return nil, err
	}

	n, d, data, err := readMatrix(filepath.Join(dir, vectorsFileName))
	if err != nil {
		return nil, err
	}

	if n != len(ids) {
		return nil, fmt.Errorf("%w: matrix holds %d rows but %d identifiers on disk", ErrDimensionMismatch, n, len(ids))
	}

	s := &Store{
		dim:  d,
		ids:  ids,
		data: data,
		rows: make(map[string]int, len(ids)),
	}
	for i, id := range ids {
		if _, dup := s.rows[id]; dup {
			return nil, fmt.Errorf("duplicate track identifier %q in cached store", id)
		}
		s.rows[id] = i
	}
	return s, nil
}

// CacheExists reports whether both cache files are present under dir.
func CacheExists(dir string) bool {
	for _, name := range []string{vectorsFileName, tracksFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}

func encodeMatrix(w *bufio.Writer, s *Store) error {
	if _, err := w.WriteString(cacheMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(s.Len())); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(s.dim)); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, s.data)
}

func readMatrix(path string) (n, d int, data []float32, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to read vector matrix: %w", err)
	}

	r := bytes.NewReader(raw)

	magic := make([]byte, len(cacheMagic))
	if _, err := io.ReadFull(r, magic); err != nil || string(magic) != cacheMagic {
		return 0, 0, nil, fmt.Errorf("vector matrix %s is not a Sonarium cache (bad magic)", path)
	}

	var rows, cols uint32
	if err := binary.Read(r, binary.LittleEndian, &rows); err != nil {
		return 0, 0, nil, fmt.Errorf("failed to read row count: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &cols); err != nil {
		return 0, 0, nil, fmt.Errorf("failed to read dimension: %w", err)
	}

	total := uint64(rows) * uint64(cols)
	if total > maxCacheElements {
		return 0, 0, nil, fmt.Errorf("cached matrix %dx%d exceeds size limit", rows, cols)
	}
	if rows > 0 && cols == 0 {
		return 0, 0, nil, fmt.Errorf("%w: cached matrix has %d rows of dimension 0", ErrDimensionMismatch, rows)
	}

	data = make([]float32, total)
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return 0, 0, nil, fmt.Errorf("failed to read %d matrix elements: %w", total, err)
	}

	return int(rows), int(cols), data, nil
}

func readIdentifiers(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read identifiers: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("failed to decode identifiers: %w", err)
	}
	return ids, nil
}

// writeAtomic writes through a temp file in the same directory and renames
// it over the target.
func writeAtomic(path string, fill func(*bufio.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if err := fill(w); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
