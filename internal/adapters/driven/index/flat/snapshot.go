package flat

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
)

// Snapshot layout, all little-endian:
//
//	magic    uint32  "WVIX"
//	version  uint32
//	dim      uint32
//	count    uint64
//	payload  count*dim float32
const (
	snapshotMagic   uint32 = 0x58495657 // "WVIX"
	snapshotVersion uint32 = 1
)

type snapshotHeader struct {
	Magic   uint32
	Version uint32
	Dim     uint32
	Count   uint64
}

// readSnapshot loads vectors from path. found is false when no snapshot
// file exists, which callers treat as an empty index.
func readSnapshot(path string, dimension int) (vectors [][]float32, found bool, err error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var hdr snapshotHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, true, fmt.Errorf("reading snapshot header: %w: %w", domain.ErrIndexCorrupt, err)
	}
	if hdr.Magic != snapshotMagic {
		return nil, true, fmt.Errorf("%w: bad magic %#x", domain.ErrIndexCorrupt, hdr.Magic)
	}
	if hdr.Version != snapshotVersion {
		return nil, true, fmt.Errorf("%w: unsupported version %d", domain.ErrIndexCorrupt, hdr.Version)
	}
	if int(hdr.Dim) != dimension {
		return nil, true, fmt.Errorf("%w: snapshot dimension %d, index expects %d",
			domain.ErrDimensionMismatch, hdr.Dim, dimension)
	}

	vectors = make([][]float32, 0, hdr.Count)
	buf := make([]byte, int(hdr.Dim)*4)
	for i := uint64(0); i < hdr.Count; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, true, fmt.Errorf("reading vector %d: %w: %w", i, domain.ErrIndexCorrupt, err)
		}
		v := make([]float32, hdr.Dim)
		for j := range v {
			v[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf[j*4:]))
		}
		vectors = append(vectors, v)
	}

	return vectors, true, nil
}

// writeSnapshot persists vectors atomically: the snapshot is written to
// a temporary file in the same directory and renamed over the target,
// so readers never observe a half-written file.
func writeSnapshot(path string, dimension int, vectors [][]float32) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(tmp)

	hdr := snapshotHeader{
		Magic:   snapshotMagic,
		Version: snapshotVersion,
		Dim:     uint32(dimension),
		Count:   uint64(len(vectors)),
	}
	if err = binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("writing snapshot header: %w", err)
	}

	buf := make([]byte, dimension*4)
	for _, v := range vectors {
		for j, f := range v {
			binary.LittleEndian.PutUint32(buf[j*4:], math.Float32bits(f))
		}
		if _, err = w.Write(buf); err != nil {
			return fmt.Errorf("writing vector data: %w", err)
		}
	}

	if err = w.Flush(); err != nil {
		return fmt.Errorf("flushing snapshot: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing snapshot: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp snapshot: %w", err)
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming snapshot into place: %w", err)
	}

	return nil
}
