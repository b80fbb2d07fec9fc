package histogram

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/zstd"
)

var ErrBadDump = errors.New("not a histogram dump")

var dumpMagic = [4]byte{'B', 'B', 'H', '1'}

// maxDumpSize guards allocations when reading untrusted dumps.
const maxDumpSize = 1 << 16

// WriteDump stores h as a zstd stream: magic, uint32 size, then Size*Size
// little-endian float64 values.
func WriteDump(w io.Writer, h *Histogram) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}

	bw := bufio.NewWriter(enc)
	if _, err := bw.Write(dumpMagic[:]); err != nil {
		enc.Close()
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(h.Size)); err != nil {
		enc.Close()
		return err
	}

	var b [8]byte
	for _, v := range h.Values {
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
		if _, err := bw.Write(b[:]); err != nil {
			enc.Close()
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadDump is the inverse of WriteDump.
func ReadDump(r io.Reader) (*Histogram, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	br := bufio.NewReader(dec)

	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDump, err)
	}
	if magic != dumpMagic {
		return nil, fmt.Errorf("%w: magic %q", ErrBadDump, magic[:])
	}

	var size uint32
	if err := binary.Read(br, binary.LittleEndian, &size); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDump, err)
	}
	if size == 0 || size > maxDumpSize {
		return nil, fmt.Errorf("%w: size %d", ErrBadDump, size)
	}

	h := New(int(size))
	var b [8]byte
	for i := range h.Values {
		if _, err := io.ReadFull(br, b[:]); err != nil {
			return nil, fmt.Errorf("%w: value %d: %v", ErrBadDump, i, err)
		}
		v := math.Float64frombits(binary.LittleEndian.Uint64(b[:]))
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: value %d is %v", ErrBadDump, i, v)
		}
		h.Values[i] = v
	}

	return h, nil
}

func SaveDump(path string, h *Histogram) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteDump(f, h); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return f.Close()
}

func LoadDump(path string) (*Histogram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h, err := ReadDump(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return h, nil
}
