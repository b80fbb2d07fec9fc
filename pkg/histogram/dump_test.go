package histogram

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestDump_SaveLoad(t *testing.T) {
	h := fill(3, 0, 1, 2.5, 0, 0, 1e-9, 7, 0, 3)
	path := filepath.Join(t.TempDir(), "h.hist.zst")

	if err := SaveDump(path, h); err != nil {
		t.Fatal(err)
	}
	got, err := LoadDump(path)
	if err != nil {
		t.Fatal(err)
	}

	if got.Size != h.Size {
		t.Fatalf("Size = %d, want %d", got.Size, h.Size)
	}
	for i := range h.Values {
		if got.Values[i] != h.Values[i] {
			t.Errorf("Values[%d] = %v, want %v", i, got.Values[i], h.Values[i])
		}
	}
}

func TestReadDump_Rejects(t *testing.T) {
	compressed := func(raw []byte) *bytes.Reader {
		var buf bytes.Buffer
		enc, err := zstd.NewWriter(&buf)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := enc.Write(raw); err != nil {
			t.Fatal(err)
		}
		if err := enc.Close(); err != nil {
			t.Fatal(err)
		}
		return bytes.NewReader(buf.Bytes())
	}

	tcs := []struct {
		name string
		raw  []byte
	}{
		{name: "empty", raw: nil},
		{name: "wrong magic", raw: []byte("PNG!\x01\x00\x00\x00")},
		{name: "zero size", raw: []byte("BBH1\x00\x00\x00\x00")},
		{name: "truncated values", raw: []byte("BBH1\x02\x00\x00\x00\x00\x00")},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadDump(compressed(tc.raw))
			if !errors.Is(err, ErrBadDump) {
				t.Errorf("ReadDump() = %v, want ErrBadDump", err)
			}
		})
	}
}
