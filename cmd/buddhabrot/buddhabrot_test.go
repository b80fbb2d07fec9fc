package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/willbeason/buddhabrot/pkg/codec"
	"github.com/willbeason/buddhabrot/pkg/histogram"
	"github.com/willbeason/buddhabrot/pkg/manifest"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()

	cmd := mainCmd()
	var stderr bytes.Buffer
	cmd.SetOut(&stderr)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	return cmd.Execute()
}

func TestRender16(t *testing.T) {
	dir := t.TempDir()

	err := execute(t, "16", "50", "1", "8", "--out", dir, "--dump", "--preview", "4")
	if err != nil {
		t.Fatal(err)
	}

	base := filepath.Join(dir, Name(16, 50, 8))

	img, err := codec.Read(base + ".png")
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Fatalf("image is %v, want 16x16", b)
	}
	nonZero := false
	for _, p := range img.Pix {
		if p != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Error("image is black")
	}

	preview, err := codec.Read(base + "_preview.png")
	if err != nil {
		t.Fatal(err)
	}
	if b := preview.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("preview is %v, want 4x4", b)
	}

	h, err := histogram.LoadDump(base + ".hist.zst")
	if err != nil {
		t.Fatal(err)
	}
	if h.Size != 16 {
		t.Errorf("dump size = %d, want 16", h.Size)
	}

	m, err := manifest.Read(base + ".json")
	if err != nil {
		t.Fatal(err)
	}
	if m.Image != filepath.Base(base+".png") || m.Size != 16 || m.MaxSamples != 8 {
		t.Errorf("manifest = %+v", m)
	}
}

func TestRenderTIFF(t *testing.T) {
	dir := t.TempDir()

	err := execute(t, "4", "1", "4", "5", "--out", dir, "--format", "tiff", "--manifest=false")
	if err != nil {
		t.Fatal(err)
	}

	img, err := codec.Read(filepath.Join(dir, Name(4, 1, 5)+".tiff"))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Fatalf("image is %v, want 4x4", b)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("wrote %d files, want only the image", len(entries))
	}
}

func TestBadArgs(t *testing.T) {
	tcs := []struct {
		name string
		args []string
	}{
		{name: "missing", args: []string{"16", "50", "1"}},
		{name: "extra", args: []string{"16", "50", "1", "8", "9"}},
		{name: "not a number", args: []string{"16", "fifty", "1", "8"}},
		{name: "zero", args: []string{"16", "50", "0", "8"}},
		{name: "negative", args: []string{"-16", "50", "1", "8"}},
		{name: "bad format", args: []string{"16", "50", "1", "8", "--format", "gif"}},
		{name: "zero radius", args: []string{"16", "50", "1", "8", "--escape-radius2", "0"}},
		{name: "negative radius", args: []string{"16", "50", "1", "8", "--escape-radius2=-2"}},
		{name: "infinite radius", args: []string{"16", "50", "1", "8", "--escape-radius2", "inf"}},
		{name: "nan radius", args: []string{"16", "50", "1", "8", "--escape-radius2", "NaN"}},
		{name: "negative preview", args: []string{"16", "50", "1", "8", "--preview=-1"}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()

			if err := execute(t, append(tc.args, "--out", dir)...); err == nil {
				t.Fatal("Execute() should fail")
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 0 {
				t.Errorf("failed run wrote %d files", len(entries))
			}
		})
	}
}

func TestFailedSideFileLeavesNoImage(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, Name(8, 10, 5))

	// A directory where the manifest should go makes its write fail after
	// the preview has already been written.
	if err := os.Mkdir(base+".json", 0o755); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, "8", "10", "1", "5", "--out", dir, "--preview", "4"); err == nil {
		t.Fatal("Execute() should fail")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != filepath.Base(base+".json") {
			t.Errorf("failed run left %s behind", e.Name())
		}
	}
}

func TestName(t *testing.T) {
	if got := Name(1024, 1000, 64); got != "buddhabrot_1024_1000_64" {
		t.Errorf("Name() = %q", got)
	}
	if Name(16, 50, 8) == Name(16, 50, 9) {
		t.Error("different sample ceilings share a file name")
	}
}
