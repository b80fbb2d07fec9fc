// Package manifest records how an image was rendered, next to the image.
package manifest

import (
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"

	"github.com/willbeason/buddhabrot/pkg/render"
)

type Manifest struct {
	Image         string         `json:"image"`
	Size          int            `json:"size"`
	Iterations    int            `json:"iterations"`
	Workers       int            `json:"workers"`
	MaxSamples    int            `json:"max_samples"`
	EscapeRadius2 float64        `json:"escape_radius2"`
	Window        [4]float64     `json:"window"`
	Mirror        bool           `json:"mirror"`
	Min           float64        `json:"min"`
	Max           float64        `json:"max"`
	Trials        int            `json:"trials"`
	Duration      time.Duration  `json:"duration"`
	PerWorker     []render.Stats `json:"per_worker"`
}

// FromResult describes r, written to the image file image.
func FromResult(image string, r *render.Result) Manifest {
	lo, hi := r.Histogram.MinMax()
	w := r.Config.Window

	return Manifest{
		Image:         image,
		Size:          r.Config.Size,
		Iterations:    r.Config.Iterations,
		Workers:       r.Config.Workers,
		MaxSamples:    r.Config.MaxSamples,
		EscapeRadius2: r.Config.EscapeRadius2,
		Window:        [4]float64{w.ULo, w.UHi, w.VLo, w.VHi},
		Mirror:        r.Config.Mirror,
		Min:           lo,
		Max:           hi,
		Trials:        r.Trials(),
		Duration:      r.Duration,
		PerWorker:     r.Workers,
	}
}

func Write(path string, m Manifest) error {
	data, err := sonic.ConfigStd.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func Read(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	if err := sonic.ConfigStd.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("decoding %s: %w", path, err)
	}
	return m, nil
}
