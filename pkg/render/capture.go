package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// captureFrame writes the screen to CaptureDir as a PNG. Encoding happens off the game loop.
func (h *Host) captureFrame(img *ebiten.Image, timestamp time.Time) {
	if h.CaptureDir == "" {
		return
	}

	if err := os.MkdirAll(h.CaptureDir, 0o755); err != nil {
		h.log.Error().Err(err).Msg("creating capture directory")
		return
	}

	filename := fmt.Sprintf("globe-%s-%03d.png", timestamp.Format("20060102-150405"), timestamp.Nanosecond()/int(time.Millisecond))
	path := filepath.Join(h.CaptureDir, filename)

	// ReadPixels copies, so the goroutine owns rgba outright.
	rgba := image.NewRGBA(img.Bounds())
	img.ReadPixels(rgba.Pix)

	go func() {
		if err := writePNG(path, rgba); err != nil {
			h.log.Error().Err(err).Str("path", path).Msg("capturing frame")
			return
		}
		h.log.Info().Str("path", path).Msg("captured frame")
	}()
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
