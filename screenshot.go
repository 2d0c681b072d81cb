package boing

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"
)

// Screenshot renders the current frame onto a transparent canvas-sized image
// and writes it to ScreenshotDir with a timestamped, labeled file name. It
// returns the path written.
func (w *Widget) Screenshot(label string) (string, error) {
	if err := os.MkdirAll(w.ScreenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("boing: screenshot: mkdir %s: %w", w.ScreenshotDir, err)
	}
	img := ComposeFrame(w.canvas, w.CurrentFrame())
	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(w.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
	if err := writePNG(path, img); err != nil {
		return "", fmt.Errorf("boing: screenshot: %w", err)
	}
	return path, nil
}

// ComposeFrame draws frame bottom-center onto a transparent canvas.
func ComposeFrame(c Canvas, frame *image.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))
	if frame == nil {
		return img
	}
	at := c.Anchor(frame)
	draw.Draw(img, frame.Bounds().Add(at), frame, frame.Bounds().Min, draw.Over)
	return img
}

// DumpFrames writes every frame of c to dir as press_NNN.png and
// release_NNN.png, each composed on canvas. It returns the number of files
// written.
func DumpFrames(dir string, canvas Canvas, c *FrameCache) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("boing: dump frames: mkdir %s: %w", dir, err)
	}
	n := 0
	for _, set := range []struct {
		name string
		seq  FrameSequence
	}{{"press", c.Press}, {"release", c.Release}} {
		for i, f := range set.seq {
			path := filepath.Join(dir, fmt.Sprintf("%s_%03d.png", set.name, i))
			if err := writePNG(path, ComposeFrame(canvas, f)); err != nil {
				return n, fmt.Errorf("boing: dump frames: %w", err)
			}
			n++
		}
	}
	return n, nil
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
