// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// SaveScreenshotPNG writes img to dir as screenshot-<timestamp>.png and
// returns the path written.
func SaveScreenshotPNG(img image.Image, dir string) (string, error) {
	timestamp := time.Now().Format("20060102-150405.000")
	filename := filepath.Join(dir, fmt.Sprintf("screenshot-%s.png", timestamp))

	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(filename)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return filename, nil
}
