package utils

import (
	"image"
	"image/png"
	"os"
	"strings"
)

// SaveImage encodes img as a PNG to filename, adding the .png extension if
// it is missing.
func SaveImage(filename string, img image.Image) error {
	if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		filename += ".png"
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
