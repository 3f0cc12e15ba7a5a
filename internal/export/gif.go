package export

import (
	"fmt"
	"image"
	"image/gif"
	"io"
	"os"
)

// EncodeGIF writes the frame sequence as a looping animated GIF at the
// given frame rate.
func EncodeGIF(w io.Writer, frames []*image.Paletted, fps int) error {
	if len(frames) == 0 {
		return fmt.Errorf("export: no frames to encode")
	}
	if fps <= 0 {
		fps = 5
	}
	delay := 100 / fps // GIF delays are in hundredths of a second
	if delay < 1 {
		delay = 1
	}

	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}

// SaveGIF encodes to a file path.
func SaveGIF(path string, frames []*image.Paletted, fps int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := EncodeGIF(f, frames, fps); err != nil {
		return err
	}
	return f.Close()
}
