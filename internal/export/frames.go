// Package export serializes the rendered animation: SVG for single
// frames, animated GIF natively, MP4 through the ffmpeg binary.
package export

import (
	"image"
	"image/color"

	"github.com/rmaitra/helioviz/internal/anim"
	"github.com/rmaitra/helioviz/internal/ephem"
	"github.com/rmaitra/helioviz/internal/render"
	"github.com/rmaitra/helioviz/internal/scene"
)

// Canvas cell size in raster pixels.
const (
	cellW = 8
	cellH = 16
)

// FrameSize converts a target raster resolution into canvas cell
// dimensions.
func FrameSize(width, height int) (cols, rows int) {
	cols, rows = width/cellW, height/cellH
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// RenderFrame draws frame k (static context plus animated drawables) onto
// a fresh pass over the canvas.
func RenderFrame(canvas *render.Canvas, cam *render.Camera, sc *scene.Scene, set *ephem.Set, k int) {
	canvas.Clear()
	wf := render.NewWireframe()
	sc.AddStatic(wf)
	anim.DrawFrame(wf, set, k)
	render.Draw(canvas, wf, cam)
}

// RenderAll runs the animator from frame 0 through N-1 and rasterizes
// every frame. Exactly N frames come back; the animator halts at the end.
func RenderAll(set *ephem.Set, sc *scene.Scene, cam *render.Camera, width, height int) []*image.Paletted {
	cols, rows := FrameSize(width, height)
	canvas := render.NewCanvas(cols, rows)
	a := anim.New(set)

	frames := make([]*image.Paletted, 0, a.Len())
	for {
		RenderFrame(canvas, cam, sc, set, a.Frame())
		frames = append(frames, Rasterize(canvas))
		if !a.Step() {
			break
		}
	}
	return frames
}

// Rasterize expands the canvas's Braille dots into a paletted image, one
// filled block per lit sub-pixel.
func Rasterize(canvas *render.Canvas) *image.Paletted {
	imgW, imgH := canvas.Width*cellW, canvas.Height*cellH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH),
		color.Palette{color.Black, color.White})

	dotW, dotH := cellW/2, cellH/4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			baseX, baseY := col*cellW, row*cellH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotBit(dx, dy) == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
						}
					}
				}
			}
		}
	}
	return img
}

func dotBit(dx, dy int) int {
	switch dy {
	case 0:
		return 1 << (dx * 3)
	case 1:
		return 2 << (dx * 3)
	case 2:
		return 4 << (dx * 3)
	default:
		if dx == 0 {
			return 0x40
		}
		return 0x80
	}
}
