package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
)

var gifPalette = color.Palette{color.Black, color.White}

// Rasterize paints every lit Braille dot of c as a block of a cellW x cellH
// cell.
func Rasterize(c *Canvas, cellW, cellH int) *image.Paletted {
	dw, dh := max(cellW/2, 1), max(cellH/4, 1)
	dotsW, dotsH := c.Dots()
	img := image.NewPaletted(image.Rect(0, 0, dotsW*dw, dotsH*dh), gifPalette)
	for y := 0; y < dotsH; y++ {
		for x := 0; x < dotsW; x++ {
			if !c.IsSet(x, y) {
				continue
			}
			for py := 0; py < dh; py++ {
				for px := 0; px < dw; px++ {
					img.SetColorIndex(x*dw+px, y*dh+py, 1)
				}
			}
		}
	}
	return img
}

// SaveGIF writes frames as a looping animation with delay in 1/100 s.
func SaveGIF(path string, frames []*image.Paletted, delay int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to save")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, f := range frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, max(delay, 1))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
