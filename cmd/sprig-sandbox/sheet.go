package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/phanxgames/sprig"
	"github.com/phanxgames/sprig/asset"
	"github.com/pkg/errors"
)

const (
	sheetName  = "sandbox"
	sheetCells = 4
	cellSize   = 32
)

// sheetImage draws a sheetCells x sheetCells grid of discs, one hue per cell.
func sheetImage() image.Image {
	n := sheetCells * cellSize
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	r := float32(cellSize)/2 - 1
	for cy := 0; cy < sheetCells; cy++ {
		for cx := 0; cx < sheetCells; cx++ {
			c := hue(float32(cy*sheetCells+cx) / (sheetCells * sheetCells))
			for y := 0; y < cellSize; y++ {
				for x := 0; x < cellSize; x++ {
					dx := float32(x) - cellSize/2 + 0.5
					dy := float32(y) - cellSize/2 + 0.5
					if dx*dx+dy*dy <= r*r {
						img.SetRGBA(cx*cellSize+x, cy*cellSize+y, c)
					}
				}
			}
		}
	}
	return img
}

func hue(h float32) color.RGBA {
	h *= 6
	x := 1 - abs(mod2(h)-1)
	var r, g, b float32
	switch int(h) {
	case 0:
		r, g = 1, x
	case 1:
		r, g = x, 1
	case 2:
		g, b = 1, x
	case 3:
		g, b = x, 1
	case 4:
		r, b = x, 1
	default:
		r, b = 1, x
	}
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}

func mod2(v float32) float32 { return v - 2*float32(int(v/2)) }

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// addSheet registers the generated sheet and one sprite per cell.
func addSheet(reg *asset.Registry, factory sprig.TextureFactory) error {
	tex, err := factory.NewTexture(sheetImage())
	if err != nil {
		return errors.Wrap(err, "create sheet texture")
	}
	if err := reg.AddTexture(sheetName, "", tex); err != nil {
		return err
	}
	for y := 0; y < sheetCells; y++ {
		for x := 0; x < sheetCells; x++ {
			if err := reg.CreateSprite(cellName(x, y), sheetName, asset.Cell(float32(x), float32(y), cellSize, cellSize)); err != nil {
				return err
			}
		}
	}
	return nil
}

func cellName(x, y int) string {
	return fmt.Sprintf("%s_%d_%d", sheetName, x, y)
}
