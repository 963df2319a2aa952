package main

import (
	"context"
	"image"
	"image/color"

	"voxelworld/internal/registry"
	"voxelworld/internal/voxel"
	"voxelworld/internal/world"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"
)

var blockColors = map[string]color.RGBA{
	"bedrock":  {40, 40, 40, 255},
	"stone":    {125, 125, 125, 255},
	"grass":    {86, 150, 54, 255},
	"dirt":     {134, 96, 67, 255},
	"sand":     {219, 207, 163, 255},
	"glass":    {200, 230, 240, 255},
	"coal_ore": {60, 60, 60, 255},
}

var unknownColor = color.RGBA{255, 0, 255, 255}

// surfaceMap renders the top block of every column, darker where the terrain is lower.
type surfaceMap struct {
	gen    *world.Generator
	reg    *registry.Registry
	height int
}

func (m surfaceMap) topBlock(x, z int) (voxel.ID, int) {
	for y := min(m.gen.SurfaceHeight(x, z), m.height-1); y >= 0; y-- {
		if id := m.gen.Generate(x, y, z); m.reg.IsSolid(id) {
			return id, y
		}
	}
	return registry.BlockAir, 0
}

func (m surfaceMap) colorAt(x, z int) color.RGBA {
	id, y := m.topBlock(x, z)
	if id == registry.BlockAir {
		return color.RGBA{0, 0, 0, 255}
	}
	c := unknownColor
	if def, err := m.reg.Get(id); err == nil {
		if known, ok := blockColors[def.Name]; ok {
			c = known
		}
	}
	shade := 0.5 + 0.5*float64(y)/float64(m.height)
	return color.RGBA{
		R: uint8(float64(c.R) * shade),
		G: uint8(float64(c.G) * shade),
		B: uint8(float64(c.B) * shade),
		A: 255,
	}
}

// Render draws a size x size block region starting at x0, z0. Rows are split
// across up to workers goroutines.
func (m surfaceMap) Render(ctx context.Context, x0, z0, size, workers int) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for row := 0; row < size; row++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for col := 0; col < size; col++ {
				img.SetRGBA(col, row, m.colorAt(x0+col, z0+row))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return img, nil
}

func upscale(src *image.RGBA, scale int) *image.RGBA {
	if scale == 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func caption(img *image.RGBA, text string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, 14),
	}
	d.DrawString(text)
}
