/*
Package raster turns a maze Grid into drawable rectangles and images.

Each cell becomes a CellSize x CellSize square at
(OffsetX + col*CellSize, OffsetY + row*CellSize), filled with the wall or
passage colour, and the start and end cells are overlaid with their own markers.
*/
package raster

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/beka-birhanu/vinom-maze/maze"
)

var ErrInvalidLayout = errors.New("cell size must be positive")

// Layout positions the grid on the canvas.
type Layout struct {
	OffsetX  int
	OffsetY  int
	CellSize int
}

// Palette holds the fill colours.
type Palette struct {
	Wall    color.RGBA
	Passage color.RGBA
	Start   color.RGBA
	End     color.RGBA
}

// DefaultPalette draws dark walls on light passages with a green start and red end.
var DefaultPalette = Palette{
	Wall:    color.RGBA{R: 0x22, G: 0x22, B: 0x33, A: 0xff},
	Passage: color.RGBA{R: 0xee, G: 0xee, B: 0xe0, A: 0xff},
	Start:   color.RGBA{R: 0x2e, G: 0xcc, B: 0x40, A: 0xff},
	End:     color.RGBA{R: 0xe0, G: 0x30, B: 0x30, A: 0xff},
}

// Kind tells what a rectangle represents.
type Kind uint8

const (
	KindWall Kind = iota
	KindPassage
	KindStart
	KindEnd
)

// Rect is one filled square of the rasterized grid.
type Rect struct {
	X, Y, Size int
	Kind       Kind
}

// Rects returns one rectangle per cell in row-major order followed by the
// start and end markers.
func Rects(g *maze.Grid, l Layout) ([]Rect, error) {
	if l.CellSize <= 0 {
		return nil, ErrInvalidLayout
	}

	rects := make([]Rect, 0, g.Width*g.Height+2)
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			kind := KindWall
			if g.Cells[row][col] == maze.Passage {
				kind = KindPassage
			}
			rects = append(rects, l.rect(maze.CellPosition{Row: row, Col: col}, kind))
		}
	}

	if start, ok := g.Start(); ok {
		end, _ := g.End()
		rects = append(rects, l.rect(start, KindStart), l.rect(end, KindEnd))
	}
	return rects, nil
}

func (l Layout) rect(p maze.CellPosition, k Kind) Rect {
	return Rect{
		X:    l.OffsetX + p.Col*l.CellSize,
		Y:    l.OffsetY + p.Row*l.CellSize,
		Size: l.CellSize,
		Kind: k,
	}
}

// Draw paints the grid onto a new image just large enough to hold it.
func Draw(g *maze.Grid, l Layout, p Palette) (*image.RGBA, error) {
	rects, err := Rects(g, l)
	if err != nil {
		return nil, err
	}

	bounds := image.Rect(0, 0, l.OffsetX+g.Width*l.CellSize, l.OffsetY+g.Height*l.CellSize)
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, &image.Uniform{C: p.Wall}, image.Point{}, draw.Src)

	for _, r := range rects {
		area := image.Rect(r.X, r.Y, r.X+r.Size, r.Y+r.Size)
		draw.Draw(img, area, &image.Uniform{C: p.colour(r.Kind)}, image.Point{}, draw.Src)
	}
	return img, nil
}

func (p Palette) colour(k Kind) color.RGBA {
	switch k {
	case KindPassage:
		return p.Passage
	case KindStart:
		return p.Start
	case KindEnd:
		return p.End
	}
	return p.Wall
}

// WritePNG draws the grid and encodes it as PNG.
func WritePNG(w io.Writer, g *maze.Grid, l Layout, p Palette) error {
	img, err := Draw(g, l, p)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
