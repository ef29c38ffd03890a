// Package tile cuts an image into a grid of pieces and encodes them as
// PNG entries ready for archiving.
package tile

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// Sentinel errors for grid slicing.
var (
	// ErrInvalidGrid is returned when rows or cols is less than one.
	ErrInvalidGrid = errors.New("gridzip: invalid grid dimensions")

	// ErrImageTooSmall is returned when the image cannot yield at
	// least one pixel per grid cell.
	ErrImageTooSmall = errors.New("gridzip: image smaller than grid")
)

// Tile is one piece of a sliced image, tagged with its grid position.
type Tile struct {
	// Row and Col locate the piece, counted from the top-left corner.
	Row, Col int

	// Image holds the piece's pixels. It may share memory with the
	// source image, and its bounds may not start at the origin.
	Image image.Image
}

// subImager is implemented by the stdlib image types; slicing through
// it shares pixels instead of copying them.
type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Slice cuts img into a rows x cols grid, returning pieces in row-major
// order.
//
// Cell boundaries are distributed proportionally, so piece sizes differ
// by at most one pixel when the image dimensions are not exact
// multiples of the grid.
func Slice(img image.Image, rows, cols int) ([]Tile, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, rows, cols)
	}
	bounds := img.Bounds()
	if bounds.Dx() < cols || bounds.Dy() < rows {
		return nil, fmt.Errorf("%w: %dx%d image into %dx%d grid",
			ErrImageTooSmall, bounds.Dx(), bounds.Dy(), rows, cols)
	}

	tiles := make([]Tile, 0, rows*cols)
	for row := range rows {
		for col := range cols {
			rect := cellRect(bounds, rows, cols, row, col)
			tiles = append(tiles, Tile{Row: row, Col: col, Image: subImage(img, rect)})
		}
	}
	return tiles, nil
}

// cellRect returns the pixel rectangle of one grid cell.
func cellRect(bounds image.Rectangle, rows, cols, row, col int) image.Rectangle {
	return image.Rect(
		bounds.Min.X+col*bounds.Dx()/cols,
		bounds.Min.Y+row*bounds.Dy()/rows,
		bounds.Min.X+(col+1)*bounds.Dx()/cols,
		bounds.Min.Y+(row+1)*bounds.Dy()/rows,
	)
}

// subImage extracts rect from img without copying when possible.
func subImage(img image.Image, rect image.Rectangle) image.Image {
	if si, ok := img.(subImager); ok {
		return si.SubImage(rect)
	}
	out := image.NewNRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), img, rect.Min, draw.Src)
	return out
}
