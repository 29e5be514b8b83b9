// Package grid provides the square character buffer the cipher writes into.
//
// Access outside the grid is never an error: writes are dropped and reads
// return Blank. The cipher relies on this instead of checking bounds itself.
package grid

import "strings"

// Blank marks a cell that has not been written.
const Blank byte = ' '

// Grid is an N×N buffer of characters stored row by row.
type Grid struct {
	size  int
	cells []byte
}

// New creates a grid with every cell set to Blank.
// A non-positive size yields an empty grid.
func New(size int) *Grid {
	if size < 0 {
		size = 0
	}
	cells := make([]byte, size*size)
	for i := range cells {
		cells[i] = Blank
	}
	return &Grid{size: size, cells: cells}
}

// Size returns the side length.
func (g *Grid) Size() int { return g.size }

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

// Set writes ch at (row, col). Out-of-range coordinates are ignored.
func (g *Grid) Set(row, col int, ch byte) {
	if !g.inBounds(row, col) {
		return
	}
	g.cells[row*g.size+col] = ch
}

// Get returns the character at (row, col), or Blank when out of range.
func (g *Grid) Get(row, col int) byte {
	if !g.inBounds(row, col) {
		return Blank
	}
	return g.cells[row*g.size+col]
}

// IsBlank reports whether (row, col) holds Blank.
func (g *Grid) IsBlank(row, col int) bool { return g.Get(row, col) == Blank }

// Fill writes next() into every cell that is still Blank, row by row.
func (g *Grid) Fill(next func() byte) {
	for i, c := range g.cells {
		if c == Blank {
			g.cells[i] = next()
		}
	}
}

// Serialize reads the grid column by column, top to bottom.
func (g *Grid) Serialize() string {
	var b strings.Builder
	b.Grow(len(g.cells))
	for col := 0; col < g.size; col++ {
		for row := 0; row < g.size; row++ {
			b.WriteByte(g.cells[row*g.size+col])
		}
	}
	return b.String()
}

// Load fills the grid column by column from text, the inverse of Serialize.
// Cells past the end of text become Blank; text beyond size² is ignored.
func (g *Grid) Load(text string) {
	idx := 0
	for col := 0; col < g.size; col++ {
		for row := 0; row < g.size; row++ {
			ch := Blank
			if idx < len(text) {
				ch = text[idx]
				idx++
			}
			g.cells[row*g.size+col] = ch
		}
	}
}

// Rows returns a copy of the grid as one string per row.
func (g *Grid) Rows() []string {
	rows := make([]string, g.size)
	for r := range rows {
		rows[r] = string(g.cells[r*g.size : (r+1)*g.size])
	}
	return rows
}
