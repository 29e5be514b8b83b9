// Package ring generates the diamond-shaped coordinate rings that carry a
// message through the grid.
//
// Layer 0 is the outermost ring; the last layer, (size-1)/2, is the single
// center cell. The union of all layers of a size 2C+1 grid is a rotated square
// of Capacity(C) cells; the four corner triangles are never visited.
package ring

// Coord is a (row, column) position in the grid.
type Coord struct {
	Row int
	Col int
}

// Layers returns the number of rings walked for a grid of the given size.
func Layers(size int) int {
	if size <= 0 {
		return 0
	}
	return (size + 1) / 2
}

// Capacity returns the centered square number 1+2c(c+1): the cell count of
// all rings of a 2c+1 grid.
func Capacity(c int) int {
	return 1 + 2*c*(c+1)
}

// Path returns the ordered coordinates of ring layer in a size×size grid.
//
// The walk starts at (size/2, layer) and runs four diagonal phases: up-right
// to the center column, down-right to the right edge of the layer, down-left
// to the bottom of the layer, then up-left stopping just before the start.
// Encryption and decryption must visit coordinates in this exact order.
func Path(size, layer int) []Coord {
	if size <= 0 || layer < 0 {
		return nil
	}
	center := size / 2
	var path []Coord

	row, col := center, layer
	for col <= center {
		path = append(path, Coord{row, col})
		row--
		col++
	}

	row += 2
	for col < size-layer {
		path = append(path, Coord{row, col})
		row++
		col++
	}

	col -= 2
	for row < size-layer {
		path = append(path, Coord{row, col})
		row++
		col--
	}

	row -= 2
	for col > layer && row > center {
		path = append(path, Coord{row, col})
		row--
		col--
	}
	return path
}

// Walk calls fn for every coordinate of every layer, outermost layer first.
func Walk(size int, fn func(layer int, c Coord)) {
	for layer := 0; layer < Layers(size); layer++ {
		for _, c := range Path(size, layer) {
			fn(layer, c)
		}
	}
}
