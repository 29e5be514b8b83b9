package ring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPathSize5(t *testing.T) {
	cases := []struct {
		layer int
		want  []Coord
	}{
		{0, []Coord{{2, 0}, {1, 1}, {0, 2}, {1, 3}, {2, 4}, {3, 3}, {4, 2}, {3, 1}}},
		{1, []Coord{{2, 1}, {1, 2}, {2, 3}, {3, 2}}},
		{2, []Coord{{2, 2}}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, Path(5, tc.layer)); diff != "" {
			t.Fatalf("Path(5, %d) mismatch (-want +got):\n%s", tc.layer, diff)
		}
	}
}

func TestPathSize7Outer(t *testing.T) {
	want := []Coord{
		{3, 0}, {2, 1}, {1, 2}, {0, 3},
		{1, 4}, {2, 5}, {3, 6},
		{4, 5}, {5, 4}, {6, 3},
		{5, 2}, {4, 1},
	}
	if diff := cmp.Diff(want, Path(7, 0)); diff != "" {
		t.Fatalf("Path(7, 0) mismatch (-want +got):\n%s", diff)
	}
}

func TestPathSingleCell(t *testing.T) {
	if diff := cmp.Diff([]Coord{{0, 0}}, Path(1, 0)); diff != "" {
		t.Fatalf("Path(1, 0) mismatch (-want +got):\n%s", diff)
	}
}

func TestPathCoverage(t *testing.T) {
	for size := 1; size <= 31; size += 2 {
		c := size / 2
		seen := make(map[Coord]int)
		total := 0
		for layer := 0; layer < Layers(size); layer++ {
			path := Path(size, layer)

			wantLen := 4 * (c - layer)
			if layer == c {
				wantLen = 1
			}
			if len(path) != wantLen {
				t.Fatalf("size %d layer %d: len %d, want %d", size, layer, len(path), wantLen)
			}

			for _, p := range path {
				if p.Row < 0 || p.Row >= size || p.Col < 0 || p.Col >= size {
					t.Fatalf("size %d layer %d: %v out of bounds", size, layer, p)
				}
				if prev, ok := seen[p]; ok {
					t.Fatalf("size %d: %v visited by layers %d and %d", size, p, prev, layer)
				}
				seen[p] = layer
				if d := abs(p.Row-c) + abs(p.Col-c); d != c-layer {
					t.Fatalf("size %d layer %d: %v at distance %d", size, layer, p, d)
				}
			}
			total += len(path)
		}
		if total != Capacity(c) {
			t.Fatalf("size %d: %d coordinates, want %d", size, total, Capacity(c))
		}
	}
}

func TestPathDeterministic(t *testing.T) {
	if diff := cmp.Diff(Path(9, 1), Path(9, 1)); diff != "" {
		t.Fatalf("Path is not deterministic:\n%s", diff)
	}
}

func TestPathDegenerateInputs(t *testing.T) {
	if Path(0, 0) != nil || Path(5, -1) != nil {
		t.Fatalf("expected nil path for degenerate input")
	}
	// Even sizes and out-of-range layers must still terminate.
	_ = Path(4, 0)
	_ = Path(6, 2)
	_ = Path(3, 10)
}

func TestCapacity(t *testing.T) {
	want := []int{1, 5, 13, 25, 41}
	for c, w := range want {
		if got := Capacity(c); got != w {
			t.Fatalf("Capacity(%d) = %d, want %d", c, got, w)
		}
	}
}

func TestWalkOrder(t *testing.T) {
	var layers []int
	var coords []Coord
	Walk(5, func(layer int, c Coord) {
		layers = append(layers, layer)
		coords = append(coords, c)
	})
	if len(coords) != 13 {
		t.Fatalf("Walk visited %d coordinates, want 13", len(coords))
	}
	if layers[0] != 0 || layers[8] != 1 || layers[12] != 2 {
		t.Fatalf("Walk order wrong: %v", layers)
	}
	if coords[12] != (Coord{2, 2}) {
		t.Fatalf("last coordinate should be the center, got %v", coords[12])
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func BenchmarkPath(b *testing.B) {
	for i := 0; i < b.N; i++ {
		for layer := 0; layer < Layers(101); layer++ {
			_ = Path(101, layer)
		}
	}
}
