package grid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewIsBlank(t *testing.T) {
	g := New(3)
	if g.Size() != 3 {
		t.Fatalf("Size: got %d, want 3", g.Size())
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if !g.IsBlank(r, c) {
				t.Fatalf("cell (%d,%d) not blank", r, c)
			}
		}
	}
}

func TestOutOfBoundsIsClamped(t *testing.T) {
	g := New(3)
	g.Set(-1, 0, 'X')
	g.Set(0, 3, 'X')
	g.Set(3, 3, 'X')
	if got := g.Serialize(); got != "         " {
		t.Fatalf("out-of-range Set modified grid: %q", got)
	}
	if g.Get(-1, -1) != Blank || g.Get(5, 0) != Blank {
		t.Fatalf("out-of-range Get should return Blank")
	}
}

func TestSerializeColumnMajor(t *testing.T) {
	g := New(3)
	// A B C
	// D E F
	// G H I
	letters := "ABCDEFGHI"
	for i := 0; i < 9; i++ {
		g.Set(i/3, i%3, letters[i])
	}
	if got, want := g.Serialize(), "ADGBEHCFI"; got != want {
		t.Fatalf("Serialize: got %q, want %q", got, want)
	}
	if diff := cmp.Diff([]string{"ABC", "DEF", "GHI"}, g.Rows()); diff != "" {
		t.Fatalf("Rows mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSerializeSymmetry(t *testing.T) {
	src := New(5)
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			if (r+c)%3 != 0 {
				src.Set(r, c, byte('A'+(r*5+c)%26))
			}
		}
	}

	dst := New(5)
	dst.Load(src.Serialize())
	if diff := cmp.Diff(src.Rows(), dst.Rows()); diff != "" {
		t.Fatalf("Load(Serialize()) mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadShortTextLeavesBlanks(t *testing.T) {
	g := New(3)
	g.Load("ABCD")
	if g.Get(0, 0) != 'A' || g.Get(2, 0) != 'C' || g.Get(0, 1) != 'D' {
		t.Fatalf("unexpected column-major placement: %q", g.Rows())
	}
	if !g.IsBlank(1, 1) || !g.IsBlank(2, 2) {
		t.Fatalf("cells past the text should be blank")
	}
}

func TestLoadIgnoresExtraText(t *testing.T) {
	g := New(2)
	g.Load("ABCDEFG")
	if got := g.Serialize(); got != "ABCD" {
		t.Fatalf("Serialize: got %q, want %q", got, "ABCD")
	}
}

func TestFillOnlyBlanks(t *testing.T) {
	g := New(2)
	g.Set(0, 0, 'Q')
	g.Fill(func() byte { return 'Z' })
	if got := g.Serialize(); got != "QZZZ" {
		t.Fatalf("Fill: got %q", got)
	}
}

func TestNegativeSize(t *testing.T) {
	g := New(-4)
	if g.Size() != 0 || g.Serialize() != "" {
		t.Fatalf("negative size should produce an empty grid")
	}
	g.Set(0, 0, 'A')
	if g.Get(0, 0) != Blank {
		t.Fatalf("empty grid should read Blank")
	}
}
