package cursor

import "testing"

func TestMove(t *testing.T) {
	tests := []struct {
		name       string
		margin     int
		initial    int
		delta      int
		len        int
		height     int
		wantPos    int
		wantOffset int
	}{
		{"down within bounds", 2, 0, 1, 10, 5, 1, 0},
		{"down scrolls with margin", 2, 0, 3, 10, 5, 3, 1},
		{"up clamps to 0", 2, 2, -5, 10, 5, 0, 0},
		{"down clamps to end", 2, 5, 20, 10, 5, 9, 5},
		{"no margin", 0, 0, 5, 10, 5, 5, 1},
		{"margin larger than viewport", 10, 0, 2, 10, 3, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.margin)
			c.Jump(tt.initial, tt.len, tt.height)
			c.Move(tt.delta, tt.len, tt.height)
			if c.Pos() != tt.wantPos || c.Offset() != tt.wantOffset {
				t.Errorf("pos/offset = %d/%d, want %d/%d", c.Pos(), c.Offset(), tt.wantPos, tt.wantOffset)
			}
		})
	}
}

func TestMove_EmptyList(t *testing.T) {
	c := New(2)
	c.Move(3, 0, 5)
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("pos/offset = %d/%d, want 0/0", c.Pos(), c.Offset())
	}
}

func TestMovePages(t *testing.T) {
	tests := []struct {
		name    string
		pages   float32
		wantPos int
	}{
		{"full page", 1, 10},
		{"half page", 0.5, 5},
		{"tiny fraction moves one row", 0.01, 1},
		{"zero stays", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(0)
			c.MovePages(tt.pages, 100, 10)
			if c.Pos() != tt.wantPos {
				t.Errorf("pos = %d, want %d", c.Pos(), tt.wantPos)
			}
		})
	}

	c := New(0)
	c.Jump(50, 100, 10)
	c.MovePages(-0.01, 100, 10)
	if c.Pos() != 49 {
		t.Errorf("negative fraction pos = %d, want 49", c.Pos())
	}
}

func TestFirstLast(t *testing.T) {
	c := New(2)
	c.Last(20, 5)
	if c.Pos() != 19 || c.Offset() != 15 {
		t.Errorf("Last pos/offset = %d/%d, want 19/15", c.Pos(), c.Offset())
	}
	c.First()
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("First pos/offset = %d/%d, want 0/0", c.Pos(), c.Offset())
	}
}

func TestClamp_AfterShrink(t *testing.T) {
	c := New(1)
	c.Jump(9, 10, 4)
	c.Clamp(3, 4)
	if c.Pos() != 2 || c.Offset() != 0 {
		t.Errorf("pos/offset = %d/%d, want 2/0", c.Pos(), c.Offset())
	}
	c.Clamp(0, 4)
	if c.Pos() != 0 {
		t.Errorf("empty list pos = %d, want 0", c.Pos())
	}
}

func TestVisibleRange(t *testing.T) {
	c := New(0)
	c.Jump(7, 10, 4)
	start, end := c.VisibleRange(10, 4)
	if start != 4 || end != 8 {
		t.Errorf("range = [%d,%d), want [4,8)", start, end)
	}
	if start, end := c.VisibleRange(0, 4); start != 0 || end != 0 {
		t.Errorf("empty range = [%d,%d)", start, end)
	}
	if start, end := New(0).VisibleRange(3, 10); start != 0 || end != 3 {
		t.Errorf("short list range = [%d,%d), want [0,3)", start, end)
	}
}
