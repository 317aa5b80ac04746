// Package cursor provides the cursor and scroll window of a list.
package cursor

import "math"

// Cursor tracks the selected row and the first visible row. The list length
// and viewport height are passed in rather than stored since both change
// between calls.
type Cursor struct {
	pos    int
	offset int
	margin int // rows kept visible above/below the cursor
}

// New creates a Cursor with the given scroll margin.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Pos returns the selected row.
func (c Cursor) Pos() int {
	return c.pos
}

// Offset returns the first visible row.
func (c Cursor) Offset() int {
	return c.offset
}

// Move moves the cursor by delta rows, clamped to the list.
func (c *Cursor) Move(delta, listLen, height int) {
	c.Jump(c.pos+delta, listLen, height)
}

// MovePages moves the cursor by a fraction of the viewport; at least one row
// when pages is not zero.
func (c *Cursor) MovePages(pages float32, listLen, height int) {
	rows := int(math.Round(float64(pages) * float64(height)))
	if rows == 0 && pages != 0 {
		rows = 1
		if pages < 0 {
			rows = -1
		}
	}
	c.Move(rows, listLen, height)
}

// Jump places the cursor on pos, clamped to the list.
func (c *Cursor) Jump(pos, listLen, height int) {
	if listLen == 0 {
		c.Reset()
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.ensureVisible(listLen, height)
}

// First selects the first row.
func (c *Cursor) First() {
	c.Reset()
}

// Last selects the last row.
func (c *Cursor) Last(listLen, height int) {
	c.Jump(listLen-1, listLen, height)
}

// Clamp keeps the cursor on the list after it shrank or the viewport was
// resized.
func (c *Cursor) Clamp(listLen, height int) {
	c.Jump(c.pos, listLen, height)
}

// VisibleRange returns the visible rows [start, end).
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	start = min(c.offset, listLen)
	return start, min(start+height, listLen)
}

// Reset selects row 0 and scrolls to the top.
func (c *Cursor) Reset() {
	c.pos = 0
	c.offset = 0
}

func (c *Cursor) ensureVisible(listLen, height int) {
	if height <= 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)

	if c.pos < c.offset+margin {
		c.offset = max(c.pos-margin, 0)
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}
	c.offset = clamp(c.offset, max(listLen-height, 0))
}

func clamp(v, maxVal int) int {
	return min(max(v, 0), maxVal)
}
