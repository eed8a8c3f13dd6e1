package core

// BucketGrid buckets item indices by position so that neighbor queries only
// visit nearby cells. Cells are square with side Cell; the grid covers
// [0, W) x [0, H) and clamps positions outside it into the border cells.
type BucketGrid struct {
	Cell       float64
	cols, rows int
	heads      []int32
	next       []int32
}

// NewBucketGrid allocates a grid covering w x h with the given cell size.
func NewBucketGrid(w, h, cell float64) *BucketGrid {
	g := &BucketGrid{}
	g.Resize(w, h, cell)
	return g
}

// Resize changes the covered area and cell size, dropping all items.
func (g *BucketGrid) Resize(w, h, cell float64) {
	if cell <= 0 {
		cell = 1
	}
	cols := int(w/cell) + 1
	rows := int(h/cell) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	g.Cell = cell
	g.cols, g.rows = cols, rows
	if cap(g.heads) < cols*rows {
		g.heads = make([]int32, cols*rows)
	}
	g.heads = g.heads[:cols*rows]
	g.Clear()
}

// Dims returns the number of columns and rows.
func (g *BucketGrid) Dims() (int, int) { return g.cols, g.rows }

// Clear empties every bucket.
func (g *BucketGrid) Clear() {
	for i := range g.heads {
		g.heads[i] = -1
	}
	g.next = g.next[:0]
}

// Index returns the linear bucket index for a position.
func (g *BucketGrid) Index(x, y float64) int {
	cx, cy := g.cellOf(x, y)
	return cy*g.cols + cx
}

func (g *BucketGrid) cellOf(x, y float64) (int, int) {
	cx := int(x / g.Cell)
	cy := int(y / g.Cell)
	if cx < 0 {
		cx = 0
	} else if cx >= g.cols {
		cx = g.cols - 1
	}
	if cy < 0 {
		cy = 0
	} else if cy >= g.rows {
		cy = g.rows - 1
	}
	return cx, cy
}

// Insert adds item id at (x, y). Ids must be inserted as 0, 1, 2, ...
func (g *BucketGrid) Insert(id int, x, y float64) {
	for len(g.next) <= id {
		g.next = append(g.next, -1)
	}
	b := g.Index(x, y)
	g.next[id] = g.heads[b]
	g.heads[b] = int32(id)
}

// Near appends to dst every id stored in the cells overlapping the square of
// half-side radius around (x, y) and returns the extended slice.
func (g *BucketGrid) Near(dst []int, x, y, radius float64) []int {
	x0, y0 := g.cellOf(x-radius, y-radius)
	x1, y1 := g.cellOf(x+radius, y+radius)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			for id := g.heads[cy*g.cols+cx]; id >= 0; id = g.next[id] {
				dst = append(dst, int(id))
			}
		}
	}
	return dst
}
