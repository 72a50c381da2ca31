package geom

// Grid is a spatial hash over a bounded field. Entries are rebuilt each tick
// and queried by radius; cell size should match the largest query radius.
type Grid struct {
	cellSize float64
	cols     int
	rows     int
	wrap     bool
	cells    map[int][]int
}

func NewGrid(width, height, cellSize float64, wrap bool) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1
	return &Grid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		wrap:     wrap,
		cells:    make(map[int][]int),
	}
}

func (g *Grid) Clear() {
	for k := range g.cells {
		delete(g.cells, k)
	}
}

func (g *Grid) Insert(id int, p Vec2) {
	g.cells[g.key(g.cellOf(p))] = append(g.cells[g.key(g.cellOf(p))], id)
}

// Query appends to out every id whose cell lies within radius of p, each id
// at most once. Candidates may be slightly beyond radius; callers filter by
// exact distance.
func (g *Grid) Query(p Vec2, radius float64, out []int) []int {
	span := int(radius/g.cellSize) + 1
	cx, cy := g.cellOf(p)
	// On a field small relative to the radius the wrapped scan window can
	// land on the same cell through two offsets; visited cells are skipped
	// so no id is reported twice.
	var seen map[int]struct{}
	if g.wrap && (2*span+1 > g.cols || 2*span+1 > g.rows) {
		seen = make(map[int]struct{})
	}
	for dy := -span; dy <= span; dy++ {
		for dx := -span; dx <= span; dx++ {
			x, y := cx+dx, cy+dy
			if g.wrap {
				x = ((x % g.cols) + g.cols) % g.cols
				y = ((y % g.rows) + g.rows) % g.rows
			} else if x < 0 || x >= g.cols || y < 0 || y >= g.rows {
				continue
			}
			key := y*g.cols + x
			if seen != nil {
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
			}
			out = append(out, g.cells[key]...)
		}
	}
	return out
}

func (g *Grid) cellOf(p Vec2) (int, int) {
	x := int(p.X / g.cellSize)
	y := int(p.Y / g.cellSize)
	if x < 0 {
		x = 0
	}
	if x >= g.cols {
		x = g.cols - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= g.rows {
		y = g.rows - 1
	}
	return x, y
}

func (g *Grid) key(x, y int) int {
	return y*g.cols + x
}

// CellSet is a sparse membership set over grid coordinates, replacing
// string-keyed coordinate maps.
type CellSet struct {
	cols    int
	members map[int]struct{}
}

func NewCellSet(cols int) *CellSet {
	return &CellSet{cols: cols, members: make(map[int]struct{})}
}

func (s *CellSet) Mark(x, y int) {
	s.members[y*s.cols+x] = struct{}{}
}

func (s *CellSet) Has(x, y int) bool {
	_, ok := s.members[y*s.cols+x]
	return ok
}

func (s *CellSet) Len() int {
	return len(s.members)
}

func (s *CellSet) Reset() {
	for k := range s.members {
		delete(s.members, k)
	}
}
