package geom

// Orientation distinguishes horizontal from vertical roads.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Road is an axis-aligned segment. For a horizontal road, End.Y == Start.Y
// and End.X is the second endpoint's x coordinate (may be less than
// Start.X); symmetric for vertical roads.
type Road struct {
	Orientation Orientation
	Start       Point
	End         Point
}

// NewHorizontalRoad builds a road running along a single row.
func NewHorizontalRoad(start Point, endX int) Road {
	return Road{Orientation: Horizontal, Start: start, End: Point{X: endX, Y: start.Y}}
}

// NewVerticalRoad builds a road running along a single column.
func NewVerticalRoad(start Point, endY int) Road {
	return Road{Orientation: Vertical, Start: start, End: Point{X: start.X, Y: endY}}
}

func (r Road) IsHorizontal() bool { return r.Orientation == Horizontal }
func (r Road) IsVertical() bool   { return r.Orientation == Vertical }

// Area is the walkable area of a road: the segment's bounding box
// expanded by RoadHalfWidth in every direction.
type Area struct {
	MinX, MinY, MaxX, MaxY float64
}

func (a Area) Contains(p Position) bool {
	return p.X >= a.MinX && p.X <= a.MaxX && p.Y >= a.MinY && p.Y <= a.MaxY
}

// Area computes the road's walkable area.
func (r Road) Area() Area {
	x0, x1 := float64(r.Start.X), float64(r.End.X)
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	y0, y1 := float64(r.Start.Y), float64(r.End.Y)
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Area{
		MinX: x0 - RoadHalfWidth,
		MinY: y0 - RoadHalfWidth,
		MaxX: x1 + RoadHalfWidth,
		MaxY: y1 + RoadHalfWidth,
	}
}

// Cells enumerates every integer lattice point the road segment covers,
// inclusive of both endpoints. A road covers |end-start|+1 cells.
func (r Road) Cells() []Point {
	if r.IsHorizontal() {
		x0, x1 := r.Start.X, r.End.X
		step := 1
		if x0 > x1 {
			step = -1
		}
		var cells []Point
		for x := x0; ; x += step {
			cells = append(cells, Point{X: x, Y: r.Start.Y})
			if x == x1 {
				break
			}
		}
		return cells
	}
	y0, y1 := r.Start.Y, r.End.Y
	step := 1
	if y0 > y1 {
		step = -1
	}
	var cells []Point
	for y := y0; ; y += step {
		cells = append(cells, Point{X: r.Start.X, Y: y})
		if y == y1 {
			break
		}
	}
	return cells
}
