package fan

import "math"

// Point is a slot mapped onto a character grid
type Point struct {
	Row, Col int
	Position int
}

// Plot maps the fan's slots onto a width x height character grid. Terminal
// cells are about twice as tall as they are wide, so the horizontal radius is
// doubled relative to the vertical one when space allows.
func Plot(f Fan, width, height int) []Point {
	if width < 3 || height < 3 || f.Len() == 0 {
		return nil
	}
	ry := float64(height-1) / 2
	rx := math.Min(float64(width-1)/2, ry*2)
	cx := float64(width-1) / 2
	cy := ry

	points := make([]Point, 0, f.Len())
	for _, s := range f.Slots {
		col := int(math.Round(cx + rx*s.X/Radius))
		row := int(math.Round(cy + ry*s.Y/Radius))
		points = append(points, Point{Row: row, Col: col, Position: s.Position})
	}
	return points
}
