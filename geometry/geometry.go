package geometry

import (
	"fmt"

	"wayfindr-map/models"
)

// MinPolygonVertices is the smallest vertex count that forms a polygon.
const MinPolygonVertices = 3

// PointInPolygon reports whether p lies inside polygon, using the
// ray-casting algorithm: a horizontal ray from p toward +x crosses the
// polygon's edges an odd number of times iff p is inside.
//
// Boundary points are resolved by the crossing rule, which is deterministic
// but not uniform: a point on a right or upper edge counts as outside, one
// on a left or lower edge as inside. Callers must not rely on a particular
// classification for boundary points. Containment is only defined for
// simple polygons; the result on self-intersecting input is unspecified.
func PointInPolygon(p models.Coordinate, polygon []models.Coordinate) bool {
	n := len(polygon)
	if n < MinPolygonVertices {
		return false
	}

	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		xi, yi := polygon[i].X, polygon[i].Y
		xj, yj := polygon[j].X, polygon[j].Y

		if (yi > p.Y) != (yj > p.Y) &&
			p.X < (xj-xi)*(p.Y-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}

	return inside
}

// ValidatePolygon checks that polygon has enough vertices to enclose area.
// It does not attempt self-intersection detection; that is a documented
// limitation of the containment contract, not an oversight.
func ValidatePolygon(polygon []models.Coordinate) error {
	if len(polygon) < MinPolygonVertices {
		return fmt.Errorf("polygon needs at least %d vertices, got %d", MinPolygonVertices, len(polygon))
	}
	return nil
}
