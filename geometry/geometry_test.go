package geometry

import (
	"testing"

	"wayfindr-map/models"
)

func square(x1, y1, x2, y2 float64) []models.Coordinate {
	return []models.Coordinate{
		{X: x1, Y: y1},
		{X: x2, Y: y1},
		{X: x2, Y: y2},
		{X: x1, Y: y2},
	}
}

func TestPointInPolygon(t *testing.T) {
	unit := square(100, 100, 200, 200)

	t.Run("Point Strictly Inside", func(t *testing.T) {
		if !PointInPolygon(models.Coordinate{X: 150, Y: 150}, unit) {
			t.Error("Expected (150,150) to be inside the 100..200 square")
		}
	})

	t.Run("Point Strictly Outside", func(t *testing.T) {
		if PointInPolygon(models.Coordinate{X: 50, Y: 50}, unit) {
			t.Error("Expected (50,50) to be outside the 100..200 square")
		}
		if PointInPolygon(models.Coordinate{X: 250, Y: 150}, unit) {
			t.Error("Expected (250,150) to be outside the 100..200 square")
		}
	})

	t.Run("Boundary Points Are Deterministic", func(t *testing.T) {
		// The crossing rule puts right/upper edges outside and left/lower
		// edges inside.
		if PointInPolygon(models.Coordinate{X: 200, Y: 150}, unit) {
			t.Error("Expected a point on the right edge to count as outside")
		}
		if PointInPolygon(models.Coordinate{X: 150, Y: 200}, unit) {
			t.Error("Expected a point on the top edge to count as outside")
		}
		if !PointInPolygon(models.Coordinate{X: 100, Y: 150}, unit) {
			t.Error("Expected a point on the left edge to count as inside")
		}
		if PointInPolygon(models.Coordinate{X: 200, Y: 200}, unit) {
			t.Error("Expected the top-right vertex to count as outside")
		}
	})

	t.Run("Concave Polygon", func(t *testing.T) {
		// L-shape: the notch at the top right is outside.
		l := []models.Coordinate{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5},
			{X: 5, Y: 5}, {X: 5, Y: 10}, {X: 0, Y: 10},
		}
		if !PointInPolygon(models.Coordinate{X: 2, Y: 8}, l) {
			t.Error("Expected (2,8) inside the L-shape's vertical arm")
		}
		if PointInPolygon(models.Coordinate{X: 8, Y: 8}, l) {
			t.Error("Expected (8,8) outside the L-shape's notch")
		}
	})

	t.Run("Triangle", func(t *testing.T) {
		tri := []models.Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}}
		if !PointInPolygon(models.Coordinate{X: 5, Y: 3}, tri) {
			t.Error("Expected (5,3) inside the triangle")
		}
		if PointInPolygon(models.Coordinate{X: 1, Y: 9}, tri) {
			t.Error("Expected (1,9) outside the triangle")
		}
	})

	t.Run("Degenerate Input", func(t *testing.T) {
		if PointInPolygon(models.Coordinate{X: 0, Y: 0}, nil) {
			t.Error("Expected nil polygon to contain nothing")
		}
		seg := []models.Coordinate{{X: 0, Y: 0}, {X: 10, Y: 10}}
		if PointInPolygon(models.Coordinate{X: 5, Y: 5}, seg) {
			t.Error("Expected a two-vertex polygon to contain nothing")
		}
	})
}

func TestValidatePolygon(t *testing.T) {
	t.Run("Valid Triangle", func(t *testing.T) {
		tri := []models.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
		if err := ValidatePolygon(tri); err != nil {
			t.Errorf("Expected triangle to validate, got: %v", err)
		}
	})

	t.Run("Too Few Vertices", func(t *testing.T) {
		seg := []models.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 1}}
		if err := ValidatePolygon(seg); err == nil {
			t.Error("Expected two-vertex polygon to fail validation")
		}
		if err := ValidatePolygon(nil); err == nil {
			t.Error("Expected empty polygon to fail validation")
		}
	})
}
