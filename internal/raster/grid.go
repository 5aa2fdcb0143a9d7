package raster

import "math"

// Bounds is the geographic extent of a grid in the coordinate reference
// system of the source file (WGS-84 degrees for the Kilimani rasters).
type Bounds struct {
	South float64 `json:"south"`
	North float64 `json:"north"`
	West  float64 `json:"west"`
	East  float64 `json:"east"`
}

// Transform maps pixel indices to world coordinates. OriginX/OriginY is the
// upper-left corner of the upper-left pixel; PixelHeight is negative for
// north-up grids.
type Transform struct {
	OriginX     float64 `json:"origin_x"`
	OriginY     float64 `json:"origin_y"`
	PixelWidth  float64 `json:"pixel_width"`
	PixelHeight float64 `json:"pixel_height"`
}

// Grid is a single-band raster with nodata cells replaced by NaN.
// Immutable once loaded; one grid backs one analysis session.
type Grid struct {
	Data      [][]float64
	Rows      int
	Cols      int
	Bounds    Bounds
	Transform Transform
}

// ValidValues returns all non-NaN cell values in row-major order.
func (g *Grid) ValidValues() []float64 {
	if g == nil {
		return nil
	}
	values := make([]float64, 0, g.Rows*g.Cols)
	for _, row := range g.Data {
		for _, v := range row {
			if !math.IsNaN(v) {
				values = append(values, v)
			}
		}
	}
	return values
}

// At samples the grid at a world coordinate using the inverse affine
// transform. Returns false for out-of-bounds coordinates and nodata cells.
func (g *Grid) At(lat, lon float64) (float64, bool) {
	if g == nil || g.Transform.PixelWidth == 0 || g.Transform.PixelHeight == 0 {
		return 0, false
	}
	col := int(math.Floor((lon - g.Transform.OriginX) / g.Transform.PixelWidth))
	row := int(math.Floor((lat - g.Transform.OriginY) / g.Transform.PixelHeight))
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return 0, false
	}
	v := g.Data[row][col]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
