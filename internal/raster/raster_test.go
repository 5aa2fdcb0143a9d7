package raster

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleASC = `ncols        4
nrows        3
xllcorner    36.80
yllcorner    -1.30
cellsize     0.01
NODATA_value -9999
30.5 31.0 -9999 29.0
28.0 27.5 26.0 25.5
-9999 24.0 23.5 22.0
`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lst.asc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	g, err := Load(writeSample(t, sampleASC))
	require.NoError(t, err)

	assert.Equal(t, 3, g.Rows)
	assert.Equal(t, 4, g.Cols)
	assert.InDelta(t, 36.80, g.Bounds.West, 1e-9)
	assert.InDelta(t, 36.84, g.Bounds.East, 1e-9)
	assert.InDelta(t, -1.30, g.Bounds.South, 1e-9)
	assert.InDelta(t, -1.27, g.Bounds.North, 1e-9)
	assert.InDelta(t, -1.27, g.Transform.OriginY, 1e-9)
	assert.InDelta(t, -0.01, g.Transform.PixelHeight, 1e-9)

	// Nodata sentinel becomes NaN.
	assert.True(t, math.IsNaN(g.Data[0][2]))
	assert.Equal(t, 30.5, g.Data[0][0])
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.asc"))
		require.Error(t, err)
	})

	t.Run("ragged row", func(t *testing.T) {
		bad := `ncols 2
nrows 2
xllcorner 0
yllcorner 0
cellsize 1
1 2
3
`
		_, err := Load(writeSample(t, bad))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cells")
	})

	t.Run("row count mismatch", func(t *testing.T) {
		bad := `ncols 2
nrows 3
xllcorner 0
yllcorner 0
cellsize 1
1 2
3 4
`
		_, err := Load(writeSample(t, bad))
		require.Error(t, err)
	})
}

func TestGrid_ValidValues(t *testing.T) {
	g, err := Load(writeSample(t, sampleASC))
	require.NoError(t, err)

	values := g.ValidValues()
	assert.Len(t, values, 10)
	for _, v := range values {
		assert.False(t, math.IsNaN(v))
	}

	var nilGrid *Grid
	assert.Nil(t, nilGrid.ValidValues())
}

func TestGrid_At(t *testing.T) {
	g, err := Load(writeSample(t, sampleASC))
	require.NoError(t, err)

	// Center of the top-left pixel.
	v, ok := g.At(-1.275, 36.805)
	require.True(t, ok)
	assert.Equal(t, 30.5, v)

	// Nodata cell in the top row.
	_, ok = g.At(-1.275, 36.825)
	assert.False(t, ok)

	// Out of bounds.
	_, ok = g.At(10, 10)
	assert.False(t, ok)

	var nilGrid *Grid
	_, ok = nilGrid.At(0, 0)
	assert.False(t, ok)
}
