package raster

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Load reads a single-band ESRI ASCII grid (.asc) file. Cells equal to the
// declared nodata sentinel come back as NaN so downstream statistics can
// filter them uniformly.
//
// The header is the standard six-line form:
//
//	ncols        <int>
//	nrows        <int>
//	xllcorner    <float>
//	yllcorner    <float>
//	cellsize     <float>
//	NODATA_value <float>   (optional)
//
// Row 0 of the body is the northernmost row.
func Load(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raster: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)

	header := map[string]float64{}
	hasNodata := false
	var nodata float64
	var rows [][]float64

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		// Header lines are "key value" pairs with a non-numeric key.
		if len(fields) == 2 {
			if _, err := strconv.ParseFloat(fields[0], 64); err != nil {
				key := strings.ToLower(fields[0])
				val, err := strconv.ParseFloat(fields[1], 64)
				if err != nil {
					return nil, fmt.Errorf("parse raster header %q: %w", key, err)
				}
				if key == "nodata_value" {
					hasNodata = true
					nodata = val
				} else {
					header[key] = val
				}
				continue
			}
		}

		row := make([]float64, 0, len(fields))
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("parse raster cell %q: %w", field, err)
			}
			if hasNodata && v == nodata {
				v = math.NaN()
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read raster: %w", err)
	}

	return assembleGrid(header, rows)
}

func assembleGrid(header map[string]float64, rows [][]float64) (*Grid, error) {
	ncols, ok := header["ncols"]
	if !ok {
		return nil, fmt.Errorf("raster header missing ncols")
	}
	nrows, ok := header["nrows"]
	if !ok {
		return nil, fmt.Errorf("raster header missing nrows")
	}
	cellsize, ok := header["cellsize"]
	if !ok || cellsize <= 0 {
		return nil, fmt.Errorf("raster header missing or invalid cellsize")
	}
	xll := header["xllcorner"]
	yll := header["yllcorner"]

	cols, rowCount := int(ncols), int(nrows)
	if len(rows) != rowCount {
		return nil, fmt.Errorf("raster body has %d rows, header declares %d", len(rows), rowCount)
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("raster row %d has %d cells, header declares %d", i, len(row), cols)
		}
	}

	north := yll + float64(rowCount)*cellsize
	return &Grid{
		Data: rows,
		Rows: rowCount,
		Cols: cols,
		Bounds: Bounds{
			South: yll,
			North: north,
			West:  xll,
			East:  xll + float64(cols)*cellsize,
		},
		Transform: Transform{
			OriginX:     xll,
			OriginY:     north,
			PixelWidth:  cellsize,
			PixelHeight: -cellsize,
		},
	}, nil
}
