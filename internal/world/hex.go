// Package world provides the hex grid, its tiles and terrain, and path
// planning across them.
// Tiles are addressed by offset (column, row) coordinates with odd rows
// shifted right by half a tile.
package world

import (
	"cmp"
	"fmt"
)

// TileLocation is a (column, row) position on the grid.
type TileLocation struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

// String renders the location as "(column,row)".
func (l TileLocation) String() string {
	return fmt.Sprintf("(%d,%d)", l.Column, l.Row)
}

// Less orders locations by row, then column.
func (l TileLocation) Less(o TileLocation) bool {
	return CompareLocations(l, o) < 0
}

// CompareLocations orders locations by row, then column. Suitable for
// slices.SortFunc.
func CompareLocations(a, b TileLocation) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	return cmp.Compare(a.Column, b.Column)
}

// Neighbour offsets. Which table applies depends on the parity of the row.
var (
	evenRowNeighbors = [6]TileLocation{
		{Column: -1, Row: 0},
		{Column: -1, Row: -1},
		{Column: 0, Row: -1},
		{Column: 1, Row: 0},
		{Column: 0, Row: 1},
		{Column: -1, Row: 1},
	}
	oddRowNeighbors = [6]TileLocation{
		{Column: -1, Row: 0},
		{Column: 0, Row: -1},
		{Column: 1, Row: -1},
		{Column: 1, Row: 0},
		{Column: 1, Row: 1},
		{Column: 0, Row: 1},
	}
)

// Neighbors returns the six adjacent locations, bounded or not.
func (l TileLocation) Neighbors() [6]TileLocation {
	offsets := &evenRowNeighbors
	if l.Row%2 != 0 {
		offsets = &oddRowNeighbors
	}
	var result [6]TileLocation
	for i, d := range offsets {
		result[i] = TileLocation{Column: l.Column + d.Column, Row: l.Row + d.Row}
	}
	return result
}

// IsNeighbor reports whether o is adjacent to l.
func (l TileLocation) IsNeighbor(o TileLocation) bool {
	for _, n := range l.Neighbors() {
		if n == o {
			return true
		}
	}
	return false
}

// axial converts to axial (q, r) coordinates.
func (l TileLocation) axial() (q, r int) {
	return l.Column - (l.Row-(l.Row&1))/2, l.Row
}

// Distance returns the number of steps between two locations.
func Distance(a, b TileLocation) int {
	aq, ar := a.axial()
	bq, br := b.axial()
	dq := bq - aq
	dr := br - ar

	// Deltas pointing the same way add up; opposite ones overlap.
	if (dq >= 0) == (dr >= 0) {
		return abs(dq + dr)
	}
	return max(abs(dq), abs(dr))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
