package world

import "testing"

func TestNeighborTables(t *testing.T) {
	tests := []struct {
		loc  TileLocation
		want [6]TileLocation
	}{
		{
			TileLocation{0, 0},
			[6]TileLocation{{-1, 0}, {-1, -1}, {0, -1}, {1, 0}, {0, 1}, {-1, 1}},
		},
		{
			TileLocation{2, 1},
			[6]TileLocation{{1, 1}, {2, 0}, {3, 0}, {3, 1}, {3, 2}, {2, 2}},
		},
		{
			TileLocation{0, -1},
			[6]TileLocation{{-1, -1}, {0, -2}, {1, -2}, {1, -1}, {1, 0}, {0, 0}},
		},
	}
	for _, tt := range tests {
		if got := tt.loc.Neighbors(); got != tt.want {
			t.Errorf("%s.Neighbors() = %v, want %v", tt.loc, got, tt.want)
		}
	}
}

func TestNeighborsSymmetric(t *testing.T) {
	for col := -4; col <= 4; col++ {
		for row := -4; row <= 4; row++ {
			a := TileLocation{col, row}
			for _, b := range a.Neighbors() {
				if !b.IsNeighbor(a) {
					t.Errorf("%s lists %s as neighbour but not the reverse", a, b)
				}
				if Distance(a, b) != 1 {
					t.Errorf("Distance(%s, %s) = %d, want 1", a, b, Distance(a, b))
				}
			}
		}
	}
}

// bfsDistance counts steps over the unbounded neighbour graph.
func bfsDistance(from, to TileLocation, limit int) int {
	seen := map[TileLocation]int{from: 0}
	queue := []TileLocation{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			return seen[cur]
		}
		if seen[cur] >= limit {
			continue
		}
		for _, n := range cur.Neighbors() {
			if _, ok := seen[n]; !ok {
				seen[n] = seen[cur] + 1
				queue = append(queue, n)
			}
		}
	}
	return -1
}

func TestDistanceMatchesSteps(t *testing.T) {
	origins := []TileLocation{{0, 0}, {1, 1}, {-2, 3}, {3, -3}}
	for _, from := range origins {
		for col := -4; col <= 4; col++ {
			for row := -4; row <= 4; row++ {
				to := TileLocation{col, row}
				want := bfsDistance(from, to, 20)
				if got := Distance(from, to); got != want {
					t.Errorf("Distance(%s, %s) = %d, want %d", from, to, got, want)
				}
			}
		}
	}
}

func TestLocationOrder(t *testing.T) {
	a := TileLocation{Column: 5, Row: -1}
	b := TileLocation{Column: -5, Row: 0}
	c := TileLocation{Column: -4, Row: 0}
	if !a.Less(b) || !b.Less(c) || c.Less(a) {
		t.Error("locations not ordered by row, then column")
	}
	if CompareLocations(b, b) != 0 {
		t.Error("location not equal to itself")
	}
}
