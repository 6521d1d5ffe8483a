package wfc

// Direction is one of the four cardinal neighbor offsets used by the
// propagator and the wave's propagation step.
type Direction int

const (
	Right Direction = iota
	Down
	Left
	Up
)

// AllDirections is iterated in this fixed order everywhere the solver
// walks a cell's neighbors.
var AllDirections = [4]Direction{Right, Down, Left, Up}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Right:
		return Left
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Down
	}
}

// DX and DY are the coordinate offsets for d.
func (d Direction) DX() int {
	switch d {
	case Right:
		return 1
	case Left:
		return -1
	default:
		return 0
	}
}

func (d Direction) DY() int {
	switch d {
	case Down:
		return 1
	case Up:
		return -1
	default:
		return 0
	}
}

// Propagator is the compatibility table: for each pattern index and
// direction, the list of pattern indices that may legally sit on that
// side.
type Propagator struct {
	table [][4][]int
}

// BuildPropagator computes, for every ordered pair (i, j) of patterns
// and every direction, whether j may sit adjacent to i in that
// direction. This is O(P²N²) and runs once per Solver construction.
func BuildPropagator(patterns []Pattern, n int) *Propagator {
	p := &Propagator{table: make([][4][]int, len(patterns))}
	for i, pi := range patterns {
		for j, pj := range patterns {
			if patternsAgree(pi, pj, 1, 0, n) {
				p.table[i][Right] = append(p.table[i][Right], j)
			}
			if patternsAgree(pi, pj, 0, 1, n) {
				p.table[i][Down] = append(p.table[i][Down], j)
			}
			if patternsAgree(pi, pj, -1, 0, n) {
				p.table[i][Left] = append(p.table[i][Left], j)
			}
			if patternsAgree(pi, pj, 0, -1, n) {
				p.table[i][Up] = append(p.table[i][Up], j)
			}
		}
	}
	return p
}

// Entries returns the pattern indices compatible with pattern i when
// sitting in direction d from it.
func (p *Propagator) Entries(i int, d Direction) []int {
	return p.table[i][d]
}

// patternsAgree checks whether p1 and p2 can sit adjacent with offset
// (dx, dy): the overlapping region of p1 shifted by (0,0) and p2
// shifted by (dx,dy), a rectangle of size (N-|dx|) x (N-|dy|), must be
// pointwise equal.
func patternsAgree(p1, p2 Pattern, dx, dy, n int) bool {
	xMin, xMax := max(dx, 0), n+min(dx, 0)
	yMin, yMax := max(dy, 0), n+min(dy, 0)

	for y := yMin; y < yMax; y++ {
		for x := xMin; x < xMax; x++ {
			if p1.Get(x, y) != p2.Get(x-dx, y-dy) {
				return false
			}
		}
	}
	return true
}
