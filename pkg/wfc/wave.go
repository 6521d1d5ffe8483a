package wfc

import (
	"math"
	"math/rand"
)

// State is the solver's lifecycle state.
type State int

const (
	Active State = iota
	Done
	Contradicted
)

func (s State) String() string {
	switch s {
	case Active:
		return "Active"
	case Done:
		return "Done"
	case Contradicted:
		return "Contradicted"
	default:
		return "Unknown"
	}
}

// Cell is a (x, y) coordinate into the wave.
type Cell struct {
	X, Y int
}

// Solver maintains the wave: the per-cell superposition over patterns,
// incrementally-updated entropy statistics, and the propagation stack.
// It is single-threaded and synchronous — no method suspends, and the
// host owns the Solver exclusively.
type Solver struct {
	Config     Config
	Patterns   []Pattern
	Weights    []float64
	logWeights []float64

	propagator *Propagator

	wave                [][]bool // wave[cell][pattern]
	sumsOne             []int
	sumWeights          []float64
	sumWeightLogWeights []float64
	startingEntropy     float64

	topPatterns, bottomPatterns []bool
	leftPatterns, rightPatterns []bool

	stack        []Cell // cells awaiting propagation, paired by position with stackPattern's banned pattern
	stackPattern []int

	Contradiction bool
	done          bool
	LastCollapsed *Cell

	rng *rand.Rand
}

// New constructs a Solver from a sample and configuration, extracting
// patterns, building the propagator, and applying the edge constraints.
// Degenerate input is rejected here rather than surfacing as a
// contradiction later: an empty sample, a pattern size exceeding the
// sample's dimensions under non-periodic input, or zero-sized output.
//
// seed seeds the solver's own random source; the host controls it
// directly so runs are reproducible.
func New(sample *Sample, cfg Config, seed int64) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sample == nil || sample.Width == 0 || sample.Height == 0 {
		return nil, ErrEmptySample
	}

	extraction, err := Extract(sample, cfg)
	if err != nil {
		return nil, err
	}

	propagator := BuildPropagator(extraction.Patterns, cfg.PatternSize)

	s := &Solver{
		Config:         cfg,
		Patterns:       extraction.Patterns,
		Weights:        extraction.Weights,
		propagator:     propagator,
		topPatterns:    extraction.Top,
		bottomPatterns: extraction.Bottom,
		leftPatterns:   extraction.Left,
		rightPatterns:  extraction.Right,
		rng:            rand.New(rand.NewSource(seed)),
	}

	s.logWeights = make([]float64, len(s.Weights))
	var totalWeight, sumWeightLogWeight float64
	for i, w := range s.Weights {
		lw := math.Log(w)
		s.logWeights[i] = lw
		totalWeight += w
		sumWeightLogWeight += w * lw
	}
	s.startingEntropy = math.Log(totalWeight) - sumWeightLogWeight/totalWeight

	s.resetWave()
	return s, nil
}

// numCells returns the wave's cell count.
func (s *Solver) numCells() int {
	return s.Config.OutputWidth * s.Config.OutputHeight
}

func (s *Solver) cellIndex(x, y int) int {
	return y*s.Config.OutputWidth + x
}

// resetWave (re)initializes the wave to all-patterns-allowed, recomputes
// the per-cell statistics from scratch, and reapplies the edge
// constraints followed by one propagation pass — the same steps New
// performs, and what Reset calls to return to the post-construction
// state.
func (s *Solver) resetWave() {
	numPatterns := len(s.Patterns)
	numCells := s.numCells()

	var totalWeight, sumWeightLogWeight float64
	for i, w := range s.Weights {
		totalWeight += w
		sumWeightLogWeight += w * s.logWeights[i]
	}

	s.wave = make([][]bool, numCells)
	s.sumsOne = make([]int, numCells)
	s.sumWeights = make([]float64, numCells)
	s.sumWeightLogWeights = make([]float64, numCells)
	for cell := 0; cell < numCells; cell++ {
		row := make([]bool, numPatterns)
		for p := range row {
			row[p] = true
		}
		s.wave[cell] = row
		s.sumsOne[cell] = numPatterns
		s.sumWeights[cell] = totalWeight
		s.sumWeightLogWeights[cell] = sumWeightLogWeight
	}

	s.stack = s.stack[:0]
	if s.stackPattern == nil {
		s.stackPattern = make([]int, 0, numCells)
	} else {
		s.stackPattern = s.stackPattern[:0]
	}
	s.Contradiction = false
	s.done = false
	s.LastCollapsed = nil

	s.applyEdgeConstraints()
}

// applyEdgeConstraints bans patterns that never touched the relevant
// sample edge from the wave's boundary rows/columns, then drains the
// resulting propagation stack.
func (s *Solver) applyEdgeConstraints() {
	w, h := s.Config.OutputWidth, s.Config.OutputHeight

	if s.Config.Ground {
		for x := 0; x < w; x++ {
			s.banMissing(s.cellIndex(x, 0), s.topPatterns)
		}
		for x := 0; x < w; x++ {
			s.banMissing(s.cellIndex(x, h-1), s.bottomPatterns)
		}
	}
	if s.Config.Sides {
		for y := 0; y < h; y++ {
			s.banMissing(s.cellIndex(0, y), s.leftPatterns)
		}
		for y := 0; y < h; y++ {
			s.banMissing(s.cellIndex(w-1, y), s.rightPatterns)
		}
	}

	s.propagate()
}

func (s *Solver) banMissing(cell int, allowed []bool) {
	for p := range s.Patterns {
		if s.wave[cell][p] && !allowed[p] {
			s.ban(cell, p)
		}
	}
}

// Reset returns the solver to its initial post-construction state,
// using the cached patterns, weights, and propagator. The host's
// previous RNG draws are not replayed — a fresh Reset only reruns the
// deterministic edge-constraint bans, so the resulting wave is
// bit-for-bit identical to the one New produced.
func (s *Solver) Reset() {
	s.resetWave()
}

// Done reports whether the observer found no cell with two or more
// remaining patterns and no contradiction occurred.
func (s *Solver) Done() bool {
	return s.done
}

// State reports the solver's current lifecycle state.
func (s *Solver) State() State {
	switch {
	case s.Contradiction:
		return Contradicted
	case s.done:
		return Done
	default:
		return Active
	}
}

func (s *Solver) entropy(cell int) float64 {
	sum := s.sumWeights[cell]
	if sum <= 0 {
		return 0
	}
	return math.Log(sum) - s.sumWeightLogWeights[cell]/sum
}

// NormalizedEntropy returns entropy(cell)/startingEntropy clamped to
// [0, 1], or 0 for an already-collapsed (or contradicted) cell.
func (s *Solver) NormalizedEntropy(x, y int) float64 {
	cell := s.cellIndex(x, y)
	if s.sumsOne[cell] <= 1 {
		return 0
	}
	e := s.entropy(cell) / s.startingEntropy
	if e < 0 {
		return 0
	}
	if e > 1 {
		return 1
	}
	return e
}

// observe picks the uncollapsed cell with minimum noisy entropy. It
// returns the cell index and true, or false if every cell is already
// collapsed (in which case the caller marks Done) or a contradiction was
// found (in which case Contradiction is already set).
func (s *Solver) observe() (int, bool) {
	minEntropy := math.MaxFloat64
	minCell := -1

	for cell := 0; cell < s.numCells(); cell++ {
		count := s.sumsOne[cell]
		if count == 0 {
			s.Contradiction = true
			return 0, false
		}
		if count == 1 {
			continue
		}

		e := s.entropy(cell) + s.rng.Float64()*1e-6
		if e < minEntropy {
			minEntropy = e
			minCell = cell
		}
	}

	if minCell < 0 {
		return 0, false
	}
	return minCell, true
}

// collapse reduces cell's superposition to a single pattern via weighted
// random selection, banning every other allowed pattern.
func (s *Solver) collapse(cell int) {
	var possible []int
	for p := range s.Patterns {
		if s.wave[cell][p] {
			possible = append(possible, p)
		}
	}
	if len(possible) == 0 {
		s.Contradiction = true
		return
	}

	var total float64
	for _, p := range possible {
		total += s.Weights[p]
	}

	r := s.rng.Float64() * total
	chosen := possible[len(possible)-1]
	for _, p := range possible {
		r -= s.Weights[p]
		if r <= 0 {
			chosen = p
			break
		}
	}

	for _, p := range possible {
		if p != chosen {
			s.ban(cell, p)
		}
	}
}

// ban is the wave's single mutation primitive: flips the bit, updates
// the running statistics, and queues the change for propagation. A
// repeat ban of an already-banned pattern is a no-op.
func (s *Solver) ban(cell, pattern int) {
	if !s.wave[cell][pattern] {
		return
	}
	s.wave[cell][pattern] = false
	s.sumsOne[cell]--
	s.sumWeights[cell] -= s.Weights[pattern]
	s.sumWeightLogWeights[cell] -= s.Weights[pattern] * s.logWeights[pattern]

	s.stack = append(s.stack, Cell{X: cell % s.Config.OutputWidth, Y: cell / s.Config.OutputWidth})
	s.stackPattern = append(s.stackPattern, pattern)
}

// neighbor computes the cell index in direction d from (x, y), honoring
// PeriodicOutput wraparound, or false if the neighbor falls outside a
// non-periodic wave.
func (s *Solver) neighbor(x, y int, d Direction) (int, bool) {
	w, h := s.Config.OutputWidth, s.Config.OutputHeight
	nx, ny := x+d.DX(), y+d.DY()

	if s.Config.PeriodicOutput {
		nx = ((nx % w) + w) % w
		ny = ((ny % h) + h) % h
		return s.cellIndex(nx, ny), true
	}
	if nx < 0 || nx >= w || ny < 0 || ny >= h {
		return 0, false
	}
	return s.cellIndex(nx, ny), true
}

// propagate drains the ban stack AC-3-style: for every banned
// (cell, pattern), for each direction, any candidate neighbor pattern
// that no longer has a supporting pattern left in the source cell is
// banned in turn. The support check is a linear scan of the source
// cell's wave rather than an incrementally maintained counter, trading
// some throughput for a propagation step that is easy to verify by
// inspection.
func (s *Solver) propagate() {
	for len(s.stack) > 0 {
		top := len(s.stack) - 1
		cell := s.stack[top]
		pattern := s.stackPattern[top]
		s.stack = s.stack[:top]
		s.stackPattern = s.stackPattern[:top]

		cellIdx := s.cellIndex(cell.X, cell.Y)

		for _, d := range AllDirections {
			neighborIdx, ok := s.neighbor(cell.X, cell.Y, d)
			if !ok {
				continue
			}

			for _, other := range s.propagator.Entries(pattern, d) {
				if !s.wave[neighborIdx][other] {
					continue
				}
				if s.anyStillSupports(cellIdx, other, d) {
					continue
				}
				s.ban(neighborIdx, other)
				if s.sumsOne[neighborIdx] == 0 {
					s.Contradiction = true
					return
				}
			}
		}
	}
}

// anyStillSupports reports whether some pattern still allowed at
// cellIdx has other in its propagator entry for direction d — i.e.
// whether other is still supported as a neighbor in that direction.
func (s *Solver) anyStillSupports(cellIdx, other int, d Direction) bool {
	row := s.wave[cellIdx]
	for p, possible := range row {
		if !possible {
			continue
		}
		for _, q := range s.propagator.Entries(p, d) {
			if q == other {
				return true
			}
		}
	}
	return false
}

// Step performs one observe-collapse-propagate cycle. It returns false
// without mutating state once the solver is Done or Contradicted.
func (s *Solver) Step() bool {
	if s.Contradiction || s.done {
		return false
	}

	cell, ok := s.observe()
	if !ok {
		if !s.Contradiction {
			s.done = true
		}
		return false
	}

	s.LastCollapsed = &Cell{X: cell % s.Config.OutputWidth, Y: cell / s.Config.OutputWidth}
	s.collapse(cell)
	s.propagate()
	return true
}

// Run calls Step until it returns false.
func (s *Solver) Run() {
	for s.Step() {
	}
}

// Remaining reports how many cells still have two or more patterns
// allowed. It is 0 once every cell has at most one pattern left: always
// the case when the solver is Done, already after the last collapsing
// Step (Done is only set by the following Step), and possibly after a
// contradiction.
func (s *Solver) Remaining() int {
	n := 0
	for _, sum := range s.sumsOne {
		if sum > 1 {
			n++
		}
	}
	return n
}

// IsCollapsed reports whether (x, y) has exactly one allowed pattern.
func (s *Solver) IsCollapsed(x, y int) bool {
	return s.sumsOne[s.cellIndex(x, y)] == 1
}

// GetColor returns the sentinel magenta for an emptied cell, the single
// remaining pattern's top-left pixel for a collapsed cell, or the
// weight-weighted mean of the top-left pixels of all remaining patterns.
func (s *Solver) GetColor(x, y int) Color {
	cell := s.cellIndex(x, y)
	row := s.wave[cell]

	var colors []Color
	var weights []float64
	for p, possible := range row {
		if possible {
			colors = append(colors, s.Patterns[p].Get(0, 0))
			weights = append(weights, s.Weights[p])
		}
	}
	return MeanColor(colors, weights)
}

// Render returns a row-major vector of GetColor over the whole wave.
func (s *Solver) Render() []Color {
	out := make([]Color, 0, s.numCells())
	for y := 0; y < s.Config.OutputHeight; y++ {
		for x := 0; x < s.Config.OutputWidth; x++ {
			out = append(out, s.GetColor(x, y))
		}
	}
	return out
}
