// Package progress tracks which tiles a user has drawn on and decides when
// the instructions disappear and the call-to-action appears.
package progress

// ctaThreshold is the number of distinct tiles that must be drawn on
// before the call-to-action shows.
const ctaThreshold = 2

// State is the reveal progress for one widget.
type State struct {
	active           int
	tiles            int
	drawn            map[int]bool
	showInstructions bool
	showCTA          bool
}

// New returns progress for a widget with n tiles, starting on tile 0.
func New(n int) *State {
	return &State{
		tiles:            n,
		drawn:            make(map[int]bool, n),
		showInstructions: true,
	}
}

// Active returns the active tile index.
func (s *State) Active() int { return s.active }

// Select makes tile i active. Out of range indexes are ignored and it
// reports whether the active tile changed.
func (s *State) Select(i int) bool {
	if i < 0 || i >= s.tiles || i == s.active {
		return false
	}
	s.active = i
	return true
}

// Drawn records a composite on the active tile. It reports whether this
// was the first draw on that tile.
func (s *State) Drawn() bool {
	s.showInstructions = false
	if s.drawn[s.active] {
		return false
	}
	s.drawn[s.active] = true
	if len(s.drawn) >= ctaThreshold {
		s.showCTA = true
	}
	return true
}

// DistinctTiles is the number of tiles drawn on at least once.
func (s *State) DistinctTiles() int { return len(s.drawn) }

func (s *State) ShowInstructions() bool { return s.showInstructions }

func (s *State) ShowCTA() bool { return s.showCTA }
