package sink

import "sync"

// Emission is one recorded call into a RecordingSink, in call order.
type Emission struct {
	Primitive string // "move_relative", "set_position", "scroll", "button"
	DX, DY    int
	X, Y      int
	Button    ButtonID
	Down      bool
}

// RecordingSink is the test double spec.md §9 calls for explicitly: "a test
// double that records the emission log." Safe for concurrent use: every
// method holds the sink's mutex.
type RecordingSink struct {
	mu        sync.Mutex
	emissions []Emission
	pressed   map[ButtonID]bool
}

func NewRecordingSink() *RecordingSink {
	return &RecordingSink{pressed: make(map[ButtonID]bool)}
}

func (s *RecordingSink) MoveRelative(dx, dy int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emissions = append(s.emissions, Emission{Primitive: "move_relative", DX: dx, DY: dy})
}

func (s *RecordingSink) SetPosition(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emissions = append(s.emissions, Emission{Primitive: "set_position", X: x, Y: y})
}

func (s *RecordingSink) Scroll(dx, dy int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emissions = append(s.emissions, Emission{Primitive: "scroll", DX: dx, DY: dy})
}

func (s *RecordingSink) Button(id ButtonID, down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emissions = append(s.emissions, Emission{Primitive: "button", Button: id, Down: down})
	s.pressed[id] = down
}

// Emissions returns a snapshot of every recorded emission, in call order.
func (s *RecordingSink) Emissions() []Emission {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Emission, len(s.emissions))
	copy(out, s.emissions)
	return out
}

// AnyPressed reports whether any button is currently recorded as down —
// used by release-completeness tests (SPEC_FULL §8 invariant 1).
func (s *RecordingSink) AnyPressed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, down := range s.pressed {
		if down {
			return true
		}
	}
	return false
}

func (s *RecordingSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emissions = nil
	s.pressed = make(map[ButtonID]bool)
}
