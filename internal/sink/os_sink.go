package sink

import (
	"log"
	"strings"

	"github.com/go-vgo/robotgo"
)

// OSSink is the primary sink backend: it injects real mouse/keyboard input
// via robotgo. Grounded on
// _examples/other_examples/ssutikno-hand_mouse__main.go, the pack's only Go
// reference performing OS input injection for this exact hand-tracking
// domain (robotgo.MoveMouse/Click/GetScreenSize).
type OSSink struct {
	logger *log.Logger
}

func NewOSSink(logger *log.Logger) *OSSink {
	if logger == nil {
		logger = log.Default()
	}
	return &OSSink{logger: logger}
}

// ScreenSize returns the primary display's pixel dimensions, used to
// resolve screen.width/screen.height sensitivity and absolute-axis
// min/max defaults (spec.md §6).
func ScreenSize() (width, height int) {
	return robotgo.GetScreenSize()
}

func (s *OSSink) MoveRelative(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	x, y := robotgo.Location()
	robotgo.Move(x+dx, y+dy)
}

func (s *OSSink) SetPosition(x, y int) {
	robotgo.Move(x, y)
}

func (s *OSSink) Scroll(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	robotgo.Scroll(dx, dy)
}

func (s *OSSink) Button(id ButtonID, down bool) {
	name := string(id)
	if strings.HasPrefix(name, "key:") {
		key := strings.TrimPrefix(name, "key:")
		s.sendKey(key, down)
		return
	}

	button, ok := mouseButtonName(id)
	if !ok {
		s.logger.Printf("sink: unknown button id %q", id)
		return
	}
	if down {
		robotgo.Toggle(button, "down")
	} else {
		robotgo.Toggle(button, "up")
	}
}

// sendKey is a best-effort keyboard press/release. A transient failure here
// is a sink-failure per spec.md §7: logged, never fatal.
func (s *OSSink) sendKey(key string, down bool) {
	var err error
	if down {
		err = robotgo.KeyToggle(strings.ToLower(key), "down")
	} else {
		err = robotgo.KeyToggle(strings.ToLower(key), "up")
	}
	if err != nil {
		s.logger.Printf("sink: key %q %v failed: %v", key, down, err)
	}
}

func mouseButtonName(id ButtonID) (string, bool) {
	switch id {
	case MouseLeft:
		return "left", true
	case MouseRight:
		return "right", true
	case MouseMiddle:
		return "center", true
	default:
		return "", false
	}
}
