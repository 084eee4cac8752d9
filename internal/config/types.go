// Package config holds the validated in-memory configuration the engine
// consumes. Parsing the persisted YAML file is a thin boundary concern
// (see yaml.go); the engine only ever sees the types in this file.
package config

// Op is a hysteresis comparison operator.
type Op string

const (
	OpGreater Op = ">"
	OpLess    Op = "<"
)

// LostHandPolicy covers every policy vocabulary used across gates and the
// three binding kinds. Which values are legal depends on context; validate.go
// enforces that.
type LostHandPolicy string

const (
	PolicyRelease LostHandPolicy = "release"
	PolicyHold    LostHandPolicy = "hold"
	PolicyTrue    LostHandPolicy = "true"
	PolicyToggle  LostHandPolicy = "toggle"
	PolicyZero    LostHandPolicy = "zero"
	PolicyMin     LostHandPolicy = "min"
	PolicyMax     LostHandPolicy = "max"
	PolicyCenter  LostHandPolicy = "center"
)

// Point2D is a camera-normalized point, x/y in [0,1].
type Point2D struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// MotionAxis is the calibration entry for a *.motion.up/left feature.
type MotionAxis struct {
	AxisX     float64 `yaml:"axis_x"`
	AxisY     float64 `yaml:"axis_y"`
	RangeNorm float64 `yaml:"range_norm"`
}

// Quad is the calibration entry for a *.pos.x/y feature pair, in TL, TR,
// BR, BL order.
type Quad struct {
	TL Point2D `yaml:"tl"`
	TR Point2D `yaml:"tr"`
	BR Point2D `yaml:"br"`
	BL Point2D `yaml:"bl"`
}

// ViewportQuad is the default position quad: the full camera frame.
func ViewportQuad() Quad {
	return Quad{
		TL: Point2D{X: 0, Y: 0},
		TR: Point2D{X: 1, Y: 0},
		BR: Point2D{X: 1, Y: 1},
		BL: Point2D{X: 0, Y: 1},
	}
}

// Range is a generic (min, max) calibration entry for curvature, gesture,
// curvature-diff, bend, relative-curvature, and fingertip-distance features.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Calibration holds every calibration entry, keyed by feature name. A given
// feature name appears in exactly one of the three maps depending on its
// kind.
type Calibration struct {
	MotionAxes map[string]MotionAxis `yaml:"motion_axes,omitempty"`
	Quads      map[string]Quad       `yaml:"quads,omitempty"`
	Ranges     map[string]Range      `yaml:"ranges,omitempty"`
}

func NewCalibration() Calibration {
	return Calibration{
		MotionAxes: make(map[string]MotionAxis),
		Quads:      make(map[string]Quad),
		Ranges:     make(map[string]Range),
	}
}

// Smoothing holds the four per-category EMA time constants, in milliseconds.
type Smoothing struct {
	PositionMs  float64 `yaml:"position"`
	MovementMs  float64 `yaml:"movement"`
	CurvatureMs float64 `yaml:"curvature"`
	GestureMs   float64 `yaml:"gesture"`
}

// Category names a smoothing time-constant bucket.
type Category string

const (
	CategoryPosition  Category = "position"
	CategoryMovement  Category = "movement"
	CategoryCurvature Category = "curvature"
	CategoryGesture   Category = "gesture"
)

func (s Smoothing) TauMs(c Category) float64 {
	switch c {
	case CategoryPosition:
		return s.PositionMs
	case CategoryMovement:
		return s.MovementMs
	case CategoryCurvature:
		return s.CurvatureMs
	case CategoryGesture:
		return s.GestureMs
	default:
		return 0
	}
}

// Gate is a stateful boolean derived from one smoothed feature.
type Gate struct {
	InputName      string         `yaml:"input"`
	Op             Op             `yaml:"op"`
	TriggerPct     float64        `yaml:"trigger_pct"`
	ReleasePct     float64        `yaml:"release_pct"`
	RefractoryMs   float64        `yaml:"refractory_ms"`
	LostHandPolicy LostHandPolicy `yaml:"lost_hand_policy"`
}

// DefaultGate returns the bare-gate defaults resolved in SPEC_FULL.md
// §4.3.1 from original_source's GateBuilder.
func DefaultGate(inputName string) Gate {
	return Gate{
		InputName:      inputName,
		Op:             OpGreater,
		TriggerPct:     0.5,
		ReleasePct:     0.45,
		RefractoryMs:   120,
		LostHandPolicy: PolicyRelease,
	}
}

// Kind is the engine-internal expansion of a binding's raw `kind:` string.
type Kind string

const (
	KindDelta    Kind = "delta"
	KindAbsolute Kind = "absolute"
	KindStateful Kind = "stateful"
	KindEdge     Kind = "edge"
)

// Primitive is one of the four action-sink primitives a binding drives.
type Primitive string

const (
	PrimitiveMoveRelative Primitive = "move_relative"
	PrimitiveSetPosition  Primitive = "set_position"
	PrimitiveScroll       Primitive = "scroll"
	PrimitiveButton       Primitive = "button"
)

// Axis distinguishes the x/y half of a delta or absolute binding.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// EdgeSpec is the explicit `{trigger: X.down, release: X.up}` binding form.
type EdgeSpec struct {
	TriggerName string `yaml:"trigger"`
	ReleaseName string `yaml:"release"`
}

// Binding is one configured output binding. RawKind is preserved verbatim
// for round-tripping through the persisted config (spec.md §6); Kind,
// Primitive, Axis and ButtonID are the engine's resolved expansion of it.
type Binding struct {
	ID      string `yaml:"id"`
	RawKind string `yaml:"kind"`

	Kind      Kind      `yaml:"-"`
	Primitive Primitive `yaml:"-"`
	Axis      Axis      `yaml:"-"`
	ButtonID  string    `yaml:"-"`

	InputName string `yaml:"input"`
	// Gates are ANDed together into one effective gate per spec.md §2 step
	// 4/§4.3's gate_all: the binding only acts while every component gate
	// is simultaneously true, with refractory and hysteresis tracked per
	// component.
	Gates          []Gate         `yaml:"gates,omitempty"`
	LostHandPolicy LostHandPolicy `yaml:"lost_hand_policy,omitempty"`

	// Delta axis params.
	SensitivityRaw string  `yaml:"sensitivity,omitempty"`
	Sensitivity    float64 `yaml:"-"`
	DeadzonePct    float64 `yaml:"deadzone_pct,omitempty"`

	// Absolute axis params.
	Min float64 `yaml:"min,omitempty"`
	Max float64 `yaml:"max,omitempty"`

	// Stateful edge params.
	Op           Op      `yaml:"op,omitempty"`
	TriggerPct   float64 `yaml:"trigger_pct,omitempty"`
	ReleasePct   float64 `yaml:"release_pct,omitempty"`
	RefractoryMs float64 `yaml:"refractory_ms,omitempty"`

	// Explicit edge form, mutually exclusive with RawKind-driven stateful edges.
	Edge *EdgeSpec `yaml:"edge,omitempty"`
}

// Config is the full persisted-and-validated configuration.
type Config struct {
	Version     int         `yaml:"version"`
	LastCamera  string      `yaml:"last_camera"`
	Smoothing   Smoothing   `yaml:"smoothing"`
	Calibration Calibration `yaml:"calibration"`
	Outputs     []Binding   `yaml:"outputs"`
}
