package layout

// Default spacing constants, in rendering-surface units.
const (
	DefaultHorizontalSpacing = 250.0
	DefaultVerticalSpacing   = 200.0
	DefaultBaseRadius        = 200.0
	DefaultDepthIncrement    = 100.0
	DefaultRingSpacing       = 180.0
	DefaultCellSize          = 200.0
)

// Options holds the spacing constants of every layout kind.
// The zero value is not used directly; see [DefaultOptions].
type Options struct {
	HorizontalSpacing float64 // hierarchical: distance between siblings
	VerticalSpacing   float64 // hierarchical: distance between depth rows
	BaseRadius        float64 // force: radius at depth 0
	DepthIncrement    float64 // force: radius added per depth level
	RingSpacing       float64 // circular: ring radius per depth level
	CellSize          float64 // grid: cell width and height
}

// DefaultOptions returns the default spacing constants.
func DefaultOptions() Options {
	return Options{
		HorizontalSpacing: DefaultHorizontalSpacing,
		VerticalSpacing:   DefaultVerticalSpacing,
		BaseRadius:        DefaultBaseRadius,
		DepthIncrement:    DefaultDepthIncrement,
		RingSpacing:       DefaultRingSpacing,
		CellSize:          DefaultCellSize,
	}
}

// Option configures a [Compute] call.
type Option func(*Options)

// WithOptions replaces every non-zero field of the defaults with o's value.
func WithOptions(o Options) Option {
	return func(dst *Options) {
		setIf(&dst.HorizontalSpacing, o.HorizontalSpacing)
		setIf(&dst.VerticalSpacing, o.VerticalSpacing)
		setIf(&dst.BaseRadius, o.BaseRadius)
		setIf(&dst.DepthIncrement, o.DepthIncrement)
		setIf(&dst.RingSpacing, o.RingSpacing)
		setIf(&dst.CellSize, o.CellSize)
	}
}

// WithSpacing sets the hierarchical row and sibling spacing.
func WithSpacing(horizontal, vertical float64) Option {
	return func(o *Options) {
		setIf(&o.HorizontalSpacing, horizontal)
		setIf(&o.VerticalSpacing, vertical)
	}
}

// WithRadius sets the force layout base radius and per-depth increment.
func WithRadius(base, increment float64) Option {
	return func(o *Options) {
		setIf(&o.BaseRadius, base)
		setIf(&o.DepthIncrement, increment)
	}
}

// WithRingSpacing sets the circular layout ring spacing.
func WithRingSpacing(spacing float64) Option {
	return func(o *Options) { setIf(&o.RingSpacing, spacing) }
}

// WithCellSize sets the grid layout cell size.
func WithCellSize(size float64) Option {
	return func(o *Options) { setIf(&o.CellSize, size) }
}

func setIf(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}
