package svg

// BarOpts customises the bar chart renderer.
type BarOpts struct {
	Title       string
	Description string
	Color       string
	AxisColor   string
	GridColor   string
	Padding     float64
	TickCount   int
	// Currency prefixes tick labels, e.g. "$".
	Currency string
}

// Bar is a single labelled value. An empty Color falls back to BarOpts.Color.
type Bar struct {
	Label string
	Value float64
	Color string
}

// Defaults for the dashboard charts.
const (
	DefaultWidth   = 640
	DefaultHeight  = 260
	DefaultPadding = 36.0
	DefaultTicks   = 5
)
