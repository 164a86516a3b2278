package gap

import (
	"fmt"
	"image/color"
)

type Severity int

const (
	SeverityNone Severity = iota
	SeveritySlight
	SeverityWarning
	SeverityCritical
)

// Tier boundaries, in gap pixels.
const (
	SlightMax  = 10
	WarningMax = 49
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeveritySlight:
		return "slight"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	}
	return "unknown"
}

// Classify maps a gap pixel count to its tier:
// 0 none, 1-10 slight, 11-49 warning, 50+ critical.
func Classify(count int) Severity {
	switch {
	case count <= 0:
		return SeverityNone
	case count <= SlightMax:
		return SeveritySlight
	case count <= WarningMax:
		return SeverityWarning
	default:
		return SeverityCritical
	}
}

// Feedback is what the panel shows for a result: the alert banner and the
// ratio line under the sliders.
type Feedback struct {
	AlertVisible bool
	AlertColor   color.NRGBA
	AlertText    string
	RatioColor   color.NRGBA
	RatioText    string
}

var (
	colorGreen     = color.NRGBA{0, 128, 0, 255}
	colorOrange    = color.NRGBA{255, 165, 0, 255}
	colorOrangeRed = color.NRGBA{255, 69, 0, 255}
	colorRed       = color.NRGBA{255, 0, 0, 255}
)

func alpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(a*255 + 0.5)
	return c
}

func FeedbackFor(count int) Feedback {
	switch Classify(count) {
	case SeverityNone:
		return Feedback{
			RatioColor: colorGreen,
			RatioText:  "No gap (0px)",
		}
	case SeveritySlight:
		text := fmt.Sprintf("Slight gap (%dpx)", count)
		return Feedback{
			AlertVisible: true,
			AlertColor:   alpha(colorOrange, 0.8),
			AlertText:    text,
			RatioColor:   colorOrange,
			RatioText:    text,
		}
	case SeverityWarning:
		text := fmt.Sprintf("Gap detected (%dpx)", count)
		return Feedback{
			AlertVisible: true,
			AlertColor:   alpha(colorOrangeRed, 0.9),
			AlertText:    text,
			RatioColor:   colorOrangeRed,
			RatioText:    text,
		}
	default:
		text := fmt.Sprintf("Critical gap (%dpx)", count)
		return Feedback{
			AlertVisible: true,
			AlertColor:   colorRed,
			AlertText:    text,
			RatioColor:   colorRed,
			RatioText:    text,
		}
	}
}
