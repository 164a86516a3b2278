package gap

import (
	"image/color"
	"testing"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		count int
		want  Severity
	}{
		{0, SeverityNone},
		{1, SeveritySlight},
		{10, SeveritySlight},
		{11, SeverityWarning},
		{49, SeverityWarning},
		{50, SeverityCritical},
		{900, SeverityCritical},
	}
	for _, tt := range tests {
		if got := Classify(tt.count); got != tt.want {
			t.Errorf("Classify(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestFeedbackFor(t *testing.T) {
	none := FeedbackFor(0)
	if none.AlertVisible {
		t.Error("alert should be hidden when there is no gap")
	}
	if none.RatioText != "No gap (0px)" {
		t.Errorf("ratio text = %q", none.RatioText)
	}

	crit := FeedbackFor(120)
	if !crit.AlertVisible {
		t.Fatal("alert should be visible for a critical gap")
	}
	if crit.AlertText != "Critical gap (120px)" {
		t.Errorf("alert text = %q", crit.AlertText)
	}
	if crit.AlertColor != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("alert colour = %v", crit.AlertColor)
	}

	if got := FeedbackFor(11).AlertText; got != "Gap detected (11px)" {
		t.Errorf("warning text = %q", got)
	}
	if got := FeedbackFor(3).AlertText; got != "Slight gap (3px)" {
		t.Errorf("slight text = %q", got)
	}
}
