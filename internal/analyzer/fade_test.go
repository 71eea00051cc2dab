package analyzer

import (
	"testing"

	"gapscan/pkg/model"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name        string
		open, close float64
		want        model.DayLabel
	}{
		{"close above open", 13.0, 15.0, model.LabelRunner},
		{"close below open", 13.0, 11.0, model.LabelFader},
		{"close equals open", 13.0, 13.0, model.LabelNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Label(tt.open, tt.close); got != tt.want {
				t.Errorf("Label(%v, %v) = %q, want %q", tt.open, tt.close, got, tt.want)
			}
		})
	}
}

func TestClassifyFade(t *testing.T) {
	tests := []struct {
		name   string
		label  model.DayLabel
		highIn bool
		pct    *float64
		want   model.FadeCategory
	}{
		{"fader small extension", model.LabelFader, true, fptr(5), model.FadeStraightDown},
		{"fader quick swipe", model.LabelFader, true, fptr(25), model.FadeQuickSwipe},
		{"fader steady gap up", model.LabelFader, true, fptr(70), model.FadeSteadyGapUp},
		{"fader high outside opening range", model.LabelFader, false, fptr(500), model.FadeStraightDown},
		{"runner never categorized", model.LabelRunner, true, fptr(5), ""},
		{"neutral never categorized", model.LabelNeutral, true, fptr(5), ""},
		{"fader without computable extension", model.LabelFader, true, nil, ""},
		{"extension at lower boundary", model.LabelFader, true, fptr(10), model.FadeQuickSwipe},
		{"extension at middle boundary", model.LabelFader, true, fptr(40), model.FadeSteadyGapUp},
		{"hundred percent and beyond unclassified", model.LabelFader, true, fptr(100), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyFade(tt.label, tt.highIn, tt.pct)
			if got != tt.want {
				t.Errorf("ClassifyFade = %q, want %q", got, tt.want)
			}
		})
	}
}
