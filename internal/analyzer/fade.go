package analyzer

import "gapscan/pkg/model"

// Label classifies a day by its close relative to its open.
func Label(open, close float64) model.DayLabel {
	switch {
	case close > open:
		return model.LabelRunner
	case close < open:
		return model.LabelFader
	default:
		return model.LabelNeutral
	}
}

// ClassifyFade maps a Fader day's intraday shape to a fade category.
// pctHighFromOpen is the opening-range high's extension above the open,
// in percent; nil means it could not be computed.
//
// Days extending 100% or more stay unclassified; so do Runner/Neutral
// days.
func ClassifyFade(label model.DayLabel, highInOpeningRange bool, pctHighFromOpen *float64) model.FadeCategory {
	if label != model.LabelFader {
		return ""
	}
	if !highInOpeningRange {
		return model.FadeStraightDown
	}
	if pctHighFromOpen == nil {
		return ""
	}
	switch p := *pctHighFromOpen; {
	case p < 10:
		return model.FadeStraightDown
	case p < 40:
		return model.FadeQuickSwipe
	case p < 100:
		return model.FadeSteadyGapUp
	default:
		return ""
	}
}
