package web

import (
	"gapscan/internal/render"
	"gapscan/pkg/model"
)

// resultColumns is the display order of the result table, shared by
// the HTML view and the spreadsheet export.
var resultColumns = []string{
	"date",
	"pd close",
	"premarket open",
	"premarket high",
	"premarket high time",
	"premarket volume",
	"open",
	"gap up % at open",
	"day high",
	"day high time",
	"day high %",
	"close price",
	"closing percent",
	"afterhours close",
	"total volume",
	"VWAP crosses",
	"Runner/Fader",
	"30min high",
	"30min high time",
	"30min high % from open",
	"high within 30min",
	"30min volume",
	"fade category",
}

// recordRow formats one record into display cells, in resultColumns
// order.
func recordRow(rec *model.GapDayRecord) []string {
	return []string{
		render.Date(rec.Date),
		render.PriceVal(rec.PrevClose),
		render.Price(rec.PremarketOpen),
		render.Price(rec.PremarketHigh),
		render.Clock(rec.PremarketHighTime),
		render.Volume(rec.PremarketVolume),
		render.PriceVal(rec.Open),
		render.PercentVal(rec.GapPercent),
		render.PriceVal(rec.DayHigh),
		render.Clock(rec.DayHighTime),
		render.PercentVal(rec.DayHighPercent),
		render.PriceVal(rec.Close),
		render.PercentVal(rec.ClosePercent),
		render.Price(rec.AfterhoursClose),
		render.VolumeVal(rec.TotalVolume),
		render.Count(rec.VWAPCrosses),
		string(rec.Label),
		render.Price(rec.OpeningRangeHigh),
		render.Clock(rec.OpeningRangeHighTime),
		render.Percent(rec.OpeningRangeHighPct),
		render.Bool(rec.HighInOpeningRange),
		render.Volume(rec.OpeningRangeVolume),
		string(rec.FadeCategory),
	}
}
