package profile

import (
	"math"

	"github.com/sells-group/comps-engine/internal/model"
)

// Quarters labels the twelve chart points, oldest first.
var Quarters = []string{
	"Q1'22", "Q2'22", "Q3'22", "Q4'22",
	"Q1'23", "Q2'23", "Q3'23", "Q4'23",
	"Q1'24", "Q2'24", "Q3'24", "Q4'24",
}

// SeriesSource produces a company's quarterly chart series.
type SeriesSource interface {
	QuarterlySeries(c *model.Company) []model.QuarterPoint
}

// SyntheticSeries extrapolates a quarterly series from the current snapshot.
// It is a stand-in until a historical store exists; the values are not a
// record of past quarters.
//
// For quarter t in 0..11 with p = t/11 and g = LTM revenue growth (%):
//
//	impliedArr = impliedArr0 * (1 + g/100*p)
//	netNewArr  = netNewArr0  * (1 + 0.2*sin(2πp))
//	yoyGrowth  = round(g * (1 - 0.4p))
type SyntheticSeries struct{}

// QuarterlySeries implements SeriesSource.
func (SyntheticSeries) QuarterlySeries(c *model.Company) []model.QuarterPoint {
	baseArr := c.FinancialMetrics.ImpliedArr
	baseNetNew := c.FinancialMetrics.NetNewArr
	growth := c.OperatingMetrics.LtmRevenueGrowth

	last := float64(len(Quarters) - 1)
	points := make([]model.QuarterPoint, len(Quarters))
	for t, q := range Quarters {
		p := float64(t) / last
		points[t] = model.QuarterPoint{
			Quarter:    q,
			ImpliedArr: roundCents(baseArr * (1 + growth/100*p)),
			NetNewArr:  roundCents(baseNetNew * (1 + 0.2*math.Sin(2*math.Pi*p))),
			YoyGrowth:  roundHalfUp(growth * (1 - 0.4*p)),
		}
	}
	return points
}

// roundHalfUp rounds to the nearest integer, halves toward +Inf.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func roundCents(v float64) float64 {
	return roundHalfUp(v*100) / 100
}
