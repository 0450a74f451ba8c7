package profile

import (
	"github.com/sells-group/comps-engine/internal/model"
)

// Chart names a secondary profile chart.
type Chart string

const (
	ChartQuarterlyRevenue    Chart = "quarterly-revenue"
	ChartLtmRevenue          Chart = "ltm-revenue"
	ChartGrossProfit         Chart = "gross-profit"
	ChartFreeCashFlow        Chart = "free-cash-flow"
	ChartLtmRuleOf40         Chart = "ltm-rule-of-40"
	ChartHistoricalMultiples Chart = "historical-multiples"
	ChartMarketCapImpliedArr Chart = "market-cap-implied-arr"
)

// Charts lists the secondary charts in page order.
var Charts = []Chart{
	ChartQuarterlyRevenue,
	ChartLtmRevenue,
	ChartGrossProfit,
	ChartFreeCashFlow,
	ChartLtmRuleOf40,
	ChartHistoricalMultiples,
	ChartMarketCapImpliedArr,
}

// chartFields is the value names each chart carries, bar first.
var chartFields = map[Chart][]string{
	ChartQuarterlyRevenue:    {"quarterlyRevenue", "yoyGrowth"},
	ChartLtmRevenue:          {"ltmRevenue", "yoyGrowth"},
	ChartGrossProfit:         {"grossProfit", "grossMargin"},
	ChartFreeCashFlow:        {"fcf", "fcfMargin"},
	ChartLtmRuleOf40:         {"ruleOf40", "fcfMargin", "revenueGrowth"},
	ChartHistoricalMultiples: {"sharePrice", "evToNtmRevenue"},
	ChartMarketCapImpliedArr: {"marketCap", "impliedArr"},
}

// ChartFields returns the value names of chart in display order, or nil for
// an unknown chart.
func ChartFields(chart Chart) []string {
	return chartFields[chart]
}

// ChartSource produces a company's secondary chart series.
type ChartSource interface {
	ChartSeries(chart Chart, c *model.Company) []model.ChartPoint
}

// ChartSeries implements ChartSource. Every chart shares the implied-ARR
// trajectory of QuarterlySeries: with p = t/11 and g = LTM revenue growth (%),
//
//	ramp      = 1 + g/100*p
//	yoyGrowth = round(g * (1 - 0.4p))
//	ltm       = ltmRevenue0 * ramp
//
// Dollar figures scale with ramp, margins hold at the snapshot value, and
// the EV / NTM revenue multiple compresses with growth, by (1 - 0.4p).
// An unknown chart yields nil.
func (SyntheticSeries) ChartSeries(chart Chart, c *model.Company) []model.ChartPoint {
	fields, ok := chartFields[chart]
	if !ok {
		return nil
	}

	growth := c.OperatingMetrics.LtmRevenueGrowth
	gm := roundHalfUp(c.FinancialMetrics.GrossMargin)
	fcfm := roundHalfUp(c.FinancialMetrics.FreeCashFlowMargin)

	last := float64(len(Quarters) - 1)
	points := make([]model.ChartPoint, len(Quarters))
	for t, q := range Quarters {
		p := float64(t) / last
		ramp := 1 + growth/100*p
		decline := 1 - 0.4*p
		yoy := roundHalfUp(growth * decline)
		ltm := c.FinancialMetrics.LtmRevenue * ramp

		v := make(map[string]float64, len(fields))
		switch chart {
		case ChartQuarterlyRevenue:
			v["quarterlyRevenue"] = roundTenths(ltm / 4)
			v["yoyGrowth"] = yoy
		case ChartLtmRevenue:
			v["ltmRevenue"] = roundTenths(ltm)
			v["yoyGrowth"] = yoy
		case ChartGrossProfit:
			v["grossProfit"] = roundTenths(ltm * c.FinancialMetrics.GrossMargin / 100)
			v["grossMargin"] = gm
		case ChartFreeCashFlow:
			v["fcf"] = roundTenths(ltm * c.FinancialMetrics.FreeCashFlowMargin / 100)
			v["fcfMargin"] = fcfm
		case ChartLtmRuleOf40:
			v["ruleOf40"] = yoy + fcfm
			v["fcfMargin"] = fcfm
			v["revenueGrowth"] = yoy
		case ChartHistoricalMultiples:
			v["sharePrice"] = roundCents(c.TradingData.Price * ramp)
			v["evToNtmRevenue"] = roundTenths(c.ValuationMetrics.EvToNtmRevenue * decline)
		case ChartMarketCapImpliedArr:
			v["marketCap"] = roundCents(c.FinancialMetrics.MarketCap * ramp)
			v["impliedArr"] = roundCents(c.FinancialMetrics.ImpliedArr * ramp)
		}
		points[t] = model.ChartPoint{Quarter: q, Values: v}
	}
	return points
}

func roundTenths(v float64) float64 {
	return roundHalfUp(v*10) / 10
}
