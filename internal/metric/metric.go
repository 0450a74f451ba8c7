// Package metric is the single table of metric keys used by sorting,
// aggregation, filtering and display. Every key maps to one accessor.
package metric

import (
	"github.com/sells-group/comps-engine/internal/model"
)

// Group names the metric group a key is read from.
type Group string

const (
	GroupCompany   Group = "company"
	GroupFinancial Group = "financialMetrics"
	GroupTrading   Group = "tradingData"
	GroupOperating Group = "operatingMetrics"
	GroupValuation Group = "valuationMetrics"
)

// Stored units for currency metrics.
const (
	Thousands = 1e3
	Millions  = 1e6
)

// Format is the display format of a metric.
type Format string

const (
	FormatCurrency   Format = "currency"
	FormatPercentage Format = "percentage"
	FormatRatio      Format = "ratio"
	FormatNumber     Format = "number"
	FormatText       Format = "text"
)

// Definition describes one metric key.
type Definition struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Group  Group  `json:"group"`
	Format Format `json:"format"`

	// Scale converts stored values to whole units for display. Zero means 1.
	Scale float64 `json:"scale,omitempty"`

	num  func(c *model.Company) (float64, bool)
	text func(c *model.Company) string
}

// IsText reports whether the metric is a string column.
func (d Definition) IsText() bool {
	return d.text != nil
}

// Value returns the numeric value of the metric for c. ok is false when the
// metric is null for c or is a text column.
func (d Definition) Value(c *model.Company) (v float64, ok bool) {
	if d.num == nil {
		return 0, false
	}
	return d.num(c)
}

// Text returns the string value of a text column, or "" for numeric metrics.
func (d Definition) Text(c *model.Company) string {
	if d.text == nil {
		return ""
	}
	return d.text(c)
}

func fixed(f func(c *model.Company) float64) func(c *model.Company) (float64, bool) {
	return func(c *model.Company) (float64, bool) { return f(c), true }
}

func nullable(f func(c *model.Company) *float64) func(c *model.Company) (float64, bool) {
	return func(c *model.Company) (float64, bool) {
		p := f(c)
		if p == nil {
			return 0, false
		}
		return *p, true
	}
}

var registry = []Definition{
	{Key: "name", Label: "Company", Group: GroupCompany, Format: FormatText,
		text: func(c *model.Company) string { return c.Name }},
	{Key: "sector", Label: "Sector", Group: GroupCompany, Format: FormatText,
		text: func(c *model.Company) string { return string(c.Sector) }},

	// Trading data
	{Key: "price", Label: "Share Price", Group: GroupTrading, Format: FormatCurrency,
		num: fixed(func(c *model.Company) float64 { return c.TradingData.Price })},
	{Key: "priceChange3Mo", Label: "3M Price Change", Group: GroupTrading, Format: FormatPercentage,
		num: fixed(func(c *model.Company) float64 { return c.TradingData.PriceChange3Mo })},
	{Key: "priceChange12Mo", Label: "12M Price Change", Group: GroupTrading, Format: FormatPercentage,
		num: fixed(func(c *model.Company) float64 { return c.TradingData.PriceChange12Mo })},
	{Key: "volume", Label: "Volume", Group: GroupTrading, Format: FormatNumber,
		num: fixed(func(c *model.Company) float64 { return c.TradingData.Volume })},
	{Key: "avgVolume", Label: "Avg. Volume", Group: GroupTrading, Format: FormatNumber,
		num: fixed(func(c *model.Company) float64 { return c.TradingData.AvgVolume })},

	// Financial metrics
	{Key: "marketCap", Scale: Millions, Label: "Market Cap", Group: GroupFinancial, Format: FormatCurrency,
		num: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.MarketCap })},
	{Key: "enterpriseValue", Scale: Millions, Label: "Enterprise Value", Group: GroupFinancial, Format: FormatCurrency,
		num: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.EnterpriseValue })},
	{Key: "impliedArr", Scale: Millions, Label: "Implied ARR", Group: GroupFinancial, Format: FormatCurrency,
		num: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.ImpliedArr })},
	{Key: "ntmRevenue", Scale: Millions, Label: "NTM Revenue", Group: GroupFinancial, Format: FormatCurrency,
		num: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.NtmRevenue })},
	{Key: "ntmFcf", Scale: Millions, Label: "NTM FCF", Group: GroupFinancial, Format: FormatCurrency,
		num: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.NtmFcf })},
	{Key: "ntmGrossProfit", Scale: Millions, Label: "NTM Gross Profit", Group: GroupFinancial, Format: FormatCurrency,
		num: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.NtmGrossProfit })},
	{Key: "ltmRevenue", Scale: Millions, Label: "LTM Revenue", Group: GroupFinancial, Format: FormatCurrency,
		num: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.LtmRevenue })},
	{Key: "netNewArr", Scale: Millions, Label: "Net New ARR", Group: GroupFinancial, Format: FormatCurrency,
		num: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.NetNewArr })},
	{Key: "growthAdjEvToNtmRev", Label: "Growth Adj. EV / NTM Rev", Group: GroupFinancial, Format: FormatRatio,
		num: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.GrowthAdjEvToNtmRev })},
	{Key: "grossMargin", Label: "Gross Margin", Group: GroupFinancial, Format: FormatPercentage,
		num: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.GrossMargin })},
	{Key: "salesAndMarketingMargin", Label: "S&M Margin", Group: GroupFinancial, Format: FormatPercentage,
		num: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.SalesAndMarketingMargin })},
	{Key: "researchAndDevelopmentMargin", Label: "R&D Margin", Group: GroupFinancial, Format: FormatPercentage,
		num: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.ResearchAndDevelopmentMargin })},
	{Key: "generalAndAdminMargin", Label: "G&A Margin", Group: GroupFinancial, Format: FormatPercentage,
		num: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.GeneralAndAdminMargin })},
	{Key: "operatingExpensesMargin", Label: "OpEx Margin", Group: GroupFinancial, Format: FormatPercentage,
		num: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.OperatingExpensesMargin })},
	{Key: "operatingIncomeMargin", Label: "Operating Income Margin", Group: GroupFinancial, Format: FormatPercentage,
		num: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.OperatingIncomeMargin })},
	{Key: "freeCashFlowMargin", Label: "FCF Margin", Group: GroupFinancial, Format: FormatPercentage,
		num: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.FreeCashFlowMargin })},

	// Operating metrics
	{Key: "ruleOf40", Label: "Rule of 40", Group: GroupOperating, Format: FormatPercentage,
		num: fixed(func(c *model.Company) float64 { return c.OperatingMetrics.RuleOf40 })},
	{Key: "revenueGrowth", Label: "Revenue Growth", Group: GroupOperating, Format: FormatPercentage,
		num: fixed(func(c *model.Company) float64 { return c.OperatingMetrics.RevenueGrowth })},
	{Key: "operatingMargin", Label: "Operating Margin", Group: GroupOperating, Format: FormatPercentage,
		num: fixed(func(c *model.Company) float64 { return c.OperatingMetrics.OperatingMargin })},
	{Key: "fcfMargin", Label: "NTM FCF Margin", Group: GroupOperating, Format: FormatPercentage,
		num: fixed(func(c *model.Company) float64 { return c.OperatingMetrics.FcfMargin })},
	{Key: "operatingGrossMargin", Label: "Gross Margin (Operating)", Group: GroupOperating, Format: FormatPercentage,
		num: fixed(func(c *model.Company) float64 { return c.OperatingMetrics.GrossMargin })},
	{Key: "customerCount", Label: "Customers", Group: GroupOperating, Format: FormatNumber,
		num: fixed(func(c *model.Company) float64 { return c.OperatingMetrics.CustomerCount })},
	{Key: "arpu", Label: "ARPU", Group: GroupOperating, Format: FormatCurrency,
		num: fixed(func(c *model.Company) float64 { return c.OperatingMetrics.Arpu })},
	{Key: "magicNumber", Label: "Magic Number", Group: GroupOperating, Format: FormatRatio,
		num: nullable(func(c *model.Company) *float64 { return c.OperatingMetrics.MagicNumber })},
	{Key: "paybackPeriod", Label: "Payback Period (Months)", Group: GroupOperating, Format: FormatNumber,
		num: nullable(func(c *model.Company) *float64 { return c.OperatingMetrics.PaybackPeriod })},
	{Key: "impliedAverageAcv", Label: "Implied Avg. ACV", Group: GroupOperating, Format: FormatCurrency,
		num: fixed(func(c *model.Company) float64 { return c.OperatingMetrics.ImpliedAverageAcv })},
	{Key: "impliedArrPerFte", Scale: Thousands, Label: "Implied ARR / FTE", Group: GroupOperating, Format: FormatCurrency,
		num: fixed(func(c *model.Company) float64 { return c.OperatingMetrics.ImpliedArrPerFte })},
	{Key: "annualizedOpexPerFte", Scale: Thousands, Label: "Annualized OpEx / FTE", Group: GroupOperating, Format: FormatCurrency,
		num: fixed(func(c *model.Company) float64 { return c.OperatingMetrics.AnnualizedOpexPerFte })},
	{Key: "netDollarRetention", Label: "Net Dollar Retention", Group: GroupOperating, Format: FormatPercentage,
		num: nullable(func(c *model.Company) *float64 { return c.OperatingMetrics.NetDollarRetention })},
	{Key: "multipleReturnSinceIpo", Label: "Multiple Return Since IPO", Group: GroupOperating, Format: FormatRatio,
		num: fixed(func(c *model.Company) float64 { return c.OperatingMetrics.MultipleReturnSinceIpo })},
	{Key: "ltmRevenueGrowth", Label: "LTM Revenue Growth", Group: GroupOperating, Format: FormatPercentage,
		num: fixed(func(c *model.Company) float64 { return c.OperatingMetrics.LtmRevenueGrowth })},
	{Key: "ntmRevenueGrowth", Label: "NTM Revenue Growth", Group: GroupOperating, Format: FormatPercentage,
		num: fixed(func(c *model.Company) float64 { return c.OperatingMetrics.NtmRevenueGrowth })},

	// Valuation metrics
	{Key: "evToImpliedArr", Label: "EV / Implied ARR", Group: GroupValuation, Format: FormatRatio,
		num: fixed(func(c *model.Company) float64 { return c.ValuationMetrics.EvToImpliedArr })},
	{Key: "evToNtmRevenue", Label: "EV / NTM Revenue", Group: GroupValuation, Format: FormatRatio,
		num: fixed(func(c *model.Company) float64 { return c.ValuationMetrics.EvToNtmRevenue })},
	{Key: "evToNtmGrossProfit", Label: "EV / NTM Gross Profit", Group: GroupValuation, Format: FormatRatio,
		num: fixed(func(c *model.Company) float64 { return c.ValuationMetrics.EvToNtmGrossProfit })},
	{Key: "evToNtmFcf", Label: "EV / NTM FCF", Group: GroupValuation, Format: FormatRatio,
		num: nullable(func(c *model.Company) *float64 { return c.ValuationMetrics.EvToNtmFcf })},
	{Key: "priceToBook", Label: "Price / Book", Group: GroupValuation, Format: FormatRatio,
		num: nullable(func(c *model.Company) *float64 { return c.ValuationMetrics.PriceToBook })},
	{Key: "priceToEarnings", Label: "Price / Earnings", Group: GroupValuation, Format: FormatRatio,
		num: nullable(func(c *model.Company) *float64 { return c.ValuationMetrics.PriceToEarnings })},
}

// aliases maps table column names onto registry keys.
var aliases = map[string]string{
	"ntmFcfMargin": "fcfMargin",
}

var index = func() map[string]int {
	m := make(map[string]int, len(registry))
	for i, d := range registry {
		if _, dup := m[d.Key]; dup {
			panic("metric: duplicate key " + d.Key)
		}
		m[d.Key] = i
	}
	return m
}()

// DefaultVisibleColumns is the column set a new comparison table starts with.
var DefaultVisibleColumns = []string{
	"name", "price", "priceChange3Mo", "priceChange12Mo", "marketCap",
	"enterpriseValue", "evToImpliedArr", "evToNtmRevenue", "impliedArr",
	"ltmRevenueGrowth", "ntmRevenueGrowth", "grossMargin", "ruleOf40",
}

// Lookup returns the definition for key, resolving column aliases.
func Lookup(key string) (Definition, bool) {
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	i, ok := index[key]
	if !ok {
		return Definition{}, false
	}
	return registry[i], true
}

// All returns every definition in table order.
func All() []Definition {
	out := make([]Definition, len(registry))
	copy(out, registry)
	return out
}

// Numeric returns the numeric definitions in table order. These are the keys
// aggregated into mean and median rows.
func Numeric() []Definition {
	out := make([]Definition, 0, len(registry))
	for _, d := range registry {
		if !d.IsText() {
			out = append(out, d)
		}
	}
	return out
}
