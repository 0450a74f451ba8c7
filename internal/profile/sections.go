package profile

import (
	"github.com/sells-group/comps-engine/internal/metric"
	"github.com/sells-group/comps-engine/internal/model"
)

// Category names one section of the profile metrics table.
type Category string

const (
	CategoryOperating       Category = "operating"
	CategoryFinancial       Category = "financial"
	CategoryCompanyProfiles Category = "company-profiles"
	CategoryTrading         Category = "trading"
)

// Categories lists the sections in display order.
var Categories = []Category{CategoryOperating, CategoryFinancial, CategoryCompanyProfiles, CategoryTrading}

// Row is one labelled value in a profile section. Value is nil when the metric
// is not applicable for the company.
type Row struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Value   *float64 `json:"value"`
	Display string   `json:"display"`
}

// Section is a titled group of rows.
type Section struct {
	Category Category `json:"category"`
	Title    string   `json:"title"`
	Rows     []Row    `json:"rows"`
}

type rowSpec struct {
	key     string
	label   string
	zeroNA  bool // a stored zero means "not reported"
	value   func(c *model.Company) *float64
	display func(v float64) string
}

func (s rowSpec) row(c *model.Company) Row {
	r := Row{Key: s.key, Label: s.label, Display: metric.NotApplicable}
	v := s.value(c)
	if v == nil || (s.zeroNA && *v == 0) {
		return r
	}
	r.Value = v
	r.Display = s.display(*v)
	return r
}

func fixed(f func(c *model.Company) float64) func(c *model.Company) *float64 {
	return func(c *model.Company) *float64 { return model.Float(f(c)) }
}

func notReported(*model.Company) *float64 { return nil }

func millions(decimals int) func(float64) string {
	return func(v float64) string { return metric.Currency(v*metric.Millions, decimals) }
}

func dollars(decimals int) func(float64) string {
	return func(v float64) string { return metric.Currency(v, decimals) }
}

func percent(v float64) string { return metric.Percentage(v, 1) }

func multiple(v float64) string { return metric.Ratio(v, 1) }

var sectionTitles = map[Category]string{
	CategoryOperating:       "Operating Metrics",
	CategoryFinancial:       "Financial Metrics",
	CategoryCompanyProfiles: "Company Profile",
	CategoryTrading:         "Trading Metrics",
}

var sectionRows = map[Category][]rowSpec{
	CategoryOperating: {
		{key: "impliedArr", label: "Implied ARR", display: millions(1),
			value: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.ImpliedArr })},
		{key: "impliedArrGrowth", label: "Implied ARR % YoY Growth", display: percent,
			value: fixed(func(c *model.Company) float64 { return c.OperatingMetrics.LtmRevenueGrowth })},
		{key: "netNewArr", label: "Net New ARR", display: millions(1),
			value: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.NetNewArr })},
		{key: "netNewArrGrowth", label: "Net New ARR % YoY Growth", display: percent,
			value: fixed(func(c *model.Company) float64 { return c.OperatingMetrics.LtmRevenueGrowth * 0.8 })},
		{key: "ltmRevenue", label: "LTM Revenue", display: millions(1),
			value: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.LtmRevenue })},
		{key: "ltmRevenueGrowth", label: "LTM Revenue % YoY Growth", display: percent,
			value: fixed(func(c *model.Company) float64 { return c.OperatingMetrics.LtmRevenueGrowth })},
		{key: "ntmRevenue", label: "NTM Revenue", display: millions(1), zeroNA: true,
			value: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.NtmRevenue })},
		{key: "ntmRevenueGrowth", label: "NTM Revenue % YoY Growth", display: percent, zeroNA: true,
			value: fixed(func(c *model.Company) float64 { return c.OperatingMetrics.NtmRevenueGrowth })},
		{key: "operatingIncomeMargin", label: "LTM Operating Income / (Loss) Margin", display: percent,
			value: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.OperatingIncomeMargin })},
	},
	CategoryFinancial: {
		{key: "grossMargin", label: "LTM Gross Margin", display: percent,
			value: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.GrossMargin })},
		{key: "salesAndMarketingMargin", label: "LTM Sales & Marketing % of Revenue", display: percent, zeroNA: true,
			value: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.SalesAndMarketingMargin })},
		{key: "researchAndDevelopmentMargin", label: "LTM Research & Development % of Revenue", display: percent, zeroNA: true,
			value: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.ResearchAndDevelopmentMargin })},
		{key: "generalAndAdminMargin", label: "LTM General & Administrative % of Revenue", display: percent, zeroNA: true,
			value: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.GeneralAndAdminMargin })},
		{key: "freeCashFlowMargin", label: "LTM Free Cash Flow Margin", display: percent, zeroNA: true,
			value: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.FreeCashFlowMargin })},
	},
	CategoryCompanyProfiles: {
		{key: "subscriptionRevenue", label: "LTM Subscription Revenue as a % of Revenue", display: percent,
			value: notReported},
		{key: "proServicesRevenue", label: "LTM Pro. Services Revenue as a % of Revenue", display: percent,
			value: notReported},
		{key: "sbcRevenue", label: "LTM SBC as a % of LTM Revenue", display: percent,
			value: func(c *model.Company) *float64 { return c.FinancialMetrics.StockBasedCompMargin }},
	},
	CategoryTrading: {
		{key: "sharePrice", label: "Share Price", display: dollars(2), zeroNA: true,
			value: fixed(func(c *model.Company) float64 { return c.TradingData.Price })},
		// No 52-week history is stored; the high is approximated from the current price.
		{key: "sharePrice52w", label: "52-Week High (approx.)", display: dollars(2), zeroNA: true,
			value: fixed(func(c *model.Company) float64 { return c.TradingData.Price * 1.1 })},
		{key: "multipleReturnIpo", label: "Multiple Return From IPO", display: multiple, zeroNA: true,
			value: fixed(func(c *model.Company) float64 { return c.OperatingMetrics.MultipleReturnSinceIpo })},
		{key: "marketCap", label: "Market Cap", display: millions(0), zeroNA: true,
			value: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.MarketCap })},
		{key: "enterpriseValue", label: "Enterprise Value", display: millions(0), zeroNA: true,
			value: fixed(func(c *model.Company) float64 { return c.FinancialMetrics.EnterpriseValue })},
		{key: "evNtmRevenue", label: "EV / NTM Revenue", display: multiple, zeroNA: true,
			value: fixed(func(c *model.Company) float64 { return c.ValuationMetrics.EvToNtmRevenue })},
		{key: "evImpliedArr", label: "EV / Implied ARR", display: multiple, zeroNA: true,
			value: fixed(func(c *model.Company) float64 { return c.ValuationMetrics.EvToImpliedArr })},
		{key: "evAgp", label: "EV / AGP (annualized gross profit)", display: multiple, zeroNA: true,
			value: fixed(func(c *model.Company) float64 { return c.ValuationMetrics.EvToNtmGrossProfit })},
	},
}

func buildSection(cat Category, c *model.Company) Section {
	specs := sectionRows[cat]
	s := Section{Category: cat, Title: sectionTitles[cat], Rows: make([]Row, len(specs))}
	for i, spec := range specs {
		s.Rows[i] = spec.row(c)
	}
	return s
}
