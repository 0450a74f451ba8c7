package model

// Sector is the industry bucket a company is listed under in the index.
type Sector string

// Company is one member of the index with its current-period metric snapshot.
// Percentages are plain numbers meaning "percent" (12 = 12%), never fractions.
type Company struct {
	ID               string           `json:"id" yaml:"id"`
	Name             string           `json:"name" yaml:"name"`
	Sector           Sector           `json:"sector" yaml:"sector"`
	FinancialMetrics FinancialMetrics `json:"financialMetrics" yaml:"financialMetrics"`
	TradingData      TradingData      `json:"tradingData" yaml:"tradingData"`
	OperatingMetrics OperatingMetrics `json:"operatingMetrics" yaml:"operatingMetrics"`
	ValuationMetrics ValuationMetrics `json:"valuationMetrics" yaml:"valuationMetrics"`
}

// FinancialMetrics holds scale figures ($ millions) and LTM margins (%).
type FinancialMetrics struct {
	MarketCap           float64 `json:"marketCap" yaml:"marketCap"`
	EnterpriseValue     float64 `json:"enterpriseValue" yaml:"enterpriseValue"`
	ImpliedArr          float64 `json:"impliedArr" yaml:"impliedArr"`
	NtmRevenue          float64 `json:"ntmRevenue" yaml:"ntmRevenue"`
	NtmFcf              float64 `json:"ntmFcf" yaml:"ntmFcf"`
	NtmGrossProfit      float64 `json:"ntmGrossProfit" yaml:"ntmGrossProfit"`
	LtmRevenue          float64 `json:"ltmRevenue" yaml:"ltmRevenue"`
	NetNewArr           float64 `json:"netNewArr" yaml:"netNewArr"`
	GrowthAdjEvToNtmRev float64 `json:"growthAdjEvToNtmRev" yaml:"growthAdjEvToNtmRev"`

	GrossMargin                  float64  `json:"grossMargin" yaml:"grossMargin"`
	SalesAndMarketingMargin      float64  `json:"salesAndMarketingMargin" yaml:"salesAndMarketingMargin"`
	ResearchAndDevelopmentMargin float64  `json:"researchAndDevelopmentMargin" yaml:"researchAndDevelopmentMargin"`
	GeneralAndAdminMargin        float64  `json:"generalAndAdminMargin" yaml:"generalAndAdminMargin"`
	OperatingExpensesMargin      float64  `json:"operatingExpensesMargin" yaml:"operatingExpensesMargin"`
	OperatingIncomeMargin        float64  `json:"operatingIncomeMargin" yaml:"operatingIncomeMargin"`
	FreeCashFlowMargin           float64  `json:"freeCashFlowMargin" yaml:"freeCashFlowMargin"`
	StockBasedCompMargin         *float64 `json:"stockBasedCompMargin" yaml:"stockBasedCompMargin,omitempty"`
}

// TradingData holds share price, price moves (%) and volumes.
type TradingData struct {
	Price           float64 `json:"price" yaml:"price"`
	PriceChange3Mo  float64 `json:"priceChange3Mo" yaml:"priceChange3Mo"`
	PriceChange12Mo float64 `json:"priceChange12Mo" yaml:"priceChange12Mo"`
	Volume          float64 `json:"volume" yaml:"volume"`
	AvgVolume       float64 `json:"avgVolume" yaml:"avgVolume"`
}

// OperatingMetrics holds efficiency and growth ratios.
type OperatingMetrics struct {
	RuleOf40        float64 `json:"ruleOf40" yaml:"ruleOf40"`
	RevenueGrowth   float64 `json:"revenueGrowth" yaml:"revenueGrowth"`
	GrossMargin     float64 `json:"grossMargin" yaml:"grossMargin"`
	OperatingMargin float64 `json:"operatingMargin" yaml:"operatingMargin"`
	FcfMargin       float64 `json:"fcfMargin" yaml:"fcfMargin"`
	CustomerCount   float64 `json:"customerCount" yaml:"customerCount"`
	Arpu            float64 `json:"arpu" yaml:"arpu"`

	MagicNumber            *float64 `json:"magicNumber" yaml:"magicNumber,omitempty"`
	PaybackPeriod          *float64 `json:"paybackPeriod" yaml:"paybackPeriod,omitempty"`
	ImpliedAverageAcv      float64  `json:"impliedAverageAcv" yaml:"impliedAverageAcv"`
	ImpliedArrPerFte       float64  `json:"impliedArrPerFte" yaml:"impliedArrPerFte"`
	AnnualizedOpexPerFte   float64  `json:"annualizedOpexPerFte" yaml:"annualizedOpexPerFte"`
	NetDollarRetention     *float64 `json:"netDollarRetention" yaml:"netDollarRetention,omitempty"`
	MultipleReturnSinceIpo float64  `json:"multipleReturnSinceIpo" yaml:"multipleReturnSinceIpo"`

	LtmRevenueGrowth float64 `json:"ltmRevenueGrowth" yaml:"ltmRevenueGrowth"`
	NtmRevenueGrowth float64 `json:"ntmRevenueGrowth" yaml:"ntmRevenueGrowth"`
}

// ValuationMetrics holds EV and price multiples.
type ValuationMetrics struct {
	EvToImpliedArr     float64  `json:"evToImpliedArr" yaml:"evToImpliedArr"`
	EvToNtmRevenue     float64  `json:"evToNtmRevenue" yaml:"evToNtmRevenue"`
	EvToNtmGrossProfit float64  `json:"evToNtmGrossProfit" yaml:"evToNtmGrossProfit"`
	EvToNtmFcf         *float64 `json:"evToNtmFcf" yaml:"evToNtmFcf,omitempty"`
	PriceToBook        *float64 `json:"priceToBook" yaml:"priceToBook,omitempty"`
	PriceToEarnings    *float64 `json:"priceToEarnings" yaml:"priceToEarnings,omitempty"`
}

// CompanyRef is the id/name pair used by selectors and dropdowns.
type CompanyRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Sector Sector `json:"sector,omitempty"`
}

// Ref returns the selector entry for c.
func (c *Company) Ref() CompanyRef {
	return CompanyRef{ID: c.ID, Name: c.Name}
}

// Float returns a pointer to v. Handy for nullable metric literals.
func Float(v float64) *float64 {
	return &v
}
