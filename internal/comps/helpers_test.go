package comps

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/comps-engine/internal/model"
	"github.com/sells-group/comps-engine/internal/store"
)

func company(id, name string, sector model.Sector, mods ...func(*model.Company)) model.Company {
	c := model.Company{ID: id, Name: name, Sector: sector}
	for _, m := range mods {
		m(&c)
	}
	return c
}

func ruleOf40(v float64) func(*model.Company) {
	return func(c *model.Company) { c.OperatingMetrics.RuleOf40 = v }
}

func revenueGrowth(v float64) func(*model.Company) {
	return func(c *model.Company) { c.OperatingMetrics.RevenueGrowth = v }
}

func marketCap(v float64) func(*model.Company) {
	return func(c *model.Company) { c.FinancialMetrics.MarketCap = v }
}

func evToNtmRevenue(v float64) func(*model.Company) {
	return func(c *model.Company) { c.ValuationMetrics.EvToNtmRevenue = v }
}

func priceToEarnings(v *float64) func(*model.Company) {
	return func(c *model.Company) { c.ValuationMetrics.PriceToEarnings = v }
}

func ids(companies []model.Company) []string {
	out := make([]string, len(companies))
	for i, c := range companies {
		out[i] = c.ID
	}
	return out
}

// sample is a small mixed-sector roster with one null price/earnings value.
func sample() []model.Company {
	return []model.Company{
		company("adobe", "Adobe", "Software", ruleOf40(35), revenueGrowth(12), marketCap(160643), evToNtmRevenue(7.1), priceToEarnings(model.Float(45.3))),
		company("alkami", "Alkami", "Fintech", ruleOf40(25), revenueGrowth(24), marketCap(2903), evToNtmRevenue(8.2), priceToEarnings(nil)),
		company("datadog", "Datadog", "Software", ruleOf40(58), revenueGrowth(26), marketCap(42000), evToNtmRevenue(15), priceToEarnings(model.Float(240))),
		company("zscaler", "Zscaler", "Security", ruleOf40(42), revenueGrowth(35), marketCap(30000), evToNtmRevenue(12.5), priceToEarnings(model.Float(0))),
	}
}

func newTestEngine(t *testing.T, companies []model.Company) *Engine {
	t.Helper()
	snap, err := store.NewSnapshot(companies)
	require.NoError(t, err)
	return NewEngine(snap, DefaultQueryConfig)
}
