package store

import (
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/sells-group/comps-engine/internal/model"
)

// companyRow is the relational shape shared by the SQL sources: identity
// columns plus one JSON document per metric group.
type companyRow struct {
	ID        string
	Name      string
	Sector    string
	Financial []byte
	Trading   []byte
	Operating []byte
	Valuation []byte
}

func (r companyRow) decode() (model.Company, error) {
	c := model.Company{ID: r.ID, Name: r.Name, Sector: model.Sector(r.Sector)}
	groups := []struct {
		name string
		data []byte
		dst  any
	}{
		{"financial_metrics", r.Financial, &c.FinancialMetrics},
		{"trading_data", r.Trading, &c.TradingData},
		{"operating_metrics", r.Operating, &c.OperatingMetrics},
		{"valuation_metrics", r.Valuation, &c.ValuationMetrics},
	}
	for _, g := range groups {
		if len(g.data) == 0 {
			return model.Company{}, eris.Errorf("company %s: missing %s", r.ID, g.name)
		}
		if err := json.Unmarshal(g.data, g.dst); err != nil {
			return model.Company{}, eris.Wrapf(err, "company %s: decode %s", r.ID, g.name)
		}
	}
	return c, nil
}

func encodeRow(c model.Company) (companyRow, error) {
	r := companyRow{ID: c.ID, Name: c.Name, Sector: string(c.Sector)}
	var err error
	if r.Financial, err = json.Marshal(c.FinancialMetrics); err != nil {
		return r, eris.Wrapf(err, "company %s: encode financial_metrics", c.ID)
	}
	if r.Trading, err = json.Marshal(c.TradingData); err != nil {
		return r, eris.Wrapf(err, "company %s: encode trading_data", c.ID)
	}
	if r.Operating, err = json.Marshal(c.OperatingMetrics); err != nil {
		return r, eris.Wrapf(err, "company %s: encode operating_metrics", c.ID)
	}
	if r.Valuation, err = json.Marshal(c.ValuationMetrics); err != nil {
		return r, eris.Wrapf(err, "company %s: encode valuation_metrics", c.ID)
	}
	return r, nil
}
