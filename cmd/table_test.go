//go:build !integration

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/comps-engine/internal/comps"
	"github.com/sells-group/comps-engine/internal/model"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		raw     string
		key     string
		min     *float64
		max     *float64
		wantErr bool
	}{
		{raw: "ruleOf40=40:", key: "ruleOf40", min: model.Float(40)},
		{raw: "marketCap=:1000", key: "marketCap", max: model.Float(1000)},
		{raw: "revenueGrowth=0:25", key: "revenueGrowth", min: model.Float(0), max: model.Float(25)},
		{raw: "fcfMargin=-10.5: 5", key: "fcfMargin", min: model.Float(-10.5), max: model.Float(5)},
		{raw: "impliedArr=:", key: "impliedArr"},
		{raw: "ruleOf40", wantErr: true},
		{raw: "=1:2", wantErr: true},
		{raw: "ruleOf40=40", wantErr: true},
		{raw: "ruleOf40=abc:", wantErr: true},
		{raw: "ruleOf40=:abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			key, r, err := parseRange(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, model.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.min, r.Min)
			assert.Equal(t, tt.max, r.Max)
		})
	}
}

func TestTableFlags_Session(t *testing.T) {
	f := tableFlags{
		companies: []string{"adobe", "datadog"},
		sectors:   []string{"Software"},
		ranges:    []string{"ruleOf40=40:", "marketCap=:200000"},
		sort:      "marketCap",
		dir:       "desc",
		page:      2,
		pageSize:  5,
	}

	s, err := f.session()
	require.NoError(t, err)
	req := s.Request()

	assert.Equal(t, "marketCap", req.SortColumn)
	assert.Equal(t, model.SortDesc, req.SortDirection)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, 5, req.PageSize)
	assert.Equal(t, []string{"adobe", "datadog"}, req.Filters.Companies)
	assert.Equal(t, []model.Sector{"Software"}, req.Filters.Sectors)
	require.NotNil(t, req.Filters.RuleOf40)
	assert.Equal(t, model.Float(40), req.Filters.RuleOf40.Min)
	assert.Nil(t, req.Filters.RuleOf40.Max)
	require.NotNil(t, req.Filters.MarketCap)
	assert.Equal(t, model.Float(200000), req.Filters.MarketCap.Max)
	assert.Nil(t, req.Filters.RevenueGrowth)
}

func TestTableFlags_SessionRejectsUnknownRangeKey(t *testing.T) {
	f := tableFlags{ranges: []string{"grossMargin=50:"}, sort: "name", dir: "asc"}

	_, err := f.session()
	require.Error(t, err)
	assert.True(t, model.IsValidation(err))
	assert.Contains(t, err.Error(), "grossMargin")
}

func TestTableFlags_SessionDefaults(t *testing.T) {
	f := tableFlags{sort: "name", dir: "asc", columns: []string{"name", "marketCap", "name", "ruleOf40"}}

	s, err := f.session()
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "marketCap", "ruleOf40"}, s.Table.VisibleColumns)
	req := s.Request()
	assert.Equal(t, 1, req.Page)
	assert.Zero(t, req.PageSize, "zero page size defers to the configured default")
	assert.Equal(t, model.FilterState{}, req.Filters)
}

func TestTableFlags_SessionRejectsBadPaging(t *testing.T) {
	_, err := (&tableFlags{sort: "name", dir: "asc", page: -1}).session()
	require.Error(t, err)
	assert.True(t, model.IsValidation(err))

	_, err = (&tableFlags{sort: "name", dir: "asc", pageSize: -5}).session()
	require.Error(t, err)
	assert.True(t, model.IsValidation(err))

	_, err = (&tableFlags{sort: "name", dir: "asc", columns: []string{"bogus"}}).session()
	assert.ErrorContains(t, err, `unknown column "bogus"`)
}

func TestResolveColumns(t *testing.T) {
	defs, err := resolveColumns([]string{"name", "ntmFcfMargin", "marketCap"})
	require.NoError(t, err)
	require.Len(t, defs, 3)
	assert.Equal(t, "fcfMargin", defs[1].Key)

	_, err = resolveColumns([]string{"name", "bogus"})
	assert.ErrorContains(t, err, `unknown column "bogus"`)
}

func TestFormatCompanyTable(t *testing.T) {
	companies := []model.Company{
		{ID: "adobe", Name: "Adobe", FinancialMetrics: model.FinancialMetrics{MarketCap: 160643},
			ValuationMetrics: model.ValuationMetrics{PriceToEarnings: model.Float(45.3)}},
		{ID: "alkami", Name: "Alkami", FinancialMetrics: model.FinancialMetrics{MarketCap: 2903}},
	}
	defs, err := resolveColumns([]string{"name", "marketCap", "priceToEarnings"})
	require.NoError(t, err)

	var buf bytes.Buffer
	formatCompanyTable(&buf, companies, comps.Aggregate(companies), defs)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"COMPANY", "MARKET", "CAP", "PRICE", "/", "EARNINGS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"Adobe", "$160.6B", "45.3x"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Alkami", "$2.9B", "-"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"Mean", "$81.8B", "45.3x"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"Median", "$160.6B", "45.3x"}, strings.Fields(lines[4]))
}

func TestFormatCompanyTable_EmptyAggregates(t *testing.T) {
	defs, err := resolveColumns([]string{"name", "ruleOf40"})
	require.NoError(t, err)

	var buf bytes.Buffer
	formatCompanyTable(&buf, nil, comps.Aggregate(nil), defs)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"Mean", "-"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Median", "-"}, strings.Fields(lines[2]))
}

func TestFormatCompanyTable_NumericFirstColumnKeepsValues(t *testing.T) {
	companies := []model.Company{
		{ID: "adobe", Name: "Adobe", FinancialMetrics: model.FinancialMetrics{MarketCap: 160643}},
		{ID: "alkami", Name: "Alkami", FinancialMetrics: model.FinancialMetrics{MarketCap: 2903}},
	}
	defs, err := resolveColumns([]string{"marketCap", "name"})
	require.NoError(t, err)

	var buf bytes.Buffer
	formatCompanyTable(&buf, companies, comps.Aggregate(companies), defs)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"MARKET", "CAP", "COMPANY"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"$160.6B", "Adobe"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Mean", "$81.8B"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"Median", "$160.6B"}, strings.Fields(lines[4]))
	// Aggregates stay under their own header.
	assert.Equal(t, strings.Index(lines[0], "MARKET"), strings.Index(lines[3], "$81.8B"))
	assert.Equal(t, strings.Index(lines[0], "MARKET"), strings.Index(lines[1], "$160.6B"))
}
