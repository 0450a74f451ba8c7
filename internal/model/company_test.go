package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyRef(t *testing.T) {
	t.Parallel()

	c := Company{ID: "adobe", Name: "Adobe", Sector: "Software"}
	assert.Equal(t, CompanyRef{ID: "adobe", Name: "Adobe"}, c.Ref())
}

func TestCompany_NullableMetricsEncodeAsNull(t *testing.T) {
	t.Parallel()

	c := Company{
		ID:               "alkami",
		ValuationMetrics: ValuationMetrics{EvToNtmRevenue: 8.2, PriceToBook: Float(4.1)},
	}
	data, err := json.Marshal(c.ValuationMetrics)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"evToImpliedArr": 0,
		"evToNtmRevenue": 8.2,
		"evToNtmGrossProfit": 0,
		"evToNtmFcf": null,
		"priceToBook": 4.1,
		"priceToEarnings": null
	}`, string(data))
}
