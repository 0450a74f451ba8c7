package comps

import (
	"slices"

	"github.com/sells-group/comps-engine/internal/metric"
	"github.com/sells-group/comps-engine/internal/model"
)

// Aggregate computes the mean and median of every numeric metric over
// companies. Null values are skipped per metric. A metric with no values (for
// example when companies is empty) maps to nil in both Mean and Median.
//
// The median is the element at index floor(n/2) of the ascending values, so
// even-sized sets report the upper of the two middle values.
func Aggregate(companies []model.Company) model.AggregateResult {
	defs := metric.Numeric()
	res := model.AggregateResult{
		Count:  len(companies),
		Mean:   make(map[string]*float64, len(defs)),
		Median: make(map[string]*float64, len(defs)),
	}

	values := make([]float64, 0, len(companies))
	for _, def := range defs {
		values = values[:0]
		for i := range companies {
			if v, ok := def.Value(&companies[i]); ok {
				values = append(values, v)
			}
		}
		res.Mean[def.Key] = mean(values)
		res.Median[def.Key] = median(values)
	}
	return res
}

func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))
	return &m
}

func median(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	m := sorted[len(sorted)/2]
	return &m
}
