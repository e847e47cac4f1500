// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchframe

import (
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
)

// Summarize groups t by the by columns and returns one row per group
// with the group's values of by, followed by these columns computed
// over numeric column metric:
//
//	count            number of rows
//	mean <metric>    arithmetic mean
//	median <metric>  50th percentile
//	stddev <metric>  sample standard deviation
//	cov <metric>     coefficient of variation, stddev / mean
//
// Other columns that are constant within every group are retained.
// Groups appear in order of first appearance.
func Summarize(t *table.Table, metric string, by ...string) (*table.Table, error) {
	if err := Require(t, by...); err != nil {
		return nil, err
	}
	xs, err := Floats(t, metric)
	if err != nil {
		return nil, err
	}
	// Aggregators keep the input column type, so summarize floats.
	t = table.NewBuilder(t).Add(metric, xs).Done()

	agg := ggstat.Agg(by...)(
		ggstat.AggCount("count"),
		ggstat.AggMean(metric),
		ggstat.AggQuantile("median", 0.5, metric),
		aggSpread(metric),
	)
	return table.Flatten(agg.F(t)), nil
}

// aggSpread computes the standard deviation and coefficient of
// variation of col in each group.
func aggSpread(col string) ggstat.Aggregator {
	return func(input table.Grouping, b *table.Builder) {
		sds := make([]float64, 0, len(input.Tables()))
		covs := make([]float64, 0, len(input.Tables()))
		for _, gid := range input.Tables() {
			s := stats.Sample{Xs: input.Table(gid).MustColumn(col).([]float64)}
			sd := s.StdDev()
			sds = append(sds, sd)
			covs = append(covs, sd/s.Mean())
		}
		b.Add("stddev "+col, sds)
		b.Add("cov "+col, covs)
	}
}
