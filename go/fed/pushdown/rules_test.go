/*
Copyright 2026 The FedSQL Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package pushdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fedsql.io/fedsql/go/fed/dialect"
	"fedsql.io/fedsql/go/fed/federrors"
	"fedsql.io/fedsql/go/fed/rel"
	"fedsql.io/fedsql/go/fed/rex"
	"fedsql.io/fedsql/go/fed/sqltypes"
)

var (
	partsColumns = sqltypes.RowType{
		{Name: "name", Type: sqltypes.VarChar},
		{Name: "price", Type: sqltypes.Float64},
	}
	ordersColumns = sqltypes.RowType{
		{Name: "region", Type: sqltypes.VarChar},
		{Name: "amount", Type: sqltypes.Float64},
	}
)

func priceAbove(val string) rex.Expr {
	return rex.NewCall(rex.OpGt, sqltypes.Bool,
		rex.NewColRef("price", sqltypes.Float64),
		rex.NewIntLiteral(val))
}

func udfCondition() rex.Expr {
	return rex.NewCall(rex.UserOp("my_udf"), sqltypes.Bool,
		rex.NewColRef("price", sqltypes.Float64))
}

func newTestRules(d dialect.Dialect) (*rel.External, []Rule) {
	ext := rel.NewExternal("warehouse", d)
	return ext, Rules(ext, NewExprCheckCache(StandardClassifier, 0, 0))
}

func i64(v int64) *int64 { return &v }

func TestRulesPerOperatorKind(t *testing.T) {
	_, rules := newTestRules(dialect.ANSI())
	require.Len(t, rules, 4)
	assert.IsType(t, &FilterRule{}, rules[0])
	assert.IsType(t, &ProjectRule{}, rules[1])
	assert.IsType(t, &SortRule{}, rules[2])
	assert.IsType(t, &AggregateRule{}, rules[3])
}

func TestFilterRule(t *testing.T) {
	ext, rules := newTestRules(dialect.ANSI())
	rule := rules[0]
	scan := rel.NewTableScan(rel.Local(), "parts", partsColumns, 1000)

	t.Run("standard condition matches", func(t *testing.T) {
		filter := rel.NewFilter(rel.Local(), scan, priceAbove("100"))
		matches, err := rule.Matches(filter)
		require.NoError(t, err)
		assert.True(t, matches)

		converted, err := rule.Convert(filter)
		require.NoError(t, err)
		require.NotNil(t, converted)
		assert.Same(t, ext, converted.Target().External())

		// The local child became a placeholder for the search to fill.
		newFilter := converted.(*rel.Filter)
		alt, ok := newFilter.Source.(*rel.AlternativeSet)
		require.True(t, ok)
		assert.Same(t, scan, alt.Input)

		// The original filter is untouched.
		assert.Nil(t, filter.Target().External())
		assert.Same(t, scan, filter.Source)
	})

	t.Run("udf condition declines", func(t *testing.T) {
		filter := rel.NewFilter(rel.Local(), scan, udfCondition())
		matches, err := rule.Matches(filter)
		require.NoError(t, err)
		assert.False(t, matches)
	})

	t.Run("already external does not rematch", func(t *testing.T) {
		filter := rel.NewFilter(ext, scan.Retarget(ext), priceAbove("100"))
		matches, err := rule.Matches(filter)
		require.NoError(t, err)
		assert.False(t, matches)
	})

	t.Run("wrong operator kind", func(t *testing.T) {
		matches, err := rule.Matches(scan)
		require.NoError(t, err)
		assert.False(t, matches)
	})

	t.Run("external child is reused directly", func(t *testing.T) {
		extScan := scan.Retarget(ext)
		filter := rel.NewFilter(rel.Local(), extScan, priceAbove("100"))
		converted, err := rule.Convert(filter)
		require.NoError(t, err)
		assert.Same(t, extScan, converted.(*rel.Filter).Source)
	})
}

func TestProjectRule(t *testing.T) {
	ext, rules := newTestRules(dialect.ANSI())
	rule := rules[1]
	scan := rel.NewTableScan(rel.Local(), "parts", partsColumns, 1000)

	doubled := rex.NewCall(rex.OpMul, sqltypes.Float64,
		rex.NewColRef("price", sqltypes.Float64), rex.NewIntLiteral("2"))

	t.Run("standard expressions match", func(t *testing.T) {
		project := rel.NewProject(rel.Local(), scan,
			[]rex.Expr{rex.NewColRef("name", sqltypes.VarChar), doubled},
			sqltypes.RowType{{Name: "name", Type: sqltypes.VarChar}, {Name: "doubled", Type: sqltypes.Float64}})
		matches, err := rule.Matches(project)
		require.NoError(t, err)
		assert.True(t, matches)

		converted, err := rule.Convert(project)
		require.NoError(t, err)
		assert.Same(t, ext, converted.Target().External())
	})

	t.Run("one udf expression declines the whole projection", func(t *testing.T) {
		project := rel.NewProject(rel.Local(), scan,
			[]rex.Expr{rex.NewColRef("name", sqltypes.VarChar), udfCondition()},
			sqltypes.RowType{{Name: "name", Type: sqltypes.VarChar}, {Name: "flag", Type: sqltypes.Bool}})
		matches, err := rule.Matches(project)
		require.NoError(t, err)
		assert.False(t, matches)
	})
}

func TestSortRuleOffsetFetchGating(t *testing.T) {
	scan := rel.NewTableScan(rel.Local(), "parts", partsColumns, 1000)
	collation := []rel.OrderField{{Key: rex.NewColRef("price", sqltypes.Float64), Desc: true}}

	tests := []struct {
		name     string
		dialect  dialect.Dialect
		offset   *int64
		limit    *int64
		expected bool
	}{{
		name:     "plain order by, full dialect",
		dialect:  dialect.ANSI(),
		expected: true,
	}, {
		name:     "limit, full dialect",
		dialect:  dialect.ANSI(),
		limit:    i64(10),
		expected: true,
	}, {
		name:     "offset and limit, full dialect",
		dialect:  dialect.ANSI(),
		offset:   i64(20),
		limit:    i64(10),
		expected: true,
	}, {
		name:     "plain order by, legacy dialect",
		dialect:  dialect.LegacyTSQL(),
		expected: true,
	}, {
		name:     "limit, legacy dialect",
		dialect:  dialect.LegacyTSQL(),
		limit:    i64(10),
		expected: false,
	}, {
		name:     "offset, legacy dialect",
		dialect:  dialect.LegacyTSQL(),
		offset:   i64(20),
		expected: false,
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, rules := newTestRules(tc.dialect)
			sort := rel.NewSort(rel.Local(), scan, collation, tc.offset, tc.limit)
			matches, err := rules[2].Matches(sort)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, matches)
		})
	}
}

func TestSortRuleKeys(t *testing.T) {
	ext, rules := newTestRules(dialect.ANSI())
	rule := rules[2]
	scan := rel.NewTableScan(rel.Local(), "parts", partsColumns, 1000)

	t.Run("udf key declines", func(t *testing.T) {
		sort := rel.NewSort(rel.Local(), scan, []rel.OrderField{{Key: udfCondition()}}, nil, nil)
		matches, err := rule.Matches(sort)
		require.NoError(t, err)
		assert.False(t, matches)
	})

	t.Run("convert keeps collation and bounds", func(t *testing.T) {
		collation := []rel.OrderField{{Key: rex.NewColRef("price", sqltypes.Float64), Desc: true}}
		sort := rel.NewSort(rel.Local(), scan, collation, i64(20), i64(10))
		converted, err := rule.Convert(sort)
		require.NoError(t, err)

		newSort := converted.(*rel.Sort)
		assert.Same(t, ext, newSort.Target().External())
		assert.Equal(t, collation, newSort.Collation)
		assert.Equal(t, int64(20), *newSort.Offset)
		assert.Equal(t, int64(10), *newSort.Limit)
	})
}

func TestAggregateRule(t *testing.T) {
	ext, rules := newTestRules(dialect.ANSI())
	rule := rules[3]
	scan := rel.NewTableScan(rel.Local(), "orders", ordersColumns, 1000)

	wrappedSum := rex.NewAggregateCall(rex.WrapAggFunc(rex.AggSum), false, false, []int{1}, -1, sqltypes.Float64, "total")
	canonicalSum := rex.NewAggregateCall(rex.AggSum, false, false, []int{1}, -1, sqltypes.Float64, "total")

	newAgg := func(groupSets [][]int, calls ...rex.AggregateCall) *rel.Aggregate {
		agg, err := rel.NewAggregate(rel.Local(), scan, false, groupSets[0], groupSets, calls)
		require.NoError(t, err)
		return agg
	}

	t.Run("matches on kind only", func(t *testing.T) {
		agg := newAgg([][]int{{0}}, wrappedSum)
		matches, err := rule.Matches(agg)
		require.NoError(t, err)
		assert.True(t, matches)

		matches, err = rule.Matches(scan)
		require.NoError(t, err)
		assert.False(t, matches)
	})

	t.Run("wrapped call converts and unwraps", func(t *testing.T) {
		agg := newAgg([][]int{{0}}, wrappedSum)
		converted, err := rule.Convert(agg)
		require.NoError(t, err)
		require.NotNil(t, converted)

		extAgg := converted.(*rel.Aggregate)
		assert.Same(t, ext, extAgg.Target().External())
		require.Len(t, extAgg.Calls, 1)
		assert.Same(t, rex.AggSum, extAgg.Calls[0].Func)

		// The original aggregate keeps its wrapped call.
		assert.IsType(t, &rex.WrappedAggFunc{}, agg.Calls[0].Func)
	})

	t.Run("multiple grouping sets decline", func(t *testing.T) {
		agg := newAgg([][]int{{0}, {}}, wrappedSum)
		converted, err := rule.Convert(agg)
		require.NoError(t, err)
		assert.Nil(t, converted)
	})

	t.Run("all-canonical calls are left to the generic rule", func(t *testing.T) {
		agg := newAgg([][]int{{0}}, canonicalSum)
		converted, err := rule.Convert(agg)
		require.NoError(t, err)
		assert.Nil(t, converted)
	})

	t.Run("structural rejection declines instead of failing", func(t *testing.T) {
		distinctFiltered := rex.NewAggregateCall(rex.WrapAggFunc(rex.AggCount), true, false, []int{1}, 0, sqltypes.Int64, "cnt")
		agg := newAgg([][]int{{0}}, distinctFiltered)
		converted, err := rule.Convert(agg)
		require.NoError(t, err)
		assert.Nil(t, converted)
	})
}

func TestRuleClassifierFailureIsFatal(t *testing.T) {
	ext := rel.NewExternal("warehouse", dialect.ANSI())
	failing := func(rex.Expr) (bool, error) {
		return false, federrors.New(federrors.Unknown, "classifier blew up")
	}
	rules := Rules(ext, NewExprCheckCache(failing, 0, 0))

	scan := rel.NewTableScan(rel.Local(), "parts", partsColumns, 1000)
	filter := rel.NewFilter(rel.Local(), scan, priceAbove("100"))

	_, err := rules[0].Matches(filter)
	require.Error(t, err)
	assert.Equal(t, federrors.Internal, federrors.Code(err))
}
