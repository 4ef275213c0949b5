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

package rel

import (
	"fmt"
	"strings"

	"fedsql.io/fedsql/go/fed/federrors"
	"fedsql.io/fedsql/go/fed/rex"
	"fedsql.io/fedsql/go/fed/sqltypes"
)

type (
	// TableScan reads a table of the bound target.
	TableScan struct {
		Table   string
		Columns sqltypes.RowType
		// BaseRows is the table's estimated row count, from source
		// statistics or a default.
		BaseRows float64

		target Target
	}

	// Filter keeps the input rows satisfying Condition.
	Filter struct {
		Source    Operator
		Condition rex.Expr

		target Target
	}

	// Project computes one output column per expression. Cols names and
	// types the output; it has the same length as Exprs.
	Project struct {
		Source Operator
		Exprs  []rex.Expr
		Cols   sqltypes.RowType

		target Target
	}

	// Aggregate groups the input by the columns in GroupSet and computes
	// Calls over each group.
	Aggregate struct {
		Source Operator
		// Indicator adds GROUPING indicator columns to the output.
		Indicator bool
		// GroupSet holds input column ordinals of the grouping keys.
		GroupSet []int
		// GroupSets lists every grouping combination. Plain GROUP BY has
		// exactly one entry, equal to GroupSet.
		GroupSets [][]int
		Calls     []rex.AggregateCall

		target Target
	}

	// OrderField is one sort key: an expression over the input row and a
	// direction.
	OrderField struct {
		Key  rex.Expr
		Desc bool
	}

	// Sort orders the input by Collation and optionally skips Offset rows
	// and keeps at most Limit rows.
	Sort struct {
		Source    Operator
		Collation []OrderField
		Offset    *int64
		Limit     *int64

		target Target
	}
)

// NewTableScan returns a scan of the given table on the given target.
func NewTableScan(target Target, table string, columns sqltypes.RowType, baseRows float64) *TableScan {
	return &TableScan{Table: table, Columns: columns, BaseRows: baseRows, target: target}
}

func (t *TableScan) Inputs() []Operator { return nil }

func (t *TableScan) Clone(inputs []Operator) Operator {
	checkSize(inputs, 0)
	clone := *t
	return &clone
}

func (t *TableScan) RowType() sqltypes.RowType { return t.Columns }
func (t *TableScan) Target() Target            { return t.target }
func (t *TableScan) ShortDescription() string  { return t.Table }

// Retarget returns a copy of the scan bound to the given target.
func (t *TableScan) Retarget(target Target) *TableScan {
	clone := *t
	clone.target = target
	return &clone
}

// NewFilter returns a Filter on the given target.
func NewFilter(target Target, source Operator, condition rex.Expr) *Filter {
	return &Filter{Source: source, Condition: condition, target: target}
}

func (f *Filter) Inputs() []Operator { return []Operator{f.Source} }

func (f *Filter) Clone(inputs []Operator) Operator {
	checkSize(inputs, 1)
	clone := *f
	clone.Source = inputs[0]
	return &clone
}

func (f *Filter) RowType() sqltypes.RowType { return f.Source.RowType() }
func (f *Filter) Target() Target            { return f.target }
func (f *Filter) ShortDescription() string  { return f.Condition.String() }

// NewProject returns a Project on the given target.
func NewProject(target Target, source Operator, exprs []rex.Expr, cols sqltypes.RowType) *Project {
	if len(exprs) != len(cols) {
		panic(fmt.Sprintf("BUG: %d projections for %d columns", len(exprs), len(cols)))
	}
	return &Project{Source: source, Exprs: exprs, Cols: cols, target: target}
}

func (p *Project) Inputs() []Operator { return []Operator{p.Source} }

func (p *Project) Clone(inputs []Operator) Operator {
	checkSize(inputs, 1)
	clone := *p
	clone.Source = inputs[0]
	return &clone
}

func (p *Project) RowType() sqltypes.RowType { return p.Cols }
func (p *Project) Target() Target            { return p.target }

func (p *Project) ShortDescription() string {
	return strings.Join(p.Cols.Names(), ", ")
}

// NewAggregate returns an Aggregate on the given target.
//
// For external targets, shapes the external sources cannot express are
// rejected: GROUPING indicator output, and aggregate calls that combine
// DISTINCT with a filter argument. This is the structural construction
// failure the rules treat as a decline.
func NewAggregate(target Target, source Operator, indicator bool, groupSet []int, groupSets [][]int, calls []rex.AggregateCall) (*Aggregate, error) {
	if target.External() != nil {
		if indicator {
			return nil, federrors.New(federrors.Unimplemented, "GROUPING indicator output is not supported on external targets")
		}
		for _, call := range calls {
			if call.Distinct && call.FilterArg >= 0 {
				return nil, federrors.Errorf(federrors.Unimplemented, "aggregate call %s combines DISTINCT with a filter, which external targets cannot express", call.Name)
			}
		}
	}
	return &Aggregate{
		Source:    source,
		Indicator: indicator,
		GroupSet:  groupSet,
		GroupSets: groupSets,
		Calls:     calls,
		target:    target,
	}, nil
}

func (a *Aggregate) Inputs() []Operator { return []Operator{a.Source} }

func (a *Aggregate) Clone(inputs []Operator) Operator {
	checkSize(inputs, 1)
	clone := *a
	clone.Source = inputs[0]
	return &clone
}

func (a *Aggregate) RowType() sqltypes.RowType {
	in := a.Source.RowType()
	rt := make(sqltypes.RowType, 0, len(a.GroupSet)+len(a.Calls))
	for _, col := range a.GroupSet {
		rt = append(rt, in[col])
	}
	for _, call := range a.Calls {
		rt = append(rt, sqltypes.Field{Name: call.Name, Type: call.Type})
	}
	return rt
}

func (a *Aggregate) Target() Target { return a.target }

func (a *Aggregate) ShortDescription() string {
	names := make([]string, len(a.Calls))
	for i, call := range a.Calls {
		names[i] = call.Name
	}
	return fmt.Sprintf("group(%d) %s", len(a.GroupSet), strings.Join(names, ", "))
}

// NewSort returns a Sort on the given target.
func NewSort(target Target, source Operator, collation []OrderField, offset, limit *int64) *Sort {
	return &Sort{Source: source, Collation: collation, Offset: offset, Limit: limit, target: target}
}

func (s *Sort) Inputs() []Operator { return []Operator{s.Source} }

func (s *Sort) Clone(inputs []Operator) Operator {
	checkSize(inputs, 1)
	clone := *s
	clone.Source = inputs[0]
	return &clone
}

func (s *Sort) RowType() sqltypes.RowType { return s.Source.RowType() }
func (s *Sort) Target() Target            { return s.target }

func (s *Sort) ShortDescription() string {
	keys := make([]string, len(s.Collation))
	for i, of := range s.Collation {
		keys[i] = of.Key.String()
		if of.Desc {
			keys[i] += " DESC"
		}
	}
	return strings.Join(keys, ", ")
}
