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
	"fmt"

	"fedsql.io/fedsql/go/fed/federrors"
	"fedsql.io/fedsql/go/fed/rel"
	"fedsql.io/fedsql/go/fed/rex"
	"fedsql.io/fedsql/go/fed/sqltypes"
)

type (
	// queryBuilder accumulates exactly one SQL statement while walking a
	// pushed operator tree bottom-up. Operators fold into the current
	// statement when SQL semantics allow; when they cannot (anything above
	// a row limit, most operators over an aggregation or a computed select
	// list), the current statement moves into a derived table and building
	// continues on a fresh statement around it.
	queryBuilder struct {
		out      *rel.External
		stmt     *selectStatement
		aliasSeq int
	}

	selectStatement struct {
		selectExprs []selectExpr
		from        fromClause
		where       []rex.Expr
		groupBy     []rex.Expr
		having      []rex.Expr
		orderBy     []orderItem
		offset      *int64
		limit       *int64

		// aggregated marks a statement whose GROUP BY has been set;
		// predicates added afterwards belong in HAVING.
		aggregated bool
		// computed marks a select list that is not a plain passthrough of
		// input columns, so later predicates cannot reference it from a
		// WHERE clause in the same statement.
		computed bool
	}

	selectExpr struct {
		expr  rex.Expr
		agg   *aggItem
		alias string
	}

	// aggItem is an aggregate call with its column ordinals already
	// resolved to references into the statement below.
	aggItem struct {
		call   rex.AggregateCall
		args   []rex.Expr
		filter rex.Expr
	}

	orderItem struct {
		key  rex.Expr
		desc bool
	}

	fromClause struct {
		table   string
		derived *selectStatement
		alias   string
	}
)

// buildQuery recursively folds the operator tree into the builder's
// statement, children first.
func buildQuery(op rel.Operator, qb *queryBuilder) error {
	switch op := op.(type) {
	case *rel.TableScan:
		buildTable(op, qb)
	case *rel.Filter:
		return buildFilter(op, qb)
	case *rel.Project:
		return buildProjection(op, qb)
	case *rel.Aggregate:
		return buildAggregation(op, qb)
	case *rel.Sort:
		return buildOrdering(op, qb)
	default:
		return federrors.Errorf(federrors.Internal, "unknown operator to convert to SQL: %T", op)
	}
	return nil
}

func buildTable(op *rel.TableScan, qb *queryBuilder) {
	qb.stmt = &selectStatement{from: fromClause{table: op.Table}}
	for _, field := range op.Columns {
		qb.addProjection(rex.NewColRef(field.Name, field.Type), field.Name)
	}
}

func buildFilter(op *rel.Filter, qb *queryBuilder) error {
	if err := buildQuery(op.Source, qb); err != nil {
		return err
	}
	switch {
	case qb.stmt.offset != nil || qb.stmt.limit != nil:
		qb.wrapInDerived(op.Source.RowType())
	case qb.stmt.aggregated:
		// A condition over group keys only can stay in this statement as a
		// HAVING clause. Anything touching an aggregate output column has
		// to see the aggregation as a derived table.
		if !referencesOnlyGroupKeys(op.Condition, qb.stmt) {
			qb.wrapInDerived(op.Source.RowType())
		}
	case qb.stmt.computed:
		qb.wrapInDerived(op.Source.RowType())
	}
	qb.addPredicate(op.Condition)
	return nil
}

func referencesOnlyGroupKeys(cond rex.Expr, stmt *selectStatement) bool {
	keys := make(map[string]bool, len(stmt.groupBy))
	for _, g := range stmt.groupBy {
		if col, ok := g.(*rex.ColRef); ok {
			keys[col.Name] = true
		}
	}
	onlyKeys := true
	rex.Walk(cond, func(e rex.Expr) bool {
		if col, ok := e.(*rex.ColRef); ok && !keys[col.Name] {
			onlyKeys = false
			return false
		}
		return true
	})
	return onlyKeys
}

func buildProjection(op *rel.Project, qb *queryBuilder) error {
	if err := buildQuery(op.Source, qb); err != nil {
		return err
	}
	// A computed select list is not addressable from the same statement,
	// so a projection over it needs to see it as a derived table.
	if qb.stmt.aggregated || qb.stmt.computed {
		qb.wrapInDerived(op.Source.RowType())
	}
	qb.clearProjections()
	for i, expr := range op.Exprs {
		qb.addProjection(expr, op.Cols[i].Name)
	}
	return nil
}

func buildAggregation(op *rel.Aggregate, qb *queryBuilder) error {
	if err := buildQuery(op.Source, qb); err != nil {
		return err
	}
	if qb.stmt.aggregated || qb.stmt.computed || len(qb.stmt.orderBy) > 0 || qb.stmt.offset != nil || qb.stmt.limit != nil {
		qb.wrapInDerived(op.Source.RowType())
	}

	in := op.Source.RowType()
	qb.clearProjections()
	for _, col := range op.GroupSet {
		key := rex.NewColRef(in[col].Name, in[col].Type)
		qb.stmt.groupBy = append(qb.stmt.groupBy, key)
		qb.addProjection(key, in[col].Name)
	}
	for _, call := range op.Calls {
		item := &aggItem{call: call}
		for _, arg := range call.Args {
			item.args = append(item.args, rex.NewColRef(in[arg].Name, in[arg].Type))
		}
		if call.FilterArg >= 0 {
			item.filter = rex.NewColRef(in[call.FilterArg].Name, in[call.FilterArg].Type)
		}
		qb.stmt.selectExprs = append(qb.stmt.selectExprs, selectExpr{agg: item, alias: call.Name})
	}
	qb.stmt.aggregated = true
	qb.stmt.computed = true
	return nil
}

func buildOrdering(op *rel.Sort, qb *queryBuilder) error {
	if err := buildQuery(op.Source, qb); err != nil {
		return err
	}
	if qb.stmt.offset != nil || qb.stmt.limit != nil {
		qb.wrapInDerived(op.Source.RowType())
	}
	for _, field := range op.Collation {
		qb.stmt.orderBy = append(qb.stmt.orderBy, orderItem{key: field.Key, desc: field.Desc})
	}
	qb.stmt.offset = op.Offset
	qb.stmt.limit = op.Limit
	return nil
}

func (qb *queryBuilder) addPredicate(expr rex.Expr) {
	for _, conjunct := range rex.SplitAndExpression(nil, expr) {
		if qb.stmt.aggregated {
			qb.stmt.having = append(qb.stmt.having, conjunct)
		} else {
			qb.stmt.where = append(qb.stmt.where, conjunct)
		}
	}
}

func (qb *queryBuilder) addProjection(expr rex.Expr, alias string) {
	qb.stmt.selectExprs = append(qb.stmt.selectExprs, selectExpr{expr: expr, alias: alias})
	if !isIdentityProjection(expr, alias) {
		qb.stmt.computed = true
	}
}

func (qb *queryBuilder) clearProjections() {
	qb.stmt.selectExprs = nil
	qb.stmt.computed = false
}

// wrapInDerived moves the current statement into the FROM clause of a new
// one that passes every column of rt through unchanged.
func (qb *queryBuilder) wrapInDerived(rt sqltypes.RowType) {
	inner := qb.stmt
	alias := fmt.Sprintf("t%d", qb.aliasSeq)
	qb.aliasSeq++

	sel := &selectStatement{from: fromClause{derived: inner, alias: alias}}
	qb.stmt = sel
	for _, field := range rt {
		qb.addProjection(rex.NewColRef(field.Name, field.Type), field.Name)
	}
}

func isIdentityProjection(expr rex.Expr, alias string) bool {
	col, ok := expr.(*rex.ColRef)
	return ok && col.Name == alias
}
