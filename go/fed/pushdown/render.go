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
	"strings"

	"fedsql.io/fedsql/go/fed/dialect"
	"fedsql.io/fedsql/go/fed/federrors"
	"fedsql.io/fedsql/go/fed/rex"
)

// atomPrec is the precedence of expressions that never need parentheses:
// literals, column references, function calls and casts.
const atomPrec = 100

// serializeSelect renders the statement as compact single-line SQL: the
// select list on one line, identifiers quoted only when the dialect
// requires it, no indentation.
func serializeSelect(sb *strings.Builder, stmt *selectStatement, d dialect.Dialect) error {
	sb.WriteString("SELECT ")
	for i, se := range stmt.selectExprs {
		if i > 0 {
			sb.WriteString(", ")
		}
		if err := writeSelectExpr(sb, se, d); err != nil {
			return err
		}
	}

	sb.WriteString(" FROM ")
	if stmt.from.derived != nil {
		sb.WriteByte('(')
		if err := serializeSelect(sb, stmt.from.derived, d); err != nil {
			return err
		}
		sb.WriteString(") AS ")
		d.WriteIdentifier(sb, stmt.from.alias)
	} else {
		d.WriteIdentifier(sb, stmt.from.table)
	}

	if err := writePredicates(sb, " WHERE ", stmt.where, d); err != nil {
		return err
	}

	if len(stmt.groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		for i, key := range stmt.groupBy {
			if i > 0 {
				sb.WriteString(", ")
			}
			if err := writeExpr(sb, key, d, 0); err != nil {
				return err
			}
		}
	}

	if err := writePredicates(sb, " HAVING ", stmt.having, d); err != nil {
		return err
	}

	if len(stmt.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		for i, item := range stmt.orderBy {
			if i > 0 {
				sb.WriteString(", ")
			}
			if err := writeExpr(sb, item.key, d, 0); err != nil {
				return err
			}
			if item.desc {
				sb.WriteString(" DESC")
			}
		}
	}

	if stmt.offset != nil || stmt.limit != nil {
		if !d.SupportsOffsetFetch() {
			return federrors.Errorf(federrors.InvalidArgument, "dialect %s cannot render OFFSET/FETCH", d.Name())
		}
		d.WriteOffsetFetch(sb, stmt.offset, stmt.limit)
	}
	return nil
}

func writeSelectExpr(sb *strings.Builder, se selectExpr, d dialect.Dialect) error {
	if se.agg != nil {
		if err := writeAggCall(sb, se.agg, d); err != nil {
			return err
		}
		sb.WriteString(" AS ")
		d.WriteIdentifier(sb, se.alias)
		return nil
	}

	if err := writeExpr(sb, se.expr, d, 0); err != nil {
		return err
	}
	if se.alias != "" && !isIdentityProjection(se.expr, se.alias) {
		sb.WriteString(" AS ")
		d.WriteIdentifier(sb, se.alias)
	}
	return nil
}

func writePredicates(sb *strings.Builder, keyword string, predicates []rex.Expr, d dialect.Dialect) error {
	for i, predicate := range predicates {
		if i == 0 {
			sb.WriteString(keyword)
		} else {
			sb.WriteString(" AND ")
		}
		// Conjuncts bind at AND level, so each one renders with AND's
		// precedence as context.
		if err := writeExpr(sb, predicate, d, rex.OpAnd.Prec); err != nil {
			return err
		}
	}
	return nil
}

// writeExpr renders an expression, adding parentheses when the expression
// binds more loosely than its context requires.
func writeExpr(sb *strings.Builder, expr rex.Expr, d dialect.Dialect, contextPrec int) error {
	if exprPrec(expr) < contextPrec {
		sb.WriteByte('(')
		if err := writeExpr(sb, expr, d, 0); err != nil {
			return err
		}
		sb.WriteByte(')')
		return nil
	}

	switch e := expr.(type) {
	case *rex.Literal:
		return d.WriteLiteral(sb, e.Typ, e.Val)
	case *rex.ColRef:
		d.WriteIdentifier(sb, e.Name)
		return nil
	case *rex.Cast:
		sb.WriteString("CAST(")
		if err := writeExpr(sb, e.Input, d, 0); err != nil {
			return err
		}
		sb.WriteString(" AS ")
		sb.WriteString(e.Typ.String())
		sb.WriteByte(')')
		return nil
	case *rex.Call:
		return writeCall(sb, e, d)
	default:
		return federrors.Errorf(federrors.Internal, "unknown expression to render: %T", expr)
	}
}

func writeCall(sb *strings.Builder, call *rex.Call, d dialect.Dialect) error {
	op := call.Op
	switch op.Syntax {
	case rex.SyntaxInfix:
		if len(call.Args) != 2 {
			return federrors.Errorf(federrors.Internal, "infix operator %s with %d arguments", op.Name, len(call.Args))
		}
		if err := writeExpr(sb, call.Args[0], d, op.Prec); err != nil {
			return err
		}
		sb.WriteByte(' ')
		sb.WriteString(op.Name)
		sb.WriteByte(' ')
		// The right operand needs parentheses even at equal precedence:
		// a - (b - c) must not flatten.
		return writeExpr(sb, call.Args[1], d, op.Prec+1)
	case rex.SyntaxPrefix:
		if len(call.Args) != 1 {
			return federrors.Errorf(federrors.Internal, "prefix operator %s with %d arguments", op.Name, len(call.Args))
		}
		sb.WriteString(op.Name)
		sb.WriteByte(' ')
		return writeExpr(sb, call.Args[0], d, op.Prec)
	case rex.SyntaxPostfix:
		if len(call.Args) != 1 {
			return federrors.Errorf(federrors.Internal, "postfix operator %s with %d arguments", op.Name, len(call.Args))
		}
		if err := writeExpr(sb, call.Args[0], d, op.Prec+1); err != nil {
			return err
		}
		sb.WriteByte(' ')
		sb.WriteString(op.Name)
		return nil
	default:
		name, ok := d.FuncName(op.Name)
		if !ok {
			return federrors.Errorf(federrors.InvalidArgument, "dialect %s has no rendering for function %s", d.Name(), op.Name)
		}
		sb.WriteString(name)
		sb.WriteByte('(')
		for i, arg := range call.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			if err := writeExpr(sb, arg, d, 0); err != nil {
				return err
			}
		}
		sb.WriteByte(')')
		return nil
	}
}

func writeAggCall(sb *strings.Builder, item *aggItem, d dialect.Dialect) error {
	call := item.call
	if _, wrapped := call.Func.(*rex.WrappedAggFunc); wrapped {
		return federrors.Errorf(federrors.Internal, "wrapped aggregate call %s reached the compiler", call.Name)
	}

	name := call.Func.Name()
	distinct := call.Distinct
	if call.Approximate && call.Distinct && name == "COUNT" {
		if approx, ok := d.FuncName("APPROX_COUNT_DISTINCT"); ok {
			name = approx
			distinct = false
		} else {
			// No approximate form in this dialect; the exact answer is a
			// valid one.
			name, ok = d.FuncName(name)
			if !ok {
				return federrors.Errorf(federrors.InvalidArgument, "dialect %s has no aggregate function COUNT", d.Name())
			}
		}
	} else {
		mapped, ok := d.FuncName(name)
		if !ok {
			return federrors.Errorf(federrors.InvalidArgument, "dialect %s has no aggregate function %s", d.Name(), name)
		}
		name = mapped
	}

	sb.WriteString(name)
	sb.WriteByte('(')
	if distinct {
		sb.WriteString("DISTINCT ")
	}
	if len(item.args) == 0 {
		sb.WriteByte('*')
	}
	for i, arg := range item.args {
		if i > 0 {
			sb.WriteString(", ")
		}
		if err := writeExpr(sb, arg, d, 0); err != nil {
			return err
		}
	}
	sb.WriteByte(')')

	if item.filter != nil {
		if !d.SupportsAggFilter() {
			return federrors.Errorf(federrors.InvalidArgument, "dialect %s cannot render a FILTER clause", d.Name())
		}
		sb.WriteString(" FILTER (WHERE ")
		if err := writeExpr(sb, item.filter, d, 0); err != nil {
			return err
		}
		sb.WriteByte(')')
	}
	return nil
}

func exprPrec(expr rex.Expr) int {
	call, ok := expr.(*rex.Call)
	if !ok {
		return atomPrec
	}
	switch call.Op.Syntax {
	case rex.SyntaxInfix, rex.SyntaxPrefix, rex.SyntaxPostfix:
		return call.Op.Prec
	}
	return atomPrec
}
