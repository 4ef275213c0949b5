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

// Package rex models the scalar expressions that appear inside relational
// operators: filter conditions, projections and sort keys.
//
// Expression trees are immutable once built. Planner code compares them by
// identity, not by structure - the same *Call or *Literal instance is reused
// across planning rules within one session, which is what makes identity a
// usable cache key.
package rex

import (
	"fmt"
	"strings"

	"fedsql.io/fedsql/go/fed/sqltypes"
)

// Expr is a node in a scalar expression tree.
//
// All implementations are pointer types, so comparing two Expr values with
// == compares identity.
type Expr interface {
	// Type returns the result type of evaluating the expression.
	Type() sqltypes.Type
	// String returns a dialect-neutral rendering, for logs and explain output.
	String() string
}

// Literal is a constant value.
type Literal struct {
	Typ sqltypes.Type
	// Val is the canonical string form of the value, e.g. "100" or "hello".
	Val string
}

// NewLiteral returns a literal of the given type.
func NewLiteral(typ sqltypes.Type, val string) *Literal {
	return &Literal{Typ: typ, Val: val}
}

// NewIntLiteral returns a BIGINT literal.
func NewIntLiteral(val string) *Literal {
	return &Literal{Typ: sqltypes.Int64, Val: val}
}

// NewStrLiteral returns a VARCHAR literal.
func NewStrLiteral(val string) *Literal {
	return &Literal{Typ: sqltypes.VarChar, Val: val}
}

func (l *Literal) Type() sqltypes.Type { return l.Typ }

func (l *Literal) String() string {
	if l.Typ == sqltypes.VarChar {
		return "'" + l.Val + "'"
	}
	return l.Val
}

// ColRef references a column of the operator's input by name.
type ColRef struct {
	Name string
	Typ  sqltypes.Type
}

// NewColRef returns a column reference.
func NewColRef(name string, typ sqltypes.Type) *ColRef {
	return &ColRef{Name: name, Typ: typ}
}

func (c *ColRef) Type() sqltypes.Type { return c.Typ }
func (c *ColRef) String() string      { return c.Name }

// Call applies an operator or function to a list of argument expressions.
type Call struct {
	Op   *Op
	Args []Expr
	Typ  sqltypes.Type
}

// NewCall returns a call expression.
func NewCall(op *Op, typ sqltypes.Type, args ...Expr) *Call {
	return &Call{Op: op, Args: args, Typ: typ}
}

func (c *Call) Type() sqltypes.Type { return c.Typ }

func (c *Call) String() string {
	switch c.Op.Syntax {
	case SyntaxInfix:
		if len(c.Args) == 2 {
			return fmt.Sprintf("%s %s %s", c.Args[0], c.Op.Name, c.Args[1])
		}
	case SyntaxPrefix:
		if len(c.Args) == 1 {
			return fmt.Sprintf("%s %s", c.Op.Name, c.Args[0])
		}
	case SyntaxPostfix:
		if len(c.Args) == 1 {
			return fmt.Sprintf("%s %s", c.Args[0], c.Op.Name)
		}
	}
	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", c.Op.Name, strings.Join(args, ", "))
}

// Cast converts its input to another type.
type Cast struct {
	Input Expr
	Typ   sqltypes.Type
}

// NewCast returns a cast expression.
func NewCast(input Expr, typ sqltypes.Type) *Cast {
	return &Cast{Input: input, Typ: typ}
}

func (c *Cast) Type() sqltypes.Type { return c.Typ }

func (c *Cast) String() string {
	return fmt.Sprintf("CAST(%s AS %s)", c.Input, c.Typ)
}

// SplitAndExpression breaks an expression into its top-level AND conjuncts
// and appends them to filters.
func SplitAndExpression(filters []Expr, expr Expr) []Expr {
	if expr == nil {
		return filters
	}
	if call, ok := expr.(*Call); ok && call.Op == OpAnd {
		for _, arg := range call.Args {
			filters = SplitAndExpression(filters, arg)
		}
		return filters
	}
	return append(filters, expr)
}

// Walk calls visit on expr and all its sub-expressions, depth first.
// Walking stops early if visit returns false.
func Walk(expr Expr, visit func(Expr) bool) bool {
	if !visit(expr) {
		return false
	}
	switch e := expr.(type) {
	case *Call:
		for _, arg := range e.Args {
			if !Walk(arg, visit) {
				return false
			}
		}
	case *Cast:
		return Walk(e.Input, visit)
	}
	return true
}
