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

package rex

// Kind classifies an operator.
type Kind int

const (
	// KindStandard operators are part of the standard SQL surface that every
	// supported external source implements.
	KindStandard Kind = iota
	// KindUserDefined operators are engine-local functions. Expressions
	// containing them can only run on the local engine.
	KindUserDefined
)

// Syntax describes how a call to the operator is written in SQL.
type Syntax int

const (
	SyntaxFunc Syntax = iota
	SyntaxInfix
	SyntaxPrefix
	SyntaxPostfix
)

// Op describes a scalar operator or function.
type Op struct {
	Name   string
	Kind   Kind
	Syntax Syntax
	// Prec is the binding strength used to decide parenthesization when
	// rendering infix operators. Higher binds tighter.
	Prec int
}

// The standard operator set. Precedence follows the usual SQL ordering.
var (
	OpOr  = &Op{Name: "OR", Syntax: SyntaxInfix, Prec: 1}
	OpAnd = &Op{Name: "AND", Syntax: SyntaxInfix, Prec: 2}
	OpNot = &Op{Name: "NOT", Syntax: SyntaxPrefix, Prec: 3}

	OpEq   = &Op{Name: "=", Syntax: SyntaxInfix, Prec: 4}
	OpNe   = &Op{Name: "<>", Syntax: SyntaxInfix, Prec: 4}
	OpLt   = &Op{Name: "<", Syntax: SyntaxInfix, Prec: 4}
	OpLe   = &Op{Name: "<=", Syntax: SyntaxInfix, Prec: 4}
	OpGt   = &Op{Name: ">", Syntax: SyntaxInfix, Prec: 4}
	OpGe   = &Op{Name: ">=", Syntax: SyntaxInfix, Prec: 4}
	OpLike = &Op{Name: "LIKE", Syntax: SyntaxInfix, Prec: 4}

	OpIsNull    = &Op{Name: "IS NULL", Syntax: SyntaxPostfix, Prec: 4}
	OpIsNotNull = &Op{Name: "IS NOT NULL", Syntax: SyntaxPostfix, Prec: 4}

	OpPlus  = &Op{Name: "+", Syntax: SyntaxInfix, Prec: 5}
	OpMinus = &Op{Name: "-", Syntax: SyntaxInfix, Prec: 5}
	OpMul   = &Op{Name: "*", Syntax: SyntaxInfix, Prec: 6}
	OpDiv   = &Op{Name: "/", Syntax: SyntaxInfix, Prec: 6}

	OpUpper  = &Op{Name: "UPPER"}
	OpLower  = &Op{Name: "LOWER"}
	OpConcat = &Op{Name: "CONCAT"}
	OpAbs    = &Op{Name: "ABS"}
	OpMod    = &Op{Name: "MOD"}
)

// UserOp returns a descriptor for an engine-local function. Two calls with
// the same name return distinct descriptors; planner code holds on to the
// descriptor, it does not look functions up by name at plan time.
func UserOp(name string) *Op {
	return &Op{Name: name, Kind: KindUserDefined}
}
