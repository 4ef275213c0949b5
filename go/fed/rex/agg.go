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

import "fedsql.io/fedsql/go/fed/sqltypes"

// AggFunc identifies an aggregate function.
type AggFunc interface {
	// Name returns the SQL name of the function.
	Name() string
}

// builtinAggFunc is the canonical, dialect-recognized form of an aggregate
// function.
type builtinAggFunc struct {
	name string
}

func (f *builtinAggFunc) Name() string { return f.name }

// The canonical aggregate functions.
var (
	AggCount AggFunc = &builtinAggFunc{name: "COUNT"}
	AggSum   AggFunc = &builtinAggFunc{name: "SUM"}
	AggMin   AggFunc = &builtinAggFunc{name: "MIN"}
	AggMax   AggFunc = &builtinAggFunc{name: "MAX"}
	AggAvg   AggFunc = &builtinAggFunc{name: "AVG"}
)

// WrappedAggFunc is an engine-internal adapter around a canonical aggregate
// function. The engine wraps functions this way to attach its own argument
// type-checking; external SQL sources only understand the canonical form, so
// wrapped calls must be unwrapped before a fragment is handed off.
type WrappedAggFunc struct {
	Wrapped AggFunc
}

// WrapAggFunc wraps a canonical aggregate function in the engine adapter.
func WrapAggFunc(fn AggFunc) *WrappedAggFunc {
	return &WrappedAggFunc{Wrapped: fn}
}

func (w *WrappedAggFunc) Name() string { return w.Wrapped.Name() }

// AggregateCall is one aggregate computation inside an Aggregate operator.
type AggregateCall struct {
	// Func is the aggregate function, canonical or wrapped.
	Func AggFunc
	// Distinct applies the function over distinct argument values only.
	Distinct bool
	// Approximate allows the source to compute an approximate answer.
	Approximate bool
	// Args are ordinal positions of the argument columns in the input row.
	Args []int
	// FilterArg is the ordinal of a boolean input column restricting which
	// rows the call aggregates, or -1 when the call has no filter.
	FilterArg int
	// Type is the result type of the call.
	Type sqltypes.Type
	// Name is the output column name.
	Name string
}

// NewAggregateCall returns an AggregateCall with all attributes set.
func NewAggregateCall(fn AggFunc, distinct, approximate bool, args []int, filterArg int, typ sqltypes.Type, name string) AggregateCall {
	return AggregateCall{
		Func:        fn,
		Distinct:    distinct,
		Approximate: approximate,
		Args:        args,
		FilterArg:   filterArg,
		Type:        typ,
		Name:        name,
	}
}
