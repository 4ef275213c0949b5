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

// Package sqltypes defines the scalar value types and row shapes used by the
// planner. These mirror the type system of the external SQL sources closely
// enough that a row type can be compared against a result-set description
// without conversion.
package sqltypes

import "strings"

// Type is the type of a scalar value.
type Type int

const (
	Null Type = iota
	Bool
	Int64
	Float64
	Decimal
	VarChar
	Date
	Timestamp
)

var typeNames = map[Type]string{
	Null:      "NULL",
	Bool:      "BOOLEAN",
	Int64:     "BIGINT",
	Float64:   "DOUBLE",
	Decimal:   "DECIMAL",
	VarChar:   "VARCHAR",
	Date:      "DATE",
	Timestamp: "TIMESTAMP",
}

// String returns the SQL name of the type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsNumber reports whether the type is numeric.
func (t Type) IsNumber() bool {
	switch t {
	case Int64, Float64, Decimal:
		return true
	}
	return false
}

// Field is a single named column of a row.
type Field struct {
	Name string
	Type Type
}

// RowType describes the shape of the rows an operator produces.
// Column order is significant.
type RowType []Field

// Names returns the column names in order.
func (rt RowType) Names() []string {
	names := make([]string, len(rt))
	for i, f := range rt {
		names[i] = f.Name
	}
	return names
}

// Equal reports whether two row types have the same columns, in the same
// order, with the same names and types.
func (rt RowType) Equal(other RowType) bool {
	if len(rt) != len(other) {
		return false
	}
	for i, f := range rt {
		if f != other[i] {
			return false
		}
	}
	return true
}

// String returns a compact description, e.g. "(name VARCHAR, price DOUBLE)".
func (rt RowType) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, f := range rt {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Name)
		sb.WriteByte(' ')
		sb.WriteString(f.Type.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
