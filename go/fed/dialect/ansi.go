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

package dialect

import (
	"strconv"
	"strings"

	"fedsql.io/fedsql/go/fed/federrors"
	"fedsql.io/fedsql/go/fed/sqltypes"
)

// ansi renders standard SQL:2008. It is the default dialect for sources
// that do not need anything more specific.
type ansi struct {
	reserved map[string]bool
	funcs    map[string]string
}

// ANSI returns the standard SQL dialect.
func ANSI() Dialect {
	return &ansi{
		reserved: reservedWith("ROWS", "ONLY", "FIRST", "NEXT"),
		funcs: map[string]string{
			"UPPER": "UPPER", "LOWER": "LOWER", "CONCAT": "CONCAT",
			"ABS": "ABS", "MOD": "MOD",
			"COUNT": "COUNT", "SUM": "SUM", "MIN": "MIN",
			"MAX": "MAX", "AVG": "AVG",
			"APPROX_COUNT_DISTINCT": "APPROX_COUNT_DISTINCT",
		},
	}
}

func (*ansi) Name() string              { return "ansi" }
func (*ansi) SupportsOffsetFetch() bool { return true }
func (*ansi) SupportsAggFilter() bool   { return true }

func (d *ansi) WriteIdentifier(sb *strings.Builder, name string) {
	if isSafeIdentifier(name, d.reserved) {
		sb.WriteString(name)
		return
	}
	sb.WriteByte('"')
	writeEscaped(sb, name, '"')
	sb.WriteByte('"')
}

func (d *ansi) WriteLiteral(sb *strings.Builder, typ sqltypes.Type, val string) error {
	switch typ {
	case sqltypes.Null:
		sb.WriteString("NULL")
	case sqltypes.Bool:
		sb.WriteString(strings.ToUpper(val))
	case sqltypes.Int64, sqltypes.Float64, sqltypes.Decimal:
		sb.WriteString(val)
	case sqltypes.VarChar:
		sb.WriteByte('\'')
		writeEscaped(sb, val, '\'')
		sb.WriteByte('\'')
	case sqltypes.Date:
		sb.WriteString("DATE '")
		writeEscaped(sb, val, '\'')
		sb.WriteByte('\'')
	case sqltypes.Timestamp:
		sb.WriteString("TIMESTAMP '")
		writeEscaped(sb, val, '\'')
		sb.WriteByte('\'')
	default:
		return federrors.Errorf(federrors.InvalidArgument, "dialect %s cannot render a literal of type %s", d.Name(), typ)
	}
	return nil
}

func (d *ansi) WriteOffsetFetch(sb *strings.Builder, offset, limit *int64) {
	if offset != nil {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.FormatInt(*offset, 10))
		sb.WriteString(" ROWS")
	}
	if limit != nil {
		sb.WriteString(" FETCH NEXT ")
		sb.WriteString(strconv.FormatInt(*limit, 10))
		sb.WriteString(" ROWS ONLY")
	}
}

func (d *ansi) FuncName(name string) (string, bool) {
	mapped, ok := d.funcs[name]
	return mapped, ok
}
